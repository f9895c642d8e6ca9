//go:build !unix

package mmfile

import (
	"fmt"
	"os"
)

// Map reads the whole package file into memory on platforms where it is not
// mapped. The returned cleanup has nothing to release.
func Map(path string) ([]byte, func() error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("mmfile: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
