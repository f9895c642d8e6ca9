//go:build !linux && !freebsd && !darwin && !windows

package stream

import "os"

func syncFile(f *os.File) error {
	return f.Sync()
}
