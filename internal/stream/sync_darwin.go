//go:build darwin

package stream

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile uses F_FULLFSYNC so the archive survives power loss, not just a
// process crash.
func syncFile(f *os.File) error {
	_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
	return err
}
