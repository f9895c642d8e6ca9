package stream

import (
	"fmt"
	"os"

	"github.com/joshuapare/appxkit/pkg/types"
)

// FileStream is a Stream over an *os.File opened in a fixed Mode.
type FileStream struct {
	f    *os.File
	path string
	mode Mode
}

// OpenFile opens path in the given mode.
func OpenFile(path string, mode Mode) (*FileStream, error) {
	var flag int
	switch mode {
	case ModeRead:
		flag = os.O_RDONLY
	case ModeWrite:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ModeWriteUpdate:
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	default:
		return nil, types.Errorf(types.ErrKindInvalidArgument, "open %s: unknown mode %d", path, mode)
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		if os.IsNotExist(err) && mode == ModeRead {
			return nil, &types.Error{Kind: types.ErrKindNotFound, Msg: "open " + path, Err: err}
		}
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "open " + path, Err: err}
	}
	return &FileStream{f: f, path: path, mode: mode}, nil
}

// File exposes the backing file for random-access consumers.
func (s *FileStream) File() *os.File { return s.f }

// Path returns the path the stream was opened with.
func (s *FileStream) Path() string { return s.path }

func (s *FileStream) Read(p []byte) (int, error) {
	if s.mode == ModeWrite {
		return 0, ErrWriteOnly
	}
	return s.f.Read(p)
}

func (s *FileStream) Write(p []byte) (int, error) {
	if s.mode == ModeRead {
		return 0, ErrReadOnly
	}
	return s.f.Write(p)
}

// Sync flushes written data to stable storage.
func (s *FileStream) Sync() error {
	if s.f == nil {
		return nil
	}
	if err := syncFile(s.f); err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: "sync " + s.path, Err: err}
	}
	return nil
}

// Close releases the file. Closing twice is a no-op.
func (s *FileStream) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	if err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: fmt.Sprintf("close %s", s.path), Err: err}
	}
	return nil
}
