// Package stream defines the byte stream collaborator every structured read
// and write is bound to, plus the file, memory and range implementations the
// workflows use.
package stream

import (
	"errors"
	"io"

	"github.com/joshuapare/appxkit/pkg/types"
)

// Stream is a sequential byte source and sink. Implementations that only
// support one direction return an error from the other.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
}

// ErrReadOnly is returned by Write on a stream opened for reading.
var ErrReadOnly = errors.New("stream: opened read-only")

// ErrWriteOnly is returned by Read on a stream opened for writing.
var ErrWriteOnly = errors.New("stream: opened write-only")

// Mode selects how a FileStream opens its backing file.
type Mode int

const (
	// ModeRead opens an existing file for reading.
	ModeRead Mode = iota
	// ModeWrite creates or truncates a file for writing.
	ModeWrite
	// ModeWriteUpdate creates the file if needed and opens it read/write,
	// truncating prior content.
	ModeWriteUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeWriteUpdate:
		return "write-update"
	default:
		return "unknown"
	}
}

// copyBufferSize matches the chunk size used to move entry payloads.
const copyBufferSize = 32 * 1024

// CopyTo drains src into dst and returns the number of bytes moved.
// Failures on either side are reported as I/O errors.
func CopyTo(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, copyBufferSize)
	n, err := io.CopyBuffer(dst, src, buf)
	if err != nil {
		return n, types.Wrap(types.ErrKindIO, "stream copy", err)
	}
	return n, nil
}

// ReadPrefix reads up to limit bytes from r. A source shorter than limit is
// not an error; the returned slice is trimmed to what was available.
func ReadPrefix(r io.Reader, limit int) ([]byte, error) {
	b := make([]byte, limit)
	n, err := io.ReadFull(r, b)
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return b[:n], nil
	default:
		return nil, types.Wrap(types.ErrKindIO, "read prefix", err)
	}
}
