package stream

import (
	"io"

	"github.com/joshuapare/appxkit/pkg/types"
)

// RangeStream exposes the window [offset, offset+size) of a random-access
// source as a read-only Stream.
type RangeStream struct {
	sr *io.SectionReader
}

// NewRange returns a RangeStream over src. The window is clamped to total,
// the known length of src.
func NewRange(src io.ReaderAt, total, offset, size int64) (*RangeStream, error) {
	if offset < 0 || size < 0 || offset > total || size > total-offset {
		return nil, types.Errorf(types.ErrKindInvalidStreamFormat,
			"range [%d,+%d) outside source of %d bytes", offset, size, total)
	}
	return &RangeStream{sr: io.NewSectionReader(src, offset, size)}, nil
}

func (r *RangeStream) Read(p []byte) (int, error) { return r.sr.Read(p) }

func (r *RangeStream) Write([]byte) (int, error) { return 0, ErrReadOnly }

func (r *RangeStream) Close() error { return nil }

// Size returns the length of the window.
func (r *RangeStream) Size() int64 { return r.sr.Size() }
