package meta

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/appxkit/pkg/types"
)

// Object is a typed binary value bound to a stream.
type Object interface {
	// Read decodes the object from its stream and validates it. Size() bytes
	// are consumed on success.
	Read() error
	// Write encodes the current value to the stream without validating it.
	Write() error
	// Validate checks the current value.
	Validate() error
	// Size reports the encoded size of the current value in bytes.
	Size() int
}

// Stream is the subset of a byte stream objects need. It is held by reference
// and never closed by an object.
type Stream interface {
	io.Reader
	io.Writer
}

// readError classifies a failed read of n bytes. Running out of input inside a
// structure means the structure is truncated, which is a format problem; any
// other failure is the stream's own.
func readError(name string, n int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return types.Errorf(types.ErrKindInvalidStreamFormat, "%s: need %d bytes: %w", name, n, err)
	}
	return types.Wrap(types.ErrKindIO, "read "+name, err)
}

func writeError(name string, err error) error {
	return types.Wrap(types.ErrKindIO, "write "+name, err)
}

// rejected turns a validator result into the error Read returns. Validators
// may pick their own kind; untyped rejections become ValidationFailed.
func rejected(name string, err error) error {
	if err == nil {
		return nil
	}
	if types.KindOf(err) == types.ErrKindUnknown {
		return &types.Error{Kind: types.ErrKindValidationFailed, Msg: name, Err: err}
	}
	return fmt.Errorf("%s: %w", name, err)
}
