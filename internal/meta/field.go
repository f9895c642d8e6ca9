package meta

import (
	"io"

	"github.com/joshuapare/appxkit/internal/buf"
)

// Field is a fixed-width little-endian integer bound to a stream.
type Field[T buf.Uint] struct {
	name     string
	stream   Stream
	value    T
	validate Validator[T]
	scratch  [8]byte
}

// NewField binds a field of type T to s. A nil validator accepts everything.
func NewField[T buf.Uint](s Stream, name string, validate Validator[T]) *Field[T] {
	if validate == nil {
		validate = Accept[T]
	}
	return &Field[T]{name: name, stream: s, validate: validate}
}

// Name returns the field name used in error messages.
func (f *Field[T]) Name() string { return f.name }

// Value returns the current value.
func (f *Field[T]) Value() T { return f.value }

// SetValue replaces the current value without validating it.
func (f *Field[T]) SetValue(v T) { f.value = v }

// Size returns the encoded width of T.
func (f *Field[T]) Size() int { return buf.Width[T]() }

func (f *Field[T]) Read() error {
	b := f.scratch[:f.Size()]
	if _, err := io.ReadFull(f.stream, b); err != nil {
		return readError(f.name, len(b), err)
	}
	f.value = buf.GetLE[T](b)
	return f.Validate()
}

func (f *Field[T]) Write() error {
	b := f.scratch[:f.Size()]
	buf.PutLE(b, f.value)
	if _, err := f.stream.Write(b); err != nil {
		return writeError(f.name, err)
	}
	return nil
}

func (f *Field[T]) Validate() error {
	return rejected(f.name, f.validate(f.value))
}

// Bytes is a variable-length byte buffer bound to a stream. The wire format
// does not carry its length: callers size the buffer with Resize or SetValue
// before reading or writing.
type Bytes struct {
	name     string
	stream   Stream
	value    []byte
	validate Validator[[]byte]
}

// NewBytes binds an n-byte buffer to s. A nil validator accepts everything.
func NewBytes(s Stream, name string, n int, validate Validator[[]byte]) *Bytes {
	if validate == nil {
		validate = Accept[[]byte]
	}
	return &Bytes{name: name, stream: s, value: make([]byte, n), validate: validate}
}

// Name returns the field name used in error messages.
func (f *Bytes) Name() string { return f.name }

// Value returns the held buffer. The caller must not retain it across Read.
func (f *Bytes) Value() []byte { return f.value }

// SetValue replaces the buffer with a copy of v; Size follows len(v).
func (f *Bytes) SetValue(v []byte) { f.value = append(f.value[:0:0], v...) }

// Resize sets the buffer length to n, zero-filling any new bytes.
func (f *Bytes) Resize(n int) {
	if n <= cap(f.value) {
		old := len(f.value)
		f.value = f.value[:n]
		if n > old {
			clear(f.value[old:])
		}
		return
	}
	grown := make([]byte, n)
	copy(grown, f.value)
	f.value = grown
}

// Size returns the current buffer length.
func (f *Bytes) Size() int { return len(f.value) }

func (f *Bytes) Read() error {
	if _, err := io.ReadFull(f.stream, f.value); err != nil {
		return readError(f.name, len(f.value), err)
	}
	return f.Validate()
}

func (f *Bytes) Write() error {
	if _, err := f.stream.Write(f.value); err != nil {
		return writeError(f.name, err)
	}
	return nil
}

func (f *Bytes) Validate() error {
	return rejected(f.name, f.validate(f.value))
}
