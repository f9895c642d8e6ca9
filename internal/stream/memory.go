package stream

import "bytes"

// MemoryStream is an in-memory Stream. Writes append; reads consume from the
// front, so bytes written can be read back in order.
type MemoryStream struct {
	buf bytes.Buffer
}

// NewMemory returns a MemoryStream pre-loaded with a copy of b.
func NewMemory(b []byte) *MemoryStream {
	m := &MemoryStream{}
	m.buf.Write(b)
	return m
}

func (m *MemoryStream) Read(p []byte) (int, error)  { return m.buf.Read(p) }
func (m *MemoryStream) Write(p []byte) (int, error) { return m.buf.Write(p) }
func (m *MemoryStream) Close() error                { return nil }

// Bytes returns the unread portion of the stream.
func (m *MemoryStream) Bytes() []byte { return m.buf.Bytes() }

// Len returns the number of unread bytes.
func (m *MemoryStream) Len() int { return m.buf.Len() }
