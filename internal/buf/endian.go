// Package buf contains helpers for endian-safe encoding and decoding routines.
package buf

import "encoding/binary"

// Uint is the set of fixed-width unsigned integers carried on the wire.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width returns the encoded size of T in bytes.
func Width[T Uint]() int {
	var v T
	return binary.Size(v)
}

// GetLE decodes a little-endian T from the front of b. Returns 0 when b is too short.
func GetLE[T Uint](b []byte) T {
	switch Width[T]() {
	case 1:
		if len(b) < 1 {
			return 0
		}
		return T(b[0])
	case 2:
		return T(U16LE(b))
	case 4:
		return T(U32LE(b))
	default:
		return T(U64LE(b))
	}
}

// PutLE encodes v little-endian into the front of b. b must hold Width[T]() bytes.
func PutLE[T Uint](b []byte, v T) {
	switch Width[T]() {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		binary.LittleEndian.PutUint64(b, uint64(v))
	}
}

// U16LE reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}
