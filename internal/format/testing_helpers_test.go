package format

import (
	"encoding/binary"
)

// rawHeader encodes a header by hand so tests do not depend on the code under
// test for their fixtures.
func rawHeader(id Tag, version uint64) []byte {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[0x00:], uint32(id))
	binary.LittleEndian.PutUint16(b[0x04:], HeaderSize)
	binary.LittleEndian.PutUint64(b[0x06:], version)
	binary.LittleEndian.PutUint64(b[0x0E:], 0x1000)
	binary.LittleEndian.PutUint64(b[0x16:], 0x200)
	binary.LittleEndian.PutUint64(b[0x1E:], 12)
	binary.LittleEndian.PutUint64(b[0x26:], 0x2000)
	binary.LittleEndian.PutUint16(b[0x2E:], 1)
	binary.LittleEndian.PutUint32(b[0x30:], 0x400)
	binary.LittleEndian.PutUint32(b[0x34:], 0x300)
	binary.LittleEndian.PutUint64(b[0x38:], 0x3000)
	binary.LittleEndian.PutUint16(b[0x40:], 2)
	binary.LittleEndian.PutUint32(b[0x42:], 0x500)
	binary.LittleEndian.PutUint32(b[0x46:], 0x480)
	return b
}

// rawIndirectData encodes a digest table with count entries tagged in
// DigestOrder (wrapping if count exceeds it).
func rawIndirectData(count int) []byte {
	b := make([]byte, 0, IndirectDataSize(count))
	b = binary.LittleEndian.AppendUint32(b, uint32(TagIndirectData))
	b = append(b, byte(count))
	for i := 0; i < count; i++ {
		b = binary.LittleEndian.AppendUint32(b, uint32(DigestOrder[i%MaxDigestCount]))
		b = binary.LittleEndian.AppendUint64(b, uint64(i)*0x100)
		b = binary.LittleEndian.AppendUint64(b, 0x100)
		for j := 0; j < SHA256DigestSize; j++ {
			b = append(b, byte(i))
		}
	}
	return b
}
