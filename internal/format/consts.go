// Package format houses the on-disk structures of an APPX package: the
// fixed-layout package/bundle/signature header, the indirect-data digest table
// and the magic identifiers that tag each block. Every structure is built from
// internal/meta objects so reads validate field by field and writes are
// byte-exact.
package format

import (
	"fmt"

	"github.com/joshuapare/appxkit/internal/buf"
)

// Tag is a four-byte block identifier. It is stored little-endian, so the
// ASCII spelling in the comments below is the on-disk byte order.
type Tag uint32

const (
	TagIndirectData  Tag = 0x58504145 // "EAPX"
	TagPackageHeader Tag = 0x48505845 // "EXPH"
	TagBundleHeader  Tag = 0x48425845 // "EXBH"
	TagSignature     Tag = 0x58434B50 // "PKCX"

	TagEncryptedHeader   Tag = 0x48455841 // "AXEH"
	TagEncryptedFooter   Tag = 0x46455841 // "AXEF"
	TagEncryptedBlockMap Tag = 0x42455841 // "AXEB"
	TagPackageContent    Tag = 0x43505841 // "AXPC"
	TagBlockMap          Tag = 0x4D425841 // "AXBM"
	TagCodeIntegrity     Tag = 0x49435841 // "AXCI"
)

// String renders the tag as its four ASCII bytes.
func (t Tag) String() string {
	b := make([]byte, 4)
	buf.PutLE(b, t)
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return fmt.Sprintf("0x%08X", uint32(t))
		}
	}
	return string(b)
}

// DigestOrder lists the sub-block tags in digest-table order. A table with
// MinDigestCount entries stops before TagCodeIntegrity.
var DigestOrder = [MaxDigestCount]Tag{
	TagEncryptedHeader,
	TagEncryptedFooter,
	TagEncryptedBlockMap,
	TagPackageContent,
	TagBlockMap,
	TagCodeIntegrity,
}

// DigestIndex returns the position of tag in DigestOrder, or -1.
func DigestIndex(tag Tag) int {
	for i, t := range DigestOrder {
		if t == tag {
			return i
		}
	}
	return -1
}

const (
	// MaxSupportedVersion is the newest header version understood (1.0.0.0).
	MaxSupportedVersion uint64 = 0x0001000000000000

	// MinDigestCount is the digest count without code integrity.
	MinDigestCount = 5
	// MaxDigestCount is the digest count including code integrity.
	MaxDigestCount = 6

	// SHA256DigestSize is the width of every digest value.
	SHA256DigestSize = 32

	// HeaderSize is the packed size of the package header:
	//
	//	Offset  Size  Field
	//	------  ----  ------------------------------------
	//	 0x00    4    header id
	//	 0x04    2    header size
	//	 0x06    8    version
	//	 0x0E    8    footer offset
	//	 0x16    8    footer size
	//	 0x1E    8    file count
	//	 0x26    8    signature offset
	//	 0x2E    2    signature compression type
	//	 0x30    4    signature uncompressed size
	//	 0x34    4    signature compressed size
	//	 0x38    8    code integrity offset
	//	 0x40    2    code integrity compression type
	//	 0x42    4    code integrity uncompressed size
	//	 0x46    4    code integrity compressed size
	HeaderSize = 74

	// HeaderBeginningSize covers the fields before the signature block.
	HeaderBeginningSize = 38
	// BlockLocatorSize is the size of one signature/code-integrity locator.
	BlockLocatorSize = 18

	// DigestEntrySize is id + start + size + hash.
	DigestEntrySize = 4 + 8 + 8 + SHA256DigestSize
	// IndirectDataHeadSize is id + count.
	IndirectDataHeadSize = 4 + 1

	// SignatureEntryName is the container entry holding the signature block.
	SignatureEntryName = "AppxSignature.p7x"
	// SignaturePrefixLimit bounds how much of the signature entry is read.
	SignaturePrefixLimit = 16 * 1024
)

// IndirectDataSize returns the encoded size of a table with count digests.
func IndirectDataSize(count int) int {
	return IndirectDataHeadSize + count*DigestEntrySize
}

// MarshalText renders the tag as text so JSON reports show "EXPH" rather than
// a decimal number.
func (t Tag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
