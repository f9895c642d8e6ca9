package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/appxkit/internal/stream"
	"github.com/joshuapare/appxkit/pkg/types"
)

func TestHeaderLayout(t *testing.T) {
	h := NewHeader(stream.NewMemory(nil), KindPackage)
	assert.Equal(t, HeaderSize, h.Size())
	assert.Equal(t, 14, h.Len())

	beginning := 0
	for i := 0; i < 6; i++ {
		beginning += h.Field(i).Size()
	}
	assert.Equal(t, HeaderBeginningSize, beginning)

	locator := 0
	for i := 6; i < 10; i++ {
		locator += h.Field(i).Size()
	}
	assert.Equal(t, BlockLocatorSize, locator)
}

func TestParseHeaderSuccess(t *testing.T) {
	s := stream.NewMemory(rawHeader(TagPackageHeader, MaxSupportedVersion))
	h := NewHeader(s, KindPackage)
	require.NoError(t, h.Read())
	assert.Equal(t, 0, s.Len(), "header consumes exactly HeaderSize bytes")

	info := h.Info()
	assert.Equal(t, TagPackageHeader, info.ID)
	assert.EqualValues(t, HeaderSize, info.HeaderSize)
	assert.Equal(t, MaxSupportedVersion, info.Version)
	assert.EqualValues(t, 12, info.FileCount)
	assert.EqualValues(t, 0x2000, info.Signature.Offset)
	assert.EqualValues(t, 1, info.Signature.CompressionType)
	assert.EqualValues(t, 0x300, info.Signature.CompressedSize)
	assert.EqualValues(t, 0x3000, info.CodeIntegrity.Offset)
	assert.EqualValues(t, 0x480, info.CodeIntegrity.CompressedSize)
}

func TestHeaderVersionGate(t *testing.T) {
	tests := []struct {
		name    string
		version uint64
		kind    types.ErrKind
		ok      bool
	}{
		{"at ceiling", 0x0001000000000000, 0, true},
		{"below ceiling", 0, 0, true},
		{"one above ceiling", 0x0001000000000001, types.ErrKindUnsupportedVersion, false},
		{"far above ceiling", 0xFFFFFFFFFFFFFFFF, types.ErrKindUnsupportedVersion, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader(stream.NewMemory(rawHeader(TagPackageHeader, tt.version)), KindPackage)
			err := h.Read()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, types.KindOf(err))
		})
	}
}

func TestHeaderMagicMismatch(t *testing.T) {
	for _, id := range []Tag{TagBundleHeader, TagSignature, 0, 0x12345678} {
		t.Run(id.String(), func(t *testing.T) {
			s := stream.NewMemory(rawHeader(id, 0))
			h := NewHeader(s, KindPackage)
			err := h.Read()
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidStreamFormat))
			assert.Equal(t, HeaderSize-4, s.Len(), "read stops after the id")
			assert.EqualValues(t, 0, h.Version.Value(), "later fields keep their defaults")
		})
	}
}

func TestBundleHeader(t *testing.T) {
	h := NewHeader(stream.NewMemory(rawHeader(TagBundleHeader, 0x0001000000000000)), KindBundle)
	require.NoError(t, h.Read())
	assert.Equal(t, TagBundleHeader, h.ID.Value())

	h = NewHeader(stream.NewMemory(rawHeader(TagPackageHeader, 0)), KindBundle)
	assert.True(t, errors.Is(h.Read(), types.ErrInvalidStreamFormat))
}

func TestHeaderTruncated(t *testing.T) {
	raw := rawHeader(TagPackageHeader, 0)
	h := NewHeader(stream.NewMemory(raw[:HeaderSize-1]), KindPackage)
	err := h.Read()
	assert.Equal(t, types.ErrKindInvalidStreamFormat, types.KindOf(err))
}

func TestHeaderRoundTrip(t *testing.T) {
	var wire bytes.Buffer
	src := NewHeader(&wire, KindPackage)
	want := HeaderInfo{
		ID:           TagPackageHeader,
		HeaderSize:   HeaderSize,
		Version:      0x0000000100000000,
		FooterOffset: 0xABCDEF,
		FooterSize:   77,
		FileCount:    3,
		Signature:    LocatorInfo{Offset: 1, CompressionType: 2, UncompressedSize: 3, CompressedSize: 4},
		CodeIntegrity: LocatorInfo{
			Offset: 5, CompressionType: 6, UncompressedSize: 7, CompressedSize: 8,
		},
	}
	src.SetInfo(want)
	require.NoError(t, src.Validate())
	require.NoError(t, src.Write())
	assert.Equal(t, HeaderSize, wire.Len())
	assert.Equal(t, rawHeaderPrefix(want), wire.Bytes()[:14])

	dst := NewHeader(&wire, KindPackage)
	require.NoError(t, dst.Read())
	assert.Equal(t, want, dst.Info())
}

func rawHeaderPrefix(v HeaderInfo) []byte {
	raw := rawHeader(v.ID, v.Version)
	raw[4], raw[5] = byte(v.HeaderSize), byte(v.HeaderSize>>8)
	return raw[:14]
}

func TestPreambleSharesFields(t *testing.T) {
	h := NewHeader(stream.NewMemory(rawHeader(TagPackageHeader, 7)), KindPackage)
	p := h.Preamble()
	assert.Equal(t, 14, p.Size())
	assert.Same(t, h.Registry(), p.Registry())

	require.NoError(t, p.Read())
	assert.EqualValues(t, 7, h.Version.Value())
	assert.EqualValues(t, 0, h.FileCount.Value(), "preamble does not touch the body")
}

func TestProbeHeaderKind(t *testing.T) {
	kind, err := ProbeHeaderKind(rawHeader(TagBundleHeader, 0))
	require.NoError(t, err)
	assert.Equal(t, KindBundle, kind)

	kind, err = ProbeHeaderKind(rawHeader(TagSignature, 0xFFFFFFFFFFFFFFFF))
	require.NoError(t, err)
	assert.Equal(t, KindSignature, kind, "signature blocks are not version gated")

	_, err = ProbeHeaderKind(rawHeader(TagPackageHeader, MaxSupportedVersion+1))
	assert.Equal(t, types.ErrKindUnsupportedVersion, types.KindOf(err))

	_, err = ProbeHeaderKind(rawHeader(0x0BADF00D, 0))
	assert.Equal(t, types.ErrKindInvalidStreamFormat, types.KindOf(err))

	_, err = ProbeHeaderKind([]byte("EX"))
	assert.Equal(t, types.ErrKindInvalidStreamFormat, types.KindOf(err))
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "EXPH", TagPackageHeader.String())
	assert.Equal(t, "EXBH", TagBundleHeader.String())
	assert.Equal(t, "PKCX", TagSignature.String())
	assert.Equal(t, "EAPX", TagIndirectData.String())
	assert.Equal(t, "AXCI", TagCodeIntegrity.String())
	assert.Equal(t, "0x00000001", Tag(1).String())

	text, err := TagBlockMap.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "AXBM", string(text))
}

func TestDigestIndex(t *testing.T) {
	assert.Equal(t, 0, DigestIndex(TagEncryptedHeader))
	assert.Equal(t, 1, DigestIndex(TagEncryptedFooter))
	assert.Equal(t, 2, DigestIndex(TagEncryptedBlockMap))
	assert.Equal(t, 3, DigestIndex(TagPackageContent))
	assert.Equal(t, 4, DigestIndex(TagBlockMap))
	assert.Equal(t, 5, DigestIndex(TagCodeIntegrity))
	assert.Equal(t, -1, DigestIndex(TagSignature))
}
