package format

import (
	"github.com/joshuapare/appxkit/internal/meta"
	"github.com/joshuapare/appxkit/pkg/types"
)

// HeaderKind selects which magic a header must carry and whether its version
// is gated.
type HeaderKind struct {
	Name string
	Tag  Tag
	// CheckVersion enables the MaxSupportedVersion ceiling. Signature blocks
	// reuse the header layout only for the id, so they skip it.
	CheckVersion bool
}

var (
	KindPackage   = HeaderKind{Name: "package", Tag: TagPackageHeader, CheckVersion: true}
	KindBundle    = HeaderKind{Name: "bundle", Tag: TagBundleHeader, CheckVersion: true}
	KindSignature = HeaderKind{Name: "signature", Tag: TagSignature}
)

// Locator points at a signature or code-integrity block inside the package.
type Locator struct {
	Offset           *meta.Field[uint64]
	CompressionType  *meta.Field[uint16]
	UncompressedSize *meta.Field[uint32]
	CompressedSize   *meta.Field[uint32]
}

func newLocator(s meta.Stream, reg *meta.Registry, prefix string) (Locator, []meta.Ref) {
	l := Locator{
		Offset:           meta.NewField[uint64](s, prefix+" offset", nil),
		CompressionType:  meta.NewField[uint16](s, prefix+" compression type", nil),
		UncompressedSize: meta.NewField[uint32](s, prefix+" uncompressed size", nil),
		CompressedSize:   meta.NewField[uint32](s, prefix+" compressed size", nil),
	}
	return l, []meta.Ref{
		reg.Add(l.Offset),
		reg.Add(l.CompressionType),
		reg.Add(l.UncompressedSize),
		reg.Add(l.CompressedSize),
	}
}

// Header is the fixed 74-byte package header. The embedded Structured gives
// it the Object contract over all fields in wire order.
type Header struct {
	*meta.Structured

	Kind HeaderKind

	ID            *meta.Field[Tag]
	HeaderSize    *meta.Field[uint16]
	Version       *meta.Field[uint64]
	FooterOffset  *meta.Field[uint64]
	FooterSize    *meta.Field[uint64]
	FileCount     *meta.Field[uint64]
	Signature     Locator
	CodeIntegrity Locator

	preamble *meta.Structured
}

// NewHeader builds a header of the given kind bound to s.
func NewHeader(s meta.Stream, kind HeaderKind) *Header {
	h := &Header{Kind: kind}

	var checkVersion meta.Validator[uint64]
	if kind.CheckVersion {
		checkVersion = meta.AtMost(MaxSupportedVersion, types.ErrKindUnsupportedVersion)
	}

	h.ID = meta.NewField(s, kind.Name+" header id", meta.Equals(kind.Tag, types.ErrKindInvalidStreamFormat))
	h.HeaderSize = meta.NewField[uint16](s, "header size", nil)
	h.Version = meta.NewField(s, "version", checkVersion)
	h.FooterOffset = meta.NewField[uint64](s, "footer offset", nil)
	h.FooterSize = meta.NewField[uint64](s, "footer size", nil)
	h.FileCount = meta.NewField[uint64](s, "file count", nil)

	reg := meta.NewRegistry()
	refs := []meta.Ref{
		reg.Add(h.ID),
		reg.Add(h.HeaderSize),
		reg.Add(h.Version),
		reg.Add(h.FooterOffset),
		reg.Add(h.FooterSize),
		reg.Add(h.FileCount),
	}
	var sigRefs, ciRefs []meta.Ref
	h.Signature, sigRefs = newLocator(s, reg, "signature")
	h.CodeIntegrity, ciRefs = newLocator(s, reg, "code integrity")
	refs = append(refs, sigRefs...)
	refs = append(refs, ciRefs...)

	h.Structured = meta.View(reg, refs...)
	h.preamble = meta.View(reg, refs[:3]...)
	return h
}

// Preamble is a view over the id, header size and version fields. It shares
// those fields with the full header, so reading the preamble and then the
// full header yields the same values.
func (h *Header) Preamble() *meta.Structured { return h.preamble }

// LocatorInfo is the plain-value form of a Locator.
type LocatorInfo struct {
	Offset           uint64 `json:"offset"`
	CompressionType  uint16 `json:"compression_type"`
	UncompressedSize uint32 `json:"uncompressed_size"`
	CompressedSize   uint32 `json:"compressed_size"`
}

// HeaderInfo is the plain-value form of a Header, for building and reporting.
type HeaderInfo struct {
	ID            Tag         `json:"id"`
	HeaderSize    uint16      `json:"header_size"`
	Version       uint64      `json:"version"`
	FooterOffset  uint64      `json:"footer_offset"`
	FooterSize    uint64      `json:"footer_size"`
	FileCount     uint64      `json:"file_count"`
	Signature     LocatorInfo `json:"signature"`
	CodeIntegrity LocatorInfo `json:"code_integrity"`
}

func (l Locator) info() LocatorInfo {
	return LocatorInfo{
		Offset:           l.Offset.Value(),
		CompressionType:  l.CompressionType.Value(),
		UncompressedSize: l.UncompressedSize.Value(),
		CompressedSize:   l.CompressedSize.Value(),
	}
}

func (l Locator) set(v LocatorInfo) {
	l.Offset.SetValue(v.Offset)
	l.CompressionType.SetValue(v.CompressionType)
	l.UncompressedSize.SetValue(v.UncompressedSize)
	l.CompressedSize.SetValue(v.CompressedSize)
}

// Info snapshots the current field values.
func (h *Header) Info() HeaderInfo {
	return HeaderInfo{
		ID:            h.ID.Value(),
		HeaderSize:    h.HeaderSize.Value(),
		Version:       h.Version.Value(),
		FooterOffset:  h.FooterOffset.Value(),
		FooterSize:    h.FooterSize.Value(),
		FileCount:     h.FileCount.Value(),
		Signature:     h.Signature.info(),
		CodeIntegrity: h.CodeIntegrity.info(),
	}
}

// SetInfo replaces every field value. Nothing is validated.
func (h *Header) SetInfo(v HeaderInfo) {
	h.ID.SetValue(v.ID)
	h.HeaderSize.SetValue(v.HeaderSize)
	h.Version.SetValue(v.Version)
	h.FooterOffset.SetValue(v.FooterOffset)
	h.FooterSize.SetValue(v.FooterSize)
	h.FileCount.SetValue(v.FileCount)
	h.Signature.set(v.Signature)
	h.CodeIntegrity.set(v.CodeIntegrity)
}
