package format

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/joshuapare/appxkit/internal/buf"
	"github.com/joshuapare/appxkit/internal/stream"
	"github.com/joshuapare/appxkit/pkg/types"
)

// ParseSignatureHeader interprets the leading HeaderSize bytes of a signature
// entry prefix as a header and requires the signature magic. A prefix of
// HeaderSize bytes or fewer is too short to hold a header and is accepted
// unchecked: the returned header is nil and so is the error. Only structure
// is checked; the PKCS#7 payload is not verified.
func ParseSignatureHeader(prefix []byte) (*Header, error) {
	if !buf.Has(prefix, 0, HeaderSize+1) {
		return nil, nil
	}
	h := NewHeader(stream.NewMemory(prefix[:HeaderSize]), KindSignature)
	if err := h.Read(); err != nil {
		return nil, fmt.Errorf("signature block: %w", err)
	}
	return h, nil
}

// knownKinds is the probe order for ProbeHeaderKind.
var knownKinds = []HeaderKind{KindPackage, KindBundle, KindSignature}

// ProbeHeaderKind reads the preamble of b under each known header kind and
// returns the first that accepts it. A known id with an unsupported version
// reports UnsupportedVersion rather than falling through.
func ProbeHeaderKind(b []byte) (HeaderKind, error) {
	for _, kind := range knownKinds {
		h := NewHeader(stream.NewMemory(b), kind)
		err := h.Preamble().Read()
		if err == nil {
			return kind, nil
		}
		if !errors.Is(err, types.ErrInvalidStreamFormat) || h.ID.Value() == kind.Tag {
			return HeaderKind{}, err
		}
	}
	raw, ok := buf.Slice(b, 0, 4)
	if !ok {
		return HeaderKind{}, types.Errorf(types.ErrKindInvalidStreamFormat, "header: %d bytes, too short for an id", len(b))
	}
	return HeaderKind{}, types.Errorf(types.ErrKindInvalidStreamFormat, "unrecognized header id %v", buf.GetLE[Tag](raw))
}

// SignatureBlock describes a structurally valid signature entry.
type SignatureBlock struct {
	// Header is nil when the entry was too short to carry one.
	Header *HeaderInfo `json:"header,omitempty"`
	// BodySize is the length of the payload after the four-byte magic, or of
	// the whole prefix when there is no header.
	BodySize int64 `json:"body_size"`
	// BodySHA256 fingerprints the payload; it is not a verification result.
	BodySHA256 string `json:"body_sha256"`
	// Truncated is set when the entry was longer than the bytes inspected.
	Truncated bool `json:"truncated"`
}

// InspectSignature validates prefix like ParseSignatureHeader and describes
// the payload that follows the magic. truncated reports whether prefix was cut
// short of the full entry.
func InspectSignature(prefix []byte, truncated bool) (*SignatureBlock, error) {
	h, err := ParseSignatureHeader(prefix)
	if err != nil {
		return nil, err
	}
	block := &SignatureBlock{Truncated: truncated}
	var start int64
	if h != nil {
		info := h.Info()
		block.Header = &info
		start = 4
	}
	total := int64(len(prefix))
	body, err := stream.NewRange(bytes.NewReader(prefix), total, start, total-start)
	if err != nil {
		return nil, err
	}
	sum := sha256.New()
	if _, err := stream.CopyTo(sum, body); err != nil {
		return nil, err
	}
	block.BodySize = body.Size()
	block.BodySHA256 = hex.EncodeToString(sum.Sum(nil))
	return block, nil
}
