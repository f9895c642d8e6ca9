package format

import (
	"fmt"

	"github.com/joshuapare/appxkit/internal/meta"
	"github.com/joshuapare/appxkit/pkg/types"
)

// DigestEntry is one (id, start, size, hash) record of the digest table. The
// range and hash are not checked against package bytes here.
type DigestEntry struct {
	*meta.Structured

	ID     *meta.Field[Tag]
	Start  *meta.Field[uint64]
	Length *meta.Field[uint64]
	Hash   *meta.Bytes
}

// NewDigestEntry builds a digest entry bound to s.
func NewDigestEntry(s meta.Stream) *DigestEntry {
	d := &DigestEntry{
		ID:     meta.NewField[Tag](s, "digest id", nil),
		Start:  meta.NewField[uint64](s, "digest start", nil),
		Length: meta.NewField[uint64](s, "digest size", nil),
		Hash:   meta.NewBytes(s, "digest value", SHA256DigestSize, meta.Len(SHA256DigestSize)),
	}
	d.Structured = meta.NewStructured(d.ID, d.Start, d.Length, d.Hash)
	return d
}

// Digest is the plain-value form of a DigestEntry.
type Digest struct {
	ID     Tag                    `json:"id"`
	Start  uint64                 `json:"start"`
	Length uint64                 `json:"size"`
	Hash   [SHA256DigestSize]byte `json:"hash"`
}

// Info snapshots the entry.
func (d *DigestEntry) Info() Digest {
	out := Digest{ID: d.ID.Value(), Start: d.Start.Value(), Length: d.Length.Value()}
	copy(out.Hash[:], d.Hash.Value())
	return out
}

// SetInfo replaces the entry's values.
func (d *DigestEntry) SetInfo(v Digest) {
	d.ID.SetValue(v.ID)
	d.Start.SetValue(v.Start)
	d.Length.SetValue(v.Length)
	d.Hash.SetValue(v.Hash[:])
}

// IndirectData is the hash manifest: a magic, a digest count in
// [MinDigestCount, MaxDigestCount] and that many digest entries. The entry
// list is sized from the count while reading, so it sits outside the fixed
// head composite.
type IndirectData struct {
	stream meta.Stream
	head   *meta.Structured

	ID      *meta.Field[Tag]
	Count   *meta.Field[uint8]
	Digests []*DigestEntry
}

// NewIndirectData builds an empty digest table bound to s.
func NewIndirectData(s meta.Stream) *IndirectData {
	d := &IndirectData{
		stream: s,
		ID:     meta.NewField(s, "indirect data id", meta.Equals(TagIndirectData, types.ErrKindInvalidStreamFormat)),
		Count:  meta.NewField(s, "digest count", meta.Between[uint8](MinDigestCount, MaxDigestCount)),
	}
	d.head = meta.NewStructured(d.ID, d.Count)
	return d
}

// Read decodes the head, then exactly Count entries. A rejected count stops
// the read before any entry is touched.
func (d *IndirectData) Read() error {
	if err := d.head.Read(); err != nil {
		return fmt.Errorf("indirect data: %w", err)
	}
	d.Digests = make([]*DigestEntry, 0, d.Count.Value())
	for i := 0; i < int(d.Count.Value()); i++ {
		e := NewDigestEntry(d.stream)
		if err := e.Read(); err != nil {
			return fmt.Errorf("indirect data: digest %d: %w", i, err)
		}
		d.Digests = append(d.Digests, e)
	}
	return nil
}

func (d *IndirectData) Write() error {
	if err := d.head.Write(); err != nil {
		return fmt.Errorf("indirect data: %w", err)
	}
	for i, e := range d.Digests {
		if err := e.Write(); err != nil {
			return fmt.Errorf("indirect data: digest %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks the head, that Count matches the entry list, and each entry.
func (d *IndirectData) Validate() error {
	if err := d.head.Validate(); err != nil {
		return fmt.Errorf("indirect data: %w", err)
	}
	if int(d.Count.Value()) != len(d.Digests) {
		return types.Errorf(types.ErrKindValidationFailed,
			"indirect data: count %d but %d digests", d.Count.Value(), len(d.Digests))
	}
	for i, e := range d.Digests {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("indirect data: digest %d: %w", i, err)
		}
	}
	return nil
}

func (d *IndirectData) Size() int {
	n := d.head.Size()
	for _, e := range d.Digests {
		n += e.Size()
	}
	return n
}

// SetDigests replaces the entry list and count. The id is set to
// TagIndirectData.
func (d *IndirectData) SetDigests(digests []Digest) {
	d.ID.SetValue(TagIndirectData)
	d.Count.SetValue(uint8(len(digests)))
	d.Digests = make([]*DigestEntry, len(digests))
	for i, v := range digests {
		e := NewDigestEntry(d.stream)
		e.SetInfo(v)
		d.Digests[i] = e
	}
}

// HasCodeIntegrity reports whether the table carries the code integrity digest.
func (d *IndirectData) HasCodeIntegrity() bool {
	return d.Count.Value() == MaxDigestCount
}

// Digest returns the entry whose id is tag.
func (d *IndirectData) Digest(tag Tag) (*DigestEntry, bool) {
	for _, e := range d.Digests {
		if e.ID.Value() == tag {
			return e, true
		}
	}
	return nil, false
}

// Infos snapshots every entry.
func (d *IndirectData) Infos() []Digest {
	out := make([]Digest, len(d.Digests))
	for i, e := range d.Digests {
		out[i] = e.Info()
	}
	return out
}
