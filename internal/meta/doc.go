// Package meta is the typed binary object model every on-disk structure in
// appxkit is built from.
//
// A leaf Field owns one fixed-width little-endian integer, a Bytes field owns
// a caller-sized byte buffer, and a Structured object strings leaves (or other
// structured objects) together in a fixed order. Every object is bound to a
// Stream for the lifetime of one operation and exposes the same contract:
//
//	Read()      pull Size() bytes from the stream, then Validate()
//	Write()     push the current value to the stream, no validation
//	Validate()  run the pluggable validator against the current value
//	Size()      exact encoded size right now
//
// Layout is always explicit and packed: values are encoded field by field with
// no padding, never by copying an in-memory struct.
//
// Fields that appear in more than one structured view are owned by a Registry
// and referenced by index (Ref), so aliasing is visible at construction:
//
//	reg := meta.NewRegistry()
//	id := reg.Add(meta.NewField[uint32](s, "id", nil))
//	ver := reg.Add(meta.NewField[uint64](s, "version", nil))
//	full := meta.View(reg, id, ver)
//	idOnly := meta.View(reg, id)
package meta
