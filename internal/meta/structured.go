package meta

import "fmt"

// Ref is the index of an object inside a Registry.
type Ref int

// Registry owns objects that one or more structured views refer to by Ref.
type Registry struct {
	objects []Object
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Add takes ownership of o and returns its reference.
func (r *Registry) Add(o Object) Ref {
	r.objects = append(r.objects, o)
	return Ref(len(r.objects) - 1)
}

// Get resolves ref. It panics on a ref the registry never issued.
func (r *Registry) Get(ref Ref) Object { return r.objects[ref] }

// Len returns the number of owned objects.
func (r *Registry) Len() int { return len(r.objects) }

// Structured is an ordered composite of objects. The order is fixed at
// construction. Read walks children in order and stops at the first failure,
// leaving later children untouched; Write walks them in order without
// validation; Size is recomputed from the children on every call.
type Structured struct {
	reg  *Registry
	refs []Ref
}

// NewStructured builds a composite that owns children through a fresh registry.
func NewStructured(children ...Object) *Structured {
	reg := NewRegistry()
	refs := make([]Ref, len(children))
	for i, c := range children {
		refs[i] = reg.Add(c)
	}
	return &Structured{reg: reg, refs: refs}
}

// View builds a composite over objects owned by reg. Several views may name
// the same Ref; they then share that object's value.
func View(reg *Registry, refs ...Ref) *Structured {
	return &Structured{reg: reg, refs: append([]Ref(nil), refs...)}
}

// Registry returns the registry owning this composite's children.
func (s *Structured) Registry() *Registry { return s.reg }

// Field returns the child at position i.
func (s *Structured) Field(i int) Object { return s.reg.Get(s.refs[i]) }

// Ref returns the registry reference of the child at position i.
func (s *Structured) Ref(i int) Ref { return s.refs[i] }

// Len returns the number of children.
func (s *Structured) Len() int { return len(s.refs) }

// Read decodes each child in order. Each child validates itself as part of
// its own Read, so a rejected child aborts before its successor is touched.
func (s *Structured) Read() error {
	for i, ref := range s.refs {
		if err := s.reg.Get(ref).Read(); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}

func (s *Structured) Write() error {
	for i, ref := range s.refs {
		if err := s.reg.Get(ref).Write(); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks every child in order and returns the first rejection.
func (s *Structured) Validate() error {
	for i, ref := range s.refs {
		if err := s.reg.Get(ref).Validate(); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}

func (s *Structured) Size() int {
	n := 0
	for _, ref := range s.refs {
		n += s.reg.Get(ref).Size()
	}
	return n
}
