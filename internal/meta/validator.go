package meta

import (
	"cmp"

	"github.com/joshuapare/appxkit/pkg/types"
)

// Validator inspects a decoded value. A nil result accepts it; a non-nil
// result rejects it and aborts the enclosing read. Validators may return a
// *types.Error to choose the failure kind.
type Validator[T any] func(v T) error

// Accept is the validator for fields with no constraint.
func Accept[T any](T) error { return nil }

// Equals rejects any value other than want with an error of the given kind.
func Equals[T comparable](want T, kind types.ErrKind) Validator[T] {
	return func(v T) error {
		if v != want {
			return types.Errorf(kind, "got %v, want %v", v, want)
		}
		return nil
	}
}

// AtMost rejects values above ceiling with an error of the given kind.
func AtMost[T cmp.Ordered](ceiling T, kind types.ErrKind) Validator[T] {
	return func(v T) error {
		if v > ceiling {
			return types.Errorf(kind, "%#x exceeds %#x", v, ceiling)
		}
		return nil
	}
}

// Between rejects values outside [lo, hi] as validation failures.
func Between[T cmp.Ordered](lo, hi T) Validator[T] {
	return func(v T) error {
		if v < lo || v > hi {
			return types.Errorf(types.ErrKindValidationFailed, "%v outside [%v, %v]", v, lo, hi)
		}
		return nil
	}
}

// Len rejects byte buffers whose length differs from n.
func Len(n int) Validator[[]byte] {
	return func(v []byte) error {
		if len(v) != n {
			return types.Errorf(types.ErrKindValidationFailed, "length %d, want %d", len(v), n)
		}
		return nil
	}
}
