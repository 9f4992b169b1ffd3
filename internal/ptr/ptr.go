// Package ptr has small generic helpers for optional values held as pointers.
// A nil pointer means "not set" in every option group of the config package.
package ptr

// Clone returns a pointer to a copy of *x, or nil when x is unset.
func Clone[T any](x *T) *T {
	if x == nil {
		return nil
	}
	v := *x
	return &v
}

// CloneOr clones x when it is set and fallback otherwise. Option groups
// merge with CloneOr(overrides.Field, origin.Field).
func CloneOr[T any](x *T, fallback *T) *T {
	if x != nil {
		return Clone(x)
	}
	return Clone(fallback)
}

func FromValue[T any](v T) *T {
	return &v
}

// FromPtr dereferences x, or returns the zero value of T when x is unset.
func FromPtr[T any](x *T) T {
	var zero T
	return FromPtrOr(x, zero)
}

func FromPtrOr[T any](x *T, v T) T {
	if x != nil {
		return *x
	}
	return v
}
