package valueobject

// Optional holds either nothing or a single value. The zero value is absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr maps a nil pointer to None and anything else to Some(*p).
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.present
}

// Get returns the held value and whether it was present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// OrElse returns the held value or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// Apply calls fn with the held value only when present.
func (o Optional[T]) Apply(fn func(T)) {
	if o.present {
		fn(o.value)
	}
}
