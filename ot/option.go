package ot

// Option is a value which may be absent, typically an optional font table.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None is the absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Maybe makes an Option from a (value, ok) pair.
func Maybe[T any](v T, ok bool) Option[T] {
	if ok {
		return Some(v)
	}
	return None[T]()
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// Unwrap returns the value and whether it is present.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// FlatMap applies f to a present value. f may fail, e.g. when decoding a
// table which turns out to be malformed.
func FlatMap[T any, U any](o Option[T], f func(T) (U, bool)) Option[U] {
	if !o.ok {
		return None[U]()
	}
	return Maybe(f(o.value))
}
