// Package options holds the functional option plumbing used by the
// serializer, record and locale constructors.
package options

// Option configures a target of type T, usually a pointer to a config struct.
type Option[T any] func(T) error

// Apply applies opts to target in order and stops at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError adapts a setter that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}
