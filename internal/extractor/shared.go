package extractor

import "sync"

// Shared is a process-wide handle built on first use. Concurrent first callers block until the
// single construction finishes and all observe the same value or error.
type Shared[T any] struct {
	get func() (T, error)
}

func NewShared[T any](build func() (T, error)) *Shared[T] {
	return &Shared[T]{get: sync.OnceValues(build)}
}

func (s *Shared[T]) Get() (T, error) {
	return s.get()
}
