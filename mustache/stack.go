package mustache

import (
	"iter"
	"log/slog"
)

// MaxDepth is the number of sections that may be entered above the root
// scope.
const MaxDepth = 256

// frames is a bounded stack whose bottom element is a root that is never
// popped.
type frames[F any] struct {
	items []F
}

func (s *frames[F]) reset(root F) {
	clear(s.items)
	s.items = append(s.items[:0], root)
}

// depth returns the number of frames above the root.
func (s *frames[F]) depth() int { return len(s.items) - 1 }

func (s *frames[F]) top() *F { return &s.items[len(s.items)-1] }

func (s *frames[F]) push(f F) error {
	if s.depth() >= MaxDepth {
		return ErrTooDeep.With(slog.Int("max_depth", MaxDepth))
	}

	s.items = append(s.items, f)

	return nil
}

func (s *frames[F]) pop() error {
	if s.depth() <= 0 {
		return ErrStackUnderflow
	}

	var zero F

	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]

	return nil
}

// inward iterates from the innermost frame to the root.
func (s *frames[F]) inward() iter.Seq[*F] {
	return func(yield func(*F) bool) {
		for i := len(s.items) - 1; i >= 0; i-- {
			if !yield(&s.items[i]) {
				return
			}
		}
	}
}
