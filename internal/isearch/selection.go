package isearch

import "fmt"

// InputMode controls the input text after a selection.
type InputMode int

const (
	// InputClear empties the input.
	InputClear InputMode = iota
	// InputFill replaces the input with the selected item's label.
	InputFill
	// InputKeep leaves the input untouched.
	InputKeep
)

// Keyed items provide their own identity.
type Keyed interface {
	SearchKey() string
}

// Labeled items provide their own display label.
type Labeled interface {
	SearchLabel() string
}

func defaultKey[T any](item T) string {
	if k, ok := any(item).(Keyed); ok {
		return k.SearchKey()
	}
	return fmt.Sprint(item)
}

func defaultLabel[T any](item T) string {
	if l, ok := any(item).(Labeled); ok {
		return l.SearchLabel()
	}
	return fmt.Sprint(item)
}

// Selection holds the committed choice of a widget. In single mode it keeps
// one item; in multi mode an ordered set, optionally capped.
type Selection[T any] struct {
	key     func(T) string
	multi   bool
	max     int
	message string
	items   []T
}

// NewSelection builds a selection. max only applies in multi mode; zero means
// no cap.
func NewSelection[T any](key func(T) string, multi bool, max int, message string) *Selection[T] {
	if key == nil {
		key = defaultKey[T]
	}
	return &Selection[T]{key: key, multi: multi, max: max, message: message}
}

// Select commits item. It returns false when the item was already selected.
// Going past the cap returns a *SelectionLimitError and changes nothing.
func (s *Selection[T]) Select(item T) (bool, error) {
	if !s.multi {
		s.items = []T{item}
		return true, nil
	}
	if s.Contains(s.key(item)) {
		return false, nil
	}
	if s.max > 0 && len(s.items) >= s.max {
		return false, &SelectionLimitError{Max: s.max, Message: s.message}
	}
	s.items = append(s.items, item)
	return true, nil
}

// Remove drops the item with key.
func (s *Selection[T]) Remove(key string) bool {
	for i, item := range s.items {
		if s.key(item) == key {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether key is selected.
func (s *Selection[T]) Contains(key string) bool {
	for _, item := range s.items {
		if s.key(item) == key {
			return true
		}
	}
	return false
}

func (s *Selection[T]) Clear() { s.items = nil }

func (s *Selection[T]) Len() int { return len(s.items) }

func (s *Selection[T]) Multi() bool { return s.multi }

func (s *Selection[T]) Max() int { return s.max }

// Current returns the most recently committed item.
func (s *Selection[T]) Current() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Items returns a copy of the selection.
func (s *Selection[T]) Items() []T {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Keys returns the keys of the selection in order.
func (s *Selection[T]) Keys() []string {
	out := make([]string, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, s.key(item))
	}
	return out
}
