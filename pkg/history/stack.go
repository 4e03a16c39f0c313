// Package history implements linear undo/redo over whole-document snapshots.
package history

import "errors"

// ErrEmptyStack is returned when popping or peeking an empty stack.
var ErrEmptyStack = errors.New("empty stack")

// Stack is a LIFO stack. A positive limit bounds its depth: pushing onto a full stack
// drops the oldest element.
type Stack[T any] struct {
	data  []T
	limit int
}

// NewStack creates a stack holding at most limit elements; 0 means unbounded.
func NewStack[T any](limit int) *Stack[T] {
	return &Stack[T]{limit: max(0, limit)}
}

// Push adds e on top.
func (s *Stack[T]) Push(e T) {
	s.data = append(s.data, e)
	if s.limit > 0 && len(s.data) > s.limit {
		var zero T
		s.data[0] = zero
		s.data = s.data[1:]
	}
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, error) {
	top, err := s.Top()
	if err != nil {
		return top, err
	}
	var zero T
	s.data[len(s.data)-1] = zero
	s.data = s.data[:len(s.data)-1]
	return top, nil
}

// Top returns the top element without removing it.
func (s *Stack[T]) Top() (T, error) {
	if len(s.data) == 0 {
		var zero T
		return zero, ErrEmptyStack
	}
	return s.data[len(s.data)-1], nil
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int {
	return len(s.data)
}

// Clear removes every element.
func (s *Stack[T]) Clear() {
	s.data = nil
}
