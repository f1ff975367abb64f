// Package state is the reactive container the UI chrome renders from.
//
// Each field is a Value: last write wins, and every subscriber is notified when the
// value actually changes. Values are owned by the event loop and are not locked.
package state

import "github.com/samber/lo"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Value is an observable value.
type Value[T comparable] struct {
	v      T
	subs   []subscriber[T]
	nextID int
}

// NewValue creates a value holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.v
}

// Set stores x and notifies subscribers if it differs from the current value.
// It reports whether the value changed.
func (v *Value[T]) Set(x T) bool {
	if v.v == x {
		return false
	}
	v.v = x
	for _, s := range append([]subscriber[T](nil), v.subs...) {
		s.fn(x)
	}
	return true
}

// Update applies fn to the current value and stores the result.
func (v *Value[T]) Update(fn func(T) T) bool {
	return v.Set(fn(v.v))
}

// Subscribe registers fn for future changes. The returned func unsubscribes.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		v.subs = lo.Reject(v.subs, func(s subscriber[T], _ int) bool { return s.id == id })
	}
}
