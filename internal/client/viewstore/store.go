// Package viewstore holds the client's observable UI state. Each store is
// an explicit container: it is created, initialized and reset by its owner,
// and observers subscribe to changes instead of reading globals.
package viewstore

import (
	"sync"
)

// Store is a value of type T guarded by a mutex. Subscribers are called
// synchronously, outside the value lock, after every change. Notifications
// are delivered in the order the changes were applied, so a subscriber may
// read the store but must not write to it.
type Store[T any] struct {
	notifyMu sync.Mutex
	mu       sync.Mutex
	value    T
	nextID   int
	subs     map[int]func(T)
}

func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{value: initial, subs: map[int]func(T){}}
}

func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *Store[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update replaces the value with fn(current) atomically.
func (s *Store[T]) Update(fn func(T) T) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	subs := make([]func(T), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f(v)
	}
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
