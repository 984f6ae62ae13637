// Package slotmap provides a generation-checked arena. Values are addressed by
// stable opaque keys that survive removals of other entries; a key whose slot
// has been freed and reused is detected as stale instead of resolving to the
// new occupant.
package slotmap

import (
	"encoding/json"
)

// Key identifies one entry in a Map. The zero Key is not valid; use NilKey for
// an explicit "no entry" value.
type Key struct {
	Index      int    `json:"index"`
	Generation uint32 `json:"generation"`
}

// NilKey is a key that never resolves to an entry.
var NilKey = Key{Index: -1}

// Less orders keys by slot index, then generation. Used for deterministic
// iteration when keys are collected into a slice.
func (k Key) Less(other Key) bool {
	if k.Index != other.Index {
		return k.Index < other.Index
	}
	return k.Generation < other.Generation
}

type slot[T any] struct {
	Value      T      `json:"value"`
	Generation uint32 `json:"generation"`
	Occupied   bool   `json:"occupied"`
}

// Map is a slot map from Key to T. The zero value is ready to use.
type Map[T any] struct {
	slots []slot[T]
	free  []int
	count int
}

// New creates an empty Map.
func New[T any]() *Map[T] {
	return &Map[T]{}
}

// Insert adds a value and returns its key.
func (m *Map[T]) Insert(value T) Key {
	m.count++
	if n := len(m.free); n > 0 {
		idx := m.free[n-1]
		m.free = m.free[:n-1]
		s := &m.slots[idx]
		s.Value = value
		s.Occupied = true
		return Key{Index: idx, Generation: s.Generation}
	}
	m.slots = append(m.slots, slot[T]{Value: value, Occupied: true})
	return Key{Index: len(m.slots) - 1}
}

// Get returns a pointer to the value for key, or nil if the key is stale or
// out of range. The pointer stays valid until the entry is removed or another
// entry is inserted.
func (m *Map[T]) Get(key Key) *T {
	if key.Index < 0 || key.Index >= len(m.slots) {
		return nil
	}
	s := &m.slots[key.Index]
	if !s.Occupied || s.Generation != key.Generation {
		return nil
	}
	return &s.Value
}

// Contains reports whether key resolves to a live entry.
func (m *Map[T]) Contains(key Key) bool {
	return m.Get(key) != nil
}

// Remove deletes the entry for key and returns its value. The second return
// is false if the key was stale.
func (m *Map[T]) Remove(key Key) (T, bool) {
	var zero T
	if m.Get(key) == nil {
		return zero, false
	}
	s := &m.slots[key.Index]
	value := s.Value
	s.Value = zero
	s.Occupied = false
	s.Generation++
	m.free = append(m.free, key.Index)
	m.count--
	return value, true
}

// Len returns the number of live entries.
func (m *Map[T]) Len() int {
	return m.count
}

// Keys returns the keys of all live entries in ascending slot order.
func (m *Map[T]) Keys() []Key {
	keys := make([]Key, 0, m.count)
	for i := range m.slots {
		if m.slots[i].Occupied {
			keys = append(keys, Key{Index: i, Generation: m.slots[i].Generation})
		}
	}
	return keys
}

// ForEach calls fn for every live entry in ascending slot order.
func (m *Map[T]) ForEach(fn func(Key, *T)) {
	for i := range m.slots {
		if m.slots[i].Occupied {
			fn(Key{Index: i, Generation: m.slots[i].Generation}, &m.slots[i].Value)
		}
	}
}

type mapJSON[T any] struct {
	Slots []slot[T] `json:"slots"`
	Free  []int     `json:"free"`
	Count int       `json:"count"`
}

// MarshalJSON encodes the full arena, including freed slots and their
// generations, so keys stay valid across a snapshot round trip.
func (m *Map[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(mapJSON[T]{Slots: m.slots, Free: m.free, Count: m.count})
}

// UnmarshalJSON restores an arena encoded by MarshalJSON.
func (m *Map[T]) UnmarshalJSON(data []byte) error {
	var decoded mapJSON[T]
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	m.slots = decoded.Slots
	m.free = decoded.Free
	m.count = decoded.Count
	return nil
}
