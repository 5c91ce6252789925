package store

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidArgument is returned by Put when a value can never fit.
var ErrInvalidArgument = errors.New("invalid argument")

// Entry is a single key/value pair as returned by Entries.
type Entry struct {
	Key   int
	Value string
}

// CappedMap maps int keys to string values while keeping the total length
// of all stored values at or below a fixed capacity. Entries are kept in
// write order; when room is needed the oldest written entries go first.
// Reads never change that order.
//
// A CappedMap is not safe for concurrent use. Wrap it in a Store for that.
type CappedMap struct {
	capacity int
	used     int
	index    map[int]*node
	order    *writeOrder
	onEvict  func(key int, value string)
}

// New returns an empty map bounded by capacity. A negative capacity is
// treated as zero.
func New(capacity int) *CappedMap {
	return NewWithOnEvict(capacity, nil)
}

// NewWithOnEvict is like New but calls onEvict for every entry dropped to
// make room, oldest first. Explicit removals and updates are not reported.
func NewWithOnEvict(capacity int, onEvict func(key int, value string)) *CappedMap {
	if capacity < 0 {
		capacity = 0
	}
	return &CappedMap{
		capacity: capacity,
		index:    make(map[int]*node),
		order:    newWriteOrder(),
		onEvict:  onEvict,
	}
}

// Capacity returns the fixed budget set at construction.
func (m *CappedMap) Capacity() int {
	return m.capacity
}

// Used returns the sum of the lengths of all stored values, as counted by
// valueLen.
func (m *CappedMap) Used() int {
	return m.used
}

// Len returns the number of stored entries.
func (m *CappedMap) Len() int {
	return len(m.index)
}

func (m *CappedMap) Get(key int) (string, bool) {
	n, ok := m.index[key]
	if !ok {
		return "", false
	}
	return n.value, true
}

func (m *CappedMap) Contains(key int) bool {
	_, ok := m.index[key]
	return ok
}

// Put stores value under key and returns the value it replaced, if any.
// Writing an existing key moves it to the newest position. Oldest entries
// are then evicted until the budget holds. A value longer than the whole
// capacity is rejected with ErrInvalidArgument and the map is left as is.
func (m *CappedMap) Put(key int, value string) (string, bool, error) {
	size := valueLen(value)
	if size > m.capacity {
		return "", false, fmt.Errorf("%w: value length %d exceeds capacity %d", ErrInvalidArgument, size, m.capacity)
	}

	n, exists := m.index[key]
	var prev string
	incoming := size
	if exists {
		prev = n.value
		m.used += size - n.size
		n.value = value
		n.size = size
		m.order.moveToBack(n)
		// already counted in used
		incoming = 0
	}

	for m.used+incoming > m.capacity {
		oldest := m.order.front()
		if oldest == nil || oldest == n {
			break
		}
		m.evict(oldest)
	}

	if !exists {
		n = &node{key: key, value: value, size: size}
		m.index[key] = n
		m.order.pushBack(n)
		m.used += size
	}
	return prev, exists, nil
}

// Remove deletes key and returns the value it held.
func (m *CappedMap) Remove(key int) (string, bool) {
	n, ok := m.index[key]
	if !ok {
		return "", false
	}
	m.drop(n)
	return n.value, true
}

// All yields entries oldest first. Each call starts a fresh pass over the
// live entries. The map must not be modified while iterating.
func (m *CappedMap) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for n := m.order.head.next; n != m.order.tail; {
			next := n.next
			if !yield(n.key, n.value) {
				return
			}
			n = next
		}
	}
}

// Entries returns a snapshot of all entries, oldest first.
func (m *CappedMap) Entries() []Entry {
	res := make([]Entry, 0, len(m.index))
	for k, v := range m.All() {
		res = append(res, Entry{Key: k, Value: v})
	}
	return res
}

// Keys returns the stored keys, oldest first.
func (m *CappedMap) Keys() []int {
	res := make([]int, 0, len(m.index))
	for k := range m.All() {
		res = append(res, k)
	}
	return res
}

func (m *CappedMap) evict(n *node) {
	m.drop(n)
	if m.onEvict != nil {
		m.onEvict(n.key, n.value)
	}
}

func (m *CappedMap) drop(n *node) {
	m.order.unlink(n)
	delete(m.index, n.key)
	m.used -= n.size
}

// valueLen measures a value in UTF-16 code units, so a character outside
// the Basic Multilingual Plane counts twice.
func valueLen(v string) int {
	n := 0
	for _, r := range v {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
