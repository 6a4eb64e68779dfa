package config

import (
	"maps"
	"slices"
	"strings"
)

// member is implemented by the break types a Set can hold.
type member interface {
	comparable
	sortKey() string
}

// Set is an immutable set. The zero value is the empty set.
// Items() returns members in a deterministic order.
type Set[T member] struct {
	items map[T]struct{}
}

// NewSet builds a set from items, absorbing duplicates.
func NewSet[T member](items ...T) Set[T] {
	if len(items) == 0 {
		return Set[T]{}
	}
	m := make(map[T]struct{}, len(items))
	for _, item := range items {
		m[item] = struct{}{}
	}
	return Set[T]{items: m}
}

// Len returns the number of members.
func (s Set[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no members.
func (s Set[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Contains reports whether item is a member.
func (s Set[T]) Contains(item T) bool {
	_, ok := s.items[item]
	return ok
}

// Items returns the members sorted by their canonical form.
func (s Set[T]) Items() []T {
	out := slices.Collect(maps.Keys(s.items))
	slices.SortFunc(out, func(a, b T) int {
		return strings.Compare(a.sortKey(), b.sortKey())
	})
	return out
}

// Union returns a new set holding the members of both sets.
func (s Set[T]) Union(other Set[T]) Set[T] {
	if other.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return other
	}
	m := make(map[T]struct{}, len(s.items)+len(other.items))
	for item := range s.items {
		m[item] = struct{}{}
	}
	for item := range other.items {
		m[item] = struct{}{}
	}
	return Set[T]{items: m}
}

// With returns a new set with items added.
func (s Set[T]) With(items ...T) Set[T] {
	return s.Union(NewSet(items...))
}

// Equal reports whether both sets hold exactly the same members.
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for item := range s.items {
		if _, ok := other.items[item]; !ok {
			return false
		}
	}
	return true
}
