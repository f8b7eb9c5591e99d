// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"encoding/json"
)

type Map[K comparable, V any] struct {
	items []MapItem[K, V]
	index map[K]int
}

type MapItem[K comparable, V any] struct {
	Key   K
	Value V
}

func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: map[K]int{}}
}

func NewMapWithItems[K comparable, V any](items []MapItem[K, V]) *Map[K, V] {
	m := NewMap[K, V]()
	for _, item := range items {
		m.Set(item.Key, item.Value)
	}
	return m
}

// Set replaces the value of an existing key in place; new keys are appended.
func (m *Map[K, V]) Set(key K, value V) {
	if m.index == nil {
		m.index = map[K]int{}
	}
	if i, found := m.index[key]; found {
		m.items[i].Value = value
		return
	}
	m.index[key] = len(m.items)
	m.items = append(m.items, MapItem[K, V]{key, value})
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	if i, found := m.index[key]; found {
		return m.items[i].Value, true
	}
	var zero V
	return zero, false
}

func (m *Map[K, V]) Has(key K) bool {
	_, found := m.Get(key)
	return found
}

func (m *Map[K, V]) Delete(key K) bool {
	if m == nil {
		return false
	}
	i, found := m.index[key]
	if !found {
		return false
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.items); j++ {
		m.index[m.items[j].Key] = j
	}
	return true
}

func (m *Map[K, V]) Keys() (keys []K) {
	m.Iterate(func(k K, _ V) {
		keys = append(keys, k)
	})
	return
}

func (m *Map[K, V]) Iterate(iterFunc func(k K, v V)) {
	if m == nil {
		return
	}
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map[K, V]) IterateErr(iterFunc func(k K, v V) error) error {
	if m == nil {
		return nil
	}
	for _, item := range m.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// AsMap drops ordering; used when handing values to consumers that do not care.
func (m *Map[K, V]) AsMap() map[K]V {
	result := make(map[K]V, m.Len())
	m.Iterate(func(k K, v V) { result[k] = v })
	return result
}

// Below method disallows marshaling of Map directly
var _ json.Marshaler = &Map[string, any]{}

func (*Map[K, V]) MarshalJSON() ([]byte, error) { panic("Unexpected marshaling of *orderedmap.Map") }
