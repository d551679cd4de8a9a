// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package cache

import (
	"container/list"
	"sync"
)

// lru is a least-recently-used cache of records keyed by ID, with a
// fixed capacity.  The cache can be safely accessed from multiple
// goroutines.
type lru[V any] struct {
	size      int
	lock      sync.RWMutex
	evictList *list.List
	index     map[int64]*list.Element
}

type entry[V any] struct {
	id    int64
	value V
}

func newLRU[V any](size int) *lru[V] {
	return &lru[V]{
		size:      size,
		evictList: list.New(),
		index:     make(map[int64]*list.Element),
	}
}

// Get retrieves an item from the cache.  If it is not present, calls
// the fetch function, and if that succeeds, saves the item and
// returns it.  This returns an error only if the item is not present
// and the fetch function returns an error.
func (lru *lru[V]) Get(id int64, fetch func(int64) (V, error)) (V, error) {
	// This happens under a writer lock, since we need to move the
	// item to the back of the list if it is present
	lru.lock.Lock()
	defer lru.lock.Unlock()

	if element, present := lru.index[id]; present {
		lru.evictList.MoveToBack(element)
		return element.Value.(entry[V]).value, nil
	}

	value, err := fetch(id)
	if err != nil {
		return value, err
	}
	lru.add(id, value)
	return value, nil
}

// Peek looks for an item in the cache.  It does not affect the
// recency of the item.
func (lru *lru[V]) Peek(id int64) (V, bool) {
	lru.lock.RLock()
	defer lru.lock.RUnlock()

	if element, present := lru.index[id]; present {
		return element.Value.(entry[V]).value, true
	}
	var zero V
	return zero, false
}

// Put adds or replaces an item, possibly evicting something.
func (lru *lru[V]) Put(id int64, value V) {
	lru.lock.Lock()
	defer lru.lock.Unlock()

	if element, present := lru.index[id]; present {
		element.Value = entry[V]{id: id, value: value}
		lru.evictList.MoveToBack(element)
		return
	}
	lru.add(id, value)
}

// Remove takes an item out of the cache.  It does nothing if the ID
// is not cached.
func (lru *lru[V]) Remove(id int64) {
	lru.lock.Lock()
	defer lru.lock.Unlock()

	if element, present := lru.index[id]; present {
		delete(lru.index, id)
		lru.evictList.Remove(element)
	}
}

// Len returns the number of cached items.
func (lru *lru[V]) Len() int {
	lru.lock.RLock()
	defer lru.lock.RUnlock()
	return len(lru.index)
}

// add runs under the write lock and adds an item known not to be
// present.
func (lru *lru[V]) add(id int64, value V) {
	element := lru.evictList.PushBack(entry[V]{id: id, value: value})
	lru.index[id] = element

	for len(lru.index) > lru.size {
		head := lru.evictList.Front()
		delete(lru.index, head.Value.(entry[V]).id)
		lru.evictList.Remove(head)
	}
}
