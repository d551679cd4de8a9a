// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package cache

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Make(id int64) (string, error) {
	return strconv.FormatInt(id, 10), nil
}

func DoNotMake(id int64) (string, error) {
	return "", assert.AnError
}

type LRUAssertions struct {
	*assert.Assertions
	LRU *lru[string]
}

func NewLRUAssertions(t assert.TestingT, size int) *LRUAssertions {
	return &LRUAssertions{
		assert.New(t),
		newLRU[string](size),
	}
}

// GetID fetches an item from the cache; if not present, it is added.
func (a *LRUAssertions) GetID(id int64) {
	item, err := a.LRU.Get(id, Make)
	if a.NoError(err) {
		a.Equal(strconv.FormatInt(id, 10), item)
	}
}

// GetPresent fetches an item that must already be cached.
func (a *LRUAssertions) GetPresent(id int64) {
	item, err := a.LRU.Get(id, DoNotMake)
	if a.NoError(err) {
		a.Equal(strconv.FormatInt(id, 10), item)
	}
}

// GetError fetches an item that is not cached and cannot be made.
func (a *LRUAssertions) GetError(id int64) {
	_, err := a.LRU.Get(id, DoNotMake)
	a.Error(err)
}

// LRUHas asserts that an item is in the cache.
func (a *LRUAssertions) LRUHas(id int64) {
	_, present := a.LRU.Peek(id)
	a.True(present, "missing %v", id)
}

// LRUDoesNotHave asserts that an item is not in the cache.
func (a *LRUAssertions) LRUDoesNotHave(id int64) {
	_, present := a.LRU.Peek(id)
	a.False(present, "unexpected %v", id)
}

func TestLRUSimple(t *testing.T) {
	a := NewLRUAssertions(t, 2)
	a.LRU.Put(1, "1")

	a.LRUHas(1)
	a.LRUDoesNotHave(2)
	a.Equal(1, a.LRU.Len())
}

// TestLRUAutoInsert tests Get adding absent items.
func TestLRUAutoInsert(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.GetID(2)
	a.LRUHas(1)
	a.LRUHas(2)

	// a third item evicts the oldest
	a.GetID(3)
	a.LRUDoesNotHave(1)
	a.LRUHas(2)
	a.LRUHas(3)
}

func TestLRUInsertError(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.GetID(2)

	// a failed fetch adds nothing and evicts nothing
	a.GetError(3)
	a.LRUHas(1)
	a.LRUHas(2)
	a.LRUDoesNotHave(3)

	a.GetPresent(1)
	a.GetPresent(2)
}

// TestLRUOrder tests that getting an item causes it to not get evicted.
func TestLRUOrder(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.GetID(2)
	a.GetID(1)

	a.GetID(3)
	a.LRUHas(1)
	a.LRUDoesNotHave(2)
	a.LRUHas(3)
}

func TestLRUPutReplaces(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.GetID(2)
	a.LRU.Put(1, "one")

	value, present := a.LRU.Peek(1)
	a.True(present)
	a.Equal("one", value)

	// the replaced item is now the most recent
	a.GetID(3)
	a.LRUHas(1)
	a.LRUDoesNotHave(2)
}

func TestLRURemoval(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.LRU.Remove(1)
	a.LRUDoesNotHave(1)

	a.LRU.Remove(3)
	a.LRUDoesNotHave(3)

	// removing a newer item leaves room for the older one
	a.GetID(1)
	a.GetID(2)
	a.LRU.Remove(2)
	a.GetID(3)
	a.LRUHas(1)
	a.LRUDoesNotHave(2)
	a.LRUHas(3)
}
