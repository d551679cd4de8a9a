// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package cache provides ID-based caching of library records.  The
// cache wraps some other library.Library backend.  Listing always
// passes through to the backend; fetching a single record returns the
// cached copy if there is one.  Writes go to the backend first, and
// the cache is updated with whatever the backend stored.
//
// The cache only sees writes made through it.  If something else
// writes to the backend (another book service sharing the same
// remote library, say) single-record reads can return stale data
// until the record is evicted or listed again.
package cache

import (
	"sync"

	"github.com/diffeo/go-bookpatch/library"
)

// DefaultSize is the number of records of each kind New keeps.
const DefaultSize = 1024

type cache struct {
	backend  library.Library
	books    *lru[library.Book]
	contacts *lru[library.Contact]

	// bookWrites and contactWrites are held across a backend
	// write or listing and the matching cache update, so the
	// cache ends up with the same record as the backend.
	bookWrites    sync.Mutex
	contactWrites sync.Mutex
}

// New creates a new caching library wrapping some other backend.
func New(backend library.Library) library.Library {
	return NewWithSize(backend, DefaultSize)
}

// NewWithSize creates a caching library that keeps at most size books
// and size contacts.
func NewWithSize(backend library.Library, size int) library.Library {
	return &cache{
		backend:  backend,
		books:    newLRU[library.Book](size),
		contacts: newLRU[library.Contact](size),
	}
}

func (c *cache) Books() ([]library.Book, error) {
	c.bookWrites.Lock()
	defer c.bookWrites.Unlock()

	books, err := c.backend.Books()
	if err != nil {
		return nil, err
	}
	for _, book := range books {
		if book.ID != nil {
			c.books.Put(*book.ID, library.CopyBook(book))
		}
	}
	return books, nil
}

func (c *cache) Book(id int64) (library.Book, error) {
	book, err := c.books.Get(id, c.backend.Book)
	if err != nil {
		return library.Book{}, err
	}
	return library.CopyBook(book), nil
}

func (c *cache) PutBook(id int64, book library.Book) (library.Book, error) {
	c.bookWrites.Lock()
	defer c.bookWrites.Unlock()

	stored, err := c.backend.PutBook(id, book)
	if err != nil {
		if _, missing := err.(library.ErrNoSuchBook); missing {
			c.books.Remove(id)
		}
		return library.Book{}, err
	}
	c.books.Put(id, library.CopyBook(stored))
	return stored, nil
}

func (c *cache) Contacts() ([]library.Contact, error) {
	c.contactWrites.Lock()
	defer c.contactWrites.Unlock()

	contacts, err := c.backend.Contacts()
	if err != nil {
		return nil, err
	}
	for _, contact := range contacts {
		if contact.ID != nil {
			c.contacts.Put(*contact.ID, library.CopyContact(contact))
		}
	}
	return contacts, nil
}

func (c *cache) Contact(id int64) (library.Contact, error) {
	contact, err := c.contacts.Get(id, c.backend.Contact)
	if err != nil {
		return library.Contact{}, err
	}
	return library.CopyContact(contact), nil
}

func (c *cache) PutContact(id int64, contact library.Contact) (library.Contact, error) {
	c.contactWrites.Lock()
	defer c.contactWrites.Unlock()

	stored, err := c.backend.PutContact(id, contact)
	if err != nil {
		if _, missing := err.(library.ErrNoSuchContact); missing {
			c.contacts.Remove(id)
		}
		return library.Contact{}, err
	}
	c.contacts.Put(id, library.CopyContact(stored))
	return stored, nil
}
