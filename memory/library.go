// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// library.Library.  There is no persistence, and nothing is shared
// between libraries.  The entire library is behind a single global
// lock; concurrent writers to the same record simply overwrite each
// other, last writer wins.
//
// This is the reference implementation of the Library interface, and
// the one the book service runs with.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/diffeo/go-bookpatch/library"
)

// New creates a library holding the standard seed data.
func New() library.Library {
	return NewWith(library.SeedBooks(), library.SeedContacts())
}

// NewWith creates a library holding copies of the given books and
// contacts.  Every record must have an ID, and IDs must be unique
// within each kind of record; this panics otherwise.
func NewWith(books []library.Book, contacts []library.Contact) library.Library {
	l := &memLibrary{
		books:    make(map[int64]library.Book),
		contacts: make(map[int64]library.Contact),
	}
	for _, book := range books {
		id := mustID(book.ID, "book")
		if _, dup := l.books[id]; dup {
			panic(fmt.Sprintf("memory: duplicate book ID %v", id))
		}
		l.books[id] = library.CopyBook(book)
	}
	for _, contact := range contacts {
		id := mustID(contact.ID, "contact")
		if _, dup := l.contacts[id]; dup {
			panic(fmt.Sprintf("memory: duplicate contact ID %v", id))
		}
		l.contacts[id] = library.CopyContact(contact)
	}
	return l
}

func mustID(id *int64, kind string) int64 {
	if id == nil {
		panic("memory: " + kind + " without ID")
	}
	return *id
}

type memLibrary struct {
	sem      sync.Mutex
	books    map[int64]library.Book
	contacts map[int64]library.Contact
}

// globalLock locks the library.  Pair this with globalUnlock, as
//
//	l.globalLock()
//	defer l.globalUnlock()
func (l *memLibrary) globalLock() {
	l.sem.Lock()
}

func (l *memLibrary) globalUnlock() {
	l.sem.Unlock()
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// library.Library interface:

func (l *memLibrary) Books() ([]library.Book, error) {
	l.globalLock()
	defer l.globalUnlock()

	result := make([]library.Book, 0, len(l.books))
	for _, id := range sortedIDs(l.books) {
		result = append(result, library.CopyBook(l.books[id]))
	}
	return result, nil
}

func (l *memLibrary) Book(id int64) (library.Book, error) {
	l.globalLock()
	defer l.globalUnlock()

	book, present := l.books[id]
	if !present {
		return library.Book{}, library.ErrNoSuchBook{ID: id}
	}
	return library.CopyBook(book), nil
}

func (l *memLibrary) PutBook(id int64, book library.Book) (library.Book, error) {
	l.globalLock()
	defer l.globalUnlock()

	if _, present := l.books[id]; !present {
		return library.Book{}, library.ErrNoSuchBook{ID: id}
	}
	stored := library.CopyBook(book)
	stored.ID = &id
	l.books[id] = stored
	return library.CopyBook(stored), nil
}

func (l *memLibrary) Contacts() ([]library.Contact, error) {
	l.globalLock()
	defer l.globalUnlock()

	result := make([]library.Contact, 0, len(l.contacts))
	for _, id := range sortedIDs(l.contacts) {
		result = append(result, library.CopyContact(l.contacts[id]))
	}
	return result, nil
}

func (l *memLibrary) Contact(id int64) (library.Contact, error) {
	l.globalLock()
	defer l.globalUnlock()

	contact, present := l.contacts[id]
	if !present {
		return library.Contact{}, library.ErrNoSuchContact{ID: id}
	}
	return library.CopyContact(contact), nil
}

func (l *memLibrary) PutContact(id int64, contact library.Contact) (library.Contact, error) {
	l.globalLock()
	defer l.globalUnlock()

	if _, present := l.contacts[id]; !present {
		return library.Contact{}, library.ErrNoSuchContact{ID: id}
	}
	stored := library.CopyContact(contact)
	stored.ID = &id
	l.contacts[id] = stored
	return library.CopyContact(stored), nil
}
