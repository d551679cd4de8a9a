// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package library defines the records the book service manages, and
// the interface to their storage.
//
// There are two kinds of record, books and contacts.  Each is a flat
// struct of optional scalar fields, held as pointers; a nil pointer
// means the field has no value.  Records are identified by a positive
// integer ID that never changes.
//
// Each record type has two field tables.  The full table (BookTable,
// ContactTable) includes the ID and describes what the service
// returns.  The input table (BookInputTable, ContactInputTable)
// leaves out the ID and describes what clients may change, whether
// by PUT or by patching.
//
// The storage interface is deliberately small: list, fetch and
// replace.  Records are never created or deleted through it.  There
// is only one implementation, in the memory package.
package library

import (
	"fmt"
)

// Book is a single book.
type Book struct {
	ID      *int64
	Title   *string
	Edition *int
	Author  *string
}

// Contact is a single address book entry.
type Contact struct {
	ID *int64
	// Name is the contact's full name.
	Name *string
	// Birthday is an ISO 8601 date, "2006-01-02".
	Birthday *string
	Company  *string
	Notes    *string
	Favorite *bool
}

// Library is the storage interface for books and contacts.  Every
// method returns copies: changing a returned record does not change
// the stored one, and changing a record after passing it in does not
// change it either.
type Library interface {
	// Books returns all of the books, ordered by ID.
	Books() ([]Book, error)

	// Book returns a single book.  If there is no such book,
	// returns ErrNoSuchBook.
	Book(id int64) (Book, error)

	// PutBook replaces every field of an existing book except
	// its ID with the fields of book.  book.ID is ignored.  If
	// there is no such book, returns ErrNoSuchBook.  Returns the
	// book as stored.
	PutBook(id int64, book Book) (Book, error)

	// Contacts returns all of the contacts, ordered by ID.
	Contacts() ([]Contact, error)

	// Contact returns a single contact.  If there is no such
	// contact, returns ErrNoSuchContact.
	Contact(id int64) (Contact, error)

	// PutContact replaces every field of an existing contact
	// except its ID, as PutBook.
	PutContact(id int64, contact Contact) (Contact, error)
}

// ErrNoSuchBook is returned when looking up a book by an ID that
// does not exist.
type ErrNoSuchBook struct {
	ID int64
}

func (err ErrNoSuchBook) Error() string {
	return fmt.Sprintf("No such book %v", err.ID)
}

// ErrNoSuchContact is returned when looking up a contact by an ID
// that does not exist.
type ErrNoSuchContact struct {
	ID int64
}

func (err ErrNoSuchContact) Error() string {
	return fmt.Sprintf("No such contact %v", err.ID)
}
