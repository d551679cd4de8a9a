// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package library

import (
	"github.com/diffeo/go-bookpatch/bridge"
)

var (
	bookID      = bridge.Int64("id", func(b *Book) **int64 { return &b.ID })
	bookTitle   = bridge.String("title", func(b *Book) **string { return &b.Title })
	bookEdition = bridge.Int("edition", func(b *Book) **int { return &b.Edition })
	bookAuthor  = bridge.String("author", func(b *Book) **string { return &b.Author })

	contactID       = bridge.Int64("id", func(c *Contact) **int64 { return &c.ID })
	contactName     = bridge.String("name", func(c *Contact) **string { return &c.Name })
	contactBirthday = bridge.String("birthday", func(c *Contact) **string { return &c.Birthday })
	contactCompany  = bridge.String("company", func(c *Contact) **string { return &c.Company })
	contactNotes    = bridge.String("notes", func(c *Contact) **string { return &c.Notes })
	contactFavorite = bridge.Bool("favorite", func(c *Contact) **bool { return &c.Favorite })
)

// BookTable describes every field of a book, as returned to clients.
var BookTable = bridge.NewTable(bookID, bookTitle, bookEdition, bookAuthor)

// BookInputTable describes the fields of a book that clients may
// change.
var BookInputTable = bridge.NewTable(bookTitle, bookEdition, bookAuthor)

// ContactTable describes every field of a contact, as returned to
// clients.
var ContactTable = bridge.NewTable(
	contactID,
	contactName,
	contactBirthday,
	contactCompany,
	contactNotes,
	contactFavorite,
)

// ContactInputTable describes the fields of a contact that clients
// may change.
var ContactInputTable = bridge.NewTable(
	contactName,
	contactBirthday,
	contactCompany,
	contactNotes,
	contactFavorite,
)

// CopyBook returns a deep copy of a book.
func CopyBook(book Book) Book {
	return BookTable.Copy(book)
}

// CopyContact returns a deep copy of a contact.
func CopyContact(contact Contact) Contact {
	return ContactTable.Copy(contact)
}
