// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package librarytest provides generic functional tests for the
// Library interface.  A storage implementation's tests wrap Suite to
// create the library under test:
//
//	package mybackend
//
//	import (
//	        "testing"
//	        "github.com/diffeo/go-bookpatch/library/librarytest"
//	        "github.com/stretchr/testify/suite"
//	)
//
//	// Suite is the per-backend generic test suite.
//	type Suite struct {
//	        librarytest.Suite
//	}
//
//	// SetupTest creates a fresh, seeded library for each test.
//	func (s *Suite) SetupTest() {
//	        s.Library = New()
//	}
//
//	// TestLibrary runs the Library generic tests.
//	func TestLibrary(t *testing.T) {
//	        suite.Run(t, &Suite{})
//	}
//
// The tests expect the library to hold the seed data from
// library.SeedBooks and library.SeedContacts at the start of each
// test.
package librarytest

import (
	"sync"

	"github.com/stretchr/testify/suite"

	"github.com/diffeo/go-bookpatch/library"
)

// Suite is the generic Library test suite.
type Suite struct {
	suite.Suite

	// Library is the storage under test.  It is set by importing
	// packages, and must be freshly seeded for every test.
	Library library.Library
}

func stringp(s string) *string { return &s }
func intp(i int) *int          { return &i }
func boolp(b bool) *bool       { return &b }

// TestBooks checks that listing returns the seed books in ID order.
func (s *Suite) TestBooks() {
	books, err := s.Library.Books()
	if s.NoError(err) {
		s.Equal(library.SeedBooks(), books)
	}
}

// TestBook checks fetching single books.
func (s *Suite) TestBook() {
	for _, seed := range library.SeedBooks() {
		book, err := s.Library.Book(*seed.ID)
		if s.NoError(err) {
			s.Equal(seed, book)
		}
	}

	_, err := s.Library.Book(17)
	s.Equal(library.ErrNoSuchBook{ID: 17}, err)
}

// TestPutBook checks that a put replaces every field but the ID.
func (s *Suite) TestPutBook() {
	stored, err := s.Library.PutBook(1, library.Book{
		Title:  stringp("My Adventures"),
		Author: stringp("Jane Appleseed"),
	})
	if !s.NoError(err) {
		return
	}
	expected := library.Book{
		ID:     stored.ID,
		Title:  stringp("My Adventures"),
		Author: stringp("Jane Appleseed"),
	}
	s.Equal(expected, stored)
	if s.NotNil(stored.ID) {
		s.Equal(int64(1), *stored.ID)
	}

	book, err := s.Library.Book(1)
	if s.NoError(err) {
		s.Equal(expected, book)
		s.Nil(book.Edition)
	}

	// the other book is untouched
	book, err = s.Library.Book(2)
	if s.NoError(err) {
		s.Equal(library.SeedBooks()[1], book)
	}
}

// TestPutBookIgnoresID checks that a put cannot renumber a book.
func (s *Suite) TestPutBookIgnoresID() {
	other := int64(99)
	stored, err := s.Library.PutBook(2, library.Book{ID: &other, Title: stringp("x")})
	if s.NoError(err) && s.NotNil(stored.ID) {
		s.Equal(int64(2), *stored.ID)
	}
	_, err = s.Library.Book(99)
	s.Equal(library.ErrNoSuchBook{ID: 99}, err)
}

// TestPutBookMissing checks that a put does not create books.
func (s *Suite) TestPutBookMissing() {
	_, err := s.Library.PutBook(3, library.Book{Title: stringp("x")})
	s.Equal(library.ErrNoSuchBook{ID: 3}, err)
	books, err := s.Library.Books()
	if s.NoError(err) {
		s.Len(books, 2)
	}
}

// TestBookCopies checks that records going in and out of the library
// do not share memory with the stored copy.
func (s *Suite) TestBookCopies() {
	book, err := s.Library.Book(1)
	if !s.NoError(err) {
		return
	}
	*book.Title = "scribbled"

	input := library.Book{Title: stringp("Clean"), Edition: intp(2)}
	_, err = s.Library.PutBook(1, input)
	if !s.NoError(err) {
		return
	}
	*input.Title = "scribbled"
	*input.Edition = 3

	book, err = s.Library.Book(1)
	if s.NoError(err) {
		s.Equal("Clean", *book.Title)
		s.Equal(2, *book.Edition)
	}

	books, err := s.Library.Books()
	if s.NoError(err) {
		*books[0].Title = "scribbled"
	}
	book, err = s.Library.Book(1)
	if s.NoError(err) {
		s.Equal("Clean", *book.Title)
	}
}

// TestContacts checks listing and fetching contacts.
func (s *Suite) TestContacts() {
	contacts, err := s.Library.Contacts()
	if s.NoError(err) {
		s.Equal(library.SeedContacts(), contacts)
	}

	contact, err := s.Library.Contact(1)
	if s.NoError(err) {
		s.Equal(library.SeedContacts()[0], contact)
	}

	_, err = s.Library.Contact(2)
	s.Equal(library.ErrNoSuchContact{ID: 2}, err)
}

// TestPutContact checks replacing a contact.
func (s *Suite) TestPutContact() {
	update := library.SeedContacts()[0]
	update.ID = nil
	update.Favorite = boolp(true)
	update.Notes = nil

	stored, err := s.Library.PutContact(1, update)
	if !s.NoError(err) {
		return
	}
	s.Equal(true, *stored.Favorite)
	s.Nil(stored.Notes)
	if s.NotNil(stored.ID) {
		s.Equal(int64(1), *stored.ID)
	}

	contact, err := s.Library.Contact(1)
	if s.NoError(err) {
		s.Equal(stored, contact)
	}

	_, err = s.Library.PutContact(5, update)
	s.Equal(library.ErrNoSuchContact{ID: 5}, err)
}

// TestConcurrentPuts checks that concurrent writers leave the library
// holding one of the written values.
func (s *Suite) TestConcurrentPuts() {
	titles := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, title := range titles {
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			_, err := s.Library.PutBook(1, library.Book{Title: stringp(title)})
			s.NoError(err)
		}(title)
	}
	wg.Wait()

	book, err := s.Library.Book(1)
	if s.NoError(err) && s.NotNil(book.Title) {
		s.Contains(titles, *book.Title)
	}
}
