// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package library

import (
	"strings"
	"time"
)

// DateFormat is the layout of Contact.Birthday.
const DateFormat = "2006-01-02"

// ErrValidation is returned when a record, typically one that was
// just patched, breaks one of the record's own rules.  Errors has one
// "field: message" string per problem.
type ErrValidation struct {
	Errors []string
}

func (e ErrValidation) Error() string {
	return "Validation error: " + strings.Join(e.Errors, "; ")
}

type validator struct {
	errors []string
}

func (v *validator) check(ok bool, field, message string) {
	if !ok {
		v.errors = append(v.errors, field+": "+message)
	}
}

func (v *validator) err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return ErrValidation{Errors: v.errors}
}

func notBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// ValidateBook checks a book's input fields: the title must be
// present and not blank, and the edition, if present, must be
// positive.
func ValidateBook(book Book) error {
	var v validator
	v.check(notBlank(book.Title), "title", "must not be blank")
	v.check(book.Edition == nil || *book.Edition > 0, "edition", "must be greater than 0")
	return v.err()
}

// ValidateContact checks a contact's input fields: the name must be
// present and not blank, and the birthday, if present, must be a
// date in the past.  now is the current time.
func ValidateContact(contact Contact, now time.Time) error {
	var v validator
	v.check(notBlank(contact.Name), "name", "must not be blank")
	if contact.Birthday != nil {
		birthday, err := time.Parse(DateFormat, *contact.Birthday)
		if err != nil {
			v.check(false, "birthday", "must be a date in "+DateFormat+" format")
		} else {
			v.check(birthday.Before(now), "birthday", "must be a past date")
		}
	}
	return v.err()
}
