// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package library

func int64p(i int64) *int64    { return &i }
func intp(i int) *int          { return &i }
func stringp(s string) *string { return &s }
func boolp(b bool) *bool       { return &b }

// SeedBooks returns the books a new library starts with.  Each call
// returns fresh records.
func SeedBooks() []Book {
	return []Book{
		{
			ID:      int64p(1),
			Title:   stringp("Foo Adventures"),
			Author:  stringp("John Appleseed"),
			Edition: intp(1),
		},
		{
			ID:     int64p(2),
			Title:  stringp("Fifty Shades of Green"),
			Author: stringp("Jane Doe"),
		},
	}
}

// SeedContacts returns the contacts a new library starts with.  Each
// call returns fresh records.
func SeedContacts() []Contact {
	return []Contact{
		{
			ID:       int64p(1),
			Name:     stringp("John Appleseed"),
			Birthday: stringp("1990-01-01"),
			Company:  stringp("Acme"),
			Notes:    stringp("Cool guy!"),
			Favorite: boolp(false),
		},
	}
}
