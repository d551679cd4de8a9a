// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// restserver and restclient packages.  Representations are passed
// across the wire as plain application/json.
//
// API Usage
//
// HTTP GET the root document at its specified URL.  This will return
// a JSON serialization of the RootData object.  That serialization
// has links to other resources; follow these links, possibly filling
// in template values, to get to other resources.
//
// Some of the URL fields are RFC 6570 URI templates.  This is a fancy
// way of saying that they are URL strings with a {parameter} in curly
// braces.  For instance, if the system is rooted at /, a JSON
// serialization of RootData will look like
//
//	{
//	    "books_url": "/books",
//	    "book_url": "/books/{id}",
//	    "contacts_url": "/contacts",
//	    "contact_url": "/contacts/{id}"
//	}
//
// While the URL structure is predictable and formulaic, it is not
// actually part of the API contract.  The only specific guarantee is
// that retrieving the root resource will return a serialization of
// RootData.
//
// Record identifiers in URLs are decimal integers.
//
// HTTP Considerations
//
// Collections support GET.  Single records support GET, PUT, and
// PATCH.  Any resource that supports GET also supports HEAD.
//
// A PUT replaces every writable field of the record with the uploaded
// representation, which must be application/json.  Fields that are
// null or absent are cleared.  The "id" field is never writable.
//
// A PATCH takes either an RFC 6902 JSON Patch document, as
// application/json-patch+json, or an RFC 7396 JSON Merge Patch
// document, as application/merge-patch+json.  The patch applies to
// the writable fields of the record only.  Either the whole patch
// applies or nothing changes.
//
// Successful PUT and PATCH requests return 204 No Content.  A request
// body that cannot be decoded returns 400 Bad Request, an unknown
// record 404 Not Found, and an unsupported Content-Type: 415
// Unsupported Media Type.  A patch that cannot be applied, or that
// produces a record that fails validation, returns 422 Unprocessable
// Entity.
//
// Errors
//
// Errors are returned as encodings of the ErrorResponse type.  Errors
// from the patch pipeline carry their kind ("PointerNotFound",
// "TestFailed", ...) as the error code.  Validation failures carry a
// list of "field: message" strings.
//
// If Go server code panics, this should be captured and returned as
// an ErrorResponse with error code "panic".
package restdata

// JSONMediaType is the MIME type of every representation.
const JSONMediaType = "application/json"

// JSONPatchMediaType is the MIME type of an RFC 6902 JSON Patch
// request body.
const JSONPatchMediaType = "application/json-patch+json"

// MergePatchMediaType is the MIME type of an RFC 7396 JSON Merge
// Patch request body.
const MergePatchMediaType = "application/merge-patch+json"

// RootData is the representation of the root resource.
type RootData struct {
	// BooksURL is the URL of the list of books.  It only
	// supports GET.
	BooksURL string `json:"books_url"`

	// BookURL is a URL template pointing at a single book.  It
	// supports GET, PUT, and PATCH.
	BookURL string `json:"book_url"`

	// ContactsURL is the URL of the list of contacts.
	ContactsURL string `json:"contacts_url"`

	// ContactURL is a URL template pointing at a single contact.
	ContactURL string `json:"contact_url"`
}

// Book is the output representation of a book.  Absent fields are
// sent as null.
type Book struct {
	ID      *int64  `json:"id"`
	Title   *string `json:"title"`
	Edition *int    `json:"edition"`
	Author  *string `json:"author"`
}

// Contact is the output representation of a contact.  Birthday is a
// date string, "1990-01-01".
type Contact struct {
	ID       *int64  `json:"id"`
	Name     *string `json:"name"`
	Birthday *string `json:"birthday"`
	Company  *string `json:"company"`
	Notes    *string `json:"notes"`
	Favorite *bool   `json:"favorite"`
}

// ErrorResponse can be a response to any method, generally accompanied
// by a failing HTTP status code.
type ErrorResponse struct {
	// Error is a short description of the failure.  This may be
	// the kind of a patch failure, the name of a library error,
	// the string "panic", or the string "error" for some other
	// kind of error.
	Error string `json:"error"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Errors lists individual "field: message" problems, if the
	// failure was a validation error.
	Errors []string `json:"errors,omitempty"`

	// Value is an extra parameter to the error if applicable.
	Value string `json:"value,omitempty"`

	// Stack holds a formatted backtrace, if the method failed
	// due to a panic.
	Stack string `json:"stack,omitempty"`
}
