// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"io"
	"mime"

	"github.com/ugorji/go/codec"

	"github.com/diffeo/go-bookpatch/library"
)

// MediaType canonicalizes a Content-Type: header into one of
// JSONMediaType, JSONPatchMediaType, or MergePatchMediaType.  Any
// other type is ErrUnsupportedMediaType.
func MediaType(contentType string) (string, error) {
	if contentType == "" {
		// RFC 7231 section 3.1.1.5
		contentType = "application/octet-stream"
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", ErrBadRequest{Err: err}
	}

	// Promote to more specific types
	switch mediaType {
	case "text/json", JSONMediaType:
		return JSONMediaType, nil
	case JSONPatchMediaType, MergePatchMediaType:
		return mediaType, nil
	default:
		return "", ErrUnsupportedMediaType{Type: mediaType}
	}
}

// Decode tries to decode a restdata object from a reader, such as an
// HTTP request or response.  out must be a pointer type.  Only plain
// JSON is accepted here; patch documents are decoded by the patch
// engines.
func Decode(contentType string, r io.Reader, out interface{}) error {
	mediaType, err := MediaType(contentType)
	if err != nil {
		return err
	}
	if mediaType != JSONMediaType {
		return ErrUnsupportedMediaType{Type: mediaType}
	}
	json := &codec.JsonHandle{}
	decoder := codec.NewDecoder(r, json)
	return decoder.Decode(out)
}

// Encode writes a restdata object to a writer as JSON.
func Encode(w io.Writer, in interface{}) error {
	json := &codec.JsonHandle{}
	encoder := codec.NewEncoder(w, json)
	return encoder.Encode(in)
}

// FromBook copies a library book into its output representation.
func FromBook(book library.Book) Book {
	book = library.CopyBook(book)
	return Book{
		ID:      book.ID,
		Title:   book.Title,
		Edition: book.Edition,
		Author:  book.Author,
	}
}

// Library copies a book representation into a library book.
func (b Book) Library() library.Book {
	return library.CopyBook(library.Book{
		ID:      b.ID,
		Title:   b.Title,
		Edition: b.Edition,
		Author:  b.Author,
	})
}

// FromContact copies a library contact into its output
// representation.
func FromContact(contact library.Contact) Contact {
	contact = library.CopyContact(contact)
	return Contact{
		ID:       contact.ID,
		Name:     contact.Name,
		Birthday: contact.Birthday,
		Company:  contact.Company,
		Notes:    contact.Notes,
		Favorite: contact.Favorite,
	}
}

// Library copies a contact representation into a library contact.
func (c Contact) Library() library.Contact {
	return library.CopyContact(library.Contact{
		ID:       c.ID,
		Name:     c.Name,
		Birthday: c.Birthday,
		Company:  c.Company,
		Notes:    c.Notes,
		Favorite: c.Favorite,
	})
}
