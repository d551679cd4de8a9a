// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides a library.Library HTTP REST client that
// talks to the matching server in the "restserver" package, and can
// also send JSON Patch and JSON Merge Patch requests.
//
// The server in github.com/diffeo/go-bookpatch/cmd/bookd runs a
// compatible REST server.  Call New() with the base URL of that
// service; for instance,
//
//	c, err := restclient.New("http://localhost:8080/")
package restclient

import (
	"net/http"
	"net/url"

	"github.com/diffeo/go-bookpatch/jsonpatch"
	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/library"
	"github.com/diffeo/go-bookpatch/restdata"
)

// Client is a REST client for a book service.  It implements
// library.Library.  PutBook and PutContact read the record back after
// writing it; another writer may get in between.
type Client struct {
	resource
	Representation restdata.RootData
}

// New creates a new client that speaks to an external REST server.
// It fetches the root document immediately.
func New(baseURL string) (*Client, error) {
	return NewWithHTTPClient(baseURL, nil)
}

// NewWithHTTPClient creates a new client like New, sending requests
// through httpClient.  If httpClient is nil, uses
// http.DefaultClient.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	var (
		err error
		u   *url.URL
		c   *Client
	)
	u, err = url.Parse(baseURL)
	if err == nil {
		c = &Client{
			resource: resource{URL: u, Client: httpClient},
		}
		err = c.Refresh()
	}

	if err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh re-fetches the root document.
func (c *Client) Refresh() error {
	c.Representation = restdata.RootData{}
	return c.Get(&c.Representation)
}

func bookVars(id int64) map[string]interface{} {
	return map[string]interface{}{"book": restdata.FormatID(id)}
}

func contactVars(id int64) map[string]interface{} {
	return map[string]interface{}{"contact": restdata.FormatID(id)}
}

// Books fetches every book.
func (c *Client) Books() ([]library.Book, error) {
	var resp []restdata.Book
	err := c.GetFrom(c.Representation.BooksURL, map[string]interface{}{}, &resp)
	if err != nil {
		return nil, err
	}
	result := make([]library.Book, len(resp))
	for i, book := range resp {
		result[i] = book.Library()
	}
	return result, nil
}

// Book fetches a single book.
func (c *Client) Book(id int64) (library.Book, error) {
	var resp restdata.Book
	err := c.GetFrom(c.Representation.BookURL, bookVars(id), &resp)
	if err != nil {
		return library.Book{}, err
	}
	return resp.Library(), nil
}

// PutBook replaces the writable fields of a book.
func (c *Client) PutBook(id int64, book library.Book) (library.Book, error) {
	body := library.BookInputTable.ToValue(book).AppendJSON(nil)
	err := c.SendTo(http.MethodPut, c.Representation.BookURL, bookVars(id), restdata.JSONMediaType, body)
	if err != nil {
		return library.Book{}, err
	}
	return c.Book(id)
}

// PatchBook sends an undecoded patch document to a book.  mediaType
// is restdata.JSONPatchMediaType or restdata.MergePatchMediaType.
func (c *Client) PatchBook(id int64, mediaType string, body []byte) error {
	return c.SendTo(http.MethodPatch, c.Representation.BookURL, bookVars(id), mediaType, body)
}

// JSONPatchBook applies an RFC 6902 JSON Patch to a book.
func (c *Client) JSONPatchBook(id int64, doc jsonpatch.Document) error {
	return c.PatchBook(id, restdata.JSONPatchMediaType, doc.ToValue().AppendJSON(nil))
}

// MergePatchBook applies an RFC 7396 JSON Merge Patch to a book.
func (c *Client) MergePatchBook(id int64, mergeDoc jsonvalue.Value) error {
	return c.PatchBook(id, restdata.MergePatchMediaType, mergeDoc.AppendJSON(nil))
}

// Contacts fetches every contact.
func (c *Client) Contacts() ([]library.Contact, error) {
	var resp []restdata.Contact
	err := c.GetFrom(c.Representation.ContactsURL, map[string]interface{}{}, &resp)
	if err != nil {
		return nil, err
	}
	result := make([]library.Contact, len(resp))
	for i, contact := range resp {
		result[i] = contact.Library()
	}
	return result, nil
}

// Contact fetches a single contact.
func (c *Client) Contact(id int64) (library.Contact, error) {
	var resp restdata.Contact
	err := c.GetFrom(c.Representation.ContactURL, contactVars(id), &resp)
	if err != nil {
		return library.Contact{}, err
	}
	return resp.Library(), nil
}

// PutContact replaces the writable fields of a contact.
func (c *Client) PutContact(id int64, contact library.Contact) (library.Contact, error) {
	body := library.ContactInputTable.ToValue(contact).AppendJSON(nil)
	err := c.SendTo(http.MethodPut, c.Representation.ContactURL, contactVars(id), restdata.JSONMediaType, body)
	if err != nil {
		return library.Contact{}, err
	}
	return c.Contact(id)
}

// PatchContact sends an undecoded patch document to a contact.
func (c *Client) PatchContact(id int64, mediaType string, body []byte) error {
	return c.SendTo(http.MethodPatch, c.Representation.ContactURL, contactVars(id), mediaType, body)
}

// JSONPatchContact applies an RFC 6902 JSON Patch to a contact.
func (c *Client) JSONPatchContact(id int64, doc jsonpatch.Document) error {
	return c.PatchContact(id, restdata.JSONPatchMediaType, doc.ToValue().AppendJSON(nil))
}

// MergePatchContact applies an RFC 7396 JSON Merge Patch to a contact.
func (c *Client) MergePatchContact(id int64, mergeDoc jsonvalue.Value) error {
	return c.PatchContact(id, restdata.MergePatchMediaType, mergeDoc.AppendJSON(nil))
}
