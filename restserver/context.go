// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/diffeo/go-bookpatch/library"
	"github.com/diffeo/go-bookpatch/restdata"
)

// context holds all of the information and objects that can be extracted
// from URL parameters.
type context struct {
	Book    *library.Book
	Contact *library.Contact
}

func (api *restAPI) Context(req *http.Request) (ctx *context, err error) {
	ctx = &context{}
	vars := mux.Vars(req)

	var present bool
	var text string
	var id int64

	if text, present = vars["book"]; present && err == nil {
		id, err = restdata.ParseID(text)
		if err == nil {
			var book library.Book
			book, err = api.Library.Book(id)
			if err == nil {
				ctx.Book = &book
			}
		}
	}

	if text, present = vars["contact"]; present && err == nil {
		id, err = restdata.ParseID(text)
		if err == nil {
			var contact library.Contact
			contact, err = api.Library.Contact(id)
			if err == nil {
				ctx.Contact = &contact
			}
		}
	}

	// In all cases, if there is a record ID in the URL and that
	// names an absent record, it's a missing URL and we should
	// return 404
	switch err.(type) {
	case library.ErrNoSuchBook, library.ErrNoSuchContact:
		err = restdata.ErrNotFound{Err: err}
	}
	return
}
