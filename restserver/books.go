// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/gorilla/mux"

	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/library"
	"github.com/diffeo/go-bookpatch/patcher"
	"github.com/diffeo/go-bookpatch/restdata"
)

// PopulateBooks adds the book URL paths to a router.
func (api *restAPI) PopulateBooks(r *mux.Router) {
	r.Path("/books").Name("books").Handler(&resourceHandler{
		Context: api.Context,
		Logger:  api.Logger,
		Get:     api.BookList,
	})
	r.Path("/books/{book}").Name("book").Handler(&resourceHandler{
		Context: api.Context,
		Logger:  api.Logger,
		Get:     api.BookGet,
		Put:     api.BookPut,
		Patch:   api.BookPatch,
	})
}

func (api *restAPI) BookList(ctx *context) (interface{}, error) {
	books, err := api.Library.Books()
	if err != nil {
		return nil, err
	}
	result := make([]restdata.Book, len(books))
	for i, book := range books {
		result[i] = restdata.FromBook(book)
	}
	return result, nil
}

func (api *restAPI) BookGet(ctx *context) (interface{}, error) {
	return restdata.FromBook(*ctx.Book), nil
}

func (api *restAPI) BookPut(ctx *context, in jsonvalue.Value) (interface{}, error) {
	book, err := library.BookInputTable.FromValue(in, api.Policy)
	if err != nil {
		return nil, restdata.ErrBadRequest{Err: err}
	}
	return nil, api.storeBook(*ctx.Book.ID, book)
}

func (api *restAPI) BookPatch(ctx *context, patchType patcher.PatchType, body []byte) (interface{}, error) {
	book, err := api.Books.ApplyBytes(*ctx.Book, patchType, body)
	if err != nil {
		return nil, restdata.ErrUnprocessableEntity{Err: err}
	}
	return nil, api.storeBook(*ctx.Book.ID, book)
}

// storeBook validates the writable fields of book and saves it.
func (api *restAPI) storeBook(id int64, book library.Book) error {
	if err := library.ValidateBook(book); err != nil {
		return restdata.ErrUnprocessableEntity{Err: err}
	}
	_, err := api.Library.PutBook(id, book)
	if _, missing := err.(library.ErrNoSuchBook); missing {
		err = restdata.ErrNotFound{Err: err}
	}
	return err
}
