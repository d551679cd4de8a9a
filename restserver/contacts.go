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

// PopulateContacts adds the contact URL paths to a router.
func (api *restAPI) PopulateContacts(r *mux.Router) {
	r.Path("/contacts").Name("contacts").Handler(&resourceHandler{
		Context: api.Context,
		Logger:  api.Logger,
		Get:     api.ContactList,
	})
	r.Path("/contacts/{contact}").Name("contact").Handler(&resourceHandler{
		Context: api.Context,
		Logger:  api.Logger,
		Get:     api.ContactGet,
		Put:     api.ContactPut,
		Patch:   api.ContactPatch,
	})
}

func (api *restAPI) ContactList(ctx *context) (interface{}, error) {
	contacts, err := api.Library.Contacts()
	if err != nil {
		return nil, err
	}
	result := make([]restdata.Contact, len(contacts))
	for i, contact := range contacts {
		result[i] = restdata.FromContact(contact)
	}
	return result, nil
}

func (api *restAPI) ContactGet(ctx *context) (interface{}, error) {
	return restdata.FromContact(*ctx.Contact), nil
}

func (api *restAPI) ContactPut(ctx *context, in jsonvalue.Value) (interface{}, error) {
	contact, err := library.ContactInputTable.FromValue(in, api.Policy)
	if err != nil {
		return nil, restdata.ErrBadRequest{Err: err}
	}
	return nil, api.storeContact(*ctx.Contact.ID, contact)
}

func (api *restAPI) ContactPatch(ctx *context, patchType patcher.PatchType, body []byte) (interface{}, error) {
	contact, err := api.Contacts.ApplyBytes(*ctx.Contact, patchType, body)
	if err != nil {
		return nil, restdata.ErrUnprocessableEntity{Err: err}
	}
	return nil, api.storeContact(*ctx.Contact.ID, contact)
}

func (api *restAPI) storeContact(id int64, contact library.Contact) error {
	if err := library.ValidateContact(contact, api.Clock.Now()); err != nil {
		return restdata.ErrUnprocessableEntity{Err: err}
	}
	_, err := api.Library.PutContact(id, contact)
	if _, missing := err.(library.ErrNoSuchContact); missing {
		err = restdata.ErrNotFound{Err: err}
	}
	return err
}
