// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"

	"github.com/diffeo/go-bookpatch/bridge"
	"github.com/diffeo/go-bookpatch/library"
	"github.com/diffeo/go-bookpatch/patcher"
	"github.com/diffeo/go-bookpatch/restdata"
)

// Config holds optional settings for the REST service.  The zero
// value is a usable configuration.
type Config struct {
	// Clock is the time source for validation and request
	// timing.  Defaults to the system clock.
	Clock clock.Clock

	// Logger receives patch and request logs.  Defaults to the
	// standard logrus logger.
	Logger logrus.FieldLogger

	// LogRequests, if true, makes NewHandler log every request.
	LogRequests bool

	// RejectUnknownFields, if true, makes PUT and PATCH fail if
	// the resulting record has members that are not fields of
	// the record.
	RejectUnknownFields bool
}

func (c Config) withDefaults() Config {
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}

// NewRouter creates a new HTTP handler that processes all library
// requests.  All resources are under the URL path root, e.g.
// /books/1.  For more control over this setup, create a mux.Router
// and call PopulateRouter instead.
func NewRouter(lib library.Library, config Config) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, lib, config)
	return r
}

// NewHandler creates a new HTTP handler like NewRouter, wrapped in
// panic recovery and, if config.LogRequests is set, request logging.
func NewHandler(lib library.Library, config Config) http.Handler {
	return Middleware(NewRouter(lib, config), config)
}

// Middleware wraps an arbitrary handler in the same panic recovery
// and request logging as NewHandler.
func Middleware(h http.Handler, config Config) http.Handler {
	config = config.withDefaults()
	n := negroni.New()
	recovery := negroni.NewRecovery()
	recovery.PrintStack = false
	n.Use(recovery)
	if config.LogRequests {
		n.Use(&requestLogger{Clock: config.Clock, Logger: config.Logger})
	}
	n.UseHandler(h)
	return n
}

// PopulateRouter adds library routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the library interface under a subpath:
//
//	r := mux.NewRouter()
//	s := r.PathPrefix("/library").Subrouter()
//	restserver.PopulateRouter(s, memory.New(), restserver.Config{})
func PopulateRouter(r *mux.Router, lib library.Library, config Config) {
	config = config.withDefaults()
	policy := bridge.Policy{RejectUnknown: config.RejectUnknownFields}
	api := &restAPI{
		Library: lib,
		Router:  r,
		Clock:   config.Clock,
		Logger:  config.Logger,
		Policy:  policy,
		Books: patcher.New("book", library.BookInputTable, config.Logger).
			WithPolicy(policy),
		Contacts: patcher.New("contact", library.ContactInputTable, config.Logger).
			WithPolicy(policy),
	}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the library REST API.
type restAPI struct {
	Library  library.Library
	Router   *mux.Router
	Clock    clock.Clock
	Logger   logrus.FieldLogger
	Policy   bridge.Policy
	Books    *patcher.Service[library.Book]
	Contacts *patcher.Service[library.Contact]
}

// PopulateRouter adds all library URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	api.PopulateBooks(r)
	api.PopulateContacts(r)
	r.Path("/").Name("root").Handler(&resourceHandler{
		Context: api.Context,
		Logger:  api.Logger,
		Get:     api.RootDocument,
	})
}

func (api *restAPI) RootDocument(ctx *context) (interface{}, error) {
	resp := restdata.RootData{}
	err := buildURLs(api.Router).
		URL(&resp.BooksURL, "books").
		Template(&resp.BookURL, "book", "book").
		URL(&resp.ContactsURL, "contacts").
		Template(&resp.ContactURL, "contact", "contact").
		Error
	return resp, err
}
