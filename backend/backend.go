// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package backend provides a standard way to construct a library
// based on command-line flags.
package backend

import (
	"errors"
	"strings"

	"github.com/diffeo/go-bookpatch/library"
	"github.com/diffeo/go-bookpatch/memory"
	"github.com/diffeo/go-bookpatch/restclient"
)

// Backend describes user-visible parameters to store library data.
// This implements the flag.Value interface, and so a typical use is
//
//	func main() {
//	    backend := backend.Backend{Implementation: "memory"}
//	    flag.Var(&backend, "backend", "impl:address of library storage")
//	    flag.Parse()
//	    lib, err := backend.Library()
//	}
type Backend struct {
	// Implementation holds the name of the implementation; for
	// instance, "memory".
	Implementation string

	// Address holds some backend-specific address, such as a
	// database connect string.
	Address string
}

// Library creates a new library.  This generally should be only
// called once.  If b.Implementation is "memory", multiple calls to
// this will create multiple independent, freshly seeded libraries.
// "http" and "https" talk to another book service, with the address
// being the rest of its URL.
func (b *Backend) Library() (library.Library, error) {
	switch b.Implementation {
	case "memory":
		return memory.New(), nil
	case "http", "https":
		client, err := restclient.New(b.String())
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, errors.New("unknown library backend " + b.Implementation)
	}
}

// String renders a backend description as a string.
func (b *Backend) String() string {
	if b.Address == "" {
		return b.Implementation
	}
	return b.Implementation + ":" + b.Address
}

// Set parses a string into an existing backend description.  The
// string should be of the form "implementation:address", where
// address can be any string.  Set checks to see if the provided
// implementation is any of the known implementations, and returns an
// appropriate error if not.
//
// This is part of the flag.Value interface.  If Set returns a nil
// error then Library() will return successfully.
func (b *Backend) Set(param string) error {
	if param == "" {
		return errors.New("must specify a backend type")
	}
	parts := strings.SplitN(param, ":", 2)
	switch parts[0] {
	case "memory":
	case "http", "https":
		if len(parts) < 2 || parts[1] == "" {
			return errors.New(parts[0] + " backend needs a URL")
		}
	default:
		return errors.New("unknown library backend " + parts[0])
	}
	b.Implementation = parts[0]
	b.Address = ""
	if len(parts) > 1 {
		b.Address = parts[1]
	}
	return nil
}
