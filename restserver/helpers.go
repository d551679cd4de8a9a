// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains various HTTP-related helpers.

import (
	"fmt"
	"strings"

	"github.com/gorilla/mux"
)

// urlBuilder fills in URLs for named routes, remembering the first
// error so a chain of calls only needs one check at the end.
type urlBuilder struct {
	Router *mux.Router
	Error  error
}

func buildURLs(router *mux.Router) *urlBuilder {
	return &urlBuilder{Router: router}
}

// build reverses route with pairs, a flat list of variable names and
// values, and returns "" once anything has failed.
func (u *urlBuilder) build(route string, pairs ...string) string {
	if u.Error != nil {
		return ""
	}
	r := u.Router.Get(route)
	if r == nil {
		u.Error = fmt.Errorf("No such route %q", route)
		return ""
	}
	built, err := r.URL(pairs...)
	if err != nil {
		u.Error = err
		return ""
	}
	return built.String()
}

// URL writes the URL for a route without variables to out.
func (u *urlBuilder) URL(out *string, route string) *urlBuilder {
	if s := u.build(route); u.Error == nil {
		*out = s
	}
	return u
}

// Template writes a URL template for route to out, where param is
// left as an RFC 6570 {param} expression.
func (u *urlBuilder) Template(out *string, route, param string) *urlBuilder {
	const placeholder = "---"
	if s := u.build(route, param, placeholder); u.Error == nil {
		*out = strings.Replace(s, placeholder, "{"+param+"}", 1)
	}
	return u
}
