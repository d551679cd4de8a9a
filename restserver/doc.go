// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a library.Library as a REST service.
// The restclient package is a matching client.
//
// The complete REST API is defined in the restdata package.  In
// particular, note that the URLs described here are not actually part
// of the API.
//
// HTTP Considerations
//
// Clients may use the standard HTTP Accept: header to request a
// format, but the only format is JSON.  See "MIME Types" below.
//
// This interface does not support HTTP caching or authentication
// headers.  Concurrent updates to the same record are not detected;
// the last writer wins.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//	application/json
//	text/json
//
// JSON representation of a resource, and the only type accepted by
// PUT.
//
//	application/json-patch+json
//
// RFC 6902 JSON Patch document, accepted by PATCH.
//
//	application/merge-patch+json
//
// RFC 7396 JSON Merge Patch document, accepted by PATCH.
//
// URL Scheme
//
// Records are addressed by their decimal integer ID.  The following
// URLs are defined:
//
//	/
//	/books
//	/books/{book}
//	/contacts
//	/contacts/{contact}
package restserver
