// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"

	"github.com/diffeo/go-bookpatch/library"
	"github.com/diffeo/go-bookpatch/patch"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound is a wrapper error that indicates that, due to the
// embedded error, a REST service should return a 404 Not Found error.
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// ErrUnprocessableEntity wraps an error from a well-formed request
// that could not be carried out: a patch that does not apply, or a
// record that fails validation.
type ErrUnprocessableEntity struct {
	Err error
}

func (e ErrUnprocessableEntity) Error() string {
	return e.Err.Error()
}

// Unwrap returns the embedded error.
func (e ErrUnprocessableEntity) Unwrap() error {
	return e.Err
}

// HTTPStatus returns a fixed 422 Unprocessable Entity HTTP status code.
func (e ErrUnprocessableEntity) HTTPStatus() int {
	return http.StatusUnprocessableEntity
}

// ErrPatchFailed is the client-side form of a patch pipeline failure
// reported by a server.  It keeps the failure kind, so patch.KindOf
// works on it.
type ErrPatchFailed struct {
	FailureKind patch.Kind
	Message     string
}

func (e ErrPatchFailed) Error() string {
	return e.Message
}

// Kind returns the kind of failure the server reported.
func (e ErrPatchFailed) Kind() patch.Kind {
	return e.FailureKind
}

const validationMessage = "Validation error"

// FromError populates an ErrorResponse to fill in its fields based
// on an error value.  This remaps the well-known library and patch
// errors to specific e.Error codes.
func (e *ErrorResponse) FromError(err error) {
	switch et := err.(type) {
	case library.ErrNoSuchBook:
		e.Error = "ErrNoSuchBook"
		e.Value = strconv.FormatInt(et.ID, 10)
	case library.ErrNoSuchContact:
		e.Error = "ErrNoSuchContact"
		e.Value = strconv.FormatInt(et.ID, 10)
	case library.ErrValidation:
		e.Error = "ErrValidation"
		e.Message = validationMessage
		e.Errors = et.Errors
	case ErrNotFound:
		// Discard this wrapper and return the embedded error
		e.FromError(et.Err)
	case ErrBadRequest:
		e.FromError(et.Err)
	case ErrUnprocessableEntity:
		e.FromError(et.Err)
	default:
		if kind := patch.KindOf(err); kind != patch.UnknownKind {
			e.Error = kind.String()
		}
	}
}

// ToError converts e back to a library or patch error, if that is
// possible.  If not, returns a plain error with e.Message text.
func (e *ErrorResponse) ToError() error {
	switch e.Error {
	case "ErrNoSuchBook":
		if id, err := strconv.ParseInt(e.Value, 10, 64); err == nil {
			return library.ErrNoSuchBook{ID: id}
		}
	case "ErrNoSuchContact":
		if id, err := strconv.ParseInt(e.Value, 10, 64); err == nil {
			return library.ErrNoSuchContact{ID: id}
		}
	case "ErrValidation":
		return library.ErrValidation{Errors: e.Errors}
	}
	var kind patch.Kind
	if err := kind.UnmarshalText([]byte(e.Error)); err == nil && kind != patch.UnknownKind {
		return ErrPatchFailed{FailureKind: kind, Message: e.Message}
	}
	return errors.New(e.Message)
}

// FromPanic populates an error response based on a panic.  Typical use
// is:
//
//	defer func() {
//	    if obj := recover(); obj != nil {
//	        resp := restdata.ErrorResponse{}
//	        resp.FromPanic(obj)
//	        // write resp out as makes sense
//	    }
//	}()
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Error = "panic"
	if recoveredError, isError := obj.(error); isError {
		e.Message = recoveredError.Error()
	} else {
		e.Message = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Stack = string(stack[:len])
}
