// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffeo/go-bookpatch/library"
	"github.com/diffeo/go-bookpatch/patch"
)

func TestFromError(t *testing.T) {
	notFound := patch.ErrUnprocessable{Err: patch.ErrOperation{
		Index: 0,
		Op:    "remove",
		Err:   patch.ErrPointerNotFound{Pointer: "/x"},
	}}
	tests := []struct {
		Err      error
		Status   int
		Response ErrorResponse
	}{
		{
			Err:    ErrNotFound{Err: library.ErrNoSuchBook{ID: 3}},
			Status: http.StatusNotFound,
			Response: ErrorResponse{
				Error:   "ErrNoSuchBook",
				Message: "No such book 3",
				Value:   "3",
			},
		},
		{
			Err:    ErrNotFound{Err: library.ErrNoSuchContact{ID: 4}},
			Status: http.StatusNotFound,
			Response: ErrorResponse{
				Error:   "ErrNoSuchContact",
				Message: "No such contact 4",
				Value:   "4",
			},
		},
		{
			Err:    ErrUnprocessableEntity{Err: library.ErrValidation{Errors: []string{"title: must not be blank"}}},
			Status: http.StatusUnprocessableEntity,
			Response: ErrorResponse{
				Error:   "ErrValidation",
				Message: "Validation error",
				Errors:  []string{"title: must not be blank"},
			},
		},
		{
			Err:    ErrUnprocessableEntity{Err: notFound},
			Status: http.StatusUnprocessableEntity,
			Response: ErrorResponse{
				Error:   "PointerNotFound",
				Message: notFound.Error(),
			},
		},
		{
			Err:    ErrBadRequest{Err: errors.New("bad")},
			Status: http.StatusBadRequest,
			Response: ErrorResponse{
				Error:   "error",
				Message: "bad",
			},
		},
	}
	for _, test := range tests {
		var status int
		if errS, ok := test.Err.(ErrorStatus); assert.True(t, ok) {
			status = errS.HTTPStatus()
		}
		assert.Equal(t, test.Status, status)

		resp := ErrorResponse{Error: "error", Message: test.Err.Error()}
		resp.FromError(test.Err)
		assert.Equal(t, test.Response, resp)
	}
}

func TestToError(t *testing.T) {
	tests := []struct {
		Response ErrorResponse
		Err      error
	}{
		{
			ErrorResponse{Error: "ErrNoSuchBook", Message: "No such book 3", Value: "3"},
			library.ErrNoSuchBook{ID: 3},
		},
		{
			ErrorResponse{Error: "ErrNoSuchContact", Message: "No such contact 4", Value: "4"},
			library.ErrNoSuchContact{ID: 4},
		},
		{
			ErrorResponse{Error: "ErrValidation", Message: "Validation error", Errors: []string{"a: b"}},
			library.ErrValidation{Errors: []string{"a: b"}},
		},
		{
			ErrorResponse{Error: "TestFailed", Message: "nope"},
			ErrPatchFailed{FailureKind: patch.TestFailed, Message: "nope"},
		},
		{
			ErrorResponse{Error: "ErrNoSuchBook", Message: "mystery", Value: "x"},
			errors.New("mystery"),
		},
		{
			ErrorResponse{Error: "error", Message: "plain"},
			errors.New("plain"),
		},
	}
	for _, test := range tests {
		assert.Equal(t, test.Err, test.Response.ToError())
	}

	err := (&ErrorResponse{Error: "ConversionError", Message: "x"}).ToError()
	assert.Equal(t, patch.ConversionError, patch.KindOf(err))
}

func TestFromPanic(t *testing.T) {
	var resp ErrorResponse
	resp.FromPanic("oops")
	assert.Equal(t, "panic", resp.Error)
	assert.Equal(t, "oops", resp.Message)
	assert.NotEmpty(t, resp.Stack)

	resp = ErrorResponse{}
	resp.FromPanic(errors.New("bang"))
	assert.Equal(t, "bang", resp.Message)
}
