// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// The bulk of this is dealing with HTTP content type negotiation, and
// providing a standard way to deal with input and output values.
// Responses are always JSON.  Request bodies are handed to handler
// functions still undecoded into records: a PUT body as a parsed JSON
// value, and a PATCH body as raw bytes tagged with its patch format,
// since the patch engines do their own parsing.

import (
	"errors"
	"fmt"
	"io/ioutil"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/patcher"
	"github.com/diffeo/go-bookpatch/restdata"
)

var typeMap = map[string]string{
	"text/json":            restdata.JSONMediaType,
	restdata.JSONMediaType: restdata.JSONMediaType,
}

// patchTypes maps PATCH request media types to patch formats.
var patchTypes = map[string]patcher.PatchType{
	restdata.JSONPatchMediaType:  patcher.JSONPatch,
	restdata.MergePatchMediaType: patcher.MergePatch,
}

// errBadAccept is returned from negotiateResponse() if the Accept:
// header is malformed (and no more specific error applies).
var errBadAccept = errors.New("Invalid Accept: header")

// errNotAcceptable is returned from negotiateResponse() if the Accept:
// header does not mention any media types we can actually return.
type errNotAcceptable struct{}

func (e errNotAcceptable) Error() string {
	return "No acceptable representation for response"
}

func (e errNotAcceptable) HTTPStatus() int {
	return http.StatusNotAcceptable
}

// errMethodNotAllowed is used within the resourceHandler implementation
// to flag an error if a particular HTTP method is not allowed.  This
// corresponds exactly to the 405 Method Not Allowed HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

type resourceHandler struct {
	// Context reads an HTTP request and produces a context object.
	Context func(req *http.Request) (*context, error)

	// Get, if non-nil, returns a representation of the object.
	Get func(*context) (interface{}, error)

	// Put, if non-nil, replaces the object with the uploaded JSON
	// representation.  The return can be any useful return value,
	// or nil for 204 No Content.
	Put func(*context, jsonvalue.Value) (interface{}, error)

	// Patch, if non-nil, applies an undecoded patch document of
	// the given format to the object.
	Patch func(*context, patcher.PatchType, []byte) (interface{}, error)

	// Logger receives failures to write the response.  If nil,
	// uses the standard logrus logger.
	Logger logrus.FieldLogger
}

// writeBody encodes out as the response body.  By the time the body
// is written the status line is already out, so a failure can only
// be logged.
func (h *resourceHandler) writeBody(resp http.ResponseWriter, req *http.Request, out interface{}) {
	err := restdata.Encode(resp, out)
	if err == nil {
		return
	}
	logger := h.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithFields(logrus.Fields{
		"err":    err,
		"method": req.Method,
		"path":   req.URL.Path,
	}).Warn("could not write response")
}

// allows reports whether h has a handler for method.
func (h *resourceHandler) allows(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead:
		return h.Get != nil
	case http.MethodPut:
		return h.Put != nil
	case http.MethodPatch:
		return h.Patch != nil
	default:
		return false
	}
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx          *context
		out          interface{}
		err          error
		status       int
		responseType string
		putValue     jsonvalue.Value
		patchType    patcher.PatchType
		patchBody    []byte
	)

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			response := restdata.ErrorResponse{}
			response.FromPanic(recovered)
			resp.Header().Set("Content-Type", restdata.JSONMediaType)
			resp.WriteHeader(http.StatusInternalServerError)
			h.writeBody(resp, req, response)
		}
	}()

	// Start by trying to come up with a response type, even before
	// trying to parse the input.  This determines what format an
	// error message could be sent back as.
	status = http.StatusBadRequest
	responseType, err = negotiateResponse(req)
	if err != nil {
		// Gotta pick something
		responseType = restdata.JSONMediaType
	}

	if err == nil && !h.allows(req.Method) {
		err = errMethodNotAllowed{Method: req.Method}
	}

	// Get bits from URL parameters
	if err == nil {
		ctx, err = h.Context(req)
	}

	// Read the body, if it's there
	if err == nil && (req.Method == http.MethodPut || req.Method == http.MethodPatch) {
		var mediaType string
		mediaType, err = restdata.MediaType(req.Header.Get("Content-Type"))
		if err == nil && req.Method == http.MethodPut {
			if mediaType != restdata.JSONMediaType {
				err = restdata.ErrUnsupportedMediaType{Type: mediaType}
			} else {
				putValue, err = jsonvalue.ReadFrom(req.Body)
				if err != nil {
					err = restdata.ErrBadRequest{Err: err}
				}
			}
		}
		if err == nil && req.Method == http.MethodPatch {
			var known bool
			patchType, known = patchTypes[mediaType]
			if !known {
				err = restdata.ErrUnsupportedMediaType{Type: mediaType}
			} else {
				patchBody, err = ioutil.ReadAll(req.Body)
				if err != nil {
					err = restdata.ErrBadRequest{Err: err}
				}
			}
		}
	}

	// Actually call the handler method
	if err == nil {
		// If anything else goes wrong here, it's an error in
		// client code
		status = http.StatusInternalServerError
		switch req.Method {
		case http.MethodGet, http.MethodHead:
			out, err = h.Get(ctx)
		case http.MethodPut:
			out, err = h.Put(ctx, putValue)
		case http.MethodPatch:
			out, err = h.Patch(ctx, patchType, patchBody)
		}
	}

	// Fix up the final result based on what we know.
	if err != nil {
		// Pick a better status code if we know of one
		if errS, hasStatus := err.(restdata.ErrorStatus); hasStatus {
			status = errS.HTTPStatus()
		}
		if status == http.StatusMethodNotAllowed {
			resp.Header().Set("Allow", h.allowHeader())
		}
		errResp := restdata.ErrorResponse{Error: "error", Message: err.Error()}
		errResp.FromError(err)
		out = errResp
	} else if out == nil {
		status = http.StatusNoContent
	} else {
		status = http.StatusOK
		if req.Method == http.MethodHead {
			out = nil
		}
	}

	if typeMap[responseType] != restdata.JSONMediaType {
		// We shouldn't get here, because it implies response
		// type negotiation failed...but here we are
		status = http.StatusInternalServerError
		out = restdata.ErrorResponse{Error: "error", Message: "Invalid response type " + responseType}
		responseType = restdata.JSONMediaType
	}

	// Actually send the response.
	if out != nil {
		resp.Header().Set("Content-Type", responseType)
	}
	resp.WriteHeader(status)
	if out != nil {
		h.writeBody(resp, req, out)
	}
}

func (h *resourceHandler) allowHeader() string {
	var methods []string
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch} {
		if h.allows(method) {
			methods = append(methods, method)
		}
	}
	return strings.Join(methods, ", ")
}

// negotiateResponse returns a supported MIME type for the response
// body, following the path laid out in RFC 7231 section 5.3.
func negotiateResponse(req *http.Request) (string, error) {
	accept := req.Header.Get("Accept")
	if accept == "" {
		accept = "*/*"
	}
	bestType := ""
	bestQ := 0.0
	mediaRanges := strings.Split(accept, ",")
	for _, mediaRange := range mediaRanges {
		mediaRange = strings.TrimSpace(mediaRange)
		mediaType, params, err := mime.ParseMediaType(mediaRange)
		if err != nil {
			return "", err
		}

		// What is the "q" ("quality") parameter for this type?
		// If it is less than the best known so far, skip it
		q := 1.0
		if qStr, haveQ := params["q"]; haveQ {
			q, err = strconv.ParseFloat(qStr, 64)
			if err != nil {
				return "", err
			}
			if q < 0.0 || q > 1.0 {
				return "", errBadAccept
			}
		}
		if q < bestQ {
			continue
		}

		// This is acceptable if it's listed in the type
		// map; or it's one of a couple of specific wildcards.
		// Also need to handle wildcard precedence.  So:
		if mediaType == "*/*" {
			// Doesn't override anything.
			if q > bestQ {
				bestType = mediaType
				bestQ = q
			}
		} else if mediaType == "text/*" || mediaType == "application/*" {
			// Only overrides "*/*".
			if q > bestQ || bestType == "*/*" {
				bestType = mediaType
				bestQ = q
			}
		} else if _, knownType := typeMap[mediaType]; knownType {
			// Overrides any wildcard.  We want the first one
			// at a given q to win.
			if q > bestQ || bestType == "*/*" || bestType == "text/*" || bestType == "application/*" {
				bestType = mediaType
				bestQ = q
			}
		}
		// Otherwise we don't recognize this type at all, so
		// just drop it.
	}
	// If this failed to win, return an error
	if bestQ == 0.0 {
		return "", errNotAcceptable{}
	}
	switch bestType {
	case "*/*", "application/*":
		return restdata.JSONMediaType, nil
	case "text/*":
		return "text/json", nil
	default:
		return bestType, nil
	}
}
