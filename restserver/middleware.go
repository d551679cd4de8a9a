// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// RequestIDHeader is the response header carrying the ID the request
// was logged under.
const RequestIDHeader = "X-Request-Id"

// requestLogger is negroni middleware that logs one line per request.
type requestLogger struct {
	Clock  clock.Clock
	Logger logrus.FieldLogger
}

func (l *requestLogger) ServeHTTP(resp http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	start := l.Clock.Now()
	id := uuid.NewV4().String()
	resp.Header().Set(RequestIDHeader, id)

	next(resp, req)

	status := 0
	if nresp, ok := resp.(negroni.ResponseWriter); ok {
		status = nresp.Status()
	}
	l.Logger.WithFields(logrus.Fields{
		"request_id": id,
		"method":     req.Method,
		"path":       req.URL.Path,
		"status":     status,
		"duration":   l.Clock.Now().Sub(start),
	}).Info("request")
}
