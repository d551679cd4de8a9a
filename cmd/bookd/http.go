// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/diffeo/go-bookpatch/library"
	"github.com/diffeo/go-bookpatch/restserver"
)

// newHandler builds the complete HTTP handler: the REST API, plus
// Prometheus metrics at /metrics.
func newHandler(lib library.Library, config Config) http.Handler {
	serverConfig := restserver.Config{
		LogRequests:         config.LogRequests,
		RejectUnknownFields: config.RejectUnknownFields,
	}
	r := mux.NewRouter()
	restserver.PopulateRouter(r, lib, serverConfig)
	r.Handle("/metrics", promhttp.Handler())
	return restserver.Middleware(r, serverConfig)
}

// serveHTTP runs an HTTP server on the configured address.  This
// serves connections until the listener fails.
func serveHTTP(lib library.Library, config Config) error {
	logrus.WithFields(logrus.Fields{
		"http": config.HTTP,
	}).Info("Serving HTTP")
	return http.ListenAndServe(config.HTTP, newHandler(lib, config))
}
