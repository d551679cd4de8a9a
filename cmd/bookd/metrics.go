// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/diffeo/go-bookpatch/library"
)

var librarySummary = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "diffeo",
		Subsystem: "bookpatch",
		Name:      "library_records",
		Help:      "Number of records in the library",
	},
	[]string{
		"kind",
	},
)

func init() {
	prometheus.MustRegister(librarySummary)
}

// summarize records the current library size once.
func summarize(lib library.Library) error {
	books, err := lib.Books()
	if err != nil {
		return err
	}
	contacts, err := lib.Contacts()
	if err != nil {
		return err
	}
	librarySummary.With(prometheus.Labels{"kind": "book"}).Set(float64(len(books)))
	librarySummary.With(prometheus.Labels{"kind": "contact"}).Set(float64(len(contacts)))
	return nil
}

// observe updates the library summary every few seconds, forever.
func observe(lib library.Library) {
	tick := time.Tick(15 * time.Second)
	for {
		if err := summarize(lib); err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Warn("Could not summarize library")
		}
		<-tick
	}
}
