// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package patcher

import (
	"github.com/prometheus/client_golang/prometheus"
)

var patchApplications = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "diffeo",
		Subsystem: "bookpatch",
		Name:      "patch_applications_total",
		Help:      "Patch documents applied to records, by outcome",
	},
	[]string{
		"resource",
		"patch_type",
		"outcome",
	},
)

func init() {
	prometheus.MustRegister(patchApplications)
}

// observe counts one patch application.  outcome is "ok" or the name
// of the failure kind.
func observe(resource string, patchType PatchType, outcome string) {
	patchApplications.With(prometheus.Labels{
		"resource":   resource,
		"patch_type": string(patchType),
		"outcome":    outcome,
	}).Inc()
}
