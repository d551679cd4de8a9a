// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package patcher applies JSON Patch and JSON Merge Patch documents to
// typed records.
//
// A Service converts the record to a JSON value with its bridge
// table, runs the patch engine, and converts the result back.  Every
// failure along the way comes back as patch.ErrUnprocessable, with the
// specific failure inside it.  The Service does no I/O and holds no
// mutable state, so one Service may be shared by any number of
// goroutines.
package patcher

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/diffeo/go-bookpatch/bridge"
	"github.com/diffeo/go-bookpatch/jsonpatch"
	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/mergepatch"
	"github.com/diffeo/go-bookpatch/patch"
)

// PatchType names one of the two supported patch formats.
type PatchType string

const (
	// JSONPatch is RFC 6902 JSON Patch.
	JSONPatch PatchType = "json-patch"

	// MergePatch is RFC 7396 JSON Merge Patch.
	MergePatch PatchType = "merge-patch"
)

// Service patches records of type R.
type Service[R any] struct {
	name   string
	table  *bridge.Table[R]
	policy bridge.Policy
	logger logrus.FieldLogger
}

// New creates a patch service for records described by table.  name
// identifies the kind of record in logs and metrics.  If logger is
// nil, the standard logrus logger is used.
func New[R any](name string, table *bridge.Table[R], logger logrus.FieldLogger) *Service[R] {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service[R]{
		name:   name,
		table:  table,
		logger: logger.WithField("resource", name),
	}
}

// WithPolicy returns a copy of the service that converts patched
// values back into records under policy.  The original service is
// unchanged.
func (s *Service[R]) WithPolicy(policy bridge.Policy) *Service[R] {
	dup := *s
	dup.policy = policy
	return &dup
}

// Name returns the resource name of the service.
func (s *Service[R]) Name() string {
	return s.name
}

// Table returns the field table the service converts records with.
func (s *Service[R]) Table() *bridge.Table[R] {
	return s.table
}

// ApplyJSONPatch applies an RFC 6902 patch to rec and returns the
// patched record.  On failure it returns rec itself and a
// patch.ErrUnprocessable.
func (s *Service[R]) ApplyJSONPatch(rec R, doc jsonpatch.Document) (R, error) {
	return s.apply(rec, JSONPatch, func(target jsonvalue.Value) (jsonvalue.Value, error) {
		return jsonpatch.Apply(target, doc)
	})
}

// ApplyMergePatch applies an RFC 7396 merge patch to rec and returns
// the patched record.  On failure it returns rec itself and a
// patch.ErrUnprocessable.
func (s *Service[R]) ApplyMergePatch(rec R, mergeDoc jsonvalue.Value) (R, error) {
	return s.apply(rec, MergePatch, func(target jsonvalue.Value) (jsonvalue.Value, error) {
		return mergepatch.Apply(target, mergeDoc), nil
	})
}

// ApplyBytes parses body as a patch document of the given type and
// applies it to rec.  A body that does not parse is rejected the same
// way as a patch that does not apply, with a patch.ErrUnprocessable
// holding a patch.ErrMalformedDocument.
func (s *Service[R]) ApplyBytes(rec R, patchType PatchType, body []byte) (R, error) {
	switch patchType {
	case JSONPatch:
		doc, err := jsonpatch.DecodeBytes(body)
		if err != nil {
			return s.reject(rec, patchType, err)
		}
		return s.ApplyJSONPatch(rec, doc)
	case MergePatch:
		mergeDoc, err := jsonvalue.Parse(body)
		if err != nil {
			return s.reject(rec, patchType, err)
		}
		return s.ApplyMergePatch(rec, mergeDoc)
	default:
		return rec, fmt.Errorf("unknown patch type %q", patchType)
	}
}

func (s *Service[R]) apply(
	rec R,
	patchType PatchType,
	engine func(jsonvalue.Value) (jsonvalue.Value, error),
) (R, error) {
	before := s.table.ToValue(rec)
	after, err := engine(before)
	if err != nil {
		return s.reject(rec, patchType, err)
	}
	result, err := s.table.FromValue(after, s.policy)
	if err != nil {
		return s.reject(rec, patchType, err)
	}
	s.logger.WithFields(logrus.Fields{
		"patch_type": patchType,
		"before":     before,
		"after":      after,
	}).Debug("applied patch")
	observe(s.name, patchType, "ok")
	return result, nil
}

// reject logs and counts a failed patch, and returns rec with the
// failure wrapped in patch.ErrUnprocessable.
func (s *Service[R]) reject(rec R, patchType PatchType, err error) (R, error) {
	kind := patch.KindOf(err)
	s.logger.WithFields(logrus.Fields{
		"patch_type": patchType,
		"kind":       kind,
		"err":        err,
	}).Info("patch rejected")
	observe(s.name, patchType, kind.String())
	return rec, patch.ErrUnprocessable{Err: err}
}
