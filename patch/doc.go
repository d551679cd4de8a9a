// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package patch defines the error vocabulary shared by the partial
// update pipeline.
//
// The pipeline itself is spread over several packages.  jsonvalue
// holds an immutable JSON document model; jsonpointer addresses
// locations inside it (RFC 6901); jsonpatch applies RFC 6902
// operation lists and mergepatch applies RFC 7396 merge documents;
// bridge converts typed records to and from values using explicit
// field tables; and patcher ties these together, taking a typed record
// and a patch document and returning a new typed record.
//
// Every failure in that pipeline is one of a small number of kinds,
// each with its own error type here.  Callers that only care about
// the coarse outcome can look for ErrUnprocessable; callers that want
// detail can use KindOf or errors.As on the specific types.
package patch
