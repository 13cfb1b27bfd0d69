//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package loader

// SourceKind tells whether an input was a local file or a web link.
type SourceKind string

// Source kinds.
const (
	KindFile SourceKind = "file"
	KindLink SourceKind = "link"
)

// Status is the terminal state of one input.
type Status string

// Outcome statuses.
const (
	// StatusLoaded means documents were produced for the input.
	StatusLoaded Status = "loaded"
	// StatusSkipped means the input was ignored without error
	// (e.g., unsupported file extension).
	StatusSkipped Status = "skipped"
	// StatusFailed means the input errored; Err carries the cause.
	StatusFailed Status = "failed"
)

// Outcome records what happened to a single input. Every file and link
// passed to the loader yields exactly one Outcome, in input order.
type Outcome struct {
	// Source is the file path or URL as given.
	Source string `json:"source"`

	// Kind distinguishes files from links.
	Kind SourceKind `json:"kind"`

	// Status is the terminal state of the input.
	Status Status `json:"status"`

	// Documents is the number of documents produced.
	Documents int `json:"documents"`

	// Err is the failure cause when Status is StatusFailed.
	Err error `json:"-"`
}
