//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package loader

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
)

// Result is the product of a single Load call. Loads never share state:
// every call returns a fresh Result.
type Result struct {
	// Documents holds all loaded documents in input order.
	Documents []*document.Document

	// Outcomes holds one entry per input, files first, links second,
	// each in the order they were configured.
	Outcomes []Outcome
}

// Err aggregates the failed outcomes into a single error, or nil when
// nothing failed. It gives hard-fail semantics to callers that do not
// want to inspect outcomes one by one.
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, outcome := range r.Outcomes {
		if outcome.Status != StatusFailed || outcome.Err == nil {
			continue
		}
		merr = multierror.Append(merr, fmt.Errorf("%s %s: %w", outcome.Kind, outcome.Source, outcome.Err))
	}
	return merr.ErrorOrNil()
}
