//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package metric provides evaluation metrics for generated answers.
package metric

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// TestCase is a single evaluation case: the user input, the generated
// answer, and the context the answer was produced from.
type TestCase struct {
	// Input is the original user question or prompt.
	Input string `json:"input"`
	// ActualOutput is the generated answer under evaluation.
	ActualOutput string `json:"actual_output"`
	// Context is the ground-truth context for the answer.
	Context []string `json:"context,omitempty"`
	// RetrievalContext is the retrieved context the answer was built from.
	RetrievalContext []string `json:"retrieval_context,omitempty"`
}

// Result is the outcome of measuring one metric.
type Result struct {
	// Score is the metric score in [0, 1]. Nil when scoring failed.
	Score *float64 `json:"score"`
	// Reason explains the score.
	Reason string `json:"reason"`
}

// Metric evaluates one aspect of a test case.
type Metric interface {
	// Name returns the metric name used as the report key.
	Name() string
	// Measure scores the test case.
	Measure(ctx context.Context, testCase *TestCase) (*Result, error)
}

// Provider is one way of building a metric, e.g. embedding-based answer
// relevancy as opposed to judge-only answer relevancy.
type Provider struct {
	// Name identifies the provider, e.g. "relevancy-embedding".
	Name string
	// Build constructs the metric. It fails when the provider's
	// requirements (judge model, embedder) are not satisfied.
	Build func() (Metric, error)
}

// Family is an ordered fallback chain of providers for one metric. The
// first provider whose Build succeeds supplies the family's metric.
type Family struct {
	// Name identifies the family, e.g. "relevancy".
	Name string
	// Providers are tried in order.
	Providers []Provider
}

// Resolve returns the metric from the first provider that builds
// successfully. When every provider fails, the accumulated build errors
// are returned so the caller can log why the family was skipped.
func (f Family) Resolve() (Metric, error) {
	var errs error
	for _, provider := range f.Providers {
		m, err := provider.Build()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("provider %s: %w", provider.Name, err))
			continue
		}
		return m, nil
	}
	if errs == nil {
		return nil, fmt.Errorf("family %s has no providers", f.Name)
	}
	return nil, errs
}

// Mean returns the arithmetic mean of scores, 0 for an empty slice.
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, score := range scores {
		total += score
	}
	return total / float64(len(scores))
}

// Clamp bounds a score to the [0, 1] interval.
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
