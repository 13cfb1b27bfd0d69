//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"trpc.group/trpc-go/trpc-ragkit-go/embedder"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-ragkit-go/model"
)

// options captures evaluator configuration.
type options struct {
	judgeModel    model.Model       // judgeModel runs the judge-based metrics.
	embedder      embedder.Embedder // embedder enables the embedding-based relevancy provider.
	families      []metric.Family   // families overrides the default metric families.
	includeReason bool              // includeReason asks metrics to explain their scores.
}

// newOptions applies Option overrides on top of defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		includeReason: true,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the evaluator.
type Option func(*options)

// WithJudgeModel sets the judge model used by the metrics. When no judge
// model is configured and OPENAI_API_KEY is set, a default OpenAI judge
// is constructed.
func WithJudgeModel(judgeModel model.Model) Option {
	return func(o *options) {
		o.judgeModel = judgeModel
	}
}

// WithEmbedder sets the embedder that enables the embedding-based
// relevancy provider.
func WithEmbedder(emb embedder.Embedder) Option {
	return func(o *options) {
		o.embedder = emb
	}
}

// WithMetricFamilies overrides the default metric families. Families are
// evaluated in the given order.
func WithMetricFamilies(families ...metric.Family) Option {
	return func(o *options) {
		o.families = families
	}
}

// WithIncludeReason controls whether metrics explain their scores with an
// extra judge call. Defaults to true.
func WithIncludeReason(includeReason bool) Option {
	return func(o *options) {
		o.includeReason = includeReason
	}
}
