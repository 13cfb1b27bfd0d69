//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package evaluation scores generated answers against RAG quality
// metrics: answer relevancy, bias and hallucination.
package evaluation

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-ragkit-go/embedder"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/metric/bias"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/metric/hallucination"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/metric/relevancy"
	"trpc.group/trpc-go/trpc-ragkit-go/log"
	"trpc.group/trpc-go/trpc-ragkit-go/model"
	openaimodel "trpc.group/trpc-go/trpc-ragkit-go/model/openai"
)

// TestCase is a single evaluation case.
type TestCase = metric.TestCase

// defaultJudgeModelName is the OpenAI model used when no judge model is
// configured but OPENAI_API_KEY is present.
const defaultJudgeModelName = "gpt-4o-mini"

// Report is the outcome of evaluating one answer.
type Report struct {
	// ID uniquely identifies this evaluation run.
	ID string `json:"id"`
	// Metrics maps metric names to their results. Metrics whose family
	// could not be built do not appear; metrics that failed while scoring
	// appear with a nil score and the error in the reason.
	Metrics map[string]*metric.Result `json:"metrics"`
	// Aggregate is the arithmetic mean of the numeric metric scores, nil
	// when there are none. Score directions are not normalized before
	// averaging: relevancy is higher-better while bias and hallucination
	// are lower-better, so the aggregate is a rough health signal only.
	Aggregate *float64 `json:"aggregate"`
}

// Evaluator runs a fixed, ordered set of metric families over answers.
// Each call returns its own Report; evaluators hold no per-call state and
// are safe for concurrent use.
type Evaluator struct {
	judgeModel    model.Model
	embedder      embedder.Embedder
	families      []metric.Family
	includeReason bool
}

// New creates an evaluator.
func New(opt ...Option) (*Evaluator, error) {
	opts := newOptions(opt...)

	judgeModel := opts.judgeModel
	if judgeModel == nil {
		if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
			judgeModel = openaimodel.New(defaultJudgeModelName)
		}
	}

	e := &Evaluator{
		judgeModel:    judgeModel,
		embedder:      opts.embedder,
		includeReason: opts.includeReason,
	}

	e.families = opts.families
	if e.families == nil {
		e.families = e.defaultFamilies()
	}
	for _, family := range e.families {
		if len(family.Providers) == 0 {
			return nil, fmt.Errorf("metric family %s has no providers", family.Name)
		}
		for _, provider := range family.Providers {
			if provider.Build == nil {
				return nil, fmt.Errorf("metric family %s: provider %s has no build function",
					family.Name, provider.Name)
			}
		}
	}
	return e, nil
}

// Evaluate scores the answer against the configured metric families and
// returns a fresh report keyed by metric name.
//
// The contexts serve as both the ground-truth context and the retrieval
// context of the test case; judge-based metrics read whichever side they
// are defined over.
//
// Families whose providers all fail to build are skipped with a debug
// log. A metric that errors while scoring is reported with a nil score
// and the error in the reason; it never aborts the evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, input, answer string, contexts []string) (*Report, error) {
	if contexts == nil {
		contexts = []string{}
	}
	testCase := &TestCase{
		Input:            input,
		ActualOutput:     answer,
		Context:          contexts,
		RetrievalContext: contexts,
	}

	report := &Report{
		ID:      uuid.New().String(),
		Metrics: make(map[string]*metric.Result, len(e.families)),
	}

	scores := make([]float64, 0, len(e.families))
	for _, family := range e.families {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := family.Resolve()
		if err != nil {
			log.Debugf("skipping metric family %s: %v", family.Name, err)
			continue
		}
		result := measureMetric(ctx, m, testCase)
		report.Metrics[m.Name()] = result
		if result.Score != nil {
			scores = append(scores, *result.Score)
		}
	}

	if len(scores) > 0 {
		aggregate := metric.Mean(scores)
		report.Aggregate = &aggregate
	}
	return report, nil
}

// measureMetric runs one metric, rendering scoring failures as a nil
// score with the error in the reason.
func measureMetric(ctx context.Context, m metric.Metric, testCase *TestCase) *metric.Result {
	result, err := m.Measure(ctx, testCase)
	if err != nil {
		log.Warnf("metric %s failed: %v", m.Name(), err)
		return &metric.Result{Reason: fmt.Sprintf("metric error: %v", err)}
	}
	return result
}

// defaultFamilies wires the standard metric set: answer relevancy with an
// embedding-based provider falling back to judge-only, then bias, then
// hallucination. Providers that cannot satisfy their requirements fail at
// build time and the family falls through to the next provider.
func (e *Evaluator) defaultFamilies() []metric.Family {
	return []metric.Family{
		{
			Name: "relevancy",
			Providers: []metric.Provider{
				{
					Name: "relevancy-embedding",
					Build: func() (metric.Metric, error) {
						return relevancy.NewEmbedding(
							relevancy.WithJudgeModel(e.judgeModel),
							relevancy.WithEmbedder(e.embedder),
							relevancy.WithIncludeReason(e.includeReason),
						)
					},
				},
				{
					Name: "relevancy-judge",
					Build: func() (metric.Metric, error) {
						return relevancy.New(
							relevancy.WithJudgeModel(e.judgeModel),
							relevancy.WithIncludeReason(e.includeReason),
						)
					},
				},
			},
		},
		{
			Name: "bias",
			Providers: []metric.Provider{
				{
					Name: "bias-judge",
					Build: func() (metric.Metric, error) {
						return bias.New(
							bias.WithJudgeModel(e.judgeModel),
							bias.WithIncludeReason(e.includeReason),
						)
					},
				},
			},
		},
		{
			Name: "hallucination",
			Providers: []metric.Provider{
				{
					Name: "hallucination-judge",
					Build: func() (metric.Metric, error) {
						return hallucination.New(
							hallucination.WithJudgeModel(e.judgeModel),
							hallucination.WithIncludeReason(e.includeReason),
						)
					},
				},
			},
		},
	}
}
