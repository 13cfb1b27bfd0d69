//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package hallucination scores how much a generated answer contradicts
// the provided context. Lower scores are better: 0 means the answer
// agrees with every context item.
package hallucination

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/internal/judge"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-ragkit-go/model"
)

// MetricName is the report key for the hallucination metric.
const MetricName = "hallucination"

// options captures hallucination metric configuration.
type options struct {
	judgeModel    model.Model             // judgeModel issues per-context verdicts.
	generation    *model.GenerationConfig // generation configures judge calls.
	includeReason bool                    // includeReason asks the judge to explain the score.
}

// newOptions applies Option overrides on top of defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		generation:    &judge.DefaultGeneration,
		includeReason: true,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the hallucination metric.
type Option func(*options)

// WithJudgeModel sets the judge model.
func WithJudgeModel(judgeModel model.Model) Option {
	return func(o *options) {
		o.judgeModel = judgeModel
	}
}

// WithGeneration sets the generation configuration for judge calls.
func WithGeneration(generation *model.GenerationConfig) Option {
	return func(o *options) {
		o.generation = generation
	}
}

// WithIncludeReason controls whether the judge explains the score.
func WithIncludeReason(includeReason bool) Option {
	return func(o *options) {
		o.includeReason = includeReason
	}
}

var (
	// verdictsPrompt asks the judge for one agree/contradict verdict per
	// context item.
	verdictsPrompt = `You are an expert evaluator. For each context below, judge whether the
answer agrees with it. Use "yes" when the answer agrees with or does not
dispute the context, and "no" when the answer contradicts it. Lean toward
"yes" when the answer merely omits details mentioned in the context.

For each context output exactly three lines:
Context: [short echo of the context]
Verdict: [yes|no]
Reason: [one short sentence, on a single line]

Answer: {{.Answer}}
Contexts:
{{- range .Contexts}}
- {{.}}
{{- end}}
`
	// verdictsPromptTemplate renders the verdicts prompt with data.
	verdictsPromptTemplate = template.Must(template.New("hallucinationVerdictsPrompt").Parse(verdictsPrompt))

	// reasonPrompt asks the judge to explain the computed score.
	reasonPrompt = `An answer was scored {{printf "%.2f" .Score}} on a 0.0 to 1.0
hallucination scale where 0.0 means full agreement with the context and
1.0 means every context item is contradicted.

Answer: {{.Answer}}
Reasons context items were judged contradicted:
{{- range .Contradictions}}
- {{.}}
{{- end}}

Write one short plain-text paragraph explaining the score.
`
	// reasonPromptTemplate renders the reason prompt with data.
	reasonPromptTemplate = template.Must(template.New("hallucinationReasonPrompt").Parse(reasonPrompt))

	// verdictParser extracts per-context verdict blocks.
	verdictParser = judge.NewVerdictParser("Context")
)

// verdictsPromptData feeds values into the verdicts prompt template.
type verdictsPromptData struct {
	Answer   string   // Answer is the evaluated answer.
	Contexts []string // Contexts are the ground-truth context items.
}

// reasonPromptData feeds values into the reason prompt template.
type reasonPromptData struct {
	Score          float64  // Score is the computed hallucination score.
	Answer         string   // Answer is the evaluated answer.
	Contradictions []string // Contradictions are reasons for "no" verdicts.
}

// hallucinationMetric is the judge-based hallucination metric.
type hallucinationMetric struct {
	judgeModel    model.Model
	generation    *model.GenerationConfig
	includeReason bool
}

// New returns the hallucination metric. It requires a judge model.
func New(opt ...Option) (metric.Metric, error) {
	opts := newOptions(opt...)
	if opts.judgeModel == nil {
		return nil, fmt.Errorf("judge model is required")
	}
	return &hallucinationMetric{
		judgeModel:    opts.judgeModel,
		generation:    opts.generation,
		includeReason: opts.includeReason,
	}, nil
}

// Name implements the metric.Metric interface.
func (m *hallucinationMetric) Name() string { return MetricName }

// Measure implements the metric.Metric interface. The score is the
// fraction of context items the answer contradicts, one verdict per item.
// Measuring without context is an error.
func (m *hallucinationMetric) Measure(ctx context.Context, testCase *metric.TestCase) (*metric.Result, error) {
	if len(testCase.Context) == 0 {
		return nil, fmt.Errorf("context must not be empty")
	}

	messages, err := judge.RenderPrompt(verdictsPromptTemplate, verdictsPromptData{
		Answer:   testCase.ActualOutput,
		Contexts: testCase.Context,
	})
	if err != nil {
		return nil, err
	}
	content, err := judge.Generate(ctx, m.judgeModel, *m.generation, messages)
	if err != nil {
		return nil, fmt.Errorf("judge context verdicts: %w", err)
	}
	verdicts, err := verdictParser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse context verdicts: %w", err)
	}

	contradictedCount := 0
	contradictions := make([]string, 0, len(verdicts))
	for _, verdict := range verdicts {
		if verdict.Answer == judge.AnswerYes {
			continue
		}
		contradictedCount++
		if verdict.Reason != "" {
			contradictions = append(contradictions, verdict.Reason)
		}
	}
	score := metric.Clamp(float64(contradictedCount) / float64(len(verdicts)))

	reason, err := m.buildReason(ctx, testCase, score, contradictions)
	if err != nil {
		return nil, err
	}
	return &metric.Result{Score: &score, Reason: reason}, nil
}

// buildReason produces the score explanation: a judge-written paragraph
// when include-reason is on, the joined contradiction reasons otherwise.
func (m *hallucinationMetric) buildReason(ctx context.Context, testCase *metric.TestCase,
	score float64, contradictions []string) (string, error) {
	if !m.includeReason {
		return strings.Join(contradictions, "\n"), nil
	}
	messages, err := judge.RenderPrompt(reasonPromptTemplate, reasonPromptData{
		Score:          score,
		Answer:         testCase.ActualOutput,
		Contradictions: contradictions,
	})
	if err != nil {
		return "", err
	}
	reason, err := judge.Generate(ctx, m.judgeModel, *m.generation, messages)
	if err != nil {
		return "", fmt.Errorf("judge hallucination reason: %w", err)
	}
	return strings.TrimSpace(reason), nil
}
