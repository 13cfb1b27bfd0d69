//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package relevancy scores how relevant an answer is to the user input.
//
// Two providers are available: an embedding-based one that compares the
// input against questions the answer could be answering, and a judge-only
// fallback that issues per-statement verdicts.
package relevancy

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"trpc.group/trpc-go/trpc-ragkit-go/embedder"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/internal/judge"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/internal/statement"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-ragkit-go/model"
)

// MetricName is the report key shared by both relevancy providers.
const MetricName = "answer_relevancy"

// defaultQuestionCount is the number of synthetic questions the
// embedding-based provider asks the judge to generate.
const defaultQuestionCount = 3

// options captures relevancy metric configuration.
type options struct {
	judgeModel    model.Model             // judgeModel issues verdicts and generates questions.
	embedder      embedder.Embedder       // embedder is required by the embedding-based provider.
	generation    *model.GenerationConfig // generation configures judge calls.
	includeReason bool                    // includeReason asks the judge to explain the score.
	questionCount int                     // questionCount is the number of generated questions.
}

// newOptions applies Option overrides on top of defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		generation:    &judge.DefaultGeneration,
		includeReason: true,
		questionCount: defaultQuestionCount,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the relevancy metric.
type Option func(*options)

// WithJudgeModel sets the judge model.
func WithJudgeModel(judgeModel model.Model) Option {
	return func(o *options) {
		o.judgeModel = judgeModel
	}
}

// WithEmbedder sets the embedder used by the embedding-based provider.
func WithEmbedder(emb embedder.Embedder) Option {
	return func(o *options) {
		o.embedder = emb
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

// WithQuestionCount sets the number of synthetic questions generated by
// the embedding-based provider.
func WithQuestionCount(count int) Option {
	return func(o *options) {
		if count > 0 {
			o.questionCount = count
		}
	}
}

var (
	// verdictsPrompt asks the judge to rate each statement of the answer.
	verdictsPrompt = `You are an expert evaluator. Given a user input and a list of statements
extracted from an answer to that input, judge for each statement whether it
is relevant to addressing the input.

Use "yes" when the statement helps address the input, "no" when it is
unrelated to the input, and "idk" when the statement is ambiguous but not
clearly irrelevant.

For each statement output exactly three lines:
Statement: [the statement]
Verdict: [yes|no|idk]
Reason: [one short sentence, on a single line]

Input: {{.Input}}
Statements:
{{- range .Statements}}
- {{.}}
{{- end}}
`
	// verdictsPromptTemplate renders the verdicts prompt with data.
	verdictsPromptTemplate = template.Must(template.New("relevancyVerdictsPrompt").Parse(verdictsPrompt))

	// reasonPrompt asks the judge to explain the computed score.
	reasonPrompt = `An answer was scored {{printf "%.2f" .Score}} on a 0.0 to 1.0 answer
relevancy scale. The score is the fraction of statements in the answer that
are relevant to the input.

Input: {{.Input}}
Answer: {{.Answer}}
Reasons statements were judged irrelevant:
{{- range .Irrelevancies}}
- {{.}}
{{- end}}

Write one short plain-text paragraph explaining the score. Do not restate
the score mechanically; mention what the answer did or did not address.
`
	// reasonPromptTemplate renders the reason prompt with data.
	reasonPromptTemplate = template.Must(template.New("relevancyReasonPrompt").Parse(reasonPrompt))

	// verdictParser extracts per-statement verdict blocks.
	verdictParser = judge.NewVerdictParser("Statement")
)

// verdictsPromptData feeds values into the verdicts prompt template.
type verdictsPromptData struct {
	Input      string   // Input is the original user input.
	Statements []string // Statements are the sentences extracted from the answer.
}

// reasonPromptData feeds values into the reason prompt template.
type reasonPromptData struct {
	Score         float64  // Score is the computed relevancy score.
	Input         string   // Input is the original user input.
	Answer        string   // Answer is the evaluated answer.
	Irrelevancies []string // Irrelevancies are reasons for "no" verdicts.
}

// judgeRelevancy is the judge-only relevancy metric.
type judgeRelevancy struct {
	judgeModel    model.Model
	generation    *model.GenerationConfig
	includeReason bool
}

// New returns the judge-only answer relevancy metric. It requires a judge
// model and nothing else, which makes it the fallback provider.
func New(opt ...Option) (metric.Metric, error) {
	opts := newOptions(opt...)
	if opts.judgeModel == nil {
		return nil, fmt.Errorf("judge model is required")
	}
	return &judgeRelevancy{
		judgeModel:    opts.judgeModel,
		generation:    opts.generation,
		includeReason: opts.includeReason,
	}, nil
}

// Name implements the metric.Metric interface.
func (m *judgeRelevancy) Name() string { return MetricName }

// Measure implements the metric.Metric interface. The score is the
// fraction of answer statements not judged irrelevant; "idk" verdicts
// count in the answer's favor.
func (m *judgeRelevancy) Measure(ctx context.Context, testCase *metric.TestCase) (*metric.Result, error) {
	answer := strings.TrimSpace(testCase.ActualOutput)
	if answer == "" {
		score := 0.0
		return &metric.Result{Score: &score, Reason: "answer is empty"}, nil
	}

	statements, err := statement.Split(answer)
	if err != nil {
		return nil, fmt.Errorf("split answer into statements: %w", err)
	}
	if len(statements) == 0 {
		score := 0.0
		return &metric.Result{Score: &score, Reason: "no statements found in answer"}, nil
	}

	messages, err := judge.RenderPrompt(verdictsPromptTemplate, verdictsPromptData{
		Input:      testCase.Input,
		Statements: statements,
	})
	if err != nil {
		return nil, err
	}
	content, err := judge.Generate(ctx, m.judgeModel, *m.generation, messages)
	if err != nil {
		return nil, fmt.Errorf("judge statement verdicts: %w", err)
	}
	verdicts, err := verdictParser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse statement verdicts: %w", err)
	}

	noCount := 0
	irrelevancies := make([]string, 0, len(verdicts))
	for _, verdict := range verdicts {
		if verdict.Answer != judge.AnswerNo {
			continue
		}
		noCount++
		if verdict.Reason != "" {
			irrelevancies = append(irrelevancies, verdict.Reason)
		}
	}
	score := metric.Clamp(float64(len(verdicts)-noCount) / float64(len(verdicts)))

	reason, err := m.buildReason(ctx, testCase, score, len(verdicts), noCount, irrelevancies)
	if err != nil {
		return nil, err
	}
	return &metric.Result{Score: &score, Reason: reason}, nil
}

// buildReason produces the score explanation: a judge-written paragraph
// when include-reason is on, a terse local summary otherwise.
func (m *judgeRelevancy) buildReason(ctx context.Context, testCase *metric.TestCase,
	score float64, total, noCount int, irrelevancies []string) (string, error) {
	if !m.includeReason {
		return fmt.Sprintf("%d of %d statements address the input", total-noCount, total), nil
	}
	messages, err := judge.RenderPrompt(reasonPromptTemplate, reasonPromptData{
		Score:         score,
		Input:         testCase.Input,
		Answer:        testCase.ActualOutput,
		Irrelevancies: irrelevancies,
	})
	if err != nil {
		return "", err
	}
	reason, err := judge.Generate(ctx, m.judgeModel, *m.generation, messages)
	if err != nil {
		return "", fmt.Errorf("judge relevancy reason: %w", err)
	}
	return strings.TrimSpace(reason), nil
}
