//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package relevancy

import (
	"context"
	"fmt"
	"math"
	"strings"
	"text/template"

	"trpc.group/trpc-go/trpc-ragkit-go/embedder"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/internal/judge"
	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-ragkit-go/model"
)

var (
	// questionsPrompt asks the judge to reverse-engineer questions the
	// answer could be answering.
	questionsPrompt = `Generate exactly {{.Count}} concise questions that the following answer
would directly and fully answer. Output one line per question in the form:
Question: [the question]

Answer: {{.Answer}}
`
	// questionsPromptTemplate renders the questions prompt with data.
	questionsPromptTemplate = template.Must(template.New("relevancyQuestionsPrompt").Parse(questionsPrompt))

	// questionParser extracts generated question lines.
	questionParser = judge.NewListParser("Question")
)

// questionsPromptData feeds values into the questions prompt template.
type questionsPromptData struct {
	Count  int    // Count is the number of questions to generate.
	Answer string // Answer is the evaluated answer.
}

// embeddingRelevancy scores relevancy as the mean cosine similarity
// between the input and judge-generated questions the answer could be
// answering.
type embeddingRelevancy struct {
	judgeModel    model.Model
	embedder      embedder.Embedder
	generation    *model.GenerationConfig
	questionCount int
}

// NewEmbedding returns the embedding-based answer relevancy metric. It
// requires both a judge model and an embedder.
func NewEmbedding(opt ...Option) (metric.Metric, error) {
	opts := newOptions(opt...)
	if opts.judgeModel == nil {
		return nil, fmt.Errorf("judge model is required")
	}
	if opts.embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	return &embeddingRelevancy{
		judgeModel:    opts.judgeModel,
		embedder:      opts.embedder,
		generation:    opts.generation,
		questionCount: opts.questionCount,
	}, nil
}

// Name implements the metric.Metric interface.
func (m *embeddingRelevancy) Name() string { return MetricName }

// Measure implements the metric.Metric interface. This provider does not
// explain its score, so Reason stays empty.
func (m *embeddingRelevancy) Measure(ctx context.Context, testCase *metric.TestCase) (*metric.Result, error) {
	answer := strings.TrimSpace(testCase.ActualOutput)
	if answer == "" {
		score := 0.0
		return &metric.Result{Score: &score}, nil
	}

	messages, err := judge.RenderPrompt(questionsPromptTemplate, questionsPromptData{
		Count:  m.questionCount,
		Answer: answer,
	})
	if err != nil {
		return nil, err
	}
	content, err := judge.Generate(ctx, m.judgeModel, *m.generation, messages)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	questions := questionParser.Parse(content)
	if len(questions) == 0 {
		return nil, fmt.Errorf("no generated questions found in response")
	}

	inputEmbedding, err := m.embedder.GetEmbedding(ctx, testCase.Input)
	if err != nil {
		return nil, fmt.Errorf("embed input: %w", err)
	}

	similarities := make([]float64, 0, len(questions))
	for _, question := range questions {
		questionEmbedding, err := m.embedder.GetEmbedding(ctx, question)
		if err != nil {
			return nil, fmt.Errorf("embed generated question: %w", err)
		}
		similarities = append(similarities, cosineSimilarity(inputEmbedding, questionEmbedding))
	}

	score := metric.Clamp(metric.Mean(similarities))
	return &metric.Result{Score: &score}, nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched or zero-magnitude vectors yield 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
