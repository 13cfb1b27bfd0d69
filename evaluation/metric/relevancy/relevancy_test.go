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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-ragkit-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-ragkit-go/model"
)

// scriptedModel returns canned responses, one per call, recording prompts.
type scriptedModel struct {
	responses []string
	prompts   []string
}

func (m *scriptedModel) GenerateContent(_ context.Context, request *model.Request) (<-chan *model.Response, error) {
	if len(request.Messages) > 0 {
		m.prompts = append(m.prompts, request.Messages[len(request.Messages)-1].Content)
	}
	idx := len(m.prompts) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	ch := make(chan *model.Response, 1)
	ch <- &model.Response{
		Choices: []model.Choice{{Message: model.Message{Role: model.RoleAssistant, Content: m.responses[idx]}}},
		Done:    true,
	}
	close(ch)
	return ch, nil
}

func (m *scriptedModel) Info() model.Info { return model.Info{Name: "scripted"} }

const fourVerdicts = `Statement: The sky is blue.
Verdict: yes
Reason: Directly answers the question.

Statement: Grass is green.
Verdict: no
Reason: Talks about grass instead of the sky.

Statement: It depends on the weather.
Verdict: idk
Reason: Loosely related to sky color.

Statement: Blue light scatters most.
Verdict: yes
Reason: Explains the color of the sky.`

func TestNew_RequiresJudgeModel(t *testing.T) {
	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "judge model is required")
}

func TestJudgeRelevancy_Score(t *testing.T) {
	judgeModel := &scriptedModel{responses: []string{fourVerdicts}}
	m, err := New(WithJudgeModel(judgeModel), WithIncludeReason(false))
	require.NoError(t, err)
	assert.Equal(t, MetricName, m.Name())

	result, err := m.Measure(context.Background(), testCaseFourStatements())
	require.NoError(t, err)
	require.NotNil(t, result.Score)
	// One "no" out of four verdicts; "idk" counts in favor.
	assert.InDelta(t, 0.75, *result.Score, 1e-9)
	assert.Equal(t, "3 of 4 statements address the input", result.Reason)
	assert.Len(t, judgeModel.prompts, 1)
}

func TestJudgeRelevancy_IncludeReason(t *testing.T) {
	judgeModel := &scriptedModel{responses: []string{
		fourVerdicts,
		"The answer mostly addresses the question, drifting once into grass color.",
	}}
	m, err := New(WithJudgeModel(judgeModel))
	require.NoError(t, err)

	result, err := m.Measure(context.Background(), testCaseFourStatements())
	require.NoError(t, err)
	assert.Equal(t, "The answer mostly addresses the question, drifting once into grass color.", result.Reason)
	require.Len(t, judgeModel.prompts, 2)
	assert.Contains(t, judgeModel.prompts[0], "Statements:")
	assert.Contains(t, judgeModel.prompts[1], "0.75")
}

func TestJudgeRelevancy_EmptyAnswer(t *testing.T) {
	judgeModel := &scriptedModel{responses: []string{fourVerdicts}}
	m, err := New(WithJudgeModel(judgeModel))
	require.NoError(t, err)

	result, err := m.Measure(context.Background(), &metric.TestCase{
		Input:        "What color is the sky?",
		ActualOutput: "   ",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Score)
	assert.Equal(t, 0.0, *result.Score)
	assert.Equal(t, "answer is empty", result.Reason)
	assert.Empty(t, judgeModel.prompts)
}

func TestJudgeRelevancy_UnparseableVerdicts(t *testing.T) {
	judgeModel := &scriptedModel{responses: []string{"I cannot comply with the requested format."}}
	m, err := New(WithJudgeModel(judgeModel))
	require.NoError(t, err)

	_, err = m.Measure(context.Background(), testCaseFourStatements())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse statement verdicts")
}

func testCaseFourStatements() *metric.TestCase {
	return &metric.TestCase{
		Input: "What color is the sky?",
		ActualOutput: "The sky is blue. Grass is green. " +
			"It depends on the weather. Blue light scatters most.",
	}
}
