//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package judge

import (
	"context"
	"errors"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-ragkit-go/model"
)

// stubModel returns a canned final response, or an error response.
type stubModel struct {
	content string
	err     error
}

func (m *stubModel) GenerateContent(_ context.Context, _ *model.Request) (<-chan *model.Response, error) {
	ch := make(chan *model.Response, 1)
	go func() {
		defer close(ch)
		if m.err != nil {
			ch <- &model.Response{
				Error: &model.ResponseError{Message: m.err.Error(), Type: model.ErrorTypeAPIError},
				Done:  true,
			}
			return
		}
		ch <- &model.Response{
			Choices: []model.Choice{{Message: model.Message{Role: model.RoleAssistant, Content: m.content}}},
			Done:    true,
		}
	}()
	return ch, nil
}

func (m *stubModel) Info() model.Info { return model.Info{Name: "stub"} }

// silentModel closes the channel without ever sending a final response.
type silentModel struct{}

func (m *silentModel) GenerateContent(_ context.Context, _ *model.Request) (<-chan *model.Response, error) {
	ch := make(chan *model.Response)
	close(ch)
	return ch, nil
}

func (m *silentModel) Info() model.Info { return model.Info{Name: "silent"} }

func TestRenderPrompt(t *testing.T) {
	tmpl := template.Must(template.New("greeting").Parse("Judge this: {{.Answer}}"))

	messages, err := RenderPrompt(tmpl, struct{ Answer string }{Answer: "42"})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, "Judge this: 42", messages[0].Content)
}

func TestGenerate_FinalResponse(t *testing.T) {
	content, err := Generate(context.Background(), &stubModel{content: "Verdict: yes"},
		DefaultGeneration, []model.Message{model.NewUserMessage("judge")})
	require.NoError(t, err)
	assert.Equal(t, "Verdict: yes", content)
}

func TestGenerate_ResponseError(t *testing.T) {
	_, err := Generate(context.Background(), &stubModel{err: errors.New("boom")},
		DefaultGeneration, []model.Message{model.NewUserMessage("judge")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response error")
	assert.Contains(t, err.Error(), "boom")
}

func TestGenerate_NoFinalResponse(t *testing.T) {
	_, err := Generate(context.Background(), &silentModel{},
		DefaultGeneration, []model.Message{model.NewUserMessage("judge")})
	require.EqualError(t, err, "no final response")
}

func TestVerdictParser(t *testing.T) {
	parser := NewVerdictParser("Statement")
	content := `Statement: The sky is blue.
Verdict: YES
Reason: Directly addresses the question.

Statement: Water is wet.
Verdict: no
Reason: Unrelated to the question.

Statement: Maybe it rains.
Verdict: idk
Reason: Ambiguous relation.`

	verdicts, err := parser.Parse(content)
	require.NoError(t, err)
	require.Len(t, verdicts, 3)

	assert.Equal(t, "The sky is blue.", verdicts[0].Subject)
	assert.Equal(t, AnswerYes, verdicts[0].Answer)
	assert.Equal(t, "Directly addresses the question.", verdicts[0].Reason)

	assert.Equal(t, AnswerNo, verdicts[1].Answer)
	assert.Equal(t, "Unrelated to the question.", verdicts[1].Reason)

	assert.Equal(t, AnswerIdk, verdicts[2].Answer)
}

func TestVerdictParser_NoBlocks(t *testing.T) {
	parser := NewVerdictParser("Statement")

	_, err := parser.Parse("I refuse to answer in the requested format.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no verdict blocks found")
}

func TestListParser(t *testing.T) {
	parser := NewListParser("Question")
	content := `Question: What color is the sky?
Question: Why does the sky appear blue?
Some trailing commentary.`

	items := parser.Parse(content)
	require.Len(t, items, 2)
	assert.Equal(t, "What color is the sky?", items[0])
	assert.Equal(t, "Why does the sky appear blue?", items[1])
}

func TestListParser_Empty(t *testing.T) {
	parser := NewListParser("Opinion")
	assert.Empty(t, parser.Parse("No opinions present in the text."))
}
