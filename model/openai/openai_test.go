//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openaiopt "github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-ragkit-go/model"
)

func TestNew(t *testing.T) {
	m := New("gpt-4o-mini", WithAPIKey("test-key"), WithBaseURL("https://api.custom.com"))
	require.NotNil(t, m)
	assert.Equal(t, "gpt-4o-mini", m.Info().Name)
	assert.Equal(t, defaultChannelBufferSize, m.channelBufferSize)
}

func TestGenerateContent_NilRequest(t *testing.T) {
	m := New("test-model", WithAPIKey("test-key"))

	_, err := m.GenerateContent(context.Background(), nil)
	require.EqualError(t, err, "request cannot be nil")
}

func TestGenerateContent_FinalResponse(t *testing.T) {
	var gotBody map[string]any
	var gotTenantHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		gotTenantHeader = r.Header.Get("X-Tenant")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-123",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "hello there"}, "finish_reason": "stop"}
			],
			"usage": {"prompt_tokens": 10, "completion_tokens": 2, "total_tokens": 12}
		}`))
	}))
	defer srv.Close()

	m := New("gpt-4o-mini",
		WithAPIKey("test-key"),
		WithBaseURL(srv.URL),
		WithHeaders(map[string]string{"X-Tenant": "ragkit-tests"}),
	)

	temperature := 0.2
	maxTokens := 64
	request := &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage("You are a strict judge."),
			model.NewUserMessage("Evaluate this answer."),
		},
		GenerationConfig: model.GenerationConfig{
			Temperature: &temperature,
			MaxTokens:   &maxTokens,
		},
	}

	responseChan, err := m.GenerateContent(context.Background(), request)
	require.NoError(t, err)

	var responses []*model.Response
	for response := range responseChan {
		responses = append(responses, response)
	}
	require.Len(t, responses, 1)

	rsp := responses[0]
	require.Nil(t, rsp.Error)
	assert.True(t, rsp.IsFinalResponse())
	assert.Equal(t, "chatcmpl-123", rsp.ID)
	assert.Equal(t, "gpt-4o-mini", rsp.Model)
	require.Len(t, rsp.Choices, 1)
	assert.Equal(t, model.RoleAssistant, rsp.Choices[0].Message.Role)
	assert.Equal(t, "hello there", rsp.Choices[0].Message.Content)
	require.NotNil(t, rsp.Choices[0].FinishReason)
	assert.Equal(t, "stop", *rsp.Choices[0].FinishReason)
	require.NotNil(t, rsp.Usage)
	assert.Equal(t, 10, rsp.Usage.PromptTokens)
	assert.Equal(t, 2, rsp.Usage.CompletionTokens)
	assert.Equal(t, 12, rsp.Usage.TotalTokens)

	// The wire request carries the model name, both messages and the
	// static headers.
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
	assert.Equal(t, "ragkit-tests", gotTenantHeader)
}

func TestGenerateContent_APIErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid model", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	m := New("bad-model",
		WithAPIKey("test-key"),
		WithBaseURL(srv.URL),
		WithOpenAIOptions(openaiopt.WithMaxRetries(0)),
	)

	responseChan, err := m.GenerateContent(context.Background(), &model.Request{
		Messages: []model.Message{model.NewUserMessage("hi")},
	})
	require.NoError(t, err)

	var responses []*model.Response
	for response := range responseChan {
		responses = append(responses, response)
	}
	require.Len(t, responses, 1)

	rsp := responses[0]
	require.NotNil(t, rsp.Error)
	assert.Equal(t, model.ErrorTypeAPIError, rsp.Error.Type)
	assert.NotEmpty(t, rsp.Error.Message)
	assert.True(t, rsp.IsFinalResponse())
}

func TestBuildChatRequest_GenerationConfig(t *testing.T) {
	m := New("gpt-4o-mini", WithAPIKey("test-key"))

	temperature := 0.7
	maxTokens := 128
	chatRequest := m.buildChatRequest(&model.Request{
		Messages: []model.Message{model.NewUserMessage("hi")},
		GenerationConfig: model.GenerationConfig{
			Temperature: &temperature,
			MaxTokens:   &maxTokens,
		},
	})

	require.True(t, chatRequest.Temperature.Valid())
	assert.InDelta(t, 0.7, chatRequest.Temperature.Value, 1e-9)
	require.True(t, chatRequest.MaxCompletionTokens.Valid())
	assert.Equal(t, int64(128), chatRequest.MaxCompletionTokens.Value)
}

func TestConvertMessages_Roles(t *testing.T) {
	converted := convertMessages([]model.Message{
		model.NewSystemMessage("sys"),
		model.NewUserMessage("usr"),
		model.NewAssistantMessage("asst"),
		{Role: "unknown", Content: "fallback"},
	})
	require.Len(t, converted, 4)
	assert.NotNil(t, converted[0].OfSystem)
	assert.NotNil(t, converted[1].OfUser)
	assert.NotNil(t, converted[2].OfAssistant)
	assert.NotNil(t, converted[3].OfUser)
}
