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
	"errors"
	"os"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	itelemetry "trpc.group/trpc-go/trpc-ragkit-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-ragkit-go/model"
	"trpc.group/trpc-go/trpc-ragkit-go/telemetry/trace"
)

// Verify that Model implements the model.Model interface.
var _ model.Model = (*Model)(nil)

// Environment variables consulted when no explicit credentials are given.
const (
	envAPIKey  = "OPENAI_API_KEY"
	envBaseURL = "OPENAI_BASE_URL"
)

// Model implements the model.Model interface for the OpenAI API and
// OpenAI-compatible endpoints. Requests are executed non-streaming:
// callers receive exactly one final response on the channel.
type Model struct {
	client            openai.Client
	name              string
	channelBufferSize int
}

// New creates a new OpenAI-like model.
func New(name string, opts ...Option) *Model {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}

	// Fall back to environment variables when not configured explicitly.
	if o.APIKey == "" {
		if val, ok := os.LookupEnv(envAPIKey); ok {
			o.APIKey = val
		}
	}
	if o.BaseURL == "" {
		if val, ok := os.LookupEnv(envBaseURL); ok {
			o.BaseURL = val
		}
	}

	var clientOpts []openaiopt.RequestOption
	if o.APIKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.BaseURL))
	}
	if o.HTTPClient != nil {
		clientOpts = append(clientOpts, openaiopt.WithHTTPClient(o.HTTPClient))
	}
	clientOpts = append(clientOpts, o.OpenAIOptions...)

	return &Model{
		client:            openai.NewClient(clientOpts...),
		name:              name,
		channelBufferSize: o.ChannelBufferSize,
	}
}

// Info implements the model.Model interface.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.name}
}

// GenerateContent implements the model.Model interface.
func (m *Model) GenerateContent(ctx context.Context, request *model.Request) (<-chan *model.Response, error) {
	if request == nil {
		return nil, errors.New("request cannot be nil")
	}

	chatRequest := m.buildChatRequest(request)
	responseChan := make(chan *model.Response, m.channelBufferSize)

	go func() {
		defer close(responseChan)
		m.handleNonStreamingResponse(ctx, chatRequest, responseChan)
	}()

	return responseChan, nil
}

// buildChatRequest converts a model.Request to OpenAI chat request parameters.
func (m *Model) buildChatRequest(request *model.Request) openai.ChatCompletionNewParams {
	chatRequest := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(m.name),
		Messages: convertMessages(request.Messages),
	}

	// MaxTokens is deprecated and not compatible with o-series models.
	// Use MaxCompletionTokens instead.
	if request.MaxTokens != nil {
		chatRequest.MaxCompletionTokens = openai.Int(int64(*request.MaxTokens))
	}
	if request.Temperature != nil {
		chatRequest.Temperature = openai.Float(*request.Temperature)
	}

	return chatRequest
}

// convertMessages converts our Message format to OpenAI's format.
func convertMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(msg.Content),
					},
				},
			}
		case model.RoleAssistant:
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(msg.Content),
					},
				},
			}
		default: // Default to user message if role is unknown.
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(msg.Content),
					},
				},
			}
		}
	}
	return result
}

// handleNonStreamingResponse executes the chat request and delivers the
// single final response (or an error response) on the channel.
func (m *Model) handleNonStreamingResponse(
	ctx context.Context,
	chatRequest openai.ChatCompletionNewParams,
	responseChan chan<- *model.Response,
) {
	ctx, span := trace.Tracer.Start(ctx, itelemetry.ChatSpanName(m.name))
	defer span.End()

	chatCompletion, err := m.client.Chat.Completions.New(ctx, chatRequest)
	if err != nil {
		itelemetry.TraceChat(span, &itelemetry.ChatAttributes{RequestModel: m.name, Error: err})
		select {
		case responseChan <- &model.Response{
			Error: &model.ResponseError{
				Message: err.Error(),
				Type:    model.ErrorTypeAPIError,
			},
			Done: true,
		}:
		case <-ctx.Done():
		}
		return
	}

	response := &model.Response{
		ID:      chatCompletion.ID,
		Object:  string(chatCompletion.Object),
		Created: chatCompletion.Created,
		Model:   chatCompletion.Model,
		Done:    true,
	}

	if len(chatCompletion.Choices) > 0 {
		response.Choices = make([]model.Choice, len(chatCompletion.Choices))
		for i, choice := range chatCompletion.Choices {
			response.Choices[i] = model.Choice{
				Index: int(choice.Index),
				Message: model.Message{
					Role:    model.RoleAssistant,
					Content: choice.Message.Content,
				},
			}
			if choice.FinishReason != "" {
				finishReason := choice.FinishReason
				response.Choices[i].FinishReason = &finishReason
			}
		}
	}

	chatAttributes := &itelemetry.ChatAttributes{RequestModel: m.name}
	if chatCompletion.Usage.PromptTokens > 0 || chatCompletion.Usage.CompletionTokens > 0 {
		response.Usage = &model.Usage{
			PromptTokens:     int(chatCompletion.Usage.PromptTokens),
			CompletionTokens: int(chatCompletion.Usage.CompletionTokens),
			TotalTokens:      int(chatCompletion.Usage.TotalTokens),
		}
		inputTokens := chatCompletion.Usage.PromptTokens
		outputTokens := chatCompletion.Usage.CompletionTokens
		chatAttributes.InputTokens = &inputTokens
		chatAttributes.OutputTokens = &outputTokens
	}
	itelemetry.TraceChat(span, chatAttributes)

	select {
	case responseChan <- response:
	case <-ctx.Done():
	}
}
