//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package model

// ErrorType identifies the category of a response error.
type ErrorType string

const (
	// ErrorTypeAPIError indicates an error returned by the model API.
	ErrorTypeAPIError ErrorType = "api_error"
	// ErrorTypeInvalidRequest indicates a malformed request.
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
)

// ResponseError carries error details from a failed model call.
type ResponseError struct {
	// Message is the human-readable error message.
	Message string `json:"message"`
	// Type is the error category.
	Type ErrorType `json:"type"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return e.Message
}

// Choice represents a single completion choice.
type Choice struct {
	// Index is the position of the choice in the response.
	Index int `json:"index"`
	// Message is the generated message.
	Message Message `json:"message"`
	// FinishReason is the reason generation stopped, if reported.
	FinishReason *string `json:"finish_reason,omitempty"`
}

// Usage contains token usage statistics for a request.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`
	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`
	// TotalTokens is the total number of tokens used.
	TotalTokens int `json:"total_tokens"`
}

// Response is a chat completion response.
type Response struct {
	// ID is the unique identifier of the response.
	ID string `json:"id,omitempty"`
	// Object is the object type, e.g. "chat.completion".
	Object string `json:"object,omitempty"`
	// Created is the creation timestamp reported by the API.
	Created int64 `json:"created,omitempty"`
	// Model is the model that produced the response.
	Model string `json:"model,omitempty"`
	// Choices contains the generated completions.
	Choices []Choice `json:"choices,omitempty"`
	// Usage contains token usage statistics, if reported.
	Usage *Usage `json:"usage,omitempty"`
	// Error carries error details when the call failed.
	Error *ResponseError `json:"error,omitempty"`
	// Done indicates that this is the final response on the channel.
	Done bool `json:"done"`
}

// IsFinalResponse reports whether this is the final response of a
// generation. Consumers draining the response channel stop here.
func (r *Response) IsFinalResponse() bool {
	return r.Done
}
