//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package model

// GenerationConfig contains the generation parameters for a request.
type GenerationConfig struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens *int `json:"max_tokens,omitempty"`
	// Temperature controls the randomness of the output.
	Temperature *float64 `json:"temperature,omitempty"`
	// Stream indicates whether the response should be streamed.
	// Judge calls are non-streaming and leave this false.
	Stream bool `json:"stream,omitempty"`
}

// Request is a chat completion request.
type Request struct {
	// Messages is the conversation history to send to the model.
	Messages []Message `json:"messages"`

	// GenerationConfig contains the generation parameters.
	GenerationConfig `json:",inline"`
}
