//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package openai provides an OpenAI-compatible model implementation.
package openai

import (
	"net/http"

	openaiopt "github.com/openai/openai-go/option"
)

// defaultChannelBufferSize is the default response channel buffer size.
// Requests are executed non-streaming, so a single slot is enough for
// the final response.
const defaultChannelBufferSize = 1

// options contains configuration options for creating a Model.
type options struct {
	// APIKey for the OpenAI client.
	// If not provided, the OPENAI_API_KEY environment variable is used.
	APIKey string
	// BaseURL for the OpenAI client. Optional, for OpenAI-compatible APIs.
	// If not provided, the OPENAI_BASE_URL environment variable is used.
	BaseURL string
	// ChannelBufferSize is the buffer size for response channels.
	ChannelBufferSize int
	// HTTPClient is the HTTP client used for API requests.
	HTTPClient *http.Client
	// OpenAIOptions are extra options for the OpenAI client.
	OpenAIOptions []openaiopt.RequestOption
}

// defaultOptions is the default configuration for the model.
var defaultOptions = options{
	ChannelBufferSize: defaultChannelBufferSize,
}

// Option is a function that configures the model.
type Option func(*options)

// WithAPIKey sets the OpenAI API key.
func WithAPIKey(apiKey string) Option {
	return func(o *options) {
		o.APIKey = apiKey
	}
}

// WithBaseURL sets the base URL for the OpenAI API.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.BaseURL = baseURL
	}
}

// WithChannelBufferSize sets the buffer size for response channels.
func WithChannelBufferSize(size int) Option {
	return func(o *options) {
		if size <= 0 {
			size = defaultChannelBufferSize
		}
		o.ChannelBufferSize = size
	}
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.HTTPClient = client
	}
}

// WithOpenAIOptions sets extra options for the OpenAI client.
func WithOpenAIOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *options) {
		o.OpenAIOptions = append(o.OpenAIOptions, opts...)
	}
}

// WithHeaders appends static HTTP headers to all OpenAI requests.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		if len(headers) == 0 {
			return
		}
		for k, v := range headers {
			o.OpenAIOptions = append(o.OpenAIOptions, openaiopt.WithHeader(k, v))
		}
	}
}
