//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package model provides the interface and request/response types for
// chat completion models used as evaluation judges.
package model

import "context"

// Model is the interface for a chat completion model.
type Model interface {
	// GenerateContent sends the request to the model and returns a channel
	// of responses. Non-streaming callers receive exactly one final
	// response on the channel before it is closed.
	GenerateContent(ctx context.Context, request *Request) (<-chan *Response, error)

	// Info returns basic information about the model.
	Info() Info
}

// Info contains basic information about a model.
type Info struct {
	// Name is the name of the model, e.g. "gpt-4o-mini".
	Name string
}
