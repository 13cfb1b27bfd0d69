//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides span attribute helpers for chat and embedding
// calls made by trpc-ragkit-go.
package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation name constants used in span names and attributes.
const (
	OperationChat       = "chat"
	OperationEmbeddings = "embeddings"
)

// GenAI semantic convention attribute keys.
const (
	keyGenAIOperationName     = "gen_ai.operation.name"
	keyGenAIRequestModel      = "gen_ai.request.model"
	keyGenAIUsageInputTokens  = "gen_ai.usage.input_tokens"
	keyGenAIUsageOutputTokens = "gen_ai.usage.output_tokens"
	keyGenAIEmbeddingsDims    = "gen_ai.embeddings.dimension.count"
	keyErrorType              = "error.type"
	keyErrorMessage           = "error.message"

	valueDefaultErrorType = "_OTHER"
)

// ChatSpanName creates a span name for a chat call.
func ChatSpanName(requestModel string) string {
	return fmt.Sprintf("%s %s", OperationChat, requestModel)
}

// EmbeddingsSpanName creates a span name for an embeddings call.
func EmbeddingsSpanName(requestModel string) string {
	return fmt.Sprintf("%s %s", OperationEmbeddings, requestModel)
}

// ChatAttributes represents the attributes of a chat call.
type ChatAttributes struct {
	RequestModel string
	InputTokens  *int64
	OutputTokens *int64
	Error        error
}

// TraceChat traces the invocation of a chat call.
func TraceChat(span trace.Span, chatAttributes *ChatAttributes) {
	attrs := []attribute.KeyValue{
		attribute.String(keyGenAIOperationName, OperationChat),
		attribute.String(keyGenAIRequestModel, chatAttributes.RequestModel),
	}
	if chatAttributes.InputTokens != nil {
		attrs = append(attrs, attribute.Int64(keyGenAIUsageInputTokens, *chatAttributes.InputTokens))
	}
	if chatAttributes.OutputTokens != nil {
		attrs = append(attrs, attribute.Int64(keyGenAIUsageOutputTokens, *chatAttributes.OutputTokens))
	}
	if chatAttributes.Error != nil {
		attrs = append(attrs,
			attribute.String(keyErrorType, valueDefaultErrorType),
			attribute.String(keyErrorMessage, chatAttributes.Error.Error()))
		span.SetStatus(codes.Error, chatAttributes.Error.Error())
	}
	span.SetAttributes(attrs...)
}

// EmbeddingAttributes represents the attributes of an embedding call.
type EmbeddingAttributes struct {
	RequestModel string
	Dimensions   int
	InputTokens  *int64
	Error        error
}

// TraceEmbedding traces the invocation of an embedding call.
func TraceEmbedding(span trace.Span, embeddingAttributes *EmbeddingAttributes) {
	attrs := []attribute.KeyValue{
		attribute.String(keyGenAIOperationName, OperationEmbeddings),
		attribute.String(keyGenAIRequestModel, embeddingAttributes.RequestModel),
		attribute.Int(keyGenAIEmbeddingsDims, embeddingAttributes.Dimensions),
	}
	if embeddingAttributes.InputTokens != nil {
		attrs = append(attrs, attribute.Int64(keyGenAIUsageInputTokens, *embeddingAttributes.InputTokens))
	}
	if embeddingAttributes.Error != nil {
		attrs = append(attrs,
			attribute.String(keyErrorType, valueDefaultErrorType),
			attribute.String(keyErrorMessage, embeddingAttributes.Error.Error()))
		span.SetStatus(codes.Error, embeddingAttributes.Error.Error())
	}
	span.SetAttributes(attrs...)
}
