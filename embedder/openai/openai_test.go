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
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const embeddingResponse = `{
	"object": "list",
	"data": [{"object": "embedding", "index": 0, "embedding": [0.1, 0.2, 0.3]}],
	"model": "text-embedding-3-small",
	"usage": {"prompt_tokens": 5, "total_tokens": 5}
}`

func TestNew_Defaults(t *testing.T) {
	e := New(WithAPIKey("test-key"))
	assert.Equal(t, DefaultModel, e.model)
	assert.Equal(t, DefaultDimensions, e.GetDimensions())
	assert.Equal(t, DefaultMaxRetries, e.maxRetries)
}

func TestGetEmbedding(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(embeddingResponse))
	}))
	defer srv.Close()

	e := New(
		WithAPIKey("test-key"),
		WithBaseURL(srv.URL),
		WithModel("text-embedding-3-small"),
		WithDimensions(3),
		WithUser("tester"),
	)

	embedding, err := e.GetEmbedding(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, embedding)

	// text-embedding-3 models carry the dimensions parameter on the wire.
	assert.Equal(t, float64(3), gotBody["dimensions"])
	assert.Equal(t, "hello world", gotBody["input"])
	assert.Equal(t, "tester", gotBody["user"])
	assert.Equal(t, DefaultEncodingFormat, gotBody["encoding_format"])
}

func TestGetEmbeddingWithUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(embeddingResponse))
	}))
	defer srv.Close()

	e := New(WithAPIKey("test-key"), WithBaseURL(srv.URL))

	embedding, usage, err := e.GetEmbeddingWithUsage(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, embedding, 3)
	require.NotNil(t, usage)
	assert.Equal(t, int64(5), usage["prompt_tokens"])
	assert.Equal(t, int64(5), usage["total_tokens"])
}

func TestGetEmbedding_EmptyText(t *testing.T) {
	e := New(WithAPIKey("test-key"))

	_, err := e.GetEmbedding(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text cannot be empty")
}

func TestGetEmbedding_RetriesOnError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(embeddingResponse))
	}))
	defer srv.Close()

	e := New(
		WithAPIKey("test-key"),
		WithBaseURL(srv.URL),
		WithMaxRetries(2),
		WithRetryBackoff([]time.Duration{0}),
	)

	embedding, err := e.GetEmbedding(context.Background(), "retry me")
	require.NoError(t, err)
	assert.Len(t, embedding, 3)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetEmbedding_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := New(
		WithAPIKey("test-key"),
		WithBaseURL(srv.URL),
		WithMaxRetries(1),
		WithRetryBackoff([]time.Duration{0}),
	)

	_, err := e.GetEmbedding(context.Background(), "always fails")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create embedding")
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetBackoffDuration(t *testing.T) {
	e := New(WithAPIKey("test-key"), WithRetryBackoff([]time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
	}))

	assert.Equal(t, 100*time.Millisecond, e.getBackoffDuration(0))
	assert.Equal(t, 200*time.Millisecond, e.getBackoffDuration(1))
	assert.Equal(t, 200*time.Millisecond, e.getBackoffDuration(5))

	e = New(WithAPIKey("test-key"), WithRetryBackoff(nil))
	assert.Equal(t, time.Duration(0), e.getBackoffDuration(0))
}
