//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package loader assembles document corpora from local files and web links.
//
// Inputs are declared up front and read in one Load call. PDF and
// spreadsheet files are parsed by the registered readers; other file
// extensions are skipped. Links are fetched concurrently behind a shared
// politeness throttle and parsed by content type.
package loader

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
	"trpc.group/trpc-go/trpc-ragkit-go/document/reader"
	_ "trpc.group/trpc-go/trpc-ragkit-go/document/reader/excel" // register spreadsheet reader
	_ "trpc.group/trpc-go/trpc-ragkit-go/document/reader/pdf"   // register PDF reader
	"trpc.group/trpc-go/trpc-ragkit-go/log"
)

// Loader loads a fixed set of files and links into documents.
type Loader struct {
	files []string
	links []string

	httpClient        *http.Client
	userAgent         string
	timeout           time.Duration
	requestsPerSecond float64
	concurrency       int
	maxContentLength  int64
	fileFailurePolicy FileFailurePolicy

	limiter *rate.Limiter
}

// New creates a loader for the given inputs.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{
		userAgent:         defaultUserAgent,
		timeout:           defaultTimeout,
		requestsPerSecond: defaultRequestsPerSecond,
		concurrency:       defaultConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.requestsPerSecond <= 0 {
		return nil, fmt.Errorf("requests per second must be greater than 0, got %v", l.requestsPerSecond)
	}
	if l.concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be greater than 0, got %d", l.concurrency)
	}
	if l.httpClient == nil {
		l.httpClient = newDefaultHTTPClient(l.timeout)
	}
	l.limiter = rate.NewLimiter(rate.Limit(l.requestsPerSecond), 1)
	return l, nil
}

// Load reads every configured file and link and returns the collected
// documents together with one outcome per input, files first, links second,
// both in configuration order.
//
// Failure handling is asymmetric on purpose, preserving the contract this
// loader replaces: a file read error aborts the batch and is returned
// (alongside the partial Result), while a link error is recorded on its
// outcome and the remaining links still load. Opt into uniform per-item
// recovery with WithFileFailurePolicy(FileFailureContinue).
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	result := &Result{}

	for _, path := range l.files {
		outcome, docs, err := l.loadFile(path)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Documents = append(result.Documents, docs...)
		if err != nil {
			return result, err
		}
	}

	if err := l.loadLinks(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// loadFile reads one file through the reader registered for its extension.
// The returned error is non-nil only when the failure policy aborts.
func (l *Loader) loadFile(path string) (Outcome, []*document.Document, error) {
	outcome := Outcome{Source: path, Kind: KindFile}

	ext := strings.ToLower(filepath.Ext(path))
	r, ok := reader.GetReader(ext)
	if !ok {
		log.Debugf("loader: skipping %s: no reader for extension %q", path, ext)
		outcome.Status = StatusSkipped
		return outcome, nil, nil
	}

	docs, err := r.ReadFromFile(path)
	if err != nil {
		err = fmt.Errorf("load file %s: %w", path, err)
		outcome.Status = StatusFailed
		outcome.Err = err
		if l.fileFailurePolicy == FileFailureContinue {
			log.Warnf("Failed to load %s: %v", path, err)
			return outcome, nil, nil
		}
		return outcome, nil, err
	}

	outcome.Status = StatusLoaded
	outcome.Documents = len(docs)
	return outcome, docs, nil
}
