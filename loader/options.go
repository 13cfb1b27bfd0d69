//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package loader

import (
	"net/http"
	"strings"
	"time"
)

// Defaults applied by New.
const (
	defaultUserAgent         = "trpc-ragkit-go/1.0"
	defaultTimeout           = 30 * time.Second
	defaultRequestsPerSecond = 1.0
	defaultConcurrency       = 4
)

// FileFailurePolicy controls what a file read failure does to the batch.
type FileFailurePolicy int

const (
	// FileFailureAbort stops the batch on the first file error (default).
	FileFailureAbort FileFailurePolicy = iota
	// FileFailureContinue records the failure on the outcome and moves on,
	// matching how link failures are handled.
	FileFailureContinue
)

// Option is a functional option for configuring the loader.
type Option func(*Loader)

// WithFiles adds local file paths to load.
func WithFiles(paths ...string) Option {
	return func(l *Loader) {
		l.files = append(l.files, paths...)
	}
}

// WithLinks adds web URLs to load.
func WithLinks(urls ...string) Option {
	return func(l *Loader) {
		l.links = append(l.links, urls...)
	}
}

// WithInputs adds mixed inputs, routing each to files or links by shape:
// anything starting with http:// or https:// is a link, the rest are files.
func WithInputs(inputs ...string) Option {
	return func(l *Loader) {
		for _, input := range inputs {
			if isURL(input) {
				l.links = append(l.links, input)
			} else {
				l.files = append(l.files, input)
			}
		}
	}
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// WithHTTPClient sets a custom HTTP client for link fetching. The default
// client applies the configured timeout and trusts proxy-related
// environment variables.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.httpClient = client
	}
}

// WithUserAgent sets the User-Agent header for link fetching.
func WithUserAgent(userAgent string) Option {
	return func(l *Loader) {
		l.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// WithRequestsPerSecond sets the politeness throttle shared by all link
// fetches. Defaults to 1 request per second.
func WithRequestsPerSecond(rps float64) Option {
	return func(l *Loader) {
		l.requestsPerSecond = rps
	}
}

// WithConcurrency sets the size of the link fetch worker pool.
func WithConcurrency(concurrency int) Option {
	return func(l *Loader) {
		l.concurrency = concurrency
	}
}

// WithMaxContentLength caps the number of body bytes read per link.
// Zero means no cap.
func WithMaxContentLength(limit int64) Option {
	return func(l *Loader) {
		l.maxContentLength = limit
	}
}

// WithFileFailurePolicy sets how file read failures are handled.
func WithFileFailurePolicy(policy FileFailurePolicy) Option {
	return func(l *Loader) {
		l.fileFailurePolicy = policy
	}
}
