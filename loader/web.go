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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
	"trpc.group/trpc-go/trpc-ragkit-go/document/reader"
	"trpc.group/trpc-go/trpc-ragkit-go/document/reader/html"
	"trpc.group/trpc-go/trpc-ragkit-go/document/reader/pdf"
	"trpc.group/trpc-go/trpc-ragkit-go/document/reader/text"
	"trpc.group/trpc-go/trpc-ragkit-go/log"
)

// newDefaultHTTPClient builds the client used when none is supplied.
// Proxy environment variables (HTTP_PROXY, HTTPS_PROXY, NO_PROXY) are
// honored.
func newDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
		},
	}
}

// fetchLink loads one link into documents. It never returns an error:
// failures are recorded on the outcome so the rest of the batch proceeds.
func (l *Loader) fetchLink(ctx context.Context, link string) (Outcome, []*document.Document) {
	outcome := Outcome{Source: link, Kind: KindLink}

	docs, err := l.processLink(ctx, link)
	if err != nil {
		log.Warnf("Failed to load %s: %v", link, err)
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome, nil
	}

	outcome.Status = StatusLoaded
	outcome.Documents = len(docs)
	return outcome, docs
}

func (l *Loader) processLink(ctx context.Context, link string) ([]*document.Document, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}

	// Politeness throttle shared across all workers.
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, contentType, err := l.fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	mainType := mainContentType(contentType)
	rd, err := readerForContentType(mainType)
	if err != nil {
		return nil, err
	}

	docs, err := rd.ReadFromReader(link, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s content: %w", mainType, err)
	}
	for _, doc := range docs {
		doc.Metadata[document.MetaSource] = link
		doc.Metadata[document.MetaSourceType] = document.SourceTypeWeb
		doc.Metadata[document.MetaContentType] = mainType
	}
	return docs, nil
}

// fetch performs the HTTP GET and returns the body and content type.
func (l *Loader) fetch(ctx context.Context, link string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	// Set user agent to avoid being blocked.
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if l.maxContentLength > 0 {
		body = io.LimitReader(resp.Body, l.maxContentLength)
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	return content, resp.Header.Get("Content-Type"), nil
}

// mainContentType strips parameters like charset from a Content-Type value.
func mainContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// readerForContentType picks the reader for fetched content. HTML becomes
// markdown, PDF bodies go through the page reader, and textual types are
// kept as-is. Anything else fails the link.
func readerForContentType(mainType string) (reader.Reader, error) {
	switch {
	case strings.Contains(mainType, "text/html"), strings.Contains(mainType, "application/xhtml"):
		return html.New(), nil
	case strings.Contains(mainType, "application/pdf"):
		return pdf.New(), nil
	case mainType == "", strings.HasPrefix(mainType, "text/"),
		strings.Contains(mainType, "application/json"),
		strings.Contains(mainType, "application/xml"):
		return text.New(), nil
	default:
		return nil, fmt.Errorf("unsupported content type %q", mainType)
	}
}
