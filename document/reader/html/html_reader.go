//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package html provides an HTML document reader.
// Pages are converted to markdown so downstream consumers work with plain
// text; the page title is kept as the document name. This reader is used for
// fetched web content and does not register any file extension.
package html

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
	idocument "trpc.group/trpc-go/trpc-ragkit-go/document/internal/document"
)

// Reader reads HTML content into a single markdown document.
type Reader struct{}

// New creates a new HTML reader.
func New() *Reader {
	return &Reader{}
}

// Name returns the name of this reader.
func (r *Reader) Name() string {
	return "HTMLReader"
}

// SupportedExtensions returns the file extensions this reader supports.
func (r *Reader) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

// ReadFromReader converts HTML content into one markdown document.
// The name parameter identifies the source (e.g., URL) and is used as the
// document name when the page carries no title.
func (r *Reader) ReadFromReader(name string, rd io.Reader) ([]*document.Document, error) {
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML content: %w", err)
	}

	markdown, err := convertToMarkdown(content)
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	title := extractTitle(content)
	docName := title
	if docName == "" {
		docName = name
	}

	doc := idocument.CreateDocument(strings.TrimSpace(markdown), docName)
	doc.Metadata[document.MetaSource] = name
	if title != "" {
		doc.Metadata[document.MetaTitle] = title
	}
	return []*document.Document{doc}, nil
}

// ReadFromFile reads HTML content from a file path.
func (r *Reader) ReadFromFile(filePath string) ([]*document.Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	docs, err := r.ReadFromReader(name, file)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		doc.Metadata[document.MetaSource] = filePath
		doc.Metadata[document.MetaSourceType] = document.SourceTypeFile
	}
	return docs, nil
}

func convertToMarkdown(content []byte) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return conv.ConvertString(string(content))
}

// extractTitle pulls the page title, falling back to the first h1.
func extractTitle(content []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
