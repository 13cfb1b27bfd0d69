//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package text provides a plain-text document reader used for textual web
// content (plain text, markdown, JSON). It does not register any file
// extension.
package text

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
	idocument "trpc.group/trpc-go/trpc-ragkit-go/document/internal/document"
)

// Reader reads plain-text content into a single document.
type Reader struct{}

// New creates a new text reader.
func New() *Reader {
	return &Reader{}
}

// Name returns the name of this reader.
func (r *Reader) Name() string {
	return "TextReader"
}

// SupportedExtensions returns the file extensions this reader supports.
func (r *Reader) SupportedExtensions() []string {
	return []string{".txt", ".md", ".json"}
}

// ReadFromReader wraps the raw content into one document.
func (r *Reader) ReadFromReader(name string, rd io.Reader) ([]*document.Document, error) {
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read text content: %w", err)
	}
	doc := idocument.CreateDocument(string(content), name)
	doc.Metadata[document.MetaSource] = name
	return []*document.Document{doc}, nil
}

// ReadFromFile reads text content from a file path.
func (r *Reader) ReadFromFile(filePath string) ([]*document.Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open text file: %w", err)
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
