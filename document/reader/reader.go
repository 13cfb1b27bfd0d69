//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package reader defines the interface for document readers.
// Readers parse one format each and return documents split along the
// format's natural units (pages, sheets, whole pages of text).
package reader

import (
	"io"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
)

// Reader interface for different document readers.
type Reader interface {
	// ReadFromReader reads content from an io.Reader and returns a list of documents.
	// The name parameter is used to identify the source (e.g., filename, URL).
	ReadFromReader(name string, r io.Reader) ([]*document.Document, error)

	// ReadFromFile reads content from a file path and returns a list of documents.
	ReadFromFile(filePath string) ([]*document.Document, error)

	// Name returns the name of this reader.
	Name() string

	// SupportedExtensions returns the file extensions this reader supports.
	// Extensions include the dot prefix (e.g., ".pdf", ".xlsx").
	SupportedExtensions() []string
}
