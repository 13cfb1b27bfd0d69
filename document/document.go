//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package document defines the document type produced by readers and loaders.
package document

import "time"

const metaPrefix = "trpc_ragkit_"

// Metadata keys set by the built-in readers and the loader.
const (
	// MetaSource is the originating file path or URL.
	MetaSource = metaPrefix + "source"
	// MetaSourceType distinguishes file documents from web documents.
	MetaSourceType = metaPrefix + "source_type"
	// MetaPage is the 1-based page number for paginated formats.
	MetaPage = metaPrefix + "page"
	// MetaTotalPages is the page count of the originating file.
	MetaTotalPages = metaPrefix + "total_pages"
	// MetaSheet is the sheet name for spreadsheet documents.
	MetaSheet = metaPrefix + "sheet"
	// MetaSheetIndex is the 0-based sheet position in the workbook.
	MetaSheetIndex = metaPrefix + "sheet_index"
	// MetaRowCount is the number of rows rendered from a sheet.
	MetaRowCount = metaPrefix + "row_count"
	// MetaContentType is the MIME type reported for fetched content.
	MetaContentType = metaPrefix + "content_type"
	// MetaTitle is the page title extracted from HTML content.
	MetaTitle = metaPrefix + "title"
)

// Values stored under MetaSourceType.
const (
	SourceTypeFile = "file"
	SourceTypeWeb  = "web"
)

// Document represents a text document with metadata.
type Document struct {
	// ID is the unique identifier of the document.
	ID string `json:"id,omitempty"`

	// Name is the name or title of the document.
	Name string `json:"name,omitempty"`

	// Content is the text content of the document.
	Content string `json:"content"`

	// Metadata contains additional information about the document.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// CreatedAt is the creation timestamp of the document.
	CreatedAt time.Time `json:"created_at,omitempty"`

	// UpdatedAt is the last update timestamp of the document.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Size returns the size of the document content in characters.
func (d *Document) Size() int {
	return len(d.Content)
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return len(d.Content) == 0
}

// Clone creates a deep copy of the document.
func (d *Document) Clone() *Document {
	clone := &Document{
		ID:        d.ID,
		Name:      d.Name,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Metadata != nil {
		clone.Metadata = make(map[string]interface{}, len(d.Metadata))
		for k, v := range d.Metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}
