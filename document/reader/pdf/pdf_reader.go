//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package pdf provides a PDF document reader.
// Each page becomes one document so that page provenance survives ingestion.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
	idocument "trpc.group/trpc-go/trpc-ragkit-go/document/internal/document"
	"trpc.group/trpc-go/trpc-ragkit-go/document/reader"
)

// supportedExtensions defines the file extensions supported by this reader.
var supportedExtensions = []string{".pdf"}

// init registers the PDF reader with the global registry.
func init() {
	reader.RegisterReader(supportedExtensions, func() reader.Reader { return New() })
}

// Reader reads PDF documents page by page.
type Reader struct {
	password func() string
}

// Option is a functional option for configuring the PDF reader.
type Option func(*Reader)

// WithPassword sets the password used to open encrypted files.
func WithPassword(password string) Option {
	return func(r *Reader) {
		r.password = func() string { return password }
	}
}

// New creates a new PDF reader with the given options.
func New(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the name of this reader.
func (r *Reader) Name() string {
	return "PDFReader"
}

// SupportedExtensions returns the file extensions this reader supports.
func (r *Reader) SupportedExtensions() []string {
	return supportedExtensions
}

// ReadFromReader reads PDF content from an io.Reader and returns one document
// per page. The name parameter identifies the source (e.g., filename, URL).
func (r *Reader) ReadFromReader(name string, rd io.Reader) ([]*document.Document, error) {
	// The PDF parser needs random access, so buffer the content.
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF content: %w", err)
	}
	pdfReader, err := r.newPDFReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}
	return r.buildDocuments(pdfReader, name, name), nil
}

// ReadFromFile reads PDF content from a file path and returns one document per page.
func (r *Reader) ReadFromFile(filePath string) ([]*document.Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	pdfReader, err := r.newPDFReader(file, fileInfo.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return r.buildDocuments(pdfReader, name, filePath), nil
}

func (r *Reader) newPDFReader(rd io.ReaderAt, size int64) (*pdf.Reader, error) {
	if r.password != nil {
		return pdf.NewReaderEncrypted(rd, size, r.password)
	}
	return pdf.NewReader(rd, size)
}

// buildDocuments converts each page into a document with page metadata.
// Pages that yield no text still produce an empty document so that page
// numbering stays contiguous.
func (r *Reader) buildDocuments(pdfReader *pdf.Reader, name, source string) []*document.Document {
	totalPages := pdfReader.NumPage()
	docs := make([]*document.Document, 0, totalPages)
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		doc := idocument.CreateDocument(extractPageText(pdfReader, pageIndex), name)
		doc.Metadata[document.MetaSource] = source
		doc.Metadata[document.MetaSourceType] = document.SourceTypeFile
		doc.Metadata[document.MetaPage] = pageIndex
		doc.Metadata[document.MetaTotalPages] = totalPages
		docs = append(docs, doc)
	}
	return docs
}

// extractPageText extracts the text of a single page.
// Extraction failures degrade to empty content; only unreadable files error.
func extractPageText(pdfReader *pdf.Reader, pageIndex int) string {
	page := pdfReader.Page(pageIndex)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
