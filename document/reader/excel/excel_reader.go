//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package excel provides a spreadsheet document reader.
// Each sheet becomes one document whose content is the sheet rendered as
// tab-separated rows. Modern OOXML workbooks (.xlsx) are parsed with
// excelize; legacy BIFF workbooks (.xls) with extrame/xls.
package excel

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
	idocument "trpc.group/trpc-go/trpc-ragkit-go/document/internal/document"
	"trpc.group/trpc-go/trpc-ragkit-go/document/reader"
)

// supportedExtensions defines the file extensions supported by this reader.
var supportedExtensions = []string{".xls", ".xlsx"}

// legacyCharset is the charset hint passed to the BIFF parser.
const legacyCharset = "utf-8"

// init registers the excel reader with the global registry.
func init() {
	reader.RegisterReader(supportedExtensions, func() reader.Reader { return New() })
}

// Reader reads spreadsheet documents sheet by sheet.
type Reader struct{}

// New creates a new spreadsheet reader.
func New() *Reader {
	return &Reader{}
}

// Name returns the name of this reader.
func (r *Reader) Name() string {
	return "ExcelReader"
}

// SupportedExtensions returns the file extensions this reader supports.
func (r *Reader) SupportedExtensions() []string {
	return supportedExtensions
}

// ReadFromReader reads spreadsheet content from an io.Reader and returns one
// document per sheet. The name's extension selects the parser; anything that
// is not ".xls" is handed to the OOXML parser.
func (r *Reader) ReadFromReader(name string, rd io.Reader) ([]*document.Document, error) {
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet content: %w", err)
	}
	baseName := strings.TrimSuffix(name, filepath.Ext(name))
	if isLegacyExt(name) {
		return r.readLegacy(bytes.NewReader(content), baseName, name)
	}
	return r.readOOXML(bytes.NewReader(content), baseName, name)
}

// ReadFromFile reads spreadsheet content from a file path and returns one
// document per sheet.
func (r *Reader) ReadFromFile(filePath string) ([]*document.Document, error) {
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	if isLegacyExt(filePath) {
		workbook, err := xls.Open(filePath, legacyCharset)
		if err != nil {
			return nil, fmt.Errorf("failed to open XLS file: %w", err)
		}
		return r.buildLegacyDocuments(workbook, name, filePath), nil
	}

	file, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer file.Close()
	return r.buildOOXMLDocuments(file, name, filePath)
}

func isLegacyExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xls")
}

func (r *Reader) readOOXML(rd io.Reader, name, source string) ([]*document.Document, error) {
	file, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XLSX content: %w", err)
	}
	defer file.Close()
	return r.buildOOXMLDocuments(file, name, source)
}

func (r *Reader) buildOOXMLDocuments(file *excelize.File, name, source string) ([]*document.Document, error) {
	sheets := file.GetSheetList()
	docs := make([]*document.Document, 0, len(sheets))
	for sheetIndex, sheet := range sheets {
		rows, err := file.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
		docs = append(docs, buildSheetDocument(name, source, sheet, sheetIndex, lines))
	}
	return docs, nil
}

func (r *Reader) readLegacy(rd io.ReadSeeker, name, source string) ([]*document.Document, error) {
	workbook, err := xls.OpenReader(rd, legacyCharset)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XLS content: %w", err)
	}
	return r.buildLegacyDocuments(workbook, name, source), nil
}

func (r *Reader) buildLegacyDocuments(workbook *xls.WorkBook, name, source string) []*document.Document {
	docs := make([]*document.Document, 0, workbook.NumSheets())
	for sheetIndex := 0; sheetIndex < workbook.NumSheets(); sheetIndex++ {
		sheet := workbook.GetSheet(sheetIndex)
		if sheet == nil {
			continue
		}
		var lines []string
		for rowIndex := 0; rowIndex <= int(sheet.MaxRow); rowIndex++ {
			row := sheet.Row(rowIndex)
			if row == nil {
				continue
			}
			cells := make([]string, 0, row.LastCol()-row.FirstCol())
			for colIndex := row.FirstCol(); colIndex < row.LastCol(); colIndex++ {
				cells = append(cells, row.Col(colIndex))
			}
			lines = append(lines, strings.Join(cells, "\t"))
		}
		docs = append(docs, buildSheetDocument(name, source, sheet.Name, sheetIndex, lines))
	}
	return docs
}

// buildSheetDocument wraps rendered sheet rows into a document with sheet
// metadata. Empty sheets still produce a document so workbook structure is
// preserved.
func buildSheetDocument(name, source, sheet string, sheetIndex int, lines []string) *document.Document {
	doc := idocument.CreateDocument(strings.Join(lines, "\n"), name)
	doc.Metadata[document.MetaSource] = source
	doc.Metadata[document.MetaSourceType] = document.SourceTypeFile
	doc.Metadata[document.MetaSheet] = sheet
	doc.Metadata[document.MetaSheetIndex] = sheetIndex
	doc.Metadata[document.MetaRowCount] = len(lines)
	return doc
}
