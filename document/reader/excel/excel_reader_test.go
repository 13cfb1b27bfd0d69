//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package excel

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
	"trpc.group/trpc-go/trpc-ragkit-go/document/reader"
)

// newTestWorkbook generates a two-sheet workbook in memory so tests do not
// depend on binary fixtures.
func newTestWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "qty"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "bolt"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 42))

	_, err := f.NewSheet("Inventory")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Inventory", "A1", "warehouse"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func TestReader_ReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "alpha"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	docs, err := New().ReadFromFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "stock", docs[0].Name)
	assert.Equal(t, "alpha", docs[0].Content)
	assert.Equal(t, path, docs[0].Metadata[document.MetaSource])
	assert.Equal(t, "Sheet1", docs[0].Metadata[document.MetaSheet])
	assert.Equal(t, 0, docs[0].Metadata[document.MetaSheetIndex])
	assert.Equal(t, 1, docs[0].Metadata[document.MetaRowCount])
}

func TestReader_ReadFromReaderMultiSheet(t *testing.T) {
	data := newTestWorkbook(t)

	docs, err := New().ReadFromReader("stock.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, docs, 2, "expected one document per sheet")

	first := docs[0]
	assert.Equal(t, "stock", first.Name)
	assert.Equal(t, "Sheet1", first.Metadata[document.MetaSheet])
	lines := strings.Split(first.Content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "name\tqty", lines[0])
	assert.Equal(t, "bolt\t42", lines[1])

	second := docs[1]
	assert.Equal(t, "Inventory", second.Metadata[document.MetaSheet])
	assert.Equal(t, 1, second.Metadata[document.MetaSheetIndex])
	assert.Equal(t, "warehouse", second.Content)
}

func TestReader_InvalidContent(t *testing.T) {
	_, err := New().ReadFromReader("junk.xlsx", strings.NewReader("not a workbook"))
	require.Error(t, err)

	_, err = New().ReadFromReader("junk.xls", strings.NewReader("not a workbook"))
	require.Error(t, err)
}

func TestReader_ReadFromFileMissing(t *testing.T) {
	_, err := New().ReadFromFile(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)

	_, err = New().ReadFromFile(filepath.Join(t.TempDir(), "nope.xls"))
	require.Error(t, err)
}

func TestReader_Registered(t *testing.T) {
	for _, ext := range []string{".xls", ".xlsx"} {
		r, ok := reader.GetReader(ext)
		require.True(t, ok, "excel reader should self-register for %s", ext)
		assert.Equal(t, "ExcelReader", r.Name())
	}
}
