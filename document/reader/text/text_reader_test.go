//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package text

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
)

func TestReader_ReadFromReader(t *testing.T) {
	docs, err := New().ReadFromReader("snippet", strings.NewReader("plain text body"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "snippet", docs[0].Name)
	assert.Equal(t, "plain text body", docs[0].Content)
}

func TestReader_ReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0o600))

	docs, err := New().ReadFromFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "note", docs[0].Name)
	assert.Equal(t, "from disk", docs[0].Content)
	assert.Equal(t, path, docs[0].Metadata[document.MetaSource])
	assert.Equal(t, document.SourceTypeFile, docs[0].Metadata[document.MetaSourceType])
}
