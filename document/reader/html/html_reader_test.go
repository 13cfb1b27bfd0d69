//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package html

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Release Notes</title></head>
<body>
<h1>Version 2.0</h1>
<p>This release adds <strong>faster</strong> ingestion.</p>
<ul><li>bug fixes</li><li>new readers</li></ul>
</body>
</html>`

func TestReader_ReadFromReader(t *testing.T) {
	docs, err := New().ReadFromReader("https://example.com/notes", strings.NewReader(samplePage))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "Release Notes", doc.Name, "title becomes the document name")
	assert.Equal(t, "Release Notes", doc.Metadata[document.MetaTitle])
	assert.Equal(t, "https://example.com/notes", doc.Metadata[document.MetaSource])
	assert.Contains(t, doc.Content, "Version 2.0")
	assert.Contains(t, doc.Content, "**faster**", "markup should convert to markdown")
	assert.Contains(t, doc.Content, "- bug fixes")
	assert.NotContains(t, doc.Content, "<p>")
}

func TestReader_NoTitleFallsBackToName(t *testing.T) {
	docs, err := New().ReadFromReader("fallback", strings.NewReader("<p>plain body</p>"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "fallback", docs[0].Name)
	assert.NotContains(t, docs[0].Metadata, document.MetaTitle)
}
