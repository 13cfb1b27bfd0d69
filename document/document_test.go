//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSize(t *testing.T) {
	doc := &Document{Content: "hello"}
	assert.Equal(t, 5, doc.Size())
	assert.False(t, doc.IsEmpty())

	empty := &Document{}
	assert.Equal(t, 0, empty.Size())
	assert.True(t, empty.IsEmpty())
}

func TestDocumentClone(t *testing.T) {
	doc := &Document{
		ID:      "doc-1",
		Name:    "report",
		Content: "quarterly numbers",
		Metadata: map[string]interface{}{
			MetaSource: "/tmp/report.pdf",
			MetaPage:   1,
		},
	}

	clone := doc.Clone()
	require.NotSame(t, doc, clone)
	assert.Equal(t, doc.ID, clone.ID)
	assert.Equal(t, doc.Name, clone.Name)
	assert.Equal(t, doc.Content, clone.Content)
	assert.Equal(t, doc.Metadata, clone.Metadata)

	// Mutating the clone's metadata must not affect the original.
	clone.Metadata[MetaPage] = 2
	assert.Equal(t, 1, doc.Metadata[MetaPage])
}

func TestDocumentCloneNilMetadata(t *testing.T) {
	doc := &Document{ID: "doc-2", Content: "x"}
	clone := doc.Clone()
	assert.Nil(t, clone.Metadata)
}
