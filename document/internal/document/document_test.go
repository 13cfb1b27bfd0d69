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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDocument(t *testing.T) {
	doc := CreateDocument("some content", "my file")
	require.NotNil(t, doc)
	assert.Equal(t, "some content", doc.Content)
	assert.Equal(t, "my file", doc.Name)
	assert.NotNil(t, doc.Metadata)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.True(t, strings.HasPrefix(doc.ID, "my_file_"))
}

func TestGenerateDocumentIDUnique(t *testing.T) {
	a := GenerateDocumentID("name", "content")
	b := GenerateDocumentID("name", "content")
	assert.NotEqual(t, a, b, "same inputs should still produce distinct IDs")
	assert.True(t, strings.HasPrefix(a, "name_"))

	// Same content shares the hash segment.
	partsA := strings.Split(a, "_")
	partsB := strings.Split(b, "_")
	require.Len(t, partsA, 3)
	require.Len(t, partsB, 3)
	assert.Equal(t, partsA[1], partsB[1])
	assert.NotEqual(t, partsA[2], partsB[2])
}
