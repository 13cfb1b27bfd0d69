//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package statement splits free-form text into sentence-level statements
// for verdict-based metrics.
package statement

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

var (
	// englishTokenizerOnce ensures the Punkt model is loaded once.
	englishTokenizerOnce sync.Once
	// englishTokenizer holds the initialized sentence tokenizer instance.
	englishTokenizer *sentences.DefaultSentenceTokenizer
	// englishTokenizerErr caches any initialization error.
	englishTokenizerErr error
)

// Split splits English text into sentence-level statements using Punkt
// training data. Whitespace-only sentences are dropped.
func Split(text string) ([]string, error) {
	englishTokenizerOnce.Do(func() {
		b, err := sentencesdata.Asset("data/english.json")
		if err != nil {
			englishTokenizerErr = fmt.Errorf("load english punkt data: %w", err)
			return
		}
		training, err := sentences.LoadTraining(b)
		if err != nil {
			englishTokenizerErr = fmt.Errorf("parse english punkt data: %w", err)
			return
		}
		englishTokenizer = sentences.NewSentenceTokenizer(training)
	})
	if englishTokenizerErr != nil {
		return nil, englishTokenizerErr
	}
	if englishTokenizer == nil {
		return nil, fmt.Errorf("english sentence tokenizer is nil")
	}

	raw := englishTokenizer.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, sent := range raw {
		s := strings.TrimSpace(sent.Text)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
