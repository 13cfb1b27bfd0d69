//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package judge provides shared helpers for prompting a judge model and
// parsing its plain-text verdict blocks.
package judge

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"trpc.group/trpc-go/trpc-ragkit-go/model"
)

var (
	// defaultMaxTokens sets the default max tokens for judge generation.
	defaultMaxTokens = 2000
	// defaultTemperature sets the default temperature for judge generation.
	// Judged verdicts should be reproducible, so sampling is disabled.
	defaultTemperature = 0.0
	// DefaultGeneration sets the default generation configuration for judge calls.
	DefaultGeneration = model.GenerationConfig{
		MaxTokens:   &defaultMaxTokens,
		Temperature: &defaultTemperature,
		Stream:      false,
	}
)

// Verdict answers recognized in judge output.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
	AnswerIdk = "idk"
)

// Verdict is a single judgement over one subject, with a short reason.
type Verdict struct {
	// Subject is the judged item echoed back by the judge.
	Subject string
	// Answer is the lowercased verdict: "yes", "no" or "idk".
	Answer string
	// Reason is the judge's justification for the verdict.
	Reason string
}

// RenderPrompt executes the template with data and wraps the result in a
// single user message for the judge model.
func RenderPrompt(tmpl *template.Template, data any) ([]model.Message, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s template: %w", tmpl.Name(), err)
	}
	return []model.Message{
		{
			Role:    model.RoleUser,
			Content: buf.String(),
		},
	}, nil
}

// Generate calls the judge model with the given messages and returns the
// content of the final response.
func Generate(ctx context.Context, judgeModel model.Model, generation model.GenerationConfig,
	messages []model.Message) (string, error) {
	req := model.Request{
		Messages:         messages,
		GenerationConfig: generation,
	}
	req.GenerationConfig.Stream = false
	responses, err := judgeModel.GenerateContent(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("generate response: %w", err)
	}
	for response := range responses {
		if response.Error != nil {
			return "", fmt.Errorf("response error: %v", response.Error)
		}
		if response.IsFinalResponse() {
			if len(response.Choices) == 0 {
				return "", fmt.Errorf("no choices in response")
			}
			return response.Choices[0].Message.Content, nil
		}
	}
	return "", fmt.Errorf("no final response")
}

// VerdictParser extracts verdict blocks of the form
//
//	<Label>: <subject>
//	Verdict: yes|no|idk
//	Reason: <reason>
//
// from judge output.
type VerdictParser struct {
	re *regexp.Regexp
}

// NewVerdictParser returns a parser for verdict blocks led by the given label.
func NewVerdictParser(label string) *VerdictParser {
	return &VerdictParser{
		re: regexp.MustCompile(
			`(?ms)` + regexp.QuoteMeta(label) + `:\s*(.*?)\s*` + // 1: subject
				`Verdict:\s*(.*?)\s*` + // 2: verdict yes/no/idk
				`Reason:\s*(.*?)\s*$`), // 3: reason text
	}
}

// Parse extracts all verdict blocks from the judge output.
func (p *VerdictParser) Parse(content string) ([]*Verdict, error) {
	matches := p.re.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no verdict blocks found in response")
	}
	verdicts := make([]*Verdict, 0, len(matches))
	for _, match := range matches {
		verdicts = append(verdicts, &Verdict{
			Subject: strings.TrimSpace(match[1]),
			Answer:  strings.ToLower(strings.TrimSpace(match[2])),
			Reason:  strings.TrimSpace(match[3]),
		})
	}
	return verdicts, nil
}

// ListParser extracts single-line items of the form "<Label>: <text>" from
// judge output.
type ListParser struct {
	re *regexp.Regexp
}

// NewListParser returns a parser for list items led by the given label.
func NewListParser(label string) *ListParser {
	return &ListParser{
		re: regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(label) + `:\s*(.+?)\s*$`),
	}
}

// Parse extracts all list items from the judge output. A response with no
// items yields an empty slice, not an error.
func (p *ListParser) Parse(content string) []string {
	matches := p.re.FindAllStringSubmatch(content, -1)
	items := make([]string, 0, len(matches))
	for _, match := range matches {
		items = append(items, strings.TrimSpace(match[1]))
	}
	return items
}
