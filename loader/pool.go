//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-ragkit-go/document"
)

type linkFetchParam struct {
	idx      int
	ctx      context.Context
	loader   *Loader
	link     string
	outcomes []Outcome
	docs     [][]*document.Document
	wg       *sync.WaitGroup
}

func (p *linkFetchParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.loader = nil
	p.link = ""
	p.outcomes = nil
	p.docs = nil
	p.wg = nil
}

var linkFetchParamPool = &sync.Pool{
	New: func() any { return new(linkFetchParam) },
}

func createLinkFetchPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*linkFetchParam)
		if !ok {
			panic("link fetch pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			linkFetchParamPool.Put(param)
		}()
		outcome, docs := param.loader.fetchLink(param.ctx, param.link)
		param.outcomes[param.idx] = outcome
		param.docs[param.idx] = docs
	})
	if err != nil {
		return nil, fmt.Errorf("create link fetch pool: %w", err)
	}
	return pool, nil
}

// loadLinks fetches all links through the worker pool. Results land in
// index-addressed slices so outcomes keep input order regardless of
// completion order.
func (l *Loader) loadLinks(ctx context.Context, result *Result) error {
	if len(l.links) == 0 {
		return nil
	}

	size := l.concurrency
	if size > len(l.links) {
		size = len(l.links)
	}
	pool, err := createLinkFetchPool(size)
	if err != nil {
		return err
	}
	defer pool.Release()

	outcomes := make([]Outcome, len(l.links))
	docs := make([][]*document.Document, len(l.links))
	var wg sync.WaitGroup
	for i, link := range l.links {
		param := linkFetchParamPool.Get().(*linkFetchParam)
		param.idx = i
		param.ctx = ctx
		param.loader = l
		param.link = link
		param.outcomes = outcomes
		param.docs = docs
		param.wg = &wg

		wg.Add(1)
		if err := pool.Invoke(param); err != nil {
			outcomes[i] = Outcome{
				Source: link,
				Kind:   KindLink,
				Status: StatusFailed,
				Err:    fmt.Errorf("submit fetch task: %w", err),
			}
			wg.Done()
			param.reset()
			linkFetchParamPool.Put(param)
		}
	}
	wg.Wait()

	for i := range outcomes {
		result.Outcomes = append(result.Outcomes, outcomes[i])
		result.Documents = append(result.Documents, docs[i]...)
	}
	return nil
}
