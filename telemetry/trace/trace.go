//
// Tencent is pleased to support the open source community by making trpc-ragkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-ragkit-go is licensed under the Apache License Version 2.0.
//
//

// Package trace holds the tracer used for spans around model and embedding
// calls. The library only records spans; applications install their own
// tracer provider via otel.SetTracerProvider before use.
package trace

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentName identifies this library to the tracer provider.
const InstrumentName = "trpc.ragkit.go"

// Tracer is the tracer used throughout trpc-ragkit-go.
var Tracer trace.Tracer = otel.Tracer(InstrumentName)
