// Package trace records spans of a lattice run.
//
// A run opens a ScopeRun span (check, fuzz, parse), each file gets a
// ScopeFile span and the pipeline steps inside it (lex, parse, validate)
// are ScopePhase spans. The Level picks how deep the recording goes.
//
//	lattice check --trace=- --trace-level=detail testdata/
//	lattice fuzz --trace=run.ndjson --trace-heartbeat=1s
//
// Spans nest through the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "parse")
//	defer span.End("")
package trace
