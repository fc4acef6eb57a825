package driver

import (
	"bytes"
	"context"
	"fmt"

	"fortio.org/safecast"

	"lattice/internal/diag"
	"lattice/internal/diagfmt"
	"lattice/internal/observ"
	"lattice/internal/parser"
	"lattice/internal/project"
	"lattice/internal/source"
)

// Output formats of Parse.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatDiag = "diag" // только диагностики, без дампа
)

type ParseOptions struct {
	MaxDiagnostics int           // 0 — без лимита
	Format         string        // FormatTree, FormatJSON or FormatDiag
	Cache          *DumpCache    // nil — без кэша
	Timer          *observ.Timer // nil — без таймингов
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Parsed is nil when the dump was served from the cache.
	Parsed     *parser.File
	Bag        *diag.Bag
	Dump       string
	ErrorCount int
	Cached     bool
}

// Parse loads path, parses it and renders the dump in opts.Format.
func Parse(ctx context.Context, path string, opts ParseOptions) (*ParseResult, error) {
	if opts.Format == "" {
		opts.Format = FormatTree
	}
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	fs := source.NewFileSet()
	var fileID source.FileID
	err := timer.Measure("load", func() error {
		var err error
		fileID, err = fs.Load(path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)
	res := &ParseResult{FileSet: fs, File: file, Bag: newBag(opts.MaxDiagnostics)}

	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	cfg := project.DefaultConfig()
	cfg.Dump.Format = opts.Format
	cfg.Check.MaxErrors = maxErrors
	key := DumpKey(file.Hash, cfg)

	if opts.Format != FormatDiag && opts.Cache != nil {
		var payload DumpPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			return nil, fmt.Errorf("dump cache: %w", err)
		}
		if hit && payload.ContentHash == file.Hash {
			res.Dump = payload.Dump
			res.ErrorCount = payload.ErrorCount
			res.Cached = true
			return res, nil
		}
	}

	err = timer.Measure("parse", func() error {
		var err error
		res.Parsed, err = parser.ParseFile(ctx, file, parser.Options{MaxErrors: maxErrors})
		return err
	})
	if err != nil {
		return nil, err
	}
	res.ErrorCount = len(res.Parsed.Errors())
	for _, d := range res.Parsed.Diagnostics() {
		res.Bag.Add(d)
	}

	if opts.Format == FormatDiag {
		return res, nil
	}

	err = timer.Measure("dump", func() error {
		var buf bytes.Buffer
		var err error
		switch opts.Format {
		case FormatTree:
			err = diagfmt.DumpTreeTo(&buf, res.Parsed.Syntax())
		case FormatJSON:
			err = diagfmt.DumpTreeJSON(&buf, res.Parsed.Syntax())
		default:
			err = fmt.Errorf("unknown dump format %q", opts.Format)
		}
		res.Dump = buf.String()
		return err
	})
	if err != nil {
		return nil, err
	}

	if opts.Cache != nil {
		payload := &DumpPayload{
			Path:        file.Path,
			Format:      opts.Format,
			ContentHash: file.Hash,
			Dump:        res.Dump,
			ErrorCount:  res.ErrorCount,
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			return nil, fmt.Errorf("dump cache: %w", err)
		}
	}
	if opts.Timer != nil {
		appendTimingDiagnostic(res.Bag, timingPayloadFrom("parse", file.Path, timer))
	}
	return res, nil
}
