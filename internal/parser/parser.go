package parser

import (
	"context"
	"fmt"
	"strconv"

	"lattice/internal/diag"
	"lattice/internal/lexer"
	"lattice/internal/source"
	"lattice/internal/syntax"
	"lattice/internal/trace"
)

type Options struct {
	MaxErrors uint         // 0 — без лимита
	Tracer    trace.Tracer // nil — берём из контекста
}

// fuelLimit bounds how many lookahead calls may happen without consuming
// a token or closing a node. Running out means a grammar loop is stuck.
const fuelLimit = 256

// Parser — состояние парсера на один файл
type Parser struct {
	text    string
	tokens  []lexer.Token // все токены, включая trivia
	sig     []int         // индексы значимых токенов в tokens
	pos     int           // позиция в sig
	fuel    uint32
	events  []event
	errors  []syntax.SyntaxError
	opts    Options
	limited bool
}

// ParseFile lexes and parses one file. It fails only when ctx is already
// done; syntax errors are recorded on the returned tree.
func ParseFile(ctx context.Context, file *source.File, opts Options) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Path, err)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(tracer, trace.ScopePhase, "parse", trace.SpanFromContext(ctx))

	p := &Parser{
		text: string(file.Content),
		fuel: fuelLimit,
		opts: opts,
	}

	lexSpan := trace.Begin(tracer, trace.ScopePhase, "lex", span.ID())
	p.lex(file)
	lexSpan.Attr("tokens", strconv.Itoa(len(p.tokens))).End("")

	p.sourceFile()
	tree := p.build()

	span.Attr("file", file.Path).
		Attr("nodes", strconv.Itoa(tree.NodeCount())).
		Attr("errors", strconv.Itoa(len(tree.Errors()))).
		End("")
	return &File{tree: tree, source: file}, nil
}

// Parse parses text as an anonymous in-memory file.
func Parse(text string) *File {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<input>", []byte(text)))
	file, err := ParseFile(context.Background(), f, Options{})
	if err != nil {
		// context.Background никогда не отменяется
		panic(err)
	}
	return file
}

func (p *Parser) lex(file *source.File) {
	lx := lexer.New(file, lexer.Options{Reporter: lexErrors{p}})
	p.tokens = lx.All()
	p.sig = make([]int, 0, len(p.tokens))
	for i, tok := range p.tokens {
		if !tok.IsTrivia() {
			p.sig = append(p.sig, i)
		}
	}
}

// lexErrors folds lexical errors into the tree's error list.
type lexErrors struct{ p *Parser }

func (r lexErrors) Report(code diag.Code, span source.Span, msg string) {
	r.p.pushError(span.Start, code, msg)
}
