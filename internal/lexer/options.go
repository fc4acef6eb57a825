package lexer

import (
	"lattice/internal/diag"
	"lattice/internal/source"
)

// Reporter receives lexical errors. The lexer never stops on an error;
// it produces an ERROR_TOKEN (or a best-effort token) and continues.
type Reporter interface {
	Report(code diag.Code, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil — тогда ошибки игнорируем
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sp, msg)
	}
}

// DiagReporter forwards lexical errors to a diag.Reporter as errors.
type DiagReporter struct {
	R diag.Reporter
}

func (r DiagReporter) Report(code diag.Code, span source.Span, msg string) {
	diag.ReportError(r.R, code, span, msg)
}
