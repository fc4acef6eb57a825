package parser

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"lattice/internal/diag"
	"lattice/internal/syntax"
)

func (p *Parser) eof() bool {
	return p.pos >= len(p.sig)
}

// nth looks n significant tokens ahead. Every call burns fuel; advance
// and close refill it, so unwinding deep nesting never runs dry.
func (p *Parser) nth(n int) syntax.Kind {
	if p.fuel == 0 {
		panic(fmt.Sprintf("parser is stuck at token %d", p.pos))
	}
	p.fuel--
	i := p.pos + n
	if i >= len(p.sig) {
		return syntax.EOF
	}
	return p.tokens[p.sig[i]].Kind
}

func (p *Parser) at(k syntax.Kind) bool {
	return p.nth(0) == k
}

func (p *Parser) atAny(kinds ...syntax.Kind) bool {
	return slices.Contains(kinds, p.nth(0))
}

func (p *Parser) advance() {
	if p.eof() {
		panic("parser: advance past EOF")
	}
	p.fuel = fuelLimit
	p.events = append(p.events, event{kind: evAdvance})
	p.pos++
}

func (p *Parser) eat(k syntax.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect eats k or records "expected K" right after the previous token.
func (p *Parser) expect(k syntax.Kind, code diag.Code) bool {
	if p.eat(k) {
		return true
	}
	p.errorExpected(code, k.String())
	return false
}

// advanceWithError wraps the current token into an ERROR node.
func (p *Parser) advanceWithError(code diag.Code, msg string) {
	m := p.open()
	p.errorHere(code, msg)
	p.advance()
	p.close(m, syntax.Error)
}

// atListEnd reports whether a delimited list should stop. Lists never
// consume braces: those belong to the enclosing block.
func (p *Parser) atListEnd(closer syntax.Kind) bool {
	return p.eof() || p.atAny(closer, syntax.LCurly, syntax.RCurly)
}

func (p *Parser) errorExpected(code diag.Code, what string) {
	p.pushError(p.prevEnd(), code, "expected "+what)
}

func (p *Parser) errorHere(code diag.Code, msg string) {
	p.pushError(p.curStart(), code, msg)
}

func (p *Parser) pushError(off syntax.TextSize, code diag.Code, msg string) {
	if p.opts.MaxErrors > 0 && uint(len(p.errors)) >= p.opts.MaxErrors {
		if !p.limited {
			p.limited = true
			p.errors = append(p.errors, syntax.SyntaxError{
				Offset:  off,
				Message: "too many errors, the rest are suppressed",
				Code:    diag.SynErrorLimitReached,
			})
		}
		return
	}
	p.errors = append(p.errors, syntax.SyntaxError{Offset: off, Message: msg, Code: code})
}

// prevEnd is the end of the last significant token, or 0.
func (p *Parser) prevEnd() syntax.TextSize {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.sig[p.pos-1]].Span.End
}

// curStart is the start of the current significant token, or the text end.
func (p *Parser) curStart() syntax.TextSize {
	if p.eof() {
		end, err := safecast.Conv[uint32](len(p.text))
		if err != nil {
			panic(fmt.Errorf("text length overflow: %w", err))
		}
		return end
	}
	return p.tokens[p.sig[p.pos]].Span.Start
}
