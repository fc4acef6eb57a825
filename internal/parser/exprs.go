package parser

import (
	"lattice/internal/diag"
	"lattice/internal/syntax"
)

func (p *Parser) atExprStart() bool {
	switch p.nth(0) {
	case syntax.IntNumber, syntax.String, syntax.TrueKw, syntax.FalseKw,
		syntax.Ident, syntax.LParen, syntax.IfKw, syntax.WhileKw,
		syntax.LCurly, syntax.Minus, syntax.Bang:
		return true
	}
	return false
}

// binding power of binary operators; 0 — не бинарный оператор
func binaryPower(k syntax.Kind) int {
	switch k {
	case syntax.PipePipe:
		return 1
	case syntax.AmpAmp:
		return 2
	case syntax.EqEq, syntax.Neq:
		return 3
	case syntax.Lt, syntax.LtEq, syntax.Gt, syntax.GtEq:
		return 4
	case syntax.Plus, syntax.Minus:
		return 5
	case syntax.Star, syntax.Slash:
		return 6
	default:
		return 0
	}
}

// expr parses an expression or records "expected an expression" without
// consuming anything.
func (p *Parser) expr() {
	if _, ok := p.binaryExpr(1); !ok {
		p.errorExpected(diag.SynExpectExpr, "an expression")
	}
}

// binaryExpr is precedence climbing; operators are left-associative.
func (p *Parser) binaryExpr(minPower int) (markClosed, bool) {
	lhs, ok := p.prefixExpr()
	if !ok {
		return lhs, false
	}
	for {
		power := binaryPower(p.nth(0))
		if power == 0 || power < minPower {
			break
		}
		m := p.openBefore(lhs)
		p.advance() // operator
		if _, ok := p.binaryExpr(power + 1); !ok {
			p.errorExpected(diag.SynExpectExpr, "an expression")
		}
		lhs = p.close(m, syntax.BinExpr)
	}
	return lhs, true
}

func (p *Parser) prefixExpr() (markClosed, bool) {
	if !p.atAny(syntax.Minus, syntax.Bang) {
		return p.postfixExpr()
	}
	m := p.open()
	p.advance()
	if _, ok := p.prefixExpr(); !ok {
		p.errorExpected(diag.SynExpectExpr, "an expression")
	}
	return p.close(m, syntax.PrefixExpr), true
}

func (p *Parser) postfixExpr() (markClosed, bool) {
	lhs, ok := p.primaryExpr()
	if !ok {
		return lhs, false
	}
	for p.at(syntax.LParen) {
		m := p.openBefore(lhs)
		p.argList()
		lhs = p.close(m, syntax.CallExpr)
	}
	return lhs, true
}

func (p *Parser) primaryExpr() (markClosed, bool) {
	switch p.nth(0) {
	case syntax.IntNumber, syntax.String, syntax.TrueKw, syntax.FalseKw:
		m := p.open()
		p.advance()
		return p.close(m, syntax.Literal), true
	case syntax.Ident:
		m := p.open()
		n := p.open()
		p.advance()
		p.close(n, syntax.NameRef)
		return p.close(m, syntax.PathExpr), true
	case syntax.LParen:
		m := p.open()
		p.advance()
		p.expr()
		p.expect(syntax.RParen, diag.SynUnclosedParen)
		return p.close(m, syntax.ParenExpr), true
	case syntax.IfKw:
		return p.ifExpr(), true
	case syntax.WhileKw:
		m := p.open()
		p.advance()
		p.condition()
		p.blockOrError()
		return p.close(m, syntax.WhileExpr), true
	case syntax.LCurly:
		m := p.open()
		p.block()
		return p.close(m, syntax.BlockExpr), true
	default:
		return markClosed{}, false
	}
}

// ifExpr = 'if' Expr Block ('else' (IfExpr | Block))?
func (p *Parser) ifExpr() markClosed {
	m := p.open()
	p.advance() // if
	p.condition()
	p.blockOrError()
	if p.at(syntax.ElseKw) {
		e := p.open()
		p.advance()
		if p.at(syntax.IfKw) {
			p.ifExpr()
		} else {
			p.blockOrError()
		}
		p.close(e, syntax.ElseBranch)
	}
	return p.close(m, syntax.IfExpr)
}

// condition of if/while: a '{' here starts the body, not the condition.
func (p *Parser) condition() {
	if p.at(syntax.LCurly) {
		p.errorExpected(diag.SynExpectExpr, "a condition")
		return
	}
	p.expr()
}

// argList = '(' (Expr (',' Expr)* ','?)? ')'
func (p *Parser) argList() {
	m := p.open()
	p.advance() // (
	for !p.atListEnd(syntax.RParen) {
		if !p.atExprStart() {
			p.advanceWithError(diag.SynUnexpectedToken, "expected an argument")
			continue
		}
		p.expr()
		if !p.atListEnd(syntax.RParen) {
			p.expect(syntax.Comma, diag.SynUnexpectedToken)
		}
	}
	p.expect(syntax.RParen, diag.SynUnclosedParen)
	p.close(m, syntax.ArgList)
}
