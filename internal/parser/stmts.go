package parser

import (
	"lattice/internal/diag"
	"lattice/internal/syntax"
)

// block = '{' Stmt* '}'
// Runs to the matching '}' or EOF; nested braces are always parsed as
// nested blocks, so the pair stays inside one BLOCK.
func (p *Parser) block() {
	m := p.open()
	p.advance() // {
	for !p.eof() && !p.at(syntax.RCurly) {
		p.stmt()
	}
	p.expect(syntax.RCurly, diag.SynUnclosedBrace)
	p.close(m, syntax.Block)
}

func (p *Parser) blockOrError() {
	if p.at(syntax.LCurly) {
		p.block()
		return
	}
	p.errorExpected(diag.SynExpectBlock, "a block")
}

func (p *Parser) stmt() {
	switch p.nth(0) {
	case syntax.LetKw:
		p.letStmt()
	case syntax.ReturnKw:
		p.returnStmt()
	case syntax.FnKw, syntax.StructKw:
		p.item()
	default:
		if p.atExprStart() {
			p.exprStmt()
			return
		}
		p.advanceWithError(diag.SynUnexpectedToken, "expected a statement")
	}
}

// letStmt = 'let' Name ('=' Expr)? ';'
func (p *Parser) letStmt() {
	m := p.open()
	p.advance() // let
	p.name()
	if p.eat(syntax.Eq) {
		p.expr()
	}
	p.expect(syntax.Semi, diag.SynExpectSemicolon)
	p.close(m, syntax.LetStmt)
}

// returnStmt = 'return' Expr? ';'
func (p *Parser) returnStmt() {
	m := p.open()
	p.advance() // return
	if p.atExprStart() {
		p.expr()
	}
	p.expect(syntax.Semi, diag.SynExpectSemicolon)
	p.close(m, syntax.ReturnStmt)
}

// exprStmt = Expr ';'?
// The semicolon may be dropped after block-like expressions and before '}'.
func (p *Parser) exprStmt() {
	m := p.open()
	blockLike := p.atAny(syntax.IfKw, syntax.WhileKw, syntax.LCurly)
	p.expr()
	if !p.eat(syntax.Semi) && !blockLike && !p.eof() && !p.at(syntax.RCurly) {
		p.errorExpected(diag.SynExpectSemicolon, syntax.Semi.String())
	}
	p.close(m, syntax.ExprStmt)
}
