package parser

import (
	"lattice/internal/diag"
	"lattice/internal/syntax"
)

// sourceFile = Item*
func (p *Parser) sourceFile() {
	m := p.open()
	for !p.eof() {
		switch p.nth(0) {
		case syntax.FnKw, syntax.StructKw:
			p.item()
		case syntax.LCurly:
			p.strayBlock()
		case syntax.RCurly:
			p.advanceWithError(diag.SynUnmatchedBrace, "unmatched closing brace")
		default:
			p.advanceWithError(diag.SynExpectItem, "expected an item")
		}
	}
	p.close(m, syntax.SourceFile)
}

func (p *Parser) item() {
	switch p.nth(0) {
	case syntax.FnKw:
		p.fnDef()
	case syntax.StructKw:
		p.structDef()
	default:
		panic("parser: item() called off an item keyword")
	}
}

// strayBlock parses a block where none is allowed, keeping its braces paired.
func (p *Parser) strayBlock() {
	m := p.open()
	p.errorHere(diag.SynUnexpectedToken, "unexpected block")
	p.block()
	p.close(m, syntax.Error)
}

// fnDef = 'fn' Name ParamList RetType? Block
func (p *Parser) fnDef() {
	m := p.open()
	p.advance() // fn
	p.name()
	if p.at(syntax.LParen) {
		p.paramList()
	} else {
		p.errorExpected(diag.SynExpectParamList, "a parameter list")
	}
	if p.at(syntax.ThinArrow) {
		r := p.open()
		p.advance()
		p.typeRef()
		p.close(r, syntax.RetType)
	}
	p.blockOrError()
	p.close(m, syntax.FnDef)
}

func (p *Parser) name() {
	if !p.at(syntax.Ident) {
		p.errorExpected(diag.SynExpectName, "a name")
		return
	}
	m := p.open()
	p.advance()
	p.close(m, syntax.Name)
}

func (p *Parser) typeRef() {
	if !p.at(syntax.Ident) {
		p.errorExpected(diag.SynExpectName, "a type")
		return
	}
	m := p.open()
	p.advance()
	p.close(m, syntax.NameRef)
}

// paramList = '(' (Param (',' Param)* ','?)? ')'
func (p *Parser) paramList() {
	m := p.open()
	p.advance() // (
	for !p.atListEnd(syntax.RParen) {
		if !p.at(syntax.Ident) {
			p.advanceWithError(diag.SynUnexpectedToken, "expected a parameter")
			continue
		}
		p.param()
		if !p.atListEnd(syntax.RParen) {
			p.expect(syntax.Comma, diag.SynUnexpectedToken)
		}
	}
	p.expect(syntax.RParen, diag.SynUnclosedParen)
	p.close(m, syntax.ParamList)
}

// param = Name ':' NameRef
func (p *Parser) param() {
	m := p.open()
	p.name()
	if p.expect(syntax.Colon, diag.SynUnexpectedToken) {
		p.typeRef()
	}
	p.close(m, syntax.Param)
}

// structDef = 'struct' Name (FieldList | ';')
func (p *Parser) structDef() {
	m := p.open()
	p.advance() // struct
	p.name()
	switch {
	case p.at(syntax.LCurly):
		p.fieldList()
	case p.eat(syntax.Semi):
	default:
		p.errorExpected(diag.SynExpectFieldList, "a field list")
	}
	p.close(m, syntax.StructDef)
}

// fieldList = '{' (Field (',' Field)* ','?)? '}'
func (p *Parser) fieldList() {
	m := p.open()
	p.advance() // {
	for !p.eof() && !p.at(syntax.RCurly) {
		switch p.nth(0) {
		case syntax.Ident:
			p.field()
			if !p.eof() && !p.at(syntax.RCurly) {
				p.expect(syntax.Comma, diag.SynUnexpectedToken)
			}
		case syntax.LCurly:
			p.strayBlock()
		default:
			p.advanceWithError(diag.SynUnexpectedToken, "expected a field")
		}
	}
	p.expect(syntax.RCurly, diag.SynUnclosedBrace)
	p.close(m, syntax.FieldList)
}

// field = Name ':' NameRef
func (p *Parser) field() {
	m := p.open()
	p.name()
	if p.expect(syntax.Colon, diag.SynUnexpectedToken) {
		p.typeRef()
	}
	p.close(m, syntax.Field)
}
