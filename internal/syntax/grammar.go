package syntax

import "github.com/AOx0/toml-lsp-1/internal/lexer"

// isKeyStart reports whether k can begin a Key/KeyPart.
func isKeyStart(k lexer.Kind) bool {
	return k == lexer.Key || k == lexer.StringOrKey
}

// isExprStart reports whether k is in FIRST(Expr).
func isExprStart(k lexer.Kind) bool {
	return k == lexer.LBracket || isKeyStart(k)
}

// parseToml is the grammar's entrypoint: Toml = Expr*.
func (p *parser) parseToml() *Tree {
	m := p.open()
	for p.parseExpr() {
	}
	p.close(m, K(Toml))
	tree, err := build(p.ev.events)
	if err != nil {
		panic(err)
	}
	return tree
}

// parseExpr recognizes one Expr, applying rule 7 (garbage at top level)
// to skip tokens outside FIRST(Expr). Returns false once Eof is reached.
func (p *parser) parseExpr() bool {
	for !p.nextIs(lexer.Eof) && !isExprStart(p.peekKind()) {
		p.ignore()
	}
	if p.nextIs(lexer.Eof) {
		return false
	}

	switch {
	case p.nextAre(lexer.LBracket, lexer.LBracket):
		p.parseTableArray()
	case p.nextIs(lexer.LBracket):
		p.parseTable()
	default:
		p.parseKeyVal()
		p.skipLineEnd()
	}
	return true
}

// skipLineEnd consumes a trailing Newline if one is present; Eof
// terminates a line just as well and is never an error.
func (p *parser) skipLineEnd() {
	if p.nextIs(lexer.Eof) {
		return
	}
	p.skipExpect(lexer.Newline)
}

// parseTable recognizes Table = '[' Key ']' Newline (KeyVal Newline)*.
func (p *parser) parseTable() {
	m := p.open()
	p.skip() // '['
	p.parseKey()
	p.skipExpect(lexer.RBracket)
	p.consumeExtra(lexer.RBracket)
	p.skipLineEnd()
	p.parseKeyValLines()
	p.close(m, K(Table))
}

// parseTableArray recognizes
// TableArray = '[[' Key ']]' Newline (KeyVal Newline)*, with rule 2
// (mismatched closing bracket count) and rule 4 (extra brackets).
func (p *parser) parseTableArray() {
	m := p.open()
	p.skip() // first '['
	p.skip() // second '['
	p.consumeExtra(lexer.LBracket)
	p.parseKey()

	switch {
	case p.nextIs(lexer.RBracket):
		p.skip()
		if p.nextIs(lexer.RBracket) {
			p.skip()
		} else {
			p.addError(P(Expected, "]"))
		}
	default:
		p.addError(P(Expected, "]]"))
	}
	p.consumeExtra(lexer.RBracket)
	p.skipLineEnd()
	p.parseKeyValLines()
	p.close(m, K(TableArray))
}

// consumeExtra implements rule 4: each immediately-following token of
// kind k beyond what the grammar expects is wrapped as one Extra(k)
// error node.
func (p *parser) consumeExtra(k lexer.Kind) {
	for p.nextIs(k) {
		p.advanceWithError(P(Extra, k.Debug()))
	}
}

// parseKeyValLines recognizes the (KeyVal Newline)* repetition shared
// by Table and TableArray.
func (p *parser) parseKeyValLines() {
	for isKeyStart(p.peekKind()) {
		p.parseKeyVal()
		p.skipLineEnd()
	}
}

// parseKey recognizes Key = KeyPart ('.' KeyPart)*, applying rule 1
// (missing key in header / missing key part) when no key-start token
// is present.
func (p *parser) parseKey() {
	if !isKeyStart(p.peekKind()) {
		m := p.open()
		p.addError(K(MissingKey))
		for !isKeyStart(p.peekKind()) && !p.nextIs(lexer.LBracket) && !p.nextIs(lexer.Eof) {
			p.ignore()
		}
		p.close(m, K(MissingKey))
		return
	}

	m := p.open()
	p.advance()
	for p.nextIs(lexer.Dot) {
		p.skip()
		if isKeyStart(p.peekKind()) {
			p.advance()
			continue
		}
		p.addError(K(MissingKey))
		break
	}
	p.close(m, K(Key))
}

// parseKeyVal recognizes KeyVal = Key '=' Value, applying rule 3
// (missing '=' or value).
func (p *parser) parseKeyVal() {
	m := p.open()
	p.parseKey()
	p.skipExpect(lexer.Equal)
	p.parseValue()
	p.close(m, K(KeyVal))
}

// parseValue recognizes
// Value = StringOrKey | StringMultiline | Integer | Float | Bool | Array | InlineTable.
func (p *parser) parseValue() {
	switch p.peekKind() {
	case lexer.StringOrKey:
		m := p.open()
		p.advance()
		p.close(m, K(String))
	case lexer.StringMultiline:
		m := p.open()
		p.advance()
		p.close(m, K(StringMulti))
	case lexer.Integer:
		m := p.open()
		p.advance()
		p.close(m, K(Integer))
	case lexer.Float:
		m := p.open()
		p.advance()
		p.close(m, K(Float))
	case lexer.Bool:
		m := p.open()
		p.advance()
		p.close(m, K(Bool))
	case lexer.LBracket:
		p.parseArray()
	case lexer.LCurly:
		p.parseInlineTable()
	default:
		m := p.open()
		p.addError(K(MissingValue))
		p.close(m, K(MissingValue))
	}
}

// parseArray recognizes Array = '[' (Value (','|Newline))* ']'. A
// leading or formatting Newline is skipped silently before a value is
// expected; a Comma found where a value is expected (a stray leading
// comma, or the second of a doubled comma) falls into parseValue's
// default case instead, which records MissingValue without consuming
// the comma, localizing the damage to one empty element rather than
// aborting the array. Any other token that cannot start a value ends the
// element list, and the missing ']' is reported there.
func (p *parser) parseArray() {
	m := p.open()
	p.skip() // '['
	for !p.nextIs(lexer.RBracket) && !p.nextIs(lexer.Eof) {
		if p.nextIs(lexer.Newline) {
			p.skip()
			continue
		}
		start := p.currentSpan()
		p.parseValue()
		if p.skipIf(lexer.Comma) || p.skipIf(lexer.Newline) {
			continue
		}
		if p.currentSpan() == start {
			break // nothing consumed and no separator follows
		}
	}
	p.skipExpect(lexer.RBracket)
	p.close(m, K(Array))
}

// parseInlineTable recognizes
// InlineTable = '{' (KeyVal (',' KeyVal)*)? '}', applying rule 5
// (newline forbidden inside an inline table).
func (p *parser) parseInlineTable() {
	m := p.open()
	p.skip() // '{'
	if isKeyStart(p.peekKind()) {
		p.parseKeyVal()
	loop:
		for !p.nextIs(lexer.RCurly) && !p.nextIs(lexer.Eof) {
			switch {
			case p.nextIs(lexer.Comma):
				p.skip()
			case p.nextIs(lexer.Newline):
				p.addError(P(Forbidden, "\\n"))
				p.skip()
			default:
				break loop
			}
			if isKeyStart(p.peekKind()) {
				p.parseKeyVal()
			}
		}
	}
	p.skipExpect(lexer.RCurly)
	p.close(m, K(InlineTable))
}
