package syntax

import (
	"github.com/AOx0/toml-lsp-1/internal/lexer"
	"github.com/AOx0/toml-lsp-1/internal/text"
)

// maxFuel bounds the number of consecutive lookahead-only operations a
// grammar rule may perform without consuming a token. It exists purely
// to turn an accidental no-op loop in a grammar rule into a fast,
// loud failure instead of a hang (§4.F "Fuel").
const maxFuel = 255

// parser drives the lexer and event buffer for the grammar rules in
// grammar.go. It never aborts: every error path records a diagnostic
// and keeps going, so parse always produces a complete tree (§7).
type parser struct {
	lx    *lexer.Lexer
	ev    eventBuffer
	diags []Diagnostic
	fuel  int
}

func newParser(lx *lexer.Lexer) *parser {
	return &parser{lx: lx, fuel: maxFuel}
}

// currentSpan is the span of the next significant token.
func (p *parser) currentSpan() text.Span {
	return p.lx.PeekSpan(0)
}

func (p *parser) checkFuel() {
	p.fuel--
	if p.fuel == 0 {
		panic("syntax: parser fuel exhausted — a grammar rule looped without consuming a token")
	}
}

func (p *parser) resetFuel() {
	p.fuel = maxFuel
}

// peekKind is the kind of the next significant token.
func (p *parser) peekKind() lexer.Kind {
	p.checkFuel()
	return p.lx.PeekKind(0)
}

func (p *parser) nextIs(k lexer.Kind) bool {
	return p.peekKind() == k
}

// nextAre reports whether the first len(ks) lookahead kinds equal ks.
// len(ks) must not exceed lexer.Look.
func (p *parser) nextAre(ks ...lexer.Kind) bool {
	p.checkFuel()
	got := p.lx.PeekKindArray(len(ks))
	for i, k := range ks {
		if got[i] != k {
			return false
		}
	}
	return true
}

// open records an Open event at the current position and returns a
// mark to close later.
func (p *parser) open() Mark {
	return p.ev.open(p.currentSpan())
}

// close finalizes the node opened at m with kind.
func (p *parser) close(m Mark, kind TreeKind) {
	p.ev.close(m, kind)
}

// advance consumes one token into the tree as a visible child.
func (p *parser) advance() {
	tok := p.lx.Next()
	p.ev.advance(tok)
	p.resetFuel()
}

// skip consumes one token whose span widens the enclosing node without
// becoming a visible child.
func (p *parser) skip() {
	tok := p.lx.Next()
	p.ev.skip(tok.Span)
	p.resetFuel()
}

// ignore consumes one token that contributes nothing: no child, no
// span widening. Used for outer garbage recovery.
func (p *parser) ignore() {
	p.lx.Next()
	p.ev.ignore()
	p.resetFuel()
}

// advanceIf advances and returns true if the next token is k.
func (p *parser) advanceIf(k lexer.Kind) bool {
	if !p.nextIs(k) {
		return false
	}
	p.advance()
	return true
}

// skipIf skips and returns true if the next token is k.
func (p *parser) skipIf(k lexer.Kind) bool {
	if !p.nextIs(k) {
		return false
	}
	p.skip()
	return true
}

// skipExpect skips k if present, else records an Expected(k) diagnostic
// at the current point and consumes nothing.
func (p *parser) skipExpect(k lexer.Kind) {
	if p.skipIf(k) {
		return
	}
	p.addError(P(Expected, k.Debug()))
}

// addError pushes a diagnostic pointing at a single character at the
// current position.
func (p *parser) addError(kind TreeKind) {
	p.diags = append(p.diags, Diagnostic{Span: p.currentSpan().ReduceTo(1), Kind: kind})
}

// advanceWithError materializes a one-token error node: open, record
// the diagnostic, advance the offending token in as its child, close.
func (p *parser) advanceWithError(kind TreeKind) {
	m := p.open()
	p.addError(kind)
	p.advance()
	p.close(m, kind)
}
