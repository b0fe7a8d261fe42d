package lexer

import (
	"github.com/AOx0/toml-lsp-1/internal/text"
)

// Look is the compile-time lookahead depth. [[ ]] discrimination needs
// two tokens of lookahead; nan/inf disambiguation inside a signed number
// start benefits from a third. The grammar never asks for more (§9).
const Look = 3

// Diagnostic is a lexical-fault report: a substitution or a drop, one
// per recoverable lexical error (§7).
type Diagnostic struct {
	Span text.Span
	Kind Kind // one of Unknown, InvalidFloat, NonClosingString, NonClosingMultilineString
}

// Lexer wraps a raw tokenizer with a fixed-size lookahead ring. It drops
// trivia (Space, Comment) and converts lexical error tokens into
// diagnostics during refill, substituting a well-typed token for
// unterminated strings so the grammar never observes an error kind on
// the wire (§4.D).
type Lexer struct {
	cur   *cursor
	ring  [Look]Token
	diags []Diagnostic
}

// New constructs a Lexer over source, priming the lookahead ring.
func New(source []rune) *Lexer {
	l := &Lexer{cur: newCursor(source)}
	for i := 0; i < Look; i++ {
		l.ring[i] = l.significant()
	}
	return l
}

// PeekKind returns the kind at offset n in the ring (n < Look).
func (l *Lexer) PeekKind(n int) Kind {
	return l.ring[n].Kind
}

// PeekSpan returns the span at offset n in the ring (n < Look).
func (l *Lexer) PeekSpan(n int) text.Span {
	return l.ring[n].Span
}

// PeekKindArray returns the first m lookahead kinds (m <= Look), for
// multi-token disambiguation such as "[" vs "[[".
func (l *Lexer) PeekKindArray(m int) []Kind {
	if m > Look {
		m = Look
	}
	out := make([]Kind, m)
	for i := 0; i < m; i++ {
		out[i] = l.ring[i].Kind
	}
	return out
}

// Next emits the front of the ring and refills the tail.
func (l *Lexer) Next() Token {
	front := l.ring[0]
	copy(l.ring[:], l.ring[1:])
	l.ring[Look-1] = l.significant()
	return front
}

// Diagnostics returns the lexical diagnostics accumulated so far.
func (l *Lexer) Diagnostics() []Diagnostic {
	return l.diags
}

// significant pulls raw tokens until it has one the parser should see:
// trivia (Space, Comment) is dropped silently, and error tokens are
// converted into a diagnostic plus, for unterminated strings, a
// substitute token covering the raw span.
func (l *Lexer) significant() Token {
	for {
		tok := rawNext(l.cur)
		switch tok.Kind {
		case Space, Comment:
			continue
		case Unknown, InvalidFloat:
			l.diags = append(l.diags, Diagnostic{Span: tok.Span, Kind: tok.Kind})
			continue
		case NonClosingString:
			l.diags = append(l.diags, Diagnostic{Span: tok.Span, Kind: tok.Kind})
			return Token{Kind: StringOrKey, Span: tok.Span}
		case NonClosingMultilineString:
			l.diags = append(l.diags, Diagnostic{Span: tok.Span, Kind: tok.Kind})
			return Token{Kind: StringMultiline, Span: tok.Span}
		default:
			return tok
		}
	}
}

// rawNext recognizes and returns exactly one raw token, advancing c. It
// performs no trivia dropping and no diagnostic conversion — that is the
// Lexer ring's job (§4.D).
func rawNext(c *cursor) Token {
	start := c.position()
	r, ok := c.peek()
	if !ok {
		return Token{Kind: Eof, Span: text.Point(c.position())}
	}

	switch {
	case r == ' ' || r == '\t':
		c.bump()
		return Token{Kind: Space, Span: span(start, c)}
	case r == '\n' || r == '\r':
		c.bump()
		for {
			next, ok := c.peek()
			if !ok || (next != '\n' && next != '\r') {
				break
			}
			c.bump()
		}
		return Token{Kind: Newline, Span: span(start, c)}
	case r == '#':
		for {
			next, ok := c.peek()
			if !ok || next == '\n' {
				break
			}
			c.bump()
		}
		return Token{Kind: Comment, Span: span(start, c)}
	case r == '[':
		c.bump()
		return Token{Kind: LBracket, Span: span(start, c)}
	case r == ']':
		c.bump()
		return Token{Kind: RBracket, Span: span(start, c)}
	case r == '{':
		c.bump()
		return Token{Kind: LCurly, Span: span(start, c)}
	case r == '}':
		c.bump()
		return Token{Kind: RCurly, Span: span(start, c)}
	case r == ',':
		c.bump()
		return Token{Kind: Comma, Span: span(start, c)}
	case r == '=':
		c.bump()
		return Token{Kind: Equal, Span: span(start, c)}
	case r == '.':
		c.bump()
		return Token{Kind: Dot, Span: span(start, c)}
	case r == '\'' || r == '"':
		return scanString(c, r)
	case isIdentStart(r):
		return scanIdentOrKeyword(c)
	case isDigit(r) || r == '+' || r == '-':
		return scanNumberOrKey(c)
	default:
		c.bump()
		for {
			next, ok := c.peek()
			if !ok || startsToken(next) {
				break
			}
			c.bump()
		}
		return Token{Kind: Unknown, Span: span(start, c)}
	}
}

func scanString(c *cursor, quote rune) Token {
	start := c.position()
	if chunk, ok := c.peekChunk(3); ok && chunk[0] == quote && chunk[1] == quote && chunk[2] == quote {
		return scanMultilineString(c, quote, start)
	}

	c.bump() // opening quote
	for {
		r, ok := c.peek()
		if !ok || r == '\n' || r == '\r' {
			return Token{Kind: NonClosingString, Span: span(start, c)}
		}
		c.bump()
		if r == quote {
			return Token{Kind: StringOrKey, Span: span(start, c)}
		}
	}
}

func scanMultilineString(c *cursor, quote rune, start text.Offset) Token {
	c.bumpN(3) // opening delimiter
	for {
		if chunk, ok := c.peekChunk(3); ok && chunk[0] == quote && chunk[1] == quote && chunk[2] == quote {
			c.bumpN(3)
			return Token{Kind: StringMultiline, Span: span(start, c)}
		}
		if _, ok := c.peek(); !ok {
			return Token{Kind: NonClosingMultilineString, Span: span(start, c)}
		}
		c.bump()
	}
}

func scanIdentOrKeyword(c *cursor) Token {
	start := c.position()
	c.bump()
	for {
		r, ok := c.peek()
		if !ok || !isIdentPart(r) {
			break
		}
		c.bump()
	}
	sp := span(start, c)
	switch string(c.src[start:c.position()]) {
	case "true", "false":
		return Token{Kind: Bool, Span: sp}
	case "nan", "inf":
		return Token{Kind: Float, Span: sp}
	default:
		return Token{Kind: Key, Span: sp}
	}
}

// scanNumberOrKey implements the number-or-key rule (§4.D): a signed
// nan/inf short-circuits to Float, otherwise a mixed run of
// digits/underscores, letters/hyphens, and dot-guarded decimal points is
// classified from (dotCount, sawLetter).
func scanNumberOrKey(c *cursor) Token {
	start := c.position()
	if r, _ := c.peek(); r == '+' || r == '-' {
		c.bump()
	}
	if chunk, ok := c.peekChunk(3); ok {
		word := string(chunk)
		if word == "nan" || word == "inf" {
			c.bumpN(3)
			return Token{Kind: Float, Span: span(start, c)}
		}
	}

	dots, sawLetter := 0, false
	for {
		r, ok := c.peek()
		if !ok {
			break
		}
		switch {
		case isDigit(r) || r == '_':
			c.bump()
		case r == '-' && !sawLetter:
			c.bump()
		case isLetter(r):
			c.bump()
			sawLetter = true
		case r == '.' && !sawLetter:
			if next, ok := c.peekAhead(1); ok && (isDigit(next) || next == '_') {
				c.bump()
				dots++
				continue
			}
			return classifyNumber(start, c, dots, sawLetter)
		default:
			return classifyNumber(start, c, dots, sawLetter)
		}
	}
	return classifyNumber(start, c, dots, sawLetter)
}

func classifyNumber(start text.Offset, c *cursor, dots int, sawLetter bool) Token {
	sp := span(start, c)
	switch {
	case sawLetter:
		return Token{Kind: Key, Span: sp}
	case dots == 0:
		return Token{Kind: Integer, Span: sp}
	case dots == 1:
		return Token{Kind: Float, Span: sp}
	default:
		return Token{Kind: InvalidFloat, Span: sp}
	}
}

// startsToken reports whether r could begin some recognized token, used
// to bound a run of Unknown characters.
func startsToken(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '#', '[', ']', '{', '}', ',', '=', '.', '\'', '"':
		return true
	}
	return isIdentStart(r) || isDigit(r) || r == '+' || r == '-'
}

func span(start text.Offset, c *cursor) text.Span {
	return text.NewSpan(start, c.position())
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentStart(r rune) bool {
	return isLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '-'
}
