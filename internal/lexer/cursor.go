package lexer

import "github.com/AOx0/toml-lsp-1/internal/text"

// cursor is a character-indexed view over source with bounded
// peek-ahead. It never panics at end-of-input: peeks past the end
// return ok=false. Indices are Unicode scalar value offsets (§4.A), not
// byte offsets.
type cursor struct {
	src []rune
	pos int
}

func newCursor(src []rune) *cursor {
	return &cursor{src: src}
}

// peek returns the character at the current position.
func (c *cursor) peek() (rune, bool) {
	return c.peekAhead(0)
}

// peekAhead returns the character n positions ahead of the current one.
func (c *cursor) peekAhead(n int) (rune, bool) {
	i := c.pos + n
	if i < 0 || i >= len(c.src) {
		return 0, false
	}
	return c.src[i], true
}

// peekChunk returns the next n consecutive characters, or ok=false if
// fewer than n remain.
func (c *cursor) peekChunk(n int) ([]rune, bool) {
	if c.pos+n > len(c.src) {
		return nil, false
	}
	return c.src[c.pos : c.pos+n], true
}

// bump advances the cursor by one character and returns the character
// consumed.
func (c *cursor) bump() (rune, bool) {
	r, ok := c.peek()
	if !ok {
		return 0, false
	}
	c.pos++
	return r, true
}

// bumpN advances the cursor by n characters, stopping early at EOF.
func (c *cursor) bumpN(n int) {
	c.pos += n
	if c.pos > len(c.src) {
		c.pos = len(c.src)
	}
}

// atEOF reports whether the cursor is at or past the end of source.
func (c *cursor) atEOF() bool {
	return c.pos >= len(c.src)
}

// position returns the cursor's current character offset.
func (c *cursor) position() text.Offset {
	return text.Offset(c.pos)
}
