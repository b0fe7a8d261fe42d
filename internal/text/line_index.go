package text

import (
	"fmt"
	"slices"
)

// LineIndex maps character offsets to LSP-facing zero-based UTF-16
// positions over a Unicode-scalar-indexed source buffer.
//
// The core (internal/lexer, internal/syntax) never needs this: spans are
// pure character offsets and line/column derivation is done on demand via
// Locate. LineIndex exists only at the LSP boundary, where positions must
// repeatedly round-trip to UTF-16 line/character pairs.
type LineIndex struct {
	source     []rune
	lineStarts []Offset
}

// NewLineIndex builds an index over source.
func NewLineIndex(source []rune) *LineIndex {
	starts := []Offset{0}
	for i, r := range source {
		if r == '\n' {
			starts = append(starts, Offset(i+1))
		}
	}
	return &LineIndex{source: source, lineStarts: starts}
}

// Len returns the number of characters in the indexed source.
func (li *LineIndex) Len() Offset {
	if li == nil {
		return 0
	}
	return Offset(len(li.source))
}

// UTF16Position is a zero-based LSP position.
type UTF16Position struct {
	Line      int
	Character int
}

// OffsetToUTF16Position converts a character offset to an LSP position.
func (li *LineIndex) OffsetToUTF16Position(off Offset) (UTF16Position, error) {
	if li == nil {
		return UTF16Position{}, fmt.Errorf("nil LineIndex")
	}
	if off < 0 || off > li.Len() {
		return UTF16Position{}, fmt.Errorf("offset out of range: %d", off)
	}
	line := li.lineForOffset(off)
	start := li.lineStarts[line]
	units := 0
	for i := start; i < off; i++ {
		units += utf16RuneUnits(li.source[i])
	}
	return UTF16Position{Line: line, Character: units}, nil
}

// UTF16PositionToOffset converts an LSP position to a character offset.
func (li *LineIndex) UTF16PositionToOffset(pos UTF16Position) (Offset, error) {
	if li == nil {
		return 0, fmt.Errorf("nil LineIndex")
	}
	if pos.Line < 0 || pos.Line >= len(li.lineStarts) {
		return 0, fmt.Errorf("line out of range: %d", pos.Line)
	}
	if pos.Character < 0 {
		return 0, fmt.Errorf("character out of range: %d", pos.Character)
	}
	start := li.lineStarts[pos.Line]
	end := Offset(len(li.source))
	if pos.Line+1 < len(li.lineStarts) {
		// The line's terminating '\n' is the last addressable offset; a
		// position past it does not alias the next line's start.
		end = li.lineStarts[pos.Line+1] - 1
	}

	units := 0
	i := start
	for i < end {
		if units == pos.Character {
			return i, nil
		}
		r := li.source[i]
		rUnits := utf16RuneUnits(r)
		if pos.Character > units && pos.Character < units+rUnits {
			return 0, fmt.Errorf("position splits a surrogate pair")
		}
		units += rUnits
		i++
	}
	if units == pos.Character {
		return i, nil
	}
	return 0, fmt.Errorf("character out of range: %d > %d", pos.Character, units)
}

func (li *LineIndex) lineForOffset(off Offset) int {
	i, found := slices.BinarySearch(li.lineStarts, off)
	if found {
		return i
	}
	return i - 1
}

func utf16RuneUnits(r rune) int {
	if r <= 0xFFFF {
		return 1
	}
	return 2
}
