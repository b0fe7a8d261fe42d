// Package text defines source offsets, spans, and line/column locations
// over Unicode-scalar-indexed source text.
package text

import "fmt"

// Offset is a Unicode scalar value (character) index into source text,
// not a byte index.
type Offset int

// IsValid reports whether the offset is non-negative.
func (o Offset) IsValid() bool {
	return o >= 0
}

// Span is a half-open character range [Start, End) over the source.
type Span struct {
	Start Offset // inclusive
	End   Offset // exclusive
}

// NewSpan constructs a span at the given bounds.
func NewSpan(start, end Offset) Span {
	return Span{Start: start, End: end}
}

// Point returns a zero-length span at off.
func Point(off Offset) Span {
	return Span{Start: off, End: off}
}

// IsValid reports whether the span bounds are well-formed.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.End >= s.Start
}

// IsEmpty reports whether the span covers zero characters.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Len returns the number of characters covered by the span.
func (s Span) Len() Offset {
	return s.End - s.Start
}

// Widen returns the smallest span covering both a and b.
func Widen(a, b Span) Span {
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{Start: start, End: end}
}

// ReduceTo returns the span [s.Start, min(s.End, s.Start+n)), a
// one-(or-n-)character pointer suitable for diagnostic anchoring.
func (s Span) ReduceTo(n Offset) Span {
	end := s.Start + n
	if end > s.End {
		end = s.End
	}
	return Span{Start: s.Start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Location is a 1-based line/column source position.
type Location struct {
	Line int // 1-based
	Col  int // 1-based
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}
