package lexer

import "testing"

// FuzzTokenCoverage checks that for arbitrary input the raw token stream
// tiles the source exactly: no gap, no overlap, and the final token is
// always a zero-width Eof at the end of input.
func FuzzTokenCoverage(f *testing.F) {
	for _, seed := range []string{
		"",
		"key = \"value\"",
		"[[a.b]]\nc = 1.2.3\n",
		"'''multi\nline'''",
		"\"unterminated",
		"nan inf -nan",
		"$$$ garbage {{{",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		runes := []rune(src)
		c := newCursor(runes)
		prevEnd := 0
		for {
			tok := rawNext(c)
			if int(tok.Span.Start) != prevEnd {
				t.Fatalf("gap/overlap: token %v does not start at %d", tok, prevEnd)
			}
			if tok.Span.End < tok.Span.Start {
				t.Fatalf("inverted span: %v", tok)
			}
			prevEnd = int(tok.Span.End)
			if tok.Kind == Eof {
				if tok.Span.Start != tok.Span.End {
					t.Fatalf("Eof span not zero-width: %v", tok)
				}
				break
			}
		}
		if prevEnd != len(runes) {
			t.Fatalf("coverage ended at %d, want %d", prevEnd, len(runes))
		}
	})
}
