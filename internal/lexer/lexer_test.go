package lexer

import (
	"testing"

	"github.com/AOx0/toml-lsp-1/internal/text"
	"github.com/go-test/deep"
)

func collect(src string) ([]Token, []Diagnostic) {
	lx := New([]rune(src))
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == Eof {
			break
		}
	}
	return toks, lx.Diagnostics()
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []Kind, want ...Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestLexerStructuralPunctuation(t *testing.T) {
	t.Parallel()

	toks, diags := collect("[[a]] = {},.")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	// Space is trivia and never reaches the parser.
	assertKinds(t, kinds(toks),
		LBracket, LBracket, Key, RBracket, RBracket, Equal, LCurly, RCurly, Comma, Dot, Eof)
}

func TestLexerDropsTriviaSilently(t *testing.T) {
	t.Parallel()

	toks, diags := collect("a  # a comment\nb")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	// Space and Comment are dropped by the ring; only Key, Newline, Key, Eof
	// ever reach the parser.
	assertKinds(t, kinds(toks), Key, Newline, Key, Eof)
}

func TestLexerBoolAndSpecialFloats(t *testing.T) {
	t.Parallel()

	toks, _ := collect("true false nan inf -nan +inf")
	assertKinds(t, kinds(toks), Bool, Bool, Float, Float, Float, Float, Eof)
}

func TestLexerNumberClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src  string
		kind Kind
	}{
		{"42", Integer},
		{"-42", Integer},
		{"3.14", Float},
		{"-3.14", Float},
		{"1970-01-01", Integer}, // hyphens alone do not force Key; Datetime is reserved, never constructed
		{"1e10", Key},           // a letter anywhere in the run forces Key, even mid-digit-run
	}
	for _, tc := range cases {
		toks, diags := collect(tc.src)
		if len(diags) != 0 {
			t.Fatalf("%q: unexpected diagnostics: %v", tc.src, diags)
		}
		assertKinds(t, kinds(toks), tc.kind, Eof)
	}
}

// TestLexerHyphenDoesNotForceKeyClassification pins a deliberate
// deviation from the original source: scanNumberOrKey's '-' branch
// never sets sawLetter, so a bare hyphen run classifies as Integer
// rather than Key (see SPEC_FULL.md Open Questions, OQ3). This locks
// the chosen behavior so a future change to that branch is caught here
// rather than silently reclassifying dates and ranges.
func TestLexerHyphenDoesNotForceKeyClassification(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"1970-01-01", "1-2"} {
		toks, diags := collect(src)
		if len(diags) != 0 {
			t.Fatalf("%q: unexpected diagnostics: %v", src, diags)
		}
		assertKinds(t, kinds(toks), Integer, Eof)
	}
}

func TestLexerInvalidFloatIsDroppedNotSubstituted(t *testing.T) {
	t.Parallel()

	toks, diags := collect("1.2.3")
	if len(diags) != 1 || diags[0].Kind != InvalidFloat {
		t.Fatalf("diagnostics = %v, want one InvalidFloat", diags)
	}
	// No substitute token survives for a dropped InvalidFloat: only Eof remains.
	assertKinds(t, kinds(toks), Eof)
}

func TestLexerStringLiteralsNotEscapeInterpreted(t *testing.T) {
	t.Parallel()

	toks, diags := collect(`"a\nb" 'c\d'`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks), StringOrKey, StringOrKey, Eof)
	if want, got := len([]rune(`"a\nb"`)), int(toks[0].Span.Len()); got != want {
		t.Fatalf("span length = %d, want %d", got, want)
	}
}

func TestLexerUnterminatedStringSubstitutesAndDiagnoses(t *testing.T) {
	t.Parallel()

	toks, diags := collect("\"unterminated\nrest")
	if len(diags) != 1 || diags[0].Kind != NonClosingString {
		t.Fatalf("diagnostics = %v, want one NonClosingString", diags)
	}
	assertKinds(t, kinds(toks), StringOrKey, Newline, Key, Eof)
}

func TestLexerUnterminatedMultilineStringSubstitutesAndDiagnoses(t *testing.T) {
	t.Parallel()

	toks, diags := collect(`"""never closes`)
	if len(diags) != 1 || diags[0].Kind != NonClosingMultilineString {
		t.Fatalf("diagnostics = %v, want one NonClosingMultilineString", diags)
	}
	assertKinds(t, kinds(toks), StringMultiline, Eof)
}

func TestLexerUnknownCharactersAreDroppedNotSubstituted(t *testing.T) {
	t.Parallel()

	toks, diags := collect("a $$$ b")
	if len(diags) != 1 || diags[0].Kind != Unknown {
		t.Fatalf("diagnostics = %v, want one Unknown", diags)
	}
	// The Unknown run vanishes from the token stream entirely, along with
	// the surrounding trivia: only the two Key tokens survive.
	assertKinds(t, kinds(toks), Key, Key, Eof)
}

func TestLexerEofIsZeroWidthAtFinalPosition(t *testing.T) {
	t.Parallel()

	toks, _ := collect("abc")
	eof := toks[len(toks)-1]
	if eof.Kind != Eof {
		t.Fatalf("last token = %v, want Eof", eof)
	}
	if eof.Span.Start != eof.Span.End {
		t.Fatalf("Eof span = %v, want zero-width", eof.Span)
	}
	if eof.Span.Start != 3 {
		t.Fatalf("Eof span.Start = %d, want 3", eof.Span.Start)
	}
}

func TestLexerTokenCoverageInvariant(t *testing.T) {
	t.Parallel()

	// Every raw token (including dropped trivia/errors) must tile the
	// source with no gap and no overlap; this walks the raw tokenizer
	// directly rather than through the ring, which is where that
	// invariant actually lives.
	srcs := []string{
		`key = "value" # trailing comment` + "\n[[a.b]]\nc.d = 1.2.3\n\"unterminated`,
		"",
		"\n\n\n",
		`'''multi
line'''`,
	}
	for _, src := range srcs {
		runes := []rune(src)
		c := newCursor(runes)
		var prevEnd int
		for {
			tok := rawNext(c)
			if int(tok.Span.Start) != prevEnd {
				t.Fatalf("%q: gap/overlap before %v (want start %d)", src, tok, prevEnd)
			}
			prevEnd = int(tok.Span.End)
			if tok.Kind == Eof {
				break
			}
		}
		if prevEnd != len(runes) {
			t.Fatalf("%q: coverage ended at %d, want %d", src, prevEnd, len(runes))
		}
	}
}

func TestLexerTokenSpansExact(t *testing.T) {
	t.Parallel()

	toks, _ := collect("a=1")
	want := []Token{
		{Kind: Key, Span: text.NewSpan(0, 1)},
		{Kind: Equal, Span: text.NewSpan(1, 2)},
		{Kind: Integer, Span: text.NewSpan(2, 3)},
		{Kind: Eof, Span: text.Point(3)},
	}
	if diffs := deep.Equal(want, toks); len(diffs) != 0 {
		t.Fatalf("token spans mismatch: %v", diffs)
	}
}

func TestLexerPeekKindArrayDisambiguatesDoubleBracket(t *testing.T) {
	t.Parallel()

	lx := New([]rune("[[a]]"))
	got := lx.PeekKindArray(2)
	assertKinds(t, got, LBracket, LBracket)

	lx2 := New([]rune("[a]"))
	got2 := lx2.PeekKindArray(2)
	assertKinds(t, got2, LBracket, Key)
}
