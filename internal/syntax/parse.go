// Package syntax implements the event-driven, error-recovering
// recursive-descent parser and its single-pass tree builder: together
// they turn lexer tokens into a loss-tolerant concrete syntax tree.
package syntax

import (
	"cmp"
	"slices"

	"github.com/AOx0/toml-lsp-1/internal/lexer"
)

// Parse is the single entrypoint: it lexes and parses source, returning
// a complete Tree and every diagnostic recorded along the way, lexical
// and syntactic alike. It never fails; malformed input is represented
// inside the tree as error-kinded nodes (§6, §7).
func Parse(source string) (*Tree, []Diagnostic) {
	runes := []rune(source)
	lx := lexer.New(runes)
	p := newParser(lx)

	tree := p.parseToml()

	diags := make([]Diagnostic, 0, len(p.diags)+len(lx.Diagnostics()))
	diags = append(diags, p.diags...)
	diags = append(diags, mapLexDiagnostics(lx.Diagnostics())...)
	slices.SortFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Span.Start, b.Span.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Span.End, b.Span.End)
	})

	return tree, diags
}

// mapLexDiagnostics translates lexical diagnostics onto the tree's
// closed error-tag set: unterminated strings become UnclosedString,
// and unrecognized or malformed numeric runs become Unknown — the tag
// set has no dedicated slot for a malformed-float shape, so InvalidFloat
// is folded into the same generic tag as an unrecognized run.
func mapLexDiagnostics(ld []lexer.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(ld))
	for _, d := range ld {
		var kind TreeKind
		switch d.Kind {
		case lexer.NonClosingString, lexer.NonClosingMultilineString:
			kind = K(UnclosedString)
		default: // lexer.Unknown, lexer.InvalidFloat
			kind = K(Unknown)
		}
		out = append(out, Diagnostic{Span: d.Span, Kind: kind})
	}
	return out
}
