package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AOx0/toml-lsp-1/internal/lexer"
	"github.com/AOx0/toml-lsp-1/internal/syntax"
)

// dump reads path, parses it, and writes the requested debug views to
// w. It returns a non-zero-exit-worthy error only on I/O failure: a
// successful parse with diagnostics still exits 0 (§6).
func dump(w io.Writer, path string, tokens, tree bool) error {
	//nolint:gosec // CLI intentionally reads a user-provided file path.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	source := string(data)

	if tokens {
		dumpTokens(w, source)
	}

	parsed, diags := syntax.Parse(source)
	if tree {
		dumpTree(w, parsed, 0)
	}
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s\n", d.Span, d.Message())
	}
	return nil
}

func dumpTokens(w io.Writer, source string) {
	runes := []rune(source)
	lx := lexer.New(runes)
	fmt.Fprintln(w, "TOKENS")
	for {
		tok := lx.Next()
		fmt.Fprintf(w, "  %-24s %s %q\n", tok.Kind, tok.Span, string(runes[tok.Span.Start:tok.Span.End]))
		if tok.Kind == lexer.Eof {
			break
		}
	}
	for _, d := range lx.Diagnostics() {
		fmt.Fprintf(w, "  ! %s %s\n", d.Kind, d.Span)
	}
}

func dumpTree(w io.Writer, t *syntax.Tree, depth int) {
	if t == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %s\n", indent, t.Kind, t.Span)
	for _, child := range t.Children {
		if child.IsTree() {
			dumpTree(w, child.Tree, depth+1)
			continue
		}
		fmt.Fprintf(w, "%s  %s %s\n", indent, child.Token.Kind, child.Token.Span)
	}
}
