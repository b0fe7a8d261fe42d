package syntax

import (
	"path/filepath"
	"testing"

	"github.com/AOx0/toml-lsp-1/internal/testutil"
)

func TestParseSampleFixtureIsDiagnosticFree(t *testing.T) {
	t.Parallel()

	root := testutil.MustRepoRoot(t)
	src := testutil.ReadFile(t, filepath.Join(root, "internal", "syntax", "testdata", "sample.toml"))

	tree, diags := Parse(string(src))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics over a well-formed document: %v", diags)
	}
	if got := countTrees(tree, Table); got != 1 {
		t.Fatalf("Table count = %d, want 1", got)
	}
	if got := countTrees(tree, TableArray); got != 2 {
		t.Fatalf("TableArray count = %d, want 2", got)
	}
	if got := countTrees(tree, KeyVal); got != 8 {
		t.Fatalf("KeyVal count = %d, want 8", got)
	}
}
