package syntax

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/go-test/deep"
)

// dumpTree renders a Tree as an indented, deterministic text form for
// golden-style comparison.
func dumpTree(t *Tree, depth int) string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(&b, "%s%s\n", indent, t.Kind)
	for _, c := range t.Children {
		if c.IsTree() {
			b.WriteString(dumpTree(c.Tree, depth+1))
			continue
		}
		fmt.Fprintf(&b, "%s  %s\n", indent, c.Token.Kind)
	}
	return b.String()
}

func TestParseTreeShapeGoldenKeyValAndTable(t *testing.T) {
	t.Parallel()

	tree, diags := Parse("a = 1\n[b]\nc = \"x\"\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	want := "Toml\n" +
		"  KeyVal\n" +
		"    Key\n" +
		"      Key\n" +
		"    Integer\n" +
		"      Integer\n" +
		"  Table\n" +
		"    Key\n" +
		"      Key\n" +
		"    KeyVal\n" +
		"      Key\n" +
		"        Key\n" +
		"      String\n" +
		"        StringOrKey\n"

	got := dumpTree(tree, 0)
	if got != want {
		t.Fatalf("tree shape mismatch:\n%s", diff.LineDiff(want, got))
	}
}

func TestParseDiagnosticShapeGoldenMissingEquals(t *testing.T) {
	t.Parallel()

	_, diags := Parse("key\n")
	want := []string{
		K(MissingValue).String(),
		P(Expected, "=").String(),
	}

	// Compare kinds only, order-independent: both errors anchor the same
	// point and sort order between equal-span diagnostics is unspecified.
	got := make([]string, len(diags))
	for i, d := range diags {
		got[i] = d.Kind.String()
	}
	slices.Sort(got)
	slices.Sort(want)

	if diffs := deep.Equal(want, got); len(diffs) != 0 {
		t.Fatalf("diagnostic shape mismatch: %v", diffs)
	}
}
