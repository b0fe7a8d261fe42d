package text

import "testing"

func TestLocateLineColumn(t *testing.T) {
	t.Parallel()

	src := []rune("ab\ncde\nf")
	cases := []struct {
		off  Offset
		want Location
	}{
		{0, Location{Line: 1, Col: 1}},
		{2, Location{Line: 1, Col: 3}},
		{3, Location{Line: 2, Col: 1}},
		{6, Location{Line: 2, Col: 4}}, // the second '\n'
		{8, Location{Line: 3, Col: 2}}, // EOF
	}
	for _, tc := range cases {
		if got := Locate(src, tc.off); got != tc.want {
			t.Fatalf("Locate(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestSpanStartEndLocation(t *testing.T) {
	t.Parallel()

	src := []rune("key\nval")
	sp := NewSpan(4, 7)
	if got, want := sp.StartLocation(src), (Location{Line: 2, Col: 1}); got != want {
		t.Fatalf("StartLocation() = %+v, want %+v", got, want)
	}
	if got, want := sp.EndLocation(src), (Location{Line: 2, Col: 4}); got != want {
		t.Fatalf("EndLocation() = %+v, want %+v", got, want)
	}
}

func TestLocateClampsPastEndOfSource(t *testing.T) {
	t.Parallel()

	src := []rune("ab")
	if got, want := Locate(src, 100), (Location{Line: 1, Col: 3}); got != want {
		t.Fatalf("Locate(100) = %+v, want %+v", got, want)
	}
}
