package lsp

import "testing"

func TestSnapshotStoreOpenParsesAndStores(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	snap := store.Open("file:///a.toml", 1, "a = 1\n")
	if snap.Version != 1 {
		t.Fatalf("Version = %d, want 1", snap.Version)
	}
	if len(snap.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", snap.Diagnostics)
	}

	got, ok := store.Snapshot("file:///a.toml")
	if !ok || got != snap {
		t.Fatalf("Snapshot() did not return the stored snapshot")
	}
}

func TestSnapshotStoreChangeFullyReparsesLatestText(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	store.Open("file:///a.toml", 1, "a = 1\n")

	snap, err := store.Change("file:///a.toml", 2, []TextDocumentContentChangeEvent{
		{Text: "a = 1\n"},          // superseded
		{Text: "a = 1\nb = \"x\"\n"}, // only the last change's full text matters
	})
	if err != nil {
		t.Fatalf("Change error = %v", err)
	}
	if snap.Version != 2 {
		t.Fatalf("Version = %d, want 2", snap.Version)
	}
	if string(snap.Source) != "a = 1\nb = \"x\"\n" {
		t.Fatalf("Source = %q, want the last change's text", string(snap.Source))
	}

	got, _ := store.Snapshot("file:///a.toml")
	if got != snap {
		t.Fatalf("store was not updated to the new snapshot")
	}
}

func TestSnapshotStoreChangeOnUnopenedDocumentErrors(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	if _, err := store.Change("file:///missing.toml", 1, []TextDocumentContentChangeEvent{{Text: "a = 1"}}); err == nil {
		t.Fatal("expected ErrDocumentNotOpen")
	}
}

func TestSnapshotStoreChangeWithNoContentChangesErrors(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	store.Open("file:///a.toml", 1, "a = 1\n")
	if _, err := store.Change("file:///a.toml", 2, nil); err == nil {
		t.Fatal("expected an error for an empty ContentChanges list")
	}
}

func TestSnapshotStoreCloseRemovesDocument(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	store.Open("file:///a.toml", 1, "a = 1\n")
	store.Close("file:///a.toml")

	if _, ok := store.Snapshot("file:///a.toml"); ok {
		t.Fatal("expected no snapshot after Close")
	}
}

func TestSnapshotStoreOpenCarriesSyntaxDiagnostics(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	snap := store.Open("file:///bad.toml", 1, "key\n")
	if len(snap.Diagnostics) == 0 {
		t.Fatal("expected diagnostics for a malformed document")
	}
}
