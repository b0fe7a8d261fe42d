package lsp

import (
	"errors"
	"sync"

	"github.com/AOx0/toml-lsp-1/internal/syntax"
	"github.com/AOx0/toml-lsp-1/internal/text"
)

// Snapshot is an immutable parsed document state: the source text, its
// tree, and the diagnostics produced alongside it.
type Snapshot struct {
	URI         string
	Version     int32
	Source      []rune
	Tree        *syntax.Tree
	Diagnostics []syntax.Diagnostic
	LineIndex   *text.LineIndex
}

// SnapshotStore maps document URI to its most recent parsed Snapshot.
// Every Open or Change fully re-parses the latest text — there is no
// incremental re-parsing (§6, an explicit non-goal).
type SnapshotStore struct {
	mu   sync.RWMutex
	docs map[string]*Snapshot
}

// NewSnapshotStore creates an empty snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{docs: make(map[string]*Snapshot)}
}

func newSnapshot(uri string, version int32, source string) *Snapshot {
	tree, diags := syntax.Parse(source)
	runes := []rune(source)
	return &Snapshot{
		URI:         uri,
		Version:     version,
		Source:      runes,
		Tree:        tree,
		Diagnostics: diags,
		LineIndex:   text.NewLineIndex(runes),
	}
}

// Open parses and stores a document snapshot, replacing any prior entry.
func (s *SnapshotStore) Open(uri string, version int32, source string) *Snapshot {
	snap := newSnapshot(uri, version, source)
	s.mu.Lock()
	s.docs[uri] = snap
	s.mu.Unlock()
	return snap
}

// Change applies a didChange notification. The server advertises
// full-document sync, so the last content change carries the complete
// updated text; it is fully re-parsed and replaces the snapshot.
func (s *SnapshotStore) Change(uri string, version int32, changes []TextDocumentContentChangeEvent) (*Snapshot, error) {
	s.mu.RLock()
	_, ok := s.docs[uri]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrDocumentNotOpen
	}
	if len(changes) == 0 {
		return nil, errors.New("didChange with no content changes")
	}

	last := changes[len(changes)-1]
	snap := newSnapshot(uri, version, last.Text)
	s.mu.Lock()
	s.docs[uri] = snap
	s.mu.Unlock()
	return snap, nil
}

// Close removes a tracked document snapshot.
func (s *SnapshotStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Snapshot returns the current snapshot for uri.
func (s *SnapshotStore) Snapshot(uri string) (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.docs[uri]
	return snap, ok
}
