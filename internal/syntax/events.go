package syntax

import (
	"github.com/AOx0/toml-lsp-1/internal/lexer"
	"github.com/AOx0/toml-lsp-1/internal/text"
)

// EventKind distinguishes the five event shapes in the parser's linear
// log (§4.E).
type EventKind uint8

const (
	EvOpen EventKind = iota
	EvAdvance
	EvSkip
	EvIgnore
	EvClose
)

// Event is one entry in the append-only event log. Only the fields
// relevant to Kind are meaningful.
type Event struct {
	Kind  EventKind
	Tree  TreeKind   // Open (set by Close via the Mark)
	Span  text.Span  // Open (initial span), Skip
	Token lexer.Token // Advance
}

// Mark is an opaque handle to an Open event, returned by Open and
// consumed by Close.
type Mark int

// eventBuffer is the append-only event log. It is well-nested by
// construction: Open/Close are the only operations that can unbalance
// it, and Close always targets the Mark returned by the matching Open.
type eventBuffer struct {
	events []Event
}

func (b *eventBuffer) open(span text.Span) Mark {
	m := Mark(len(b.events))
	b.events = append(b.events, Event{Kind: EvOpen, Tree: K(Unknown), Span: span})
	return m
}

func (b *eventBuffer) close(m Mark, kind TreeKind) {
	b.events[m].Tree = kind
	b.events = append(b.events, Event{Kind: EvClose})
}

func (b *eventBuffer) advance(tok lexer.Token) {
	b.events = append(b.events, Event{Kind: EvAdvance, Token: tok})
}

func (b *eventBuffer) skip(span text.Span) {
	b.events = append(b.events, Event{Kind: EvSkip, Span: span})
}

func (b *eventBuffer) ignore() {
	b.events = append(b.events, Event{Kind: EvIgnore})
}
