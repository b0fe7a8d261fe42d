package syntax

import (
	"fmt"

	"github.com/AOx0/toml-lsp-1/internal/lexer"
	"github.com/AOx0/toml-lsp-1/internal/text"
)

// Child is a Tree child: either a nested Tree or a lexer Token, never
// both (§3 "Child = Tree | Token").
type Child struct {
	Tree  *Tree
	Token lexer.Token
}

// IsTree reports whether c holds a subtree rather than a token.
func (c Child) IsTree() bool { return c.Tree != nil }

// Span returns the child's span, whichever variant it holds.
func (c Child) Span() text.Span {
	if c.Tree != nil {
		return c.Tree.Span
	}
	return c.Token.Span
}

// Tree is a parsed node: a kind, its span, and its ordered children.
type Tree struct {
	Kind     TreeKind
	Span     text.Span
	Children []Child
}

// Diagnostic pairs a source span with the tree error kind it was raised
// for (§6 "Diagnostic").
type Diagnostic struct {
	Span text.Span
	Kind TreeKind
}

// Message renders the diagnostic's text.
func (d Diagnostic) Message() string { return d.Kind.Message() }

// build runs the single-pass tree builder over a finished event log
// (§4.H). The final event must be the Close of the root Toml node.
func build(events []Event) (*Tree, error) {
	if len(events) == 0 || events[len(events)-1].Kind != EvClose {
		return nil, fmt.Errorf("syntax: event log does not end in Close")
	}
	events = events[:len(events)-1]

	var stack []*Tree
	for _, ev := range events {
		switch ev.Kind {
		case EvOpen:
			stack = append(stack, &Tree{Kind: ev.Tree, Span: ev.Span})
		case EvClose:
			if len(stack) == 0 {
				return nil, fmt.Errorf("syntax: Close with empty stack")
			}
			child := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil, fmt.Errorf("syntax: Close popped the root")
			}
			parent := stack[len(stack)-1]
			parent.Span = text.Widen(parent.Span, child.Span)
			parent.Children = append(parent.Children, Child{Tree: child})
		case EvAdvance:
			if len(stack) == 0 {
				return nil, fmt.Errorf("syntax: Advance with empty stack")
			}
			top := stack[len(stack)-1]
			top.Span = text.Widen(top.Span, ev.Token.Span)
			top.Children = append(top.Children, Child{Token: ev.Token})
		case EvSkip:
			if len(stack) == 0 {
				return nil, fmt.Errorf("syntax: Skip with empty stack")
			}
			top := stack[len(stack)-1]
			top.Span = text.Widen(top.Span, ev.Span)
		case EvIgnore:
			// no effect
		default:
			return nil, fmt.Errorf("syntax: unknown event kind %d", ev.Kind)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("syntax: event log left %d trees on the stack, want 1", len(stack))
	}
	return stack[0], nil
}
