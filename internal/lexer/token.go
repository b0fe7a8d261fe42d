// Package lexer implements the lookahead-buffered lexer for TOML-like
// source: a cursor over Unicode scalar values, a raw single-dispatch
// tokenizer, and a lookahead ring that folds trivia and lexical errors
// into diagnostics for the parser.
package lexer

import (
	"fmt"

	"github.com/AOx0/toml-lsp-1/internal/text"
)

// Kind is the closed tag set of token kinds produced by the lexer.
type Kind uint8

// Kind values. See spec §3 "Token".
const (
	// Literals.
	Key Kind = iota
	StringOrKey
	StringMultiline
	Integer
	Float
	Bool
	Datetime // reserved; never constructed by this lexer

	// Structural.
	LBracket
	RBracket
	LCurly
	RCurly
	Comma
	Equal
	Dot

	// Trivia.
	Space
	Newline
	Comment
	Tab // reserved; never constructed by this lexer (tabs lex as Space)

	// Terminator.
	Eof

	// Error tokens.
	Unknown
	InvalidFloat
	NonClosingString
	NonClosingMultilineString
)

// IsError reports whether k is one of the lexer's error kinds.
func (k Kind) IsError() bool {
	switch k {
	case Unknown, InvalidFloat, NonClosingString, NonClosingMultilineString:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether k is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	switch k {
	case Space, Newline, Comment, Tab:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case Key:
		return "Key"
	case StringOrKey:
		return "StringOrKey"
	case StringMultiline:
		return "StringMultiline"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case Datetime:
		return "Datetime"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case LCurly:
		return "LCurly"
	case RCurly:
		return "RCurly"
	case Comma:
		return "Comma"
	case Equal:
		return "Equal"
	case Dot:
		return "Dot"
	case Space:
		return "Space"
	case Newline:
		return "Newline"
	case Comment:
		return "Comment"
	case Tab:
		return "Tab"
	case Eof:
		return "Eof"
	case Unknown:
		return "Unknown"
	case InvalidFloat:
		return "InvalidFloat"
	case NonClosingString:
		return "NonClosingString"
	case NonClosingMultilineString:
		return "NonClosingMultilineString"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Debug returns the printable form used inside diagnostic messages, e.g.
// for punctuation kinds ("]", "=", "["). Falls back to String for kinds
// with no fixed surface form.
func (k Kind) Debug() string {
	switch k {
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case LCurly:
		return "{"
	case RCurly:
		return "}"
	case Comma:
		return ","
	case Equal:
		return "="
	case Dot:
		return "."
	case Newline:
		return "\\n"
	case Eof:
		return "<eof>"
	default:
		return k.String()
	}
}

// Token is a single lexed token: its kind and its span over the source.
type Token struct {
	Kind Kind
	Span text.Span
}
