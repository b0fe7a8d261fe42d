package syntax

import "fmt"

// Tag is the closed tag set of tree node kinds (§3 "Tree").
type Tag uint8

const (
	// Structural tags.
	Toml Tag = iota
	Table
	TableArray
	KeyValList
	KeyVal
	Key
	Array
	InlineTable
	String
	StringMulti
	Integer
	Float
	Bool

	// Error tags. Expected, Extra, and Forbidden carry a parameter — the
	// debug surface of the token kind they complain about — carried in
	// TreeKind.Param rather than as a distinct Go type per parameter value.
	MissingKey
	MissingValue
	Expected
	Extra
	Guard
	Forbidden
	UnclosedString
	Unknown
)

func (t Tag) String() string {
	switch t {
	case Toml:
		return "Toml"
	case Table:
		return "Table"
	case TableArray:
		return "TableArray"
	case KeyValList:
		return "KeyValList"
	case KeyVal:
		return "KeyVal"
	case Key:
		return "Key"
	case Array:
		return "Array"
	case InlineTable:
		return "InlineTable"
	case String:
		return "String"
	case StringMulti:
		return "StringMulti"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case MissingKey:
		return "MissingKey"
	case MissingValue:
		return "MissingValue"
	case Expected:
		return "Expected"
	case Extra:
		return "Extra"
	case Guard:
		return "Guard"
	case Forbidden:
		return "Forbidden"
	case UnclosedString:
		return "UnclosedString"
	case Unknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// TreeKind is a tree node's kind. Param holds the debug surface of the
// offending token kind for the three parameterized error tags
// (Expected, Extra, Forbidden); it is empty for every other tag.
type TreeKind struct {
	Tag   Tag
	Param string
}

// K builds a plain (unparameterized) TreeKind.
func K(tag Tag) TreeKind { return TreeKind{Tag: tag} }

// P builds a parameterized TreeKind, e.g. P(Expected, "]").
func P(tag Tag, param string) TreeKind { return TreeKind{Tag: tag, Param: param} }

func (k TreeKind) String() string {
	if k.Param == "" {
		return k.Tag.String()
	}
	return fmt.Sprintf("%s(%s)", k.Tag, k.Param)
}

// IsError reports whether k is one of the error tags.
func (k TreeKind) IsError() bool {
	switch k.Tag {
	case MissingKey, MissingValue, Expected, Extra, Guard, Forbidden, UnclosedString, Unknown:
		return true
	default:
		return false
	}
}

// Message renders the diagnostic text for k (§6 "Diagnostic").
func (k TreeKind) Message() string {
	switch k.Tag {
	case MissingKey:
		return "missing key"
	case MissingValue:
		return "missing value"
	case Expected:
		return fmt.Sprintf("expected %q", k.Param)
	case Extra:
		return fmt.Sprintf("unexpected extra %q", k.Param)
	case Guard:
		return "unreachable construct"
	case Forbidden:
		return fmt.Sprintf("%q is not allowed here", k.Param)
	case UnclosedString:
		return "unterminated string"
	case Unknown:
		return "unrecognized input"
	default:
		return k.String()
	}
}
