package schema

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a [Type].
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "integer"
	KindNumber Kind = "number"
	KindBool   Kind = "boolean"
	KindEnum   Kind = "enum"
	KindObject Kind = "object"
	KindList   Kind = "list"
)

// FormatDate is the only string format currently understood: an ISO calendar
// date, YYYY-MM-DD.
const FormatDate = "date"

// Type is a tagged variant describing one value shape. Only the fields
// relevant to the Kind are consulted; the rest stay zero.
type Type struct {
	Kind Kind

	// Choices holds the allowed values for KindEnum.
	Choices []string

	// Min and Max bound KindInt and KindNumber values when non-nil.
	Min *float64
	Max *float64

	// Format constrains KindString values; see FormatDate.
	Format string

	// Fields describes a KindObject in declaration order.
	Fields []Field

	// Closed rejects unexpected keys on a KindObject. Open by default:
	// extra fields in the input are ignored.
	Closed bool

	// Item describes the element type of a KindList.
	Item *Type
}

// Field is one named member of an object.
type Field struct {
	Name        string
	Description string
	Required    bool
	Type        Type
}

// Schema describes the root JSON object the model must produce. Field order
// is significant: validation errors are reported in declaration order.
type Schema struct {
	Name   string
	Fields []Field

	// Closed rejects unexpected top-level keys.
	Closed bool
}

// FieldError is a single constraint violation: the dotted/indexed path of
// the offending field and a human-readable reason.
type FieldError struct {
	Path   string
	Reason string
}

func (e FieldError) String() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

// label returns the human-readable name of a type, used in schema
// descriptions and validation errors.
func (t Type) label() string {
	switch t.Kind {
	case KindEnum:
		return "one of [" + strings.Join(t.Choices, ", ") + "]"
	case KindList:
		if t.Item != nil {
			return "list of " + t.Item.label()
		}
		return "list"
	case KindString:
		if t.Format == FormatDate {
			return "date (YYYY-MM-DD)"
		}
		return string(KindString)
	default:
		return string(t.Kind)
	}
}

// joinPath appends a field name to a dotted path prefix.
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// indexPath appends a list index to a path.
func indexPath(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}
