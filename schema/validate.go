package schema

import (
	"fmt"
	"sort"
	"time"
)

// Validate checks a decoded JSON value against the schema and returns every
// violation found, in field declaration order. An empty slice means the value
// conforms. Validation never short-circuits: a single pass collects the
// complete violation set so one corrective prompt can fix everything.
func (s *Schema) Validate(value any) []FieldError {
	obj, ok := value.(map[string]any)
	if !ok {
		return []FieldError{{Path: "", Reason: fmt.Sprintf("expected a JSON object, got %s", jsonTypeName(value))}}
	}
	return validateObject(obj, s.Fields, s.Closed, "")
}

func validateObject(obj map[string]any, fields []Field, closed bool, prefix string) []FieldError {
	var errs []FieldError

	for _, f := range fields {
		path := joinPath(prefix, f.Name)

		v, present := obj[f.Name]
		if !present {
			if f.Required {
				errs = append(errs, FieldError{Path: path, Reason: "missing required field"})
			}
			continue
		}
		if v == nil {
			if f.Required {
				errs = append(errs, FieldError{Path: path, Reason: fmt.Sprintf("is null, expected %s", f.Type.label())})
			}
			continue
		}

		errs = append(errs, validateValue(v, f.Type, path)...)
	}

	if closed {
		errs = append(errs, unexpectedKeys(obj, fields, prefix)...)
	}

	return errs
}

func validateValue(v any, t Type, path string) []FieldError {
	switch t.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return typeMismatch(path, t, v)
		}
		if t.Format == FormatDate {
			if _, err := time.Parse("2006-01-02", s); err != nil {
				return []FieldError{{Path: path, Reason: fmt.Sprintf("expected an ISO date (YYYY-MM-DD), got %q", s)}}
			}
		}
		return nil

	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return typeMismatch(path, t, v)
		}
		for _, choice := range t.Choices {
			if s == choice {
				return nil
			}
		}
		return []FieldError{{Path: path, Reason: fmt.Sprintf("must be %s, got %q", t.label(), s)}}

	case KindBool:
		if _, ok := v.(bool); !ok {
			return typeMismatch(path, t, v)
		}
		return nil

	case KindNumber:
		n, ok := v.(float64)
		if !ok {
			return typeMismatch(path, t, v)
		}
		return checkBounds(n, t, path)

	case KindInt:
		n, ok := v.(float64)
		if !ok || n != float64(int64(n)) {
			return typeMismatch(path, t, v)
		}
		return checkBounds(n, t, path)

	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return typeMismatch(path, t, v)
		}
		return validateObject(obj, t.Fields, t.Closed, path)

	case KindList:
		items, ok := v.([]any)
		if !ok {
			return typeMismatch(path, t, v)
		}
		if t.Item == nil {
			return nil
		}
		var errs []FieldError
		for i, item := range items {
			if item == nil {
				errs = append(errs, FieldError{Path: indexPath(path, i), Reason: fmt.Sprintf("is null, expected %s", t.Item.label())})
				continue
			}
			errs = append(errs, validateValue(item, *t.Item, indexPath(path, i))...)
		}
		return errs

	default:
		return []FieldError{{Path: path, Reason: fmt.Sprintf("schema declares unknown type %q", t.Kind)}}
	}
}

func checkBounds(n float64, t Type, path string) []FieldError {
	if t.Min != nil && n < *t.Min {
		return []FieldError{{Path: path, Reason: fmt.Sprintf("must be >= %v, got %v", *t.Min, n)}}
	}
	if t.Max != nil && n > *t.Max {
		return []FieldError{{Path: path, Reason: fmt.Sprintf("must be <= %v, got %v", *t.Max, n)}}
	}
	return nil
}

func typeMismatch(path string, t Type, v any) []FieldError {
	return []FieldError{{Path: path, Reason: fmt.Sprintf("expected %s, got %s", t.label(), jsonTypeName(v))}}
}

// unexpectedKeys reports keys present in obj but absent from the field list.
// Keys are sorted so the output is deterministic regardless of map order.
func unexpectedKeys(obj map[string]any, fields []Field, prefix string) []FieldError {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
	}

	var extra []string
	for k := range obj {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	errs := make([]FieldError, 0, len(extra))
	for _, k := range extra {
		errs = append(errs, FieldError{Path: joinPath(prefix, k), Reason: "unexpected field"})
	}
	return errs
}

// jsonTypeName names the JSON type of a decoded value for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
