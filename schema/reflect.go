package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FromType derives a Schema from a Go struct type. Field names come from
// json tags (fields tagged "-" or unexported are skipped) and a field is
// required when it is a non-pointer without omitempty, or when its
// jsonschema tag says so.
//
// Supported jsonschema tag entries:
//
//	description=...   field description shown to the model
//	enum=a,enum=b     restricts a string field to the listed choices
//	format=date       restricts a string field to ISO dates (YYYY-MM-DD)
//	minimum=n         lower bound for an integer or number field
//	maximum=n         upper bound for an integer or number field
//	required          marks the field required regardless of its Go shape
//
// Example:
//
//	type ActionItem struct {
//	    Title    string `json:"title" jsonschema:"description=Short label,required"`
//	    Priority string `json:"priority" jsonschema:"enum=low,enum=medium,enum=high"`
//	    DueDate  *string `json:"due_date,omitempty" jsonschema:"format=date"`
//	}
//
// Recursive struct types cannot be expressed as a finite field tree and
// return an error.
func FromType[T any]() (*Schema, error) {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct type", t)
	}

	fields, err := structFields(t, make(map[reflect.Type]bool))
	if err != nil {
		return nil, err
	}

	return &Schema{Name: t.Name(), Fields: fields}, nil
}

func structFields(t reflect.Type, seen map[reflect.Type]bool) ([]Field, error) {
	if seen[t] {
		return nil, fmt.Errorf("schema: recursive type %s is not supported", t)
	}
	seen[t] = true
	defer delete(seen, t)

	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		jsonTag := sf.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := sf.Name
		isOmitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				if jsonTag[:commaIdx] != "" {
					name = jsonTag[:commaIdx]
				}
				isOmitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				name = jsonTag
			}
		}

		fieldType, err := typeOf(sf.Type, seen)
		if err != nil {
			return nil, fmt.Errorf("schema: field %s: %w", name, err)
		}

		field := Field{
			Name:     name,
			Type:     *fieldType,
			Required: sf.Type.Kind() != reflect.Ptr && !isOmitEmpty,
		}

		if err := applyTag(sf.Tag.Get("jsonschema"), &field); err != nil {
			return nil, fmt.Errorf("schema: field %s: %w", name, err)
		}

		fields = append(fields, field)
	}

	return fields, nil
}

func typeOf(t reflect.Type, seen map[reflect.Type]bool) (*Type, error) {
	switch t.Kind() {
	case reflect.String:
		return &Type{Kind: KindString}, nil
	case reflect.Bool:
		return &Type{Kind: KindBool}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Type{Kind: KindInt}, nil
	case reflect.Float32, reflect.Float64:
		return &Type{Kind: KindNumber}, nil
	case reflect.Ptr:
		return typeOf(t.Elem(), seen)
	case reflect.Slice, reflect.Array:
		item, err := typeOf(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindList, Item: item}, nil
	case reflect.Struct:
		fields, err := structFields(t, seen)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindObject, Fields: fields}, nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", t.Kind())
	}
}

// applyTag parses a jsonschema struct tag and applies its settings to the
// field. Descriptions cannot contain commas; the tag format is a flat
// comma-separated list of key=value pairs and bare flags.
func applyTag(tag string, field *Field) error {
	if tag == "" {
		return nil
	}

	for _, item := range strings.Split(tag, ",") {
		kv := strings.SplitN(item, "=", 2)
		switch {
		case len(kv) == 2 && kv[0] == "description":
			field.Description = kv[1]

		case len(kv) == 2 && kv[0] == "enum":
			if field.Type.Kind != KindString && field.Type.Kind != KindEnum {
				return fmt.Errorf("enum tag requires a string field, have %s", field.Type.Kind)
			}
			field.Type.Kind = KindEnum
			field.Type.Choices = append(field.Type.Choices, kv[1])

		case len(kv) == 2 && (kv[0] == "minimum" || kv[0] == "maximum"):
			if field.Type.Kind != KindInt && field.Type.Kind != KindNumber {
				return fmt.Errorf("%s tag requires a numeric field, have %s", kv[0], field.Type.Kind)
			}
			bound, err := strconv.ParseFloat(kv[1], 64)
			if err != nil {
				return fmt.Errorf("invalid %s value %q", kv[0], kv[1])
			}
			if kv[0] == "minimum" {
				field.Type.Min = &bound
			} else {
				field.Type.Max = &bound
			}

		case len(kv) == 2 && kv[0] == "format":
			if kv[1] != FormatDate {
				return fmt.Errorf("unsupported format %q", kv[1])
			}
			if field.Type.Kind != KindString {
				return fmt.Errorf("format tag requires a string field, have %s", field.Type.Kind)
			}
			field.Type.Format = FormatDate

		case len(kv) == 1 && kv[0] == "required":
			field.Required = true

		case len(kv) == 1 && kv[0] == "":
			// Tolerate trailing commas in tags.

		default:
			return fmt.Errorf("unknown jsonschema tag entry %q", item)
		}
	}

	return nil
}
