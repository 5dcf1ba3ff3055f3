package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileSchema is the on-disk representation of a schema definition. The same
// shape is accepted as JSON or YAML.
type fileSchema struct {
	Name   string      `json:"name" yaml:"name"`
	Strict bool        `json:"strict" yaml:"strict"`
	Fields []fileField `json:"fields" yaml:"fields"`
}

type fileField struct {
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type" yaml:"type"`
	Description string      `json:"description" yaml:"description"`
	Required    bool        `json:"required" yaml:"required"`
	Format      string      `json:"format" yaml:"format"`
	Choices     []string    `json:"choices" yaml:"choices"`
	Min         *float64    `json:"min" yaml:"min"`
	Max         *float64    `json:"max" yaml:"max"`
	Strict      bool        `json:"strict" yaml:"strict"`
	Fields      []fileField `json:"fields" yaml:"fields"`
	Item        *fileField  `json:"item" yaml:"item"`
}

// Parse reads a schema definition from JSON or YAML data. The definition
// itself is validated: enums need choices, objects need fields, lists need
// an item type, and field names must be unique within an object.
func Parse(data []byte) (*Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: definition is empty")
	}

	var doc fileSchema
	if err := json.Unmarshal(data, &doc); err != nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: definition is not valid JSON or YAML: %w", err)
		}
	}

	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("schema: definition declares no fields")
	}

	fields, err := normalizeFields(doc.Fields, "")
	if err != nil {
		return nil, err
	}

	return &Schema{Name: doc.Name, Fields: fields, Closed: doc.Strict}, nil
}

// LoadFile reads and parses a schema definition file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return s, nil
}

func normalizeFields(raw []fileField, prefix string) ([]Field, error) {
	fields := make([]Field, 0, len(raw))
	names := make(map[string]bool, len(raw))

	for _, ff := range raw {
		if strings.TrimSpace(ff.Name) == "" {
			return nil, fmt.Errorf("schema: field at %q has no name", orRoot(prefix))
		}
		path := joinPath(prefix, ff.Name)
		if names[ff.Name] {
			return nil, fmt.Errorf("schema: duplicate field %q", path)
		}
		names[ff.Name] = true

		t, err := normalizeType(ff, path)
		if err != nil {
			return nil, err
		}

		fields = append(fields, Field{
			Name:        ff.Name,
			Description: ff.Description,
			Required:    ff.Required,
			Type:        *t,
		})
	}

	return fields, nil
}

func normalizeType(ff fileField, path string) (*Type, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(ff.Type)))
	if kind == "" {
		return nil, fmt.Errorf("schema: field %q has no type", path)
	}

	switch kind {
	case KindString:
		if ff.Format != "" && ff.Format != FormatDate {
			return nil, fmt.Errorf("schema: field %q has unsupported format %q", path, ff.Format)
		}
		return &Type{Kind: KindString, Format: ff.Format}, nil

	case KindInt, KindNumber:
		if ff.Min != nil && ff.Max != nil && *ff.Min > *ff.Max {
			return nil, fmt.Errorf("schema: field %q has min %v greater than max %v", path, *ff.Min, *ff.Max)
		}
		return &Type{Kind: kind, Min: ff.Min, Max: ff.Max}, nil

	case KindBool:
		return &Type{Kind: KindBool}, nil

	case KindEnum:
		if len(ff.Choices) == 0 {
			return nil, fmt.Errorf("schema: enum field %q declares no choices", path)
		}
		return &Type{Kind: KindEnum, Choices: ff.Choices}, nil

	case KindObject:
		if len(ff.Fields) == 0 {
			return nil, fmt.Errorf("schema: object field %q declares no fields", path)
		}
		fields, err := normalizeFields(ff.Fields, path)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindObject, Fields: fields, Closed: ff.Strict}, nil

	case KindList:
		if ff.Item == nil {
			return nil, fmt.Errorf("schema: list field %q declares no item type", path)
		}
		item, err := normalizeType(*ff.Item, path+"[]")
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindList, Item: item}, nil

	default:
		return nil, fmt.Errorf("schema: field %q has unknown type %q", path, ff.Type)
	}
}

func orRoot(prefix string) string {
	if prefix == "" {
		return "(root)"
	}
	return prefix
}
