package schema

import (
	"fmt"
	"strings"
)

// Describe renders the schema as human/machine-readable text for inclusion
// in a prompt, so the model knows exactly what JSON to produce. Nested
// object fields are indented under their parent.
func (s *Schema) Describe() string {
	var b strings.Builder

	name := s.Name
	if name == "" {
		name = "Response"
	}
	fmt.Fprintf(&b, "Schema name: %s\n", name)
	b.WriteString("Type: JSON object\n")
	b.WriteString("Fields:")

	describeFields(&b, s.Fields, 0)
	return b.String()
}

func describeFields(b *strings.Builder, fields []Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		requirement := "optional"
		if f.Required {
			requirement = "required"
		}

		fmt.Fprintf(b, "\n%s- %s (%s, %s)", indent, f.Name, f.Type.label(), requirement)
		if f.Description != "" {
			fmt.Fprintf(b, ": %s", f.Description)
		}

		switch {
		case f.Type.Kind == KindObject:
			describeFields(b, f.Type.Fields, depth+1)
		case f.Type.Kind == KindList && f.Type.Item != nil && f.Type.Item.Kind == KindObject:
			describeFields(b, f.Type.Item.Fields, depth+1)
		}
	}
}
