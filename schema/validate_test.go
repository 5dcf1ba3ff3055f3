package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// conversationSchema mirrors the kind of schema this package is built for:
// scalars, enums, a date-formatted string, and a list of nested objects.
func conversationSchema() *Schema {
	return &Schema{
		Name: "ConversationAnalysis",
		Fields: []Field{
			{Name: "summary", Required: true, Type: Type{Kind: KindString}},
			{Name: "sentiment", Required: true, Type: Type{Kind: KindEnum, Choices: []string{"positive", "neutral", "negative", "mixed"}}},
			{Name: "needs_follow_up", Required: true, Type: Type{Kind: KindBool}},
			{Name: "action_items", Type: Type{Kind: KindList, Item: &Type{
				Kind: KindObject,
				Fields: []Field{
					{Name: "title", Required: true, Type: Type{Kind: KindString}},
					{Name: "due_date", Type: Type{Kind: KindString, Format: FormatDate}},
					{Name: "priority", Type: Type{Kind: KindEnum, Choices: []string{"low", "medium", "high"}}},
				},
			}}},
		},
	}
}

func TestValidate_Conforming(t *testing.T) {
	value := map[string]any{
		"summary":         "User reports a crash on startup.",
		"sentiment":       "negative",
		"needs_follow_up": true,
		"action_items": []any{
			map[string]any{"title": "Reproduce the crash", "priority": "high"},
			map[string]any{"title": "Ship a fix", "due_date": "2026-09-15"},
		},
	}

	if errs := conversationSchema().Validate(value); len(errs) != 0 {
		t.Errorf("Validate() reported %d error(s) for a conforming value: %v", len(errs), errs)
	}
}

func TestValidate_OptionalFieldsMayBeMissingOrNull(t *testing.T) {
	value := map[string]any{
		"summary":         "Fine.",
		"sentiment":       "neutral",
		"needs_follow_up": false,
		"action_items":    nil,
	}

	if errs := conversationSchema().Validate(value); len(errs) != 0 {
		t.Errorf("Validate() reported %d error(s): %v", len(errs), errs)
	}
}

func TestValidate_RootNotAnObject(t *testing.T) {
	for _, value := range []any{"text", float64(4), []any{1, 2}, true, nil} {
		errs := conversationSchema().Validate(value)
		if len(errs) != 1 {
			t.Fatalf("Validate(%v) = %d error(s), want 1", value, len(errs))
		}
		if !strings.Contains(errs[0].Reason, "expected a JSON object") {
			t.Errorf("Validate(%v) reason = %q, want a root object mismatch", value, errs[0].Reason)
		}
	}
}

// Three independent violations must yield three FieldErrors, not one.
func TestValidate_ReportsEveryViolation(t *testing.T) {
	value := map[string]any{
		// summary missing entirely.
		"sentiment":       "angry",      // not a valid choice
		"needs_follow_up": "yes please", // wrong type
		"action_items":    []any{},
	}

	errs := conversationSchema().Validate(value)
	if len(errs) != 3 {
		t.Fatalf("Validate() = %d error(s), want 3: %v", len(errs), errs)
	}

	// Declaration order, not discovery order.
	wantPaths := []string{"summary", "sentiment", "needs_follow_up"}
	for i, want := range wantPaths {
		if errs[i].Path != want {
			t.Errorf("errs[%d].Path = %q, want %q", i, errs[i].Path, want)
		}
	}
}

func TestValidate_NestedPaths(t *testing.T) {
	value := map[string]any{
		"summary":         "s",
		"sentiment":       "mixed",
		"needs_follow_up": false,
		"action_items": []any{
			map[string]any{"title": "ok"},
			map[string]any{"due_date": "next tuesday", "priority": "urgent"},
		},
	}

	errs := conversationSchema().Validate(value)

	wantPaths := []string{
		"action_items[1].title",
		"action_items[1].due_date",
		"action_items[1].priority",
	}
	var gotPaths []string
	for _, e := range errs {
		gotPaths = append(gotPaths, e.Path)
	}
	if diff := cmp.Diff(wantPaths, gotPaths); diff != "" {
		t.Errorf("error paths mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_TypeChecks(t *testing.T) {
	tests := []struct {
		name       string
		fieldType  Type
		value      any
		wantReason string // empty means the value must pass
	}{
		{name: "string ok", fieldType: Type{Kind: KindString}, value: "x"},
		{name: "string got number", fieldType: Type{Kind: KindString}, value: float64(1), wantReason: "expected string, got number"},
		{name: "bool ok", fieldType: Type{Kind: KindBool}, value: true},
		{name: "bool got string", fieldType: Type{Kind: KindBool}, value: "true", wantReason: "expected boolean, got string"},
		{name: "number ok", fieldType: Type{Kind: KindNumber}, value: float64(3.14)},
		{name: "integer ok", fieldType: Type{Kind: KindInt}, value: float64(3)},
		{name: "integer got fraction", fieldType: Type{Kind: KindInt}, value: float64(3.5), wantReason: "expected integer, got number"},
		{name: "date ok", fieldType: Type{Kind: KindString, Format: FormatDate}, value: "2026-01-31"},
		{name: "date malformed", fieldType: Type{Kind: KindString, Format: FormatDate}, value: "31/01/2026", wantReason: "expected an ISO date"},
		{name: "enum got number", fieldType: Type{Kind: KindEnum, Choices: []string{"a"}}, value: float64(1), wantReason: "expected one of [a], got number"},
		{name: "list got object", fieldType: Type{Kind: KindList, Item: &Type{Kind: KindString}}, value: map[string]any{}, wantReason: "expected list of string, got object"},
		{name: "object got array", fieldType: Type{Kind: KindObject, Fields: []Field{{Name: "a", Type: Type{Kind: KindString}}}}, value: []any{}, wantReason: "expected object, got array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Schema{Fields: []Field{{Name: "f", Required: true, Type: tt.fieldType}}}
			errs := s.Validate(map[string]any{"f": tt.value})

			if tt.wantReason == "" {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}

			if len(errs) != 1 {
				t.Fatalf("Validate() = %d error(s), want 1: %v", len(errs), errs)
			}
			if !strings.Contains(errs[0].Reason, tt.wantReason) {
				t.Errorf("reason = %q, want it to contain %q", errs[0].Reason, tt.wantReason)
			}
		})
	}
}

func TestValidate_NumberBounds(t *testing.T) {
	min, max := 1.0, 5.0
	s := &Schema{Fields: []Field{
		{Name: "rating", Required: true, Type: Type{Kind: KindInt, Min: &min, Max: &max}},
	}}

	if errs := s.Validate(map[string]any{"rating": float64(3)}); len(errs) != 0 {
		t.Errorf("Validate(3) = %v, want no errors", errs)
	}
	if errs := s.Validate(map[string]any{"rating": float64(0)}); len(errs) != 1 {
		t.Errorf("Validate(0) = %v, want one bound error", errs)
	}
	if errs := s.Validate(map[string]any{"rating": float64(9)}); len(errs) != 1 {
		t.Errorf("Validate(9) = %v, want one bound error", errs)
	}
}

func TestValidate_ExtraFields(t *testing.T) {
	open := &Schema{Fields: []Field{{Name: "a", Required: true, Type: Type{Kind: KindString}}}}
	value := map[string]any{"a": "x", "b": 1.0, "c": 2.0}

	if errs := open.Validate(value); len(errs) != 0 {
		t.Errorf("open schema: Validate() = %v, want extra fields ignored", errs)
	}

	closed := &Schema{Closed: true, Fields: open.Fields}
	errs := closed.Validate(value)
	if len(errs) != 2 {
		t.Fatalf("closed schema: Validate() = %d error(s), want 2: %v", len(errs), errs)
	}
	// Deterministic: unexpected keys are reported sorted.
	if errs[0].Path != "b" || errs[1].Path != "c" {
		t.Errorf("closed schema: error paths = %q, %q; want b, c", errs[0].Path, errs[1].Path)
	}
}
