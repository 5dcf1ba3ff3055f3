package schema

import (
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	s := conversationSchema()
	got := s.Describe()

	wantLines := []string{
		"Schema name: ConversationAnalysis",
		"Type: JSON object",
		"Fields:",
		"- summary (string, required)",
		"- sentiment (one of [positive, neutral, negative, mixed], required)",
		"- needs_follow_up (boolean, required)",
		"- action_items (list of object, optional)",
		"  - title (string, required)",
		"  - due_date (date (YYYY-MM-DD), optional)",
		"  - priority (one of [low, medium, high], optional)",
	}

	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("Describe() missing line %q\nfull output:\n%s", want, got)
		}
	}
}

func TestDescribe_UnnamedSchemaAndDescriptions(t *testing.T) {
	s := &Schema{Fields: []Field{
		{Name: "intent", Required: true, Description: "Primary intent of the user.", Type: Type{Kind: KindString}},
	}}

	got := s.Describe()
	if !strings.Contains(got, "Schema name: Response") {
		t.Errorf("Describe() should fall back to a default name, got:\n%s", got)
	}
	if !strings.Contains(got, "- intent (string, required): Primary intent of the user.") {
		t.Errorf("Describe() should render field descriptions, got:\n%s", got)
	}
}

func TestFieldErrorString(t *testing.T) {
	e := FieldError{Path: "action_items[1].due_date", Reason: "missing required field"}
	if got, want := e.String(), "action_items[1].due_date: missing required field"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	rootErr := FieldError{Reason: "expected a JSON object, got string"}
	if got := rootErr.String(); got != "expected a JSON object, got string" {
		t.Errorf("String() = %q, want the bare reason for root errors", got)
	}
}
