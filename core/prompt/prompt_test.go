package prompt

import (
	"strings"
	"testing"

	"github.com/leofalp/structo/schema"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		Name: "Ticket",
		Fields: []schema.Field{
			{Name: "title", Required: true, Type: schema.Type{Kind: schema.KindString}},
			{Name: "priority", Required: true, Type: schema.Type{Kind: schema.KindEnum, Choices: []string{"low", "high"}}},
		},
	}
}

func TestSystem(t *testing.T) {
	got := System(testSchema())

	wantFragments := []string{
		"ONLY a single JSON object",
		"no prose and no markdown fences",
		"Schema name: Ticket",
		"- title (string, required)",
		"- priority (one of [low, high], required)",
	}
	for _, want := range wantFragments {
		if !strings.Contains(got, want) {
			t.Errorf("System() missing fragment %q\nfull prompt:\n%s", want, got)
		}
	}
}

func TestRetryAfterParse(t *testing.T) {
	got := RetryAfterParse("invalid JSON: unexpected end of JSON input")

	if !strings.Contains(got, "was not valid JSON") {
		t.Errorf("RetryAfterParse() missing failure statement:\n%s", got)
	}
	if !strings.Contains(got, "unexpected end of JSON input") {
		t.Errorf("RetryAfterParse() must embed the parse error detail:\n%s", got)
	}
	if !strings.Contains(got, "ONLY a single valid JSON object") {
		t.Errorf("RetryAfterParse() must restate the JSON-only requirement:\n%s", got)
	}
}

// Every violation must appear in the corrective prompt, not just the first.
func TestRetryAfterValidation_IncludesEveryViolation(t *testing.T) {
	errs := []schema.FieldError{
		{Path: "title", Reason: "missing required field"},
		{Path: "priority", Reason: `must be one of [low, high], got "urgent"`},
		{Path: "items[2].due_date", Reason: `expected an ISO date (YYYY-MM-DD), got "tomorrow"`},
	}

	got := RetryAfterValidation(errs)

	for _, e := range errs {
		if !strings.Contains(got, e.String()) {
			t.Errorf("RetryAfterValidation() missing violation %q\nfull prompt:\n%s", e.String(), got)
		}
	}
	if !strings.Contains(got, "complete JSON object") {
		t.Errorf("RetryAfterValidation() must ask for a full corrected object:\n%s", got)
	}
}
