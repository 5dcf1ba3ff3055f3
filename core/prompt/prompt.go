package prompt

import (
	"strings"

	"github.com/leofalp/structo/schema"
)

// System builds the initial system prompt: an explicit JSON-only directive
// followed by the rendered schema description. Paired with the verbatim user
// text as a user message, this forms the first attempt's full prompt.
func System(s *schema.Schema) string {
	var b strings.Builder

	b.WriteString("You are a strict JSON generator.\n")
	b.WriteString("\n")
	b.WriteString("You MUST:\n")
	b.WriteString("- Return ONLY a single JSON object, with no prose and no markdown fences.\n")
	b.WriteString("- Ensure the JSON exactly matches the schema below.\n")
	b.WriteString("- Never include comments or trailing commas.\n")
	b.WriteString("- Use null for missing optional values.\n")
	b.WriteString("\n")
	b.WriteString(s.Describe())

	return b.String()
}

// RetryAfterParse builds the corrective follow-up for a response that was
// not syntactically valid JSON.
func RetryAfterParse(message string) string {
	var b strings.Builder

	b.WriteString("Your previous response was not valid JSON.\n")
	b.WriteString("Parsing error: ")
	b.WriteString(message)
	b.WriteString("\n\n")
	b.WriteString("Return ONLY a single valid JSON object that matches the schema, with no prose and no markdown fences.")

	return b.String()
}

// RetryAfterValidation builds the corrective follow-up for a response that
// was valid JSON but violated the schema. Every reported violation is
// quoted, so the model can fix all of them in one corrected object.
func RetryAfterValidation(errs []schema.FieldError) string {
	var b strings.Builder

	b.WriteString("Your previous JSON did not match the schema. Fix ALL of the following problems:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString("Return ONLY a corrected, complete JSON object that matches the schema. Do not return a partial object or a diff.")

	return b.String()
}
