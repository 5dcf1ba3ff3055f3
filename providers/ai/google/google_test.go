package google

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"

	"github.com/leofalp/structo/providers/ai"
)

func TestComplete_MissingAPIKey(t *testing.T) {
	p := &Provider{}

	_, err := p.Complete(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hello"}},
	})

	var transportErr *ai.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v, want *ai.TransportError", err)
	}
	if transportErr.Provider != "google" {
		t.Errorf("Provider = %q, want %q", transportErr.Provider, "google")
	}
}

func TestToContents(t *testing.T) {
	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: "be strict"},
		{Role: ai.RoleUser, Content: "analyze this"},
		{Role: ai.RoleAssistant, Content: "{}"},
		{Role: ai.RoleSystem, Content: "and terse"},
		{Role: ai.RoleUser, Content: "try again"},
	}

	contents, system := toContents(messages)

	// System messages are lifted out of the transcript.
	if system != "be strict\n\nand terse" {
		t.Errorf("system = %q, want the joined system messages", system)
	}

	if len(contents) != 3 {
		t.Fatalf("got %d content(s), want 3", len(contents))
	}

	wantRoles := []string{"user", "model", "user"}
	wantTexts := []string{"analyze this", "{}", "try again"}
	for i := range contents {
		if contents[i].Role != wantRoles[i] {
			t.Errorf("content %d role = %q, want %q", i, contents[i].Role, wantRoles[i])
		}
		if got := contents[i].Parts[0].Text; got != wantTexts[i] {
			t.Errorf("content %d text = %q, want %q", i, got, wantTexts[i])
		}
	}
}

func TestToContents_NoSystemMessages(t *testing.T) {
	contents, system := toContents([]ai.Message{{Role: ai.RoleUser, Content: "hi"}})
	if system != "" {
		t.Errorf("system = %q, want empty", system)
	}
	if len(contents) != 1 {
		t.Errorf("got %d content(s), want 1", len(contents))
	}
}

func TestWrapTransportError(t *testing.T) {
	apiErr := genai.APIError{Code: 429, Message: "resource exhausted"}

	wrapped := wrapTransportError(apiErr)
	var transportErr *ai.TransportError
	if !errors.As(wrapped, &transportErr) {
		t.Fatalf("wrapTransportError() = %v, want *ai.TransportError", wrapped)
	}
	if transportErr.Provider != "google" {
		t.Errorf("Provider = %q, want %q", transportErr.Provider, "google")
	}
	if transportErr.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", transportErr.StatusCode)
	}

	nested := wrapTransportError(fmt.Errorf("call failed: %w", genai.APIError{Code: 500}))
	if !errors.As(nested, &transportErr) || transportErr.StatusCode != 500 {
		t.Errorf("wrapped APIError not detected: %v", nested)
	}

	plain := wrapTransportError(errors.New("connection refused"))
	if !errors.As(plain, &transportErr) || transportErr.StatusCode != 0 {
		t.Errorf("plain error should produce a status-less transport error: %v", plain)
	}
}
