// Package google provides an ai.Provider backed by the Gemini Developer API
// via google.golang.org/genai.
package google
