// Package openai provides an ai.Provider backed by the OpenAI
// chat-completions API via github.com/sashabaranov/go-openai.
package openai
