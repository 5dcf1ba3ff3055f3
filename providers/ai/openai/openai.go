package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/leofalp/structo/providers/ai"
)

const defaultModel = "gpt-4o-mini"

// Provider implements the ai.Provider interface on top of the OpenAI
// chat-completions API. Every request carries response_format json_object so
// the model is steered towards bare JSON before the loop ever has to correct
// it.
type Provider struct {
	apiKey  string
	baseURL string
	http    *http.Client

	client *goopenai.Client
}

// New creates a new OpenAI provider. The API key is read from the
// OPENAI_API_KEY environment variable and the base URL from
// OPENAI_API_BASE_URL; both can be overridden with the With* methods.
func New() *Provider {
	return &Provider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: os.Getenv("OPENAI_API_BASE_URL"),
	}
}

// WithAPIKey sets the API key for the provider.
func (p *Provider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	p.client = nil
	return p
}

// WithBaseURL sets the base URL for API requests.
func (p *Provider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	p.client = nil
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *Provider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.http = httpClient
	p.client = nil
	return p
}

func (p *Provider) ensureClient() (*goopenai.Client, error) {
	if p.client != nil {
		return p.client, nil
	}
	if p.apiKey == "" {
		return nil, &ai.TransportError{Provider: "openai", Err: errors.New("API key is not set")}
	}

	config := goopenai.DefaultConfig(p.apiKey)
	if p.baseURL != "" {
		config.BaseURL = p.baseURL
	}
	if p.http != nil {
		config.HTTPClient = p.http
	}

	p.client = goopenai.NewClientWithConfig(config)
	return p.client, nil
}

// Complete implements the ai.Provider interface.
func (p *Provider) Complete(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	client, err := p.ensureClient()
	if err != nil {
		return nil, err
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	req := goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: toChatMessages(request.Messages),
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	if cfg := request.GenerationConfig; cfg != nil {
		req.Temperature = cfg.Temperature
		req.MaxCompletionTokens = cfg.MaxTokens
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, wrapTransportError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ai.TransportError{Provider: "openai", Err: errors.New("no choices in response")}
	}

	choice := resp.Choices[0]
	return &ai.ChatResponse{
		Id:           resp.ID,
		Model:        resp.Model,
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func toChatMessages(messages []ai.Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := goopenai.ChatMessageRoleUser
		switch m.Role {
		case ai.RoleSystem:
			role = goopenai.ChatMessageRoleSystem
		case ai.RoleAssistant:
			role = goopenai.ChatMessageRoleAssistant
		}
		out = append(out, goopenai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	return out
}

// wrapTransportError converts go-openai errors into *ai.TransportError,
// preserving the HTTP status code when the library reports one.
func wrapTransportError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &ai.TransportError{Provider: "openai", StatusCode: apiErr.HTTPStatusCode, Err: err}
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &ai.TransportError{Provider: "openai", StatusCode: reqErr.HTTPStatusCode, Err: err}
	}

	return &ai.TransportError{Provider: "openai", Err: fmt.Errorf("request failed: %w", err)}
}
