package google

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/leofalp/structo/providers/ai"
)

const defaultModel = "gemini-2.0-flash"

// Provider implements the ai.Provider interface on top of the Gemini
// Developer API. Responses are requested with the application/json MIME type
// so the model is steered towards bare JSON.
//
// The underlying genai client needs a context at construction time, so it is
// created lazily on the first Complete call.
type Provider struct {
	apiKey  string
	baseURL string
	http    *http.Client

	client *genai.Client
}

// New creates a new Gemini provider. The API key is read from the
// GOOGLE_API_KEY environment variable and can be overridden with WithAPIKey.
func New() *Provider {
	return &Provider{
		apiKey: os.Getenv("GOOGLE_API_KEY"),
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

func (p *Provider) ensureClient(ctx context.Context) (*genai.Client, error) {
	if p.client != nil {
		return p.client, nil
	}
	if p.apiKey == "" {
		return nil, &ai.TransportError{Provider: "google", Err: errors.New("API key is not set")}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     p.apiKey,
		HTTPClient: p.http,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: p.baseURL,
		},
	})
	if err != nil {
		return nil, &ai.TransportError{Provider: "google", Err: err}
	}

	p.client = client
	return p.client, nil
}

// Complete implements the ai.Provider interface.
func (p *Provider) Complete(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	client, err := p.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature != 0 {
			config.Temperature = genai.Ptr[float32](cfg.Temperature)
		}
		if cfg.MaxTokens != 0 {
			config.MaxOutputTokens = int32(cfg.MaxTokens)
		}
	}

	contents, system := toContents(request.Messages)
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	res, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, wrapTransportError(err)
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return nil, &ai.TransportError{Provider: "google", Err: errors.New("no candidates in response")}
	}

	candidate := res.Candidates[0]
	var content strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			content.WriteString(part.Text)
		}
	}

	response := &ai.ChatResponse{
		Id:           res.ResponseID,
		Model:        model,
		Content:      content.String(),
		FinishReason: string(candidate.FinishReason),
	}
	if res.UsageMetadata != nil {
		response.Usage = &ai.Usage{
			PromptTokens:     int(res.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(res.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(res.UsageMetadata.TotalTokenCount),
		}
	}

	return response, nil
}

// toContents converts the generic transcript into genai contents. Gemini has
// no system role inside contents; system messages are collected and returned
// separately for use as the system instruction.
func toContents(messages []ai.Message) ([]*genai.Content, string) {
	contents := make([]*genai.Content, 0, len(messages))
	var system []string

	for _, m := range messages {
		switch m.Role {
		case ai.RoleSystem:
			system = append(system, m.Content)
		case ai.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}

	return contents, strings.Join(system, "\n\n")
}

// wrapTransportError converts genai errors into *ai.TransportError,
// preserving the HTTP status code when the library reports one.
func wrapTransportError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ai.TransportError{Provider: "google", StatusCode: apiErr.Code, Err: err}
	}
	return &ai.TransportError{Provider: "google", Err: err}
}
