// Package openaichat prompts any chat-completions compatible server: a local
// llama.cpp instance, Groq, or OpenAI itself. The caller picks the endpoint,
// the wire format is the same.
package openaichat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/orpilot/orvoice-core/core/llms"
)

const defaultBaseURL = "http://localhost:8080/v1"

type ClientOptions struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

type ClientOption func(*ClientOptions)

func WithBaseURL(baseURL string) ClientOption {
	return func(o *ClientOptions) { o.BaseURL = baseURL }
}

func WithAPIKey(apiKey string) ClientOption {
	return func(o *ClientOptions) { o.APIKey = apiKey }
}

func WithModel(model string) ClientOption {
	return func(o *ClientOptions) { o.Model = model }
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *ClientOptions) { o.HTTPClient = client }
}

type Client struct {
	options ClientOptions
}

func NewClient(opts ...ClientOption) *Client {
	options := ClientOptions{
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Client{options: options}
}

type requestBody struct {
	Model       string         `json:"model,omitempty"`
	Messages    []llms.Message `json:"messages"`
	Temperature *float64       `json:"temperature,omitempty"`
	TopP        *float64       `json:"top_p,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
	Stop        []string       `json:"stop,omitempty"`
}

type responseBody struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Prompt sends a single-turn completion request and returns the raw
// assistant message. The content is returned untouched so callers can apply
// their own parsing to it.
func (c *Client) Prompt(ctx context.Context, prompt string, opts ...llms.PromptOption) (string, error) {
	ctx, span := tracer.Start(ctx, "prompt llm")
	defer span.End()

	options := llms.PromptOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	messages := options.Messages
	if len(messages) == 0 && options.Instructions != "" {
		messages = append(messages, llms.Message{
			Role:    llms.MessageRoleSystem,
			Content: options.Instructions,
		})
	}
	messages = append(messages, llms.Message{
		Role:    llms.MessageRoleUser,
		Content: prompt,
	})

	reqBody := requestBody{
		Model:       c.options.Model,
		Messages:    messages,
		Temperature: options.Temperature,
		TopP:        options.TopP,
		MaxTokens:   options.MaxTokens,
		Stop:        options.StopSequences,
	}
	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		err = fmt.Errorf("error marshalling JSON: %w", err)
		span.RecordError(err)
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.options.BaseURL+"/chat/completions", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		err = fmt.Errorf("error creating HTTP request: %w", err)
		span.RecordError(err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.options.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.options.APIKey)
	}

	span.SetAttributes(
		attribute.String("request.model", c.options.Model),
		attribute.String("request.url", req.URL.String()),
	)
	resp, err := c.options.HTTPClient.Do(req)
	if err != nil {
		err = fmt.Errorf("error sending request: %w", err)
		span.RecordError(err)
		return "", err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		if errorBody, err := io.ReadAll(resp.Body); err == nil {
			span.SetAttributes(attribute.String("response.error", string(errorBody)))
		}
		err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
		span.RecordError(err)
		return "", err
	}

	var response responseBody
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		err = fmt.Errorf("error unmarshalling response: %w", err)
		span.RecordError(err)
		return "", err
	}
	if len(response.Choices) == 0 {
		err := fmt.Errorf("response contained no choices")
		span.RecordError(err)
		return "", err
	}
	return response.Choices[0].Message.Content, nil
}
