// Package llm wraps the OpenAI SDK for chat completions and image generation,
// plus a plain HTTP download of generated images.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	defaultBaseURL      = "https://api.openai.com/v1"
	defaultTimeout      = 120 * time.Second
	defaultImageModel   = "dall-e-3"
	defaultImageSize    = "1024x1024"
	defaultImageQuality = "hd"

	// Images above this size are rejected by Download.
	maxImageBytes = 20 << 20
)

// ErrNotConfigured is returned by every call when no API key is set.
var ErrNotConfigured = errors.New("OpenAI API key not configured")

// APIError is a non-2xx response from the provider. Body is the provider's error message.
type APIError struct {
	StatusCode int
	Body       string
	cause      error
}

func (e *APIError) Error() string {
	return e.Body
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// Config holds client settings. Zero values fall back to the OpenAI defaults.
type Config struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	ImageModel   string
	ImageSize    string
	ImageQuality string
}

// Client talks to the OpenAI API through the official SDK.
type Client struct {
	configured   bool
	api          openai.Client
	imageModel   string
	imageSize    string
	imageQuality string
	httpClient   *http.Client
}

// NewClient creates a new OpenAI client. The SDK's automatic retries are
// disabled; every call is attempted once.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = defaultImageModel
	}
	if cfg.ImageSize == "" {
		cfg.ImageSize = defaultImageSize
	}
	if cfg.ImageQuality == "" {
		cfg.ImageQuality = defaultImageQuality
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	httpClient := &http.Client{Timeout: cfg.Timeout}

	return &Client{
		configured: apiKey != "",
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")+"/"),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
		imageModel:   cfg.ImageModel,
		imageSize:    cfg.ImageSize,
		imageQuality: cfg.ImageQuality,
		httpClient:   httpClient,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.configured
}

// ChatRequest is one chat completion call. System may be empty.
type ChatRequest struct {
	Model       string
	System      string
	User        string
	Temperature float64
	JSON        bool
}

// Complete sends a chat completion and returns the first choice's text, trimmed.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.User))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", providerError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)

	slog.DebugContext(ctx, "chat completion received",
		"model", resp.Model,
		"finish_reason", resp.Choices[0].FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"length", len(text),
	)

	return text, nil
}

// GenerateImage requests a single image and returns its temporary URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	resp, err := c.api.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(c.imageModel),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize(c.imageSize),
		Quality:        openai.ImageGenerateParamsQuality(c.imageQuality),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		return "", providerError(err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image response contained no URL")
	}

	return resp.Data[0].URL, nil
}

// Download fetches a generated image. It returns the bytes and the reported content type.
func (c *Client) Download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("downloaded image is empty")
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// providerError turns an SDK error response into an *APIError carrying the
// provider's message. Transport errors pass through unchanged.
func providerError(err error) error {
	var oaErr *openai.Error
	if !errors.As(err, &oaErr) {
		return fmt.Errorf("API request failed: %w", err)
	}

	body := oaErr.Message
	if body == "" {
		body = err.Error()
	}
	return &APIError{StatusCode: oaErr.StatusCode, Body: body, cause: err}
}
