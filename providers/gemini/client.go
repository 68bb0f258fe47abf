// Package gemini implements the primary engine adapter against the Gemini
// generateContent REST contract: image bytes plus instruction in, content
// parts out, with the first inline image part as the result.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aura/engine"
	"aura/infra"
)

// Model identifiers for the two supported variants.
const (
	ModelFlashImage = "gemini-2.5-flash-image"
	ModelProImage   = "gemini-3-pro-image-preview"
)

// ModelSpec describes a model variant's capabilities. The pro variant takes
// resolution and aspect ratio as structured config and is gated behind an
// elevated-credential account tier; hosts use the flag to drive credential
// reselection instead of hardcoding resolution checks.
type ModelSpec struct {
	ID                         string
	SupportsImageConfig        bool
	RequiresElevatedCredential bool
}

// Models returns the supported model variants in display order.
func Models() []ModelSpec {
	return []ModelSpec{
		{ID: ModelFlashImage},
		{ID: ModelProImage, SupportsImageConfig: true, RequiresElevatedCredential: true},
	}
}

func specFor(id string) ModelSpec {
	for _, m := range Models() {
		if m.ID == id {
			return m
		}
	}
	return ModelSpec{ID: id}
}

// Options configures the Gemini client.
type Options struct {
	// APIKey is a static credential. When KeySource is set it wins and is
	// consulted on every call, so externally updated keys take effect
	// without rebuilding the client.
	APIKey     string
	KeySource  func() string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client performs HTTP calls against the Gemini image-generation API.
type Client struct {
	keySource  func() string
	baseURL    string
	model      ModelSpec
	httpClient *http.Client
	logger     *infra.Logger
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts,omitempty"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ImageConfig *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	ImageSize   string `json:"imageSize,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
		Status  string `json:"status,omitempty"`
	} `json:"error"`
}

// NewClient constructs a client with sane defaults. Callers may provide a nil
// HTTP client; a reusable one with a generous timeout is created, since image
// synthesis regularly runs past a minute.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = ModelFlashImage
	}

	keySource := opts.KeySource
	if keySource == nil {
		key := strings.TrimSpace(opts.APIKey)
		keySource = func() string { return key }
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		keySource:  keySource,
		baseURL:    baseURL,
		model:      specFor(model),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Model returns the configured model variant.
func (c *Client) Model() ModelSpec {
	return c.model
}

// Generate sends the source image and instruction in one generateContent call
// and returns the first inline image part as a data URI.
func (c *Client) Generate(ctx context.Context, req engine.GenerateRequest) (*engine.GenerationResult, error) {
	apiKey := strings.TrimSpace(c.keySource())
	if apiKey == "" {
		return nil, engine.ConfigurationError("gemini: api key is not configured")
	}

	payload := generateContentRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: req.Image.Base64()}},
				{Text: req.Prompt},
			},
		}},
	}
	if c.model.SupportsImageConfig {
		payload.GenerationConfig = &generationConfig{
			ImageConfig: &imageConfig{
				ImageSize:   string(req.Render.Resolution),
				AspectRatio: string(req.Render.AspectRatio),
			},
		}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model.ID))
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, engine.NewError(engine.KindProviderResponse, 0, "encode request", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, engine.NewError(engine.KindProviderResponse, 0, "build request", err)
	}
	q := httpReq.URL.Query()
	q.Set("key", apiKey)
	httpReq.URL.RawQuery = q.Encode()
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classify(0, err.Error(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, engine.NewError(engine.KindProviderResponse, resp.StatusCode, "read response", err)
	}

	if resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(raw))
		var apiErr apiErrorResponse
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			message = apiErr.Error.Message
			if apiErr.Error.Status != "" {
				message = apiErr.Error.Status + ": " + message
			}
		}
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("model", c.model.ID).
			Str("request_id", req.RequestID).
			Msg("gemini: generation rejected")
		return nil, classify(resp.StatusCode, message, nil)
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, engine.NewError(engine.KindProviderResponse, resp.StatusCode, "decode response", err)
	}

	for _, candidate := range decoded.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				mime := p.InlineData.MimeType
				if mime == "" {
					mime = "image/png"
				}
				c.logger.Debug().
					Str("model", c.model.ID).
					Str("request_id", req.RequestID).
					Msg("gemini: inline image extracted")
				return &engine.GenerationResult{
					ImageData: "data:" + mime + ";base64," + p.InlineData.Data,
				}, nil
			}
		}
	}

	return nil, engine.NewError(engine.KindNoImageReturned, resp.StatusCode, "gemini: no inline image in response", nil)
}

// classify maps an HTTP status and serialized message onto the error
// taxonomy. Permission and billing rejections get their own kind so the host
// can prompt for credential reselection instead of showing a generic failure.
func classify(status int, message string, cause error) *engine.Error {
	if status == http.StatusForbidden || engine.PermissionDenied(message) {
		return engine.NewError(engine.KindAuthorization, status, message, cause)
	}
	return engine.NewError(engine.KindProviderResponse, status, message, cause)
}

var _ engine.Generator = (*Client)(nil)
