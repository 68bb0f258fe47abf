// Package ark implements the secondary engine adapter against the Volcengine
// ARK image-generation endpoint. The contract differs from the primary in
// every structural detail: dimensions are explicit pixels, the source image
// travels as a full data URI, and auth rides in a bearer header against a
// per-account inference endpoint.
package ark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aura/engine"
	"aura/infra"
	"aura/render"
)

// Credentials is the pair the secondary provider cannot run without.
type Credentials struct {
	APIKey     string
	EndpointID string
}

// Options configures the ARK client.
type Options struct {
	// Credentials is a static pair. When Source is set it wins and is
	// consulted on every call so externally updated credentials take
	// effect without rebuilding the client.
	Credentials Credentials
	Source      func() Credentials
	BaseURL     string
	HTTPClient  *http.Client
	Logger      *infra.Logger
}

// Client performs HTTP calls against the ARK images/generations API.
type Client struct {
	source     func() Credentials
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

type generationRequest struct {
	Model     string  `json:"model"`
	Prompt    string  `json:"prompt"`
	Image     string  `json:"image"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Strength  float64 `json:"strength"`
	Scale     float64 `json:"scale,omitempty"`
	Seed      int64   `json:"seed,omitempty"`
	Watermark bool    `json:"watermark"`
	Size      string  `json:"size,omitempty"`
}

type generationResponse struct {
	Data []struct {
		URL        string `json:"url"`
		ImageURL   string `json:"image_url"`
		BinaryData string `json:"binary_data"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a client with sane defaults. ARK renders can take a
// while at 4K, hence the long default timeout.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 180 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://ark.cn-beijing.volces.com/api/v3"
	}

	source := opts.Source
	if source == nil {
		static := Credentials{
			APIKey:     strings.TrimSpace(opts.Credentials.APIKey),
			EndpointID: strings.TrimSpace(opts.Credentials.EndpointID),
		}
		source = func() Credentials { return static }
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
		source:     source,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Generate performs one image-to-image call. Both the API key and endpoint ID
// must be configured; without either the call fails fast with a configuration
// error and no network request is attempted.
func (c *Client) Generate(ctx context.Context, req engine.GenerateRequest) (*engine.GenerationResult, error) {
	creds := c.source()
	if strings.TrimSpace(creds.APIKey) == "" || strings.TrimSpace(creds.EndpointID) == "" {
		return nil, engine.ConfigurationError("ark: api key and endpoint id are required")
	}

	width, height := render.Resolve(req.Render.AspectRatio, req.Render.Resolution)

	// ARK responds better when the ratio also rides inside the prompt.
	finalPrompt := fmt.Sprintf("%s --ar %s", req.Prompt, strings.ReplaceAll(string(req.Render.AspectRatio), ":", "-"))

	payload := generationRequest{
		Model:     creds.EndpointID,
		Prompt:    finalPrompt,
		Image:     req.Image.DataURI(),
		Width:     width,
		Height:    height,
		Strength:  req.Render.Strength,
		Scale:     req.Render.Scale,
		Watermark: false,
		Size:      strings.ToLower(string(req.Render.Resolution)),
	}
	if req.Render.Seed != render.SeedUnset && req.Render.Seed != 0 {
		payload.Seed = req.Render.Seed
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, engine.NewError(engine.KindProviderResponse, 0, "encode request", err)
	}
	endpoint := c.baseURL + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, engine.NewError(engine.KindProviderResponse, 0, "build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+creds.APIKey)

	c.logger.Debug().
		Str("request_id", req.RequestID).
		Int("width", width).
		Int("height", height).
		Float64("strength", req.Render.Strength).
		Msg("ark: dispatching generation")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, engine.NewError(engine.KindProviderResponse, 0, "ark: http request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, engine.NewError(engine.KindProviderResponse, resp.StatusCode, "read response", err)
	}

	if resp.StatusCode >= 300 {
		message := fmt.Sprintf("ark: status %d", resp.StatusCode)
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Error.Message != "" {
			message = detail.Error.Message
		}
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("request_id", req.RequestID).
			Msg("ark: generation rejected")
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, engine.NewError(engine.KindAuthorization, resp.StatusCode, message, nil)
		}
		return nil, engine.NewError(engine.KindProviderResponse, resp.StatusCode, message, nil)
	}

	var decoded generationResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, engine.NewError(engine.KindProviderResponse, resp.StatusCode, "decode response", err)
	}

	if len(decoded.Data) > 0 {
		// Field priority is fixed: direct URL, alternate URL, inline binary.
		first := decoded.Data[0]
		switch {
		case first.URL != "":
			return &engine.GenerationResult{ImageData: first.URL}, nil
		case first.ImageURL != "":
			return &engine.GenerationResult{ImageData: first.ImageURL}, nil
		case first.BinaryData != "":
			return &engine.GenerationResult{ImageData: "data:image/png;base64," + first.BinaryData}, nil
		}
	}

	return nil, engine.NewError(engine.KindNoImageReturned, resp.StatusCode, "ark: no image url in response", nil)
}

var _ engine.Generator = (*Client)(nil)
