// Package engine defines the contracts shared by every image provider: the
// unified request and result shapes, the edit intents, and the classified
// error taxonomy callers react to.
package engine

import (
	"context"
	"strings"

	"golang.org/x/text/language"

	"aura/render"
)

// EditIntent selects which prompt-composition branch runs.
type EditIntent string

const (
	IntentBackgroundReplace EditIntent = "BACKGROUND"
	IntentGeneralEnhance    EditIntent = "GENERAL"
	IntentCreativeRestyle   EditIntent = "CREATIVE"
	IntentViewShift         EditIntent = "VIEW_SHIFT"
)

// Engine selects the remote provider. The choice also fixes the prompt
// language: each provider historically responds better to its native-language
// instructions, so switching engines silently switches languages regardless
// of any caller locale.
type Engine string

const (
	EngineGemini   Engine = "GEMINI"
	EngineSeedream Engine = "SEEDREAM"
)

// Language returns the prompt language for an engine.
func Language(e Engine) language.Tag {
	if e == EngineSeedream {
		return language.Chinese
	}
	return language.English
}

// SourceImage is an uploaded image, either as a bare base64 string or a full
// data URI. Each provider wants a different shape, so both are derivable.
type SourceImage string

// Base64 strips any data-URI envelope and returns the bare payload.
func (s SourceImage) Base64() string {
	raw := string(s)
	if idx := strings.Index(raw, ","); idx >= 0 && strings.HasPrefix(raw, "data:") {
		return raw[idx+1:]
	}
	return raw
}

// DataURI returns the image as a full data URI, assuming JPEG when the caller
// provided bare base64.
func (s SourceImage) DataURI() string {
	raw := string(s)
	if strings.HasPrefix(raw, "data:") {
		return raw
	}
	return "data:image/jpeg;base64," + raw
}

// IsEmpty reports whether no image was supplied.
func (s SourceImage) IsEmpty() bool {
	return strings.TrimSpace(string(s)) == ""
}

// GenerateRequest is the normalized request handed to any Generator.
type GenerateRequest struct {
	RequestID string
	Image     SourceImage
	Prompt    string
	Render    render.Config
}

// GenerationResult is the single uniform success shape: a data URI or URL
// pointing at the generated image. No provider-specific type leaks upward.
type GenerationResult struct {
	ImageData string
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerationResult, error)
}

// DefaultStrength returns the divergence strength used for an intent when the
// caller does not set one. The values are tuning defaults, not invariants;
// hosts may override them per request via render.Config.
func DefaultStrength(intent EditIntent) float64 {
	switch intent {
	case IntentBackgroundReplace:
		return 0.75
	case IntentGeneralEnhance:
		return 0.35
	case IntentCreativeRestyle:
		return 0.7
	default:
		return 0.65
	}
}
