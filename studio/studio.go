// Package studio orchestrates a generation end to end: it validates the
// input, composes the provider prompt, fills in render defaults, dispatches
// to the selected engine and records the outcome in history. It performs no
// retries; classified provider errors pass through to the caller unchanged.
package studio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aura/engine"
	"aura/history"
	"aura/infra"
	"aura/prompt"
	"aura/render"
)

// Validation failures share the configuration kind so hosts handle them with
// the same remediation path as a missing credential: fix the input, resubmit.
var (
	ErrImageRequired  = engine.ConfigurationError("studio: source image is required")
	ErrPromptRequired = engine.ConfigurationError("studio: prompt text is required for this edit mode")
)

// Request is one generation as the UI describes it. Render fields left at
// their zero value are filled with sensible defaults before dispatch.
type Request struct {
	Intent    engine.EditIntent
	Engine    engine.Engine
	Image     engine.SourceImage
	UserText  string
	Render    render.Config
	ViewShift prompt.ViewShift
}

// Result is a completed generation. SourceFingerprint identifies the image
// the generation started from, so a host can drop a late-arriving result when
// the user has already cleared or replaced the source.
type Result struct {
	RequestID         string
	ImageData         string
	Prompt            string
	SourceFingerprint string
}

// Options wires a Studio. Primary handles EngineGemini, Secondary handles
// EngineSeedream. History and Logger are optional.
type Options struct {
	Primary   engine.Generator
	Secondary engine.Generator
	History   *history.Log
	Logger    *infra.Logger
}

// Studio coordinates prompt composition, dispatch and history recording.
type Studio struct {
	primary   engine.Generator
	secondary engine.Generator
	history   *history.Log
	logger    infra.Logger
}

// New builds a Studio from the given options.
func New(opts Options) *Studio {
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Studio{
		primary:   opts.Primary,
		secondary: opts.Secondary,
		history:   opts.History,
		logger:    logger,
	}
}

// Generate runs one generation. The returned error is always classified; the
// caller can switch on engine.KindOf without inspecting provider details.
func (s *Studio) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Image.IsEmpty() {
		return nil, ErrImageRequired
	}

	cfg := fillDefaults(req.Render, req.Intent)

	finalPrompt := prompt.Compose(prompt.Request{
		Intent:     req.Intent,
		UserText:   req.UserText,
		Engine:     req.Engine,
		Resolution: cfg.Resolution,
		ViewShift:  req.ViewShift,
	})
	if finalPrompt == "" && req.Intent != engine.IntentViewShift {
		return nil, ErrPromptRequired
	}

	gen, err := s.generator(req.Engine)
	if err != nil {
		return nil, err
	}

	genReq := engine.GenerateRequest{
		RequestID: uuid.NewString(),
		Image:     req.Image,
		Prompt:    finalPrompt,
		Render:    cfg,
	}

	s.logger.Info().
		Str("request_id", genReq.RequestID).
		Str("engine", string(req.Engine)).
		Str("intent", string(req.Intent)).
		Str("resolution", string(cfg.Resolution)).
		Msg("studio: dispatching generation")

	res, err := gen.Generate(ctx, genReq)
	if err != nil {
		s.logger.Error().
			Str("request_id", genReq.RequestID).
			Str("kind", string(engine.KindOf(err))).
			Err(err).
			Msg("studio: generation failed")
		return nil, err
	}

	s.record(ctx, req, cfg, finalPrompt, res)

	return &Result{
		RequestID:         genReq.RequestID,
		ImageData:         res.ImageData,
		Prompt:            finalPrompt,
		SourceFingerprint: Fingerprint(req.Image),
	}, nil
}

// record persists the successful generation. A storage failure is logged but
// never surfaced: the image already exists and losing the history row is the
// lesser harm.
func (s *Studio) record(ctx context.Context, req Request, cfg render.Config, finalPrompt string, res *engine.GenerationResult) {
	if s.history == nil {
		return
	}
	_, err := s.history.Add(ctx, history.Item{
		OriginalImage:  req.Image.DataURI(),
		GeneratedImage: res.ImageData,
		Prompt:         finalPrompt,
		Engine:         req.Engine,
		Resolution:     cfg.Resolution,
		AspectRatio:    cfg.AspectRatio,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("studio: failed to record history item")
	}
}

func (s *Studio) generator(e engine.Engine) (engine.Generator, error) {
	var gen engine.Generator
	switch e {
	case engine.EngineSeedream:
		gen = s.secondary
	default:
		gen = s.primary
	}
	if gen == nil {
		return nil, engine.ConfigurationError("studio: no adapter configured for engine " + string(e))
	}
	return gen, nil
}

// fillDefaults completes a render config the UI left partially set.
func fillDefaults(cfg render.Config, intent engine.EditIntent) render.Config {
	if cfg.Resolution == "" {
		cfg.Resolution = render.Resolution1K
	}
	if cfg.AspectRatio == "" {
		cfg.AspectRatio = render.AspectSquare
	}
	if cfg.Strength == 0 {
		cfg.Strength = engine.DefaultStrength(intent)
	}
	if cfg.Seed == 0 {
		cfg.Seed = render.SeedUnset
	}
	return cfg
}

// Fingerprint derives a short stable identifier for a source image. Equal
// inputs always produce equal fingerprints, which is all the stale-result
// check needs.
func Fingerprint(img engine.SourceImage) string {
	if img.IsEmpty() {
		return ""
	}
	sum := sha256.Sum256([]byte(img))
	return hex.EncodeToString(sum[:8])
}
