// Package service runs the full metadata pipeline: build the prompt, call
// the model, split the reply into sections, and validate the outcome. It is
// the piece the HTTP server and the REPL both sit on.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/scriptmeta/scriptmeta"
	"github.com/scriptmeta/scriptmeta/format"
	"github.com/scriptmeta/scriptmeta/prompt"
	"github.com/scriptmeta/scriptmeta/store"
	"github.com/scriptmeta/scriptmeta/validate"
	"go.uber.org/zap"
)

// ErrEmptyScript is returned when the submitted script is blank.
var ErrEmptyScript = errors.New("script is empty")

// Result is the outcome of one generate call: the raw reply plus everything
// derived from it. Sections and validation results are rebuilt from the raw
// text on every call; nothing here outlives the call that produced it.
type Result struct {
	// Raw is the model reply exactly as received.
	Raw string `json:"raw"`

	// Sections is the reply split into titled sections, in reply order.
	Sections []scriptmeta.Section `json:"sections"`

	// Coverage maps each required section name to whether the reply has it.
	Coverage map[string]bool `json:"coverage"`

	// Metadata is the verdict on the embedded metadata JSON block.
	Metadata validate.MetadataResult `json:"metadata"`

	// Usage carries normalized token counts when the provider reports them.
	// Nil for results rebuilt from the cache.
	Usage *scriptmeta.GenerationInfo `json:"usage,omitempty"`
}

// Complete reports whether every required section is present.
func (r *Result) Complete() bool {
	for _, present := range r.Coverage {
		if !present {
			return false
		}
	}
	return true
}

// Service generates and validates video metadata from a script.
type Service interface {
	// GenerateMetadata sends the script through the model and returns the
	// parsed, validated result. The script and raw reply are cached as the
	// last session.
	GenerateMetadata(ctx context.Context, script string, opts ...Option) (*Result, error)

	// Evaluate runs the parse and validation pipeline over raw reply text
	// without calling the model.
	Evaluate(raw string) *Result

	// Last returns the cached script and its re-evaluated result. Both are
	// zero when nothing has been cached, which is not an error.
	Last() (script string, result *Result, err error)
}

// Option adjusts a single GenerateMetadata call.
type Option func(*callOptions)

type callOptions struct {
	tone     string
	audience string
}

// WithTone sets the tone passed to the prompt builder for this call.
func WithTone(tone string) Option {
	return func(o *callOptions) { o.tone = tone }
}

// WithAudience sets the audience passed to the prompt builder for this call.
func WithAudience(audience string) Option {
	return func(o *callOptions) { o.audience = audience }
}

type service struct {
	logger   *zap.Logger
	model    scriptmeta.Model
	cache    *store.Cache
	sections []string
	rules    validate.Rules
}

// New creates a Service. cache may be nil to disable persistence; logger may
// be nil for a no-op logger.
func New(
	logger *zap.Logger,
	model scriptmeta.Model,
	cache *store.Cache,
	sections []string,
	rules validate.Rules,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sections) == 0 {
		sections = prompt.DefaultSections
	}
	return &service{
		logger:   logger,
		model:    model,
		cache:    cache,
		sections: sections,
		rules:    rules,
	}
}

func (s *service) GenerateMetadata(
	ctx context.Context,
	script string,
	opts ...Option,
) (*Result, error) {
	if strings.TrimSpace(script) == "" {
		return nil, ErrEmptyScript
	}

	var options callOptions
	for _, opt := range opts {
		opt(&options)
	}

	promptText := prompt.New(script).
		WithTone(options.tone).
		WithAudience(options.audience).
		WithSections(s.sections).
		WithMetadataSchema(s.rules.Schema.Raw()).
		Build()

	response, err := s.model.Generate(ctx, promptText)
	if err != nil {
		s.logger.Error("model call failed", zap.Error(err))
		return nil, fmt.Errorf("generate metadata: %w", err)
	}

	result := s.Evaluate(response.Content)
	result.Usage = response.Info

	if s.cache != nil {
		if err := s.cache.SaveLast(script, response.Content); err != nil {
			// The result is still good; losing the cache only costs the
			// next session its restore.
			s.logger.Warn("failed to cache last session", zap.Error(err))
		}
	}

	fields := []zap.Field{
		zap.Int("sections", len(result.Sections)),
		zap.Bool("complete", result.Complete()),
		zap.String("metadata", result.Metadata.State.String()),
	}
	if response.Info != nil {
		fields = append(fields,
			zap.Duration("duration", response.Info.Duration),
			zap.Int("total_tokens", response.Info.TotalTokens),
		)
	}
	s.logger.Info("metadata generated", fields...)

	return result, nil
}

func (s *service) Evaluate(raw string) *Result {
	sections := format.ParseSections(raw)
	return &Result{
		Raw:      raw,
		Sections: sections,
		Coverage: validate.CheckRequiredSections(sections, s.sections),
		Metadata: validate.ValidateMetadata(sections, s.rules),
	}
}

func (s *service) Last() (string, *Result, error) {
	if s.cache == nil {
		return "", nil, nil
	}

	script, raw, err := s.cache.LoadLast()
	if err != nil {
		return "", nil, fmt.Errorf("load last session: %w", err)
	}
	if raw == "" && script == "" {
		return "", nil, nil
	}

	return script, s.Evaluate(raw), nil
}
