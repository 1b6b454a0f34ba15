package scriptmeta

import (
	"context"
	"time"
)

// Model is scriptmeta's model interface. It narrows LangChainGo's llms.Model
// to the single-prompt call this system makes, and returns normalized token
// usage that works across providers.
//
// Exactly one request is in flight per call; implementations do not need to
// be safe for concurrent use by the same caller.
type Model interface {
	// Generate sends a single prompt and returns the reply text with
	// generation metadata.
	Generate(ctx context.Context, prompt string) (*ContentResponse, error)
}

// ContentResponse is the reply from a Generate call.
type ContentResponse struct {
	// Content is the textual content of the reply.
	Content string

	// StopReason is the reason the model stopped generating, when reported.
	StopReason string

	// Info contains generation metadata including normalized token counts.
	Info *GenerationInfo
}

// GenerationInfo carries normalized generation metadata. Token counts are 0
// when the provider does not report them.
type GenerationInfo struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	Duration     time.Duration

	// RawGenerationInfo is the provider's unnormalized metadata map.
	RawGenerationInfo map[string]any
}
