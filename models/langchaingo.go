// Package models provides scriptmeta.Model implementations.
package models

import (
	"context"
	"time"

	"github.com/scriptmeta/scriptmeta"
	"github.com/tmc/langchaingo/llms"
)

// LangChainGoModel wraps an llms.Model and implements scriptmeta.Model.
// It normalizes token usage across providers, which report counts under
// different GenerationInfo keys.
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLangChainGoModel(llm).WithModelName("gpt-4o-mini")
//
//	response, err := model.Generate(ctx, prompt)
type LangChainGoModel struct {
	model     llms.Model
	modelName string
	options   []llms.CallOption
}

// NewLangChainGoModel creates a LangChainGoModel wrapping the given
// llms.Model.
func NewLangChainGoModel(model llms.Model) *LangChainGoModel {
	return &LangChainGoModel{model: model}
}

// WithModelName sets the model name passed on each call.
// Returns the model for chaining.
func (m *LangChainGoModel) WithModelName(name string) *LangChainGoModel {
	m.modelName = name
	return m
}

// WithCallOptions sets default call options applied to every Generate call.
func (m *LangChainGoModel) WithCallOptions(options ...llms.CallOption) *LangChainGoModel {
	m.options = options
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LangChainGoModel) Unwrap() llms.Model {
	return m.model
}

// Generate implements scriptmeta.Model. It sends prompt as a single human
// message and returns the first choice with normalized token counts.
func (m *LangChainGoModel) Generate(
	ctx context.Context,
	prompt string,
) (*scriptmeta.ContentResponse, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	opts := m.options
	if m.modelName != "" {
		opts = append([]llms.CallOption{llms.WithModel(m.modelName)}, opts...)
	}

	startTime := time.Now()
	lcgResponse, err := m.model.GenerateContent(ctx, messages, opts...)
	duration := time.Since(startTime)
	if err != nil {
		return nil, err
	}

	return convertResponse(lcgResponse, duration), nil
}

// convertResponse flattens an llms.ContentResponse into scriptmeta's
// single-choice response with normalized token counts.
func convertResponse(
	lcgResponse *llms.ContentResponse,
	duration time.Duration,
) *scriptmeta.ContentResponse {
	response := &scriptmeta.ContentResponse{
		Info: &scriptmeta.GenerationInfo{Duration: duration},
	}
	if len(lcgResponse.Choices) == 0 {
		return response
	}

	choice := lcgResponse.Choices[0]
	response.Content = choice.Content
	response.StopReason = choice.StopReason

	if info := choice.GenerationInfo; info != nil {
		response.Info.RawGenerationInfo = info
		response.Info.InputTokens = firstInt(info,
			"PromptTokens", // OpenAI / Ollama / Google (compat)
			"InputTokens",  // Anthropic
			"input_tokens", // Google / Bedrock
		)
		response.Info.OutputTokens = firstInt(info,
			"CompletionTokens",
			"OutputTokens",
			"output_tokens",
		)
		response.Info.TotalTokens = firstInt(info, "TotalTokens", "total_tokens")
	}
	if response.Info.TotalTokens == 0 {
		response.Info.TotalTokens = response.Info.InputTokens + response.Info.OutputTokens
	}

	return response
}

// firstInt returns the first positive numeric value found under keys,
// handling the numeric types different providers put in GenerationInfo.
func firstInt(info map[string]any, keys ...string) int {
	for _, key := range keys {
		switch n := info[key].(type) {
		case int:
			if n > 0 {
				return n
			}
		case int32:
			if n > 0 {
				return int(n)
			}
		case int64:
			if n > 0 {
				return int(n)
			}
		case float32:
			if n > 0 {
				return int(n)
			}
		case float64:
			if n > 0 {
				return int(n)
			}
		}
	}
	return 0
}

// Compile-time check that LangChainGoModel implements scriptmeta.Model.
var _ scriptmeta.Model = (*LangChainGoModel)(nil)
