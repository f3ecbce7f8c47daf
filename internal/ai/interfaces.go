package ai

import (
	"context"

	"atsscore/internal/types"
)

// Enhancer rewrites a single piece of resume text. Implementations are
// opaque to the scorer; their output is never scored automatically.
type Enhancer interface {
	Enhance(ctx context.Context, input types.EnhanceInput) (types.EnhanceOutput, *TokenUsage, error)
	ModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// TokenUsage represents token usage information from model responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// ModelInfo represents information about the backing model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}
