package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"atsscore/internal/config"
	apperrors "atsscore/internal/errors"
	"atsscore/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

const modelCheckTimeout = 10 * time.Second

// GeminiProvider implements Enhancer with Google Gemini
type GeminiProvider struct {
	client       *genai.Client
	config       config.AIConfig
	breaker      *Breaker[*genai.GenerateContentResponse]
	modelBreaker *Breaker[*genai.Model]
	retry        retrier
	logger       *apperrors.Logger
}

var _ Enhancer = (*GeminiProvider)(nil)

// NewGeminiProvider creates a Gemini-backed enhancer
func NewGeminiProvider(ctx context.Context, cfg config.AIConfig, logger *apperrors.Logger) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed, "Failed to create Gemini client", err)
	}

	// model checks are less critical, so they trip later
	modelCB := cfg.CircuitBreaker
	modelCB.MinRequests = max(modelCB.MinRequests, 5)
	modelCB.FailureThreshold = max(modelCB.FailureThreshold, 0.8)

	return &GeminiProvider{
		client:       client,
		config:       cfg,
		breaker:      NewBreaker[*genai.GenerateContentResponse]("gemini-enhance", cfg.CircuitBreaker, logger),
		modelBreaker: NewBreaker[*genai.Model]("gemini-model", modelCB, logger),
		retry:        retrier{maxRetries: cfg.MaxRetries, baseDelay: time.Second, logger: logger},
		logger:       logger,
	}, nil
}

// enhanceResponse is the JSON shape requested from the model
type enhanceResponse struct {
	Enhanced     string   `json:"enhanced"`
	Alternatives []string `json:"alternatives"`
}

func (g *GeminiProvider) generateConfig(systemPrompt string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"enhanced": {Type: genai.TypeString},
				"alternatives": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"enhanced", "alternatives"},
		},
	}
	if g.config.Temperature > 0 {
		temperature := g.config.Temperature
		cfg.Temperature = &temperature
	}
	return cfg
}

// Enhance asks the model for a rewrite of input.Text
func (g *GeminiProvider) Enhance(ctx context.Context, input types.EnhanceInput) (types.EnhanceOutput, *TokenUsage, error) {
	ctx, span := otel.Tracer("atsscore.ai.gemini").Start(ctx, "gemini.enhance")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.model", g.config.Model),
		attribute.String("enhance.section", string(input.Section)),
		attribute.Int("input.length", len(input.Text)),
	)

	systemPrompt, userPrompt := buildPrompts(input)
	genCfg := g.generateConfig(systemPrompt)

	result, err := g.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return retryDo(ctx, g.retry, "enhance_"+string(input.Section), func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genCfg)
		})
	})
	if err != nil {
		span.RecordError(err)
		return types.EnhanceOutput{}, nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed, "Failed to generate enhancement", err)
	}

	output, err := parseEnhanceResponse(result.Text())
	if err != nil {
		span.RecordError(err)
		return types.EnhanceOutput{}, nil, err
	}
	output.Section = input.Section
	output.Original = input.Text

	return output, extractTokenUsage(result), nil
}

// parseEnhanceResponse decodes the model's JSON answer
func parseEnhanceResponse(text string) (types.EnhanceOutput, error) {
	var resp enhanceResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return types.EnhanceOutput{}, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed, "Failed to parse model response", err)
	}
	if resp.Enhanced == "" {
		return types.EnhanceOutput{}, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed, "Model returned an empty rewrite", nil)
	}
	if resp.Alternatives == nil {
		resp.Alternatives = []string{}
	}
	return types.EnhanceOutput{Enhanced: resp.Enhanced, Alternatives: resp.Alternatives}, nil
}

// ModelInfo checks that the configured model is reachable
func (g *GeminiProvider) ModelInfo(ctx context.Context) *ModelInfo {
	info := &ModelInfo{Name: g.config.Model}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		info.Error = fmt.Sprintf("Failed to get model info: %v", err)
		if g.logger != nil {
			g.logger.Warn("Model availability check failed", "model", g.config.Model, "error", err.Error())
		}
		return info
	}

	info.Available = true
	info.DisplayName = model.DisplayName
	info.Version = model.Version
	return info
}

// BreakerStats reports both circuit breakers
func (g *GeminiProvider) BreakerStats() map[string]any {
	return map[string]any{
		"enhance":         g.breaker.Stats(),
		"model":           g.modelBreaker.Stats(),
		"overall_healthy": g.breaker.Healthy() && g.modelBreaker.Healthy(),
	}
}

// Close releases provider resources
func (g *GeminiProvider) Close() error {
	return nil
}

func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}
	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
