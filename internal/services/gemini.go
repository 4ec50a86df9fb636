package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiService struct {
	models      contentGenerator
	modelName   string
	maxTokens   int32
	temperature float32
	log         *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, model string, maxTokens int, temperature float32, log *zap.Logger) (InferenceGateway, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiService(client.Models, model, maxTokens, temperature, log), nil
}

func newGeminiService(models contentGenerator, model string, maxTokens int, temperature float32, log *zap.Logger) *geminiService {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	return &geminiService{
		models:      models,
		modelName:   model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
		log:         log,
	}
}

func (g *geminiService) Name() string { return "gemini" }

// Complete implements InferenceGateway.
func (g *geminiService) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := g.generate(ctx, prompt)
	if err != nil {
		g.log.Error("gemini generation failed", zap.String("model", g.modelName), zap.Error(err))
		return "", &InferenceError{Provider: g.Name(), Err: err}
	}
	return text, nil
}

func (g *geminiService) generate(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxTokens,
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no text content in response")
	}

	g.log.Debug("gemini response received", zap.String("model", g.modelName), zap.Int("chars", len(text)))

	return text, nil
}
