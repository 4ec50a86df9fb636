package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

const anthropicBedrockVersion = "bedrock-2023-05-31"

type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type bedrockService struct {
	client      bedrockInvoker
	modelID     string
	maxTokens   int
	temperature float32
	log         *zap.Logger
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float32            `json:"temperature"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content    []anthropicContent `json:"content"`
	StopReason string             `json:"stop_reason"`
}

func NewBedrockService(awsCfg aws.Config, modelID string, maxTokens int, temperature float32, log *zap.Logger) InferenceGateway {
	return newBedrockService(bedrockruntime.NewFromConfig(awsCfg), modelID, maxTokens, temperature, log)
}

func newBedrockService(client bedrockInvoker, modelID string, maxTokens int, temperature float32, log *zap.Logger) *bedrockService {
	return &bedrockService{
		client:      client,
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
		log:         log,
	}
}

func (b *bedrockService) Name() string { return "bedrock" }

// Complete implements InferenceGateway.
func (b *bedrockService) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := b.invoke(ctx, prompt)
	if err != nil {
		b.log.Error("bedrock invocation failed", zap.String("model", b.modelID), zap.Error(err))
		return "", &InferenceError{Provider: b.Name(), Err: err}
	}
	return text, nil
}

func (b *bedrockService) invoke(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicBedrockVersion,
		MaxTokens:        b.maxTokens,
		Temperature:      b.temperature,
		Messages: []anthropicMessage{{
			Role:    "user",
			Content: []anthropicContent{{Type: "text", Text: prompt}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", err
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(resp.Content) == 0 || strings.TrimSpace(resp.Content[0].Text) == "" {
		return "", errors.New("no text content in response")
	}

	b.log.Debug("bedrock response received",
		zap.String("model", b.modelID),
		zap.String("stop_reason", resp.StopReason),
		zap.Int("chars", len(resp.Content[0].Text)),
	)

	return resp.Content[0].Text, nil
}
