package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"go.uber.org/zap"

	"alfredoptarigan/cv-screener/internal/config"
)

// InferenceGateway sends one prompt to a hosted model and returns its
// free-text completion. Failures are returned as *InferenceError.
type InferenceGateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewInferenceGateway builds the gateway selected by cfg.LLM.Provider.
func NewInferenceGateway(ctx context.Context, cfg *config.Config, log *zap.Logger) (InferenceGateway, error) {
	switch cfg.LLM.Provider {
	case config.ProviderBedrock:
		awsCfg, err := LoadAWSConfig(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		return NewBedrockService(awsCfg, cfg.AWS.BedrockModelID, cfg.LLM.MaxTokens, cfg.LLM.Temperature, log), nil
	case config.ProviderGemini:
		return NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.LLM.MaxTokens, cfg.LLM.Temperature, log)
	default:
		return nil, fmt.Errorf("unknown inference provider %q", cfg.LLM.Provider)
	}
}

// LoadAWSConfig resolves AWS settings for the configured region. An explicit
// key pair is used only when both halves are set; otherwise the default
// credential chain applies.
func LoadAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return awsCfg, nil
}
