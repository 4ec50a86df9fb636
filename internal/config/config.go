package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	AWS     AWSConfig
	Gemini  GeminiConfig
	Upload  UploadConfig
	Batch   BatchConfig
	Scoring ScoringConfig

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

type ServerConfig struct {
	Port      string
	Env       string
	LogFormat string
}

type LLMConfig struct {
	Provider    string
	MaxTokens   int
	Temperature float32
}

// AWSConfig holds the credential pair and region shared by the Bedrock
// gateway and the S3 résumé source. Empty keys fall back to the default
// AWS credential chain.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BedrockModelID  string
	S3Endpoint      string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type UploadConfig struct {
	MaxFileSize int64
}

type BatchConfig struct {
	MaxFiles    int
	Concurrency int
}

type ScoringConfig struct {
	Matcher string
}

const (
	ProviderBedrock = "bedrock"
	ProviderGemini  = "gemini"
)

// Load reads a .env file when present and builds the configuration from the
// environment. The returned value is read-only after startup.
func Load() (*Config, error) {
	envLoaded := godotenv.Load() == nil

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "3000"),
			Env:       getEnv("ENV", "development"),
			LogFormat: getEnv("LOG_FORMAT", "console"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(getEnv("LLM_PROVIDER", ProviderBedrock)),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 4000),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.2),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AMPLIFY_BEDROCK_ID", os.Getenv("AWS_ACCESS_KEY_ID")),
			SecretAccessKey: getEnv("AMPLIFY_BEDROCK_SECRET", os.Getenv("AWS_SECRET_ACCESS_KEY")),
			BedrockModelID:  getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
			S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Batch: BatchConfig{
			MaxFiles:    getEnvAsInt("MAX_BATCH_FILES", 20),
			Concurrency: getEnvAsInt("BATCH_CONCURRENCY", 1),
		},
		Scoring: ScoringConfig{
			Matcher: strings.ToLower(getEnv("SKILL_MATCHER", "substring")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.EnvFileLoaded = envLoaded

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderBedrock:
		if c.AWS.Region == "" {
			return fmt.Errorf("AWS_REGION is required for the bedrock provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.Batch.MaxFiles <= 0 {
		return fmt.Errorf("MAX_BATCH_FILES must be positive")
	}
	if c.Batch.Concurrency <= 0 {
		c.Batch.Concurrency = 1
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// BodyLimit is the largest multipart body the server accepts: a full batch
// of maximum-size files.
func (c *Config) BodyLimit() int {
	return int(c.Upload.MaxFileSize) * c.Batch.MaxFiles
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}
