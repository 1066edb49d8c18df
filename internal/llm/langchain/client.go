// Package langchain exposes Gemini through langchaingo's googleai backend as an
// alternative completion provider.
package langchain

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"jobprep/api/internal/llm"
	"jobprep/api/internal/models"
)

const providerName = "langchain"

type Config struct {
	APIKey string
	Model  string
}

func NewConfig() (*Config, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is required")
	}
	model := os.Getenv("LANGCHAIN_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Config{APIKey: apiKey, Model: model}, nil
}

type generateFunc func(ctx context.Context, prompt string) (string, error)

type Client struct {
	generate generateFunc
	config   *Config
}

func NewClient(ctx context.Context, config *Config) (*Client, error) {
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(config.APIKey),
		googleai.WithDefaultModel(config.Model),
	)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: providerName,
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create googleai client",
			Err:      err,
		}
	}

	return &Client{
		generate: func(ctx context.Context, prompt string) (string, error) {
			return llms.GenerateFromSinglePrompt(ctx, model, prompt)
		},
		config: config,
	}, nil
}

func (c *Client) GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error) {
	start := time.Now()

	text, err := c.generate(ctx, prompt)
	if err != nil {
		code := llm.ErrCodeServiceDown
		if ctx.Err() != nil {
			code = llm.ErrCodeTimeout
		}
		return nil, &llm.ProviderError{
			Provider: providerName,
			Code:     code,
			Message:  "Failed to generate content",
			Err:      err,
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &llm.ProviderError{
			Provider: providerName,
			Code:     llm.ErrCodeEmptyResponse,
			Message:  "Empty response generated",
		}
	}

	return &models.GenerationResponse{
		Content:   text,
		RequestID: requestID,
		Metadata: models.GenerationMetadata{
			ProcessingTime: int(time.Since(start).Milliseconds()),
			Provider:       providerName,
			Model:          c.config.Model,
		},
	}, nil
}

func (c *Client) GetProviderName() string {
	return providerName
}
