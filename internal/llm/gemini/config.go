package gemini

import (
	"errors"
	"os"
	"time"
)

const defaultModel = "gemini-2.0-flash-lite"

// holds Gemini-specific configuration
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL overrides the API endpoint, used against local stubs
	BaseURL string
}

func NewConfig() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is required")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: os.Getenv("GEMINI_BASE_URL"),
	}, nil
}
