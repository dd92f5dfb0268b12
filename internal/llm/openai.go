package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/huimingz/cz-oca-go/internal/config"
)

// Default base URLs of the OpenAI-compatible providers
const (
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
	OllamaDefaultBaseURL   = "http://localhost:11434/v1"
	GrokDefaultBaseURL     = "https://api.x.ai/v1"
)

// compatible lists the providers served through the OpenAI client
var compatible = map[string]struct {
	baseURL string
	// apiKey is used when none is configured
	apiKey string
}{
	"openai":   {},
	"deepseek": {baseURL: DeepseekDefaultBaseURL},
	"ollama":   {baseURL: OllamaDefaultBaseURL, apiKey: "ollama"},
	"grok":     {baseURL: GrokDefaultBaseURL},
}

// OpenAIProvider implements Provider for OpenAI and the APIs compatible with it
type OpenAIProvider struct {
	name string
	cfg  config.ModelConfig
}

// NewOpenAIProvider creates a provider for the OpenAI-compatible API named by
// cfg.Provider, filling in its default base URL
func NewOpenAIProvider(cfg config.ModelConfig) *OpenAIProvider {
	name := cfg.Provider
	if name == "" {
		name = "openai"
	}
	defaults := compatible[name]
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.baseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = defaults.apiKey
	}
	return &OpenAIProvider{name: name, cfg: cfg}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// GetConfig returns the model configuration
func (p *OpenAIProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// CreateChatModel creates an Eino ChatModel over the OpenAI client
func (p *OpenAIProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
	})
}
