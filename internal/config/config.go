package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the working and home directories
const FileName = ".czoca.yaml"

// Supported providers
var supportedProviders = map[string]bool{
	"openai":   true,
	"deepseek": true,
	"ollama":   true,
	"gemini":   true,
	"grok":     true,
}

// Supported changelog output formats
var supportedFormats = map[string]bool{
	"markdown": true,
	"yaml":     true,
}

// SupportedProviders returns a list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	return providers
}

// Config represents the application configuration
type Config struct {
	InfoFile     string                 `yaml:"info_file" mapstructure:"info_file"`
	Language     string                 `yaml:"language" mapstructure:"language"`
	Commit       *CommitConfig          `yaml:"commit" mapstructure:"commit"`
	Changelog    *ChangelogConfig       `yaml:"changelog" mapstructure:"changelog"`
	DefaultModel string                 `yaml:"default_model" mapstructure:"default_model"`
	Models       map[string]ModelConfig `yaml:"models" mapstructure:"models"`
	Retry        *RetryConfig           `yaml:"retry" mapstructure:"retry"`
}

// CommitConfig represents the commit command configuration
type CommitConfig struct {
	AutoYes bool `yaml:"auto_yes" mapstructure:"auto_yes"`
	SignOff bool `yaml:"sign_off" mapstructure:"sign_off"`
}

// ChangelogConfig represents the changelog command configuration
type ChangelogConfig struct {
	File            string `yaml:"file" mapstructure:"file"`
	Format          string `yaml:"format" mapstructure:"format"`
	UnreleasedTitle string `yaml:"unreleased_title" mapstructure:"unreleased_title"`
	Incremental     bool   `yaml:"incremental" mapstructure:"incremental"`
}

// DefaultChangelogConfig returns the default changelog configuration
func DefaultChangelogConfig() *ChangelogConfig {
	return &ChangelogConfig{
		File:            "CHANGELOG.md",
		Format:          "markdown",
		UnreleasedTitle: "Unreleased",
		Incremental:     false,
	}
}

// Validate validates the changelog configuration
func (c *ChangelogConfig) Validate() error {
	if c.Format != "" && !supportedFormats[c.Format] {
		return fmt.Errorf("unsupported changelog format: %s", c.Format)
	}
	return nil
}

// RetryConfig represents the retry configuration
type RetryConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	MaxAttempts int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	BackoffBase float64 `yaml:"backoff_base" mapstructure:"backoff_base"` // in seconds
	BackoffMax  float64 `yaml:"backoff_max" mapstructure:"backoff_max"`   // in seconds
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Enabled:     true,
		MaxAttempts: 3,
		BackoffBase: 1.0,
		BackoffMax:  8.0,
	}
}

// Validate validates the retry configuration
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must be non-negative")
	}
	if r.BackoffBase < 0 {
		return fmt.Errorf("backoff_base must be non-negative")
	}
	if r.BackoffMax < r.BackoffBase {
		return fmt.Errorf("backoff_max must be greater than or equal to backoff_base")
	}
	return nil
}

// ModelConfig represents a single model configuration
type ModelConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	Model    string `yaml:"model" mapstructure:"model"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// Validate validates the model configuration
func (m *ModelConfig) Validate() error {
	if m.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !supportedProviders[m.Provider] {
		return fmt.Errorf("unsupported provider: %s", m.Provider)
	}
	if m.Model == "" {
		return fmt.Errorf("model is required")
	}
	// API key is required for all providers except ollama
	if m.Provider != "ollama" && m.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %s", m.Provider)
	}
	return nil
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		Language:  "en",
		Commit:    &CommitConfig{},
		Changelog: DefaultChangelogConfig(),
		Retry:     DefaultRetryConfig(),
	}
}

// Validate validates the entire configuration.
// Models are optional: they are only needed by the draft feature.
func (c *Config) Validate() error {
	if c.DefaultModel != "" && len(c.Models) > 0 {
		if _, ok := c.Models[c.DefaultModel]; !ok {
			return fmt.Errorf("default model '%s' not found in models configuration", c.DefaultModel)
		}
	}

	for name, model := range c.Models {
		if err := model.Validate(); err != nil {
			return fmt.Errorf("invalid model '%s': %w", name, err)
		}
	}

	if c.Changelog != nil {
		if err := c.Changelog.Validate(); err != nil {
			return fmt.Errorf("invalid changelog configuration: %w", err)
		}
	}

	if c.Retry != nil {
		if err := c.Retry.Validate(); err != nil {
			return fmt.Errorf("invalid retry configuration: %w", err)
		}
	}

	return nil
}

// GetModel returns the model configuration by name
// Priority: parameter > env variable (CZOCA_MODEL) > default_model
func (c *Config) GetModel(modelName string) (*ModelConfig, error) {
	if modelName == "" {
		modelName = os.Getenv("CZOCA_MODEL")
	}

	if modelName == "" {
		modelName = c.DefaultModel
	}

	if modelName == "" {
		return nil, fmt.Errorf("no model specified and no default model configured")
	}

	model, ok := c.Models[modelName]
	if !ok {
		return nil, fmt.Errorf("model '%s' not found in configuration", modelName)
	}

	model.APIKey = expandEnv(model.APIKey)

	return &model, nil
}

// GetLanguage returns the language drafts are written in
// Priority: parameter > env variable (CZOCA_LANG) > config file > default (en)
func (c *Config) GetLanguage(langParam string) string {
	if langParam != "" {
		return langParam
	}

	if envLang := os.Getenv("CZOCA_LANG"); envLang != "" {
		return envLang
	}

	if c.Language != "" {
		return c.Language
	}

	return "en"
}

// GetCommitConfig returns the commit configuration
func (c *Config) GetCommitConfig() *CommitConfig {
	if c.Commit == nil {
		return &CommitConfig{}
	}
	return c.Commit
}

// GetChangelogConfig returns the changelog configuration with defaults applied
func (c *Config) GetChangelogConfig() *ChangelogConfig {
	if c.Changelog == nil {
		return DefaultChangelogConfig()
	}
	defaults := DefaultChangelogConfig()
	if c.Changelog.File == "" {
		c.Changelog.File = defaults.File
	}
	if c.Changelog.Format == "" {
		c.Changelog.Format = defaults.Format
	}
	if c.Changelog.UnreleasedTitle == "" {
		c.Changelog.UnreleasedTitle = defaults.UnreleasedTitle
	}
	return c.Changelog
}

// GetRetryConfig returns the retry configuration with defaults applied
func (c *Config) GetRetryConfig() *RetryConfig {
	if c.Retry == nil {
		return DefaultRetryConfig()
	}
	defaults := DefaultRetryConfig()
	if c.Retry.MaxAttempts < 0 {
		c.Retry.MaxAttempts = defaults.MaxAttempts
	}
	if c.Retry.BackoffBase < 0 {
		c.Retry.BackoffBase = defaults.BackoffBase
	}
	if c.Retry.BackoffMax < 0 {
		c.Retry.BackoffMax = defaults.BackoffMax
	}
	return c.Retry
}

// GetInfoFile returns the help text resource path with ~ expanded.
// An empty result means the embedded resource is used.
func (c *Config) GetInfoFile() (string, error) {
	if c.InfoFile == "" {
		return "", nil
	}

	filePath := c.InfoFile
	if strings.HasPrefix(filePath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(homeDir, filePath[2:])
	}
	return filePath, nil
}

// expandEnv expands environment variables in the format ${VAR} or $VAR
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envName := s[2 : len(s)-1]
		return os.Getenv(envName)
	}
	if strings.HasPrefix(s, "$") {
		envName := s[1:]
		return os.Getenv(envName)
	}
	return s
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Load loads configuration with the following priority:
// 1. Custom path if provided
// 2. Current directory .czoca.yaml
// 3. Home directory ~/.czoca.yaml
// 4. Built-in defaults
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	candidates := []string{FileName}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFromFile(path)
	}

	return Default(), nil
}
