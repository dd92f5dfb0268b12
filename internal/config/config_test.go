package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  ModelConfig
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid openai config",
			config: ModelConfig{
				Provider: "openai",
				APIKey:   "sk-xxx",
				Model:    "gpt-4o",
			},
			wantErr: false,
		},
		{
			name: "valid deepseek config",
			config: ModelConfig{
				Provider: "deepseek",
				APIKey:   "sk-xxx",
				Model:    "deepseek-chat",
			},
			wantErr: false,
		},
		{
			name: "valid ollama config without api key",
			config: ModelConfig{
				Provider: "ollama",
				Model:    "qwen2.5:14b",
				BaseURL:  "http://localhost:11434/v1",
			},
			wantErr: false,
		},
		{
			name: "missing provider",
			config: ModelConfig{
				APIKey: "sk-xxx",
				Model:  "gpt-4o",
			},
			wantErr: true,
			errMsg:  "provider is required",
		},
		{
			name: "invalid provider",
			config: ModelConfig{
				Provider: "invalid",
				APIKey:   "sk-xxx",
				Model:    "gpt-4o",
			},
			wantErr: true,
			errMsg:  "unsupported provider",
		},
		{
			name: "missing model",
			config: ModelConfig{
				Provider: "openai",
				APIKey:   "sk-xxx",
			},
			wantErr: true,
			errMsg:  "model is required",
		},
		{
			name: "missing api key for openai",
			config: ModelConfig{
				Provider: "openai",
				Model:    "gpt-4o",
			},
			wantErr: true,
			errMsg:  "api_key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_GetModel(t *testing.T) {
	cfg := &Config{
		DefaultModel: "deepseek",
		Models: map[string]ModelConfig{
			"deepseek": {
				Provider: "deepseek",
				APIKey:   "sk-deepseek",
				Model:    "deepseek-chat",
			},
			"gpt4": {
				Provider: "openai",
				APIKey:   "sk-openai",
				Model:    "gpt-4o",
			},
		},
		Language: "en",
	}

	t.Run("get existing model", func(t *testing.T) {
		model, err := cfg.GetModel("gpt4")
		require.NoError(t, err)
		assert.Equal(t, "openai", model.Provider)
		assert.Equal(t, "gpt-4o", model.Model)
	})

	t.Run("get default model when empty name", func(t *testing.T) {
		model, err := cfg.GetModel("")
		require.NoError(t, err)
		assert.Equal(t, "deepseek", model.Provider)
		assert.Equal(t, "deepseek-chat", model.Model)
	})

	t.Run("get non-existing model", func(t *testing.T) {
		_, err := cfg.GetModel("nonexistent")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestConfig_GetModelWithEnvOverride(t *testing.T) {
	cfg := &Config{
		DefaultModel: "deepseek",
		Models: map[string]ModelConfig{
			"deepseek": {
				Provider: "deepseek",
				APIKey:   "sk-deepseek",
				Model:    "deepseek-chat",
			},
			"gpt4": {
				Provider: "openai",
				APIKey:   "sk-openai",
				Model:    "gpt-4o",
			},
		},
	}

	t.Run("env variable overrides default", func(t *testing.T) {
		os.Setenv("CZOCA_MODEL", "gpt4")
		defer os.Unsetenv("CZOCA_MODEL")

		model, err := cfg.GetModel("")
		require.NoError(t, err)
		assert.Equal(t, "openai", model.Provider)
	})

	t.Run("explicit name overrides env", func(t *testing.T) {
		os.Setenv("CZOCA_MODEL", "gpt4")
		defer os.Unsetenv("CZOCA_MODEL")

		model, err := cfg.GetModel("deepseek")
		require.NoError(t, err)
		assert.Equal(t, "deepseek", model.Provider)
	})
}

func TestConfig_ExpandEnvInAPIKey(t *testing.T) {
	os.Setenv("TEST_API_KEY", "my-secret-key")
	defer os.Unsetenv("TEST_API_KEY")

	cfg := &Config{
		DefaultModel: "test",
		Models: map[string]ModelConfig{
			"test": {
				Provider: "openai",
				APIKey:   "${TEST_API_KEY}",
				Model:    "gpt-4o",
			},
		},
	}

	model, err := cfg.GetModel("test")
	require.NoError(t, err)
	assert.Equal(t, "my-secret-key", model.APIKey)
}

func TestConfig_GetLanguage(t *testing.T) {
	t.Run("returns configured language", func(t *testing.T) {
		cfg := &Config{Language: "zh"}
		assert.Equal(t, "zh", cfg.GetLanguage(""))
	})

	t.Run("override with parameter", func(t *testing.T) {
		cfg := &Config{Language: "zh"}
		assert.Equal(t, "ja", cfg.GetLanguage("ja"))
	})

	t.Run("env variable override", func(t *testing.T) {
		os.Setenv("CZOCA_LANG", "ko")
		defer os.Unsetenv("CZOCA_LANG")

		cfg := &Config{Language: "zh"}
		assert.Equal(t, "ko", cfg.GetLanguage(""))
	})

	t.Run("parameter overrides env", func(t *testing.T) {
		os.Setenv("CZOCA_LANG", "ko")
		defer os.Unsetenv("CZOCA_LANG")

		cfg := &Config{Language: "zh"}
		assert.Equal(t, "ja", cfg.GetLanguage("ja"))
	})

	t.Run("default to en when empty", func(t *testing.T) {
		cfg := &Config{}
		assert.Equal(t, "en", cfg.GetLanguage(""))
	})
}

func TestLoadFromFile(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".czoca.yaml")

	configContent := `
default_model: deepseek
models:
  deepseek:
    provider: deepseek
    api_key: sk-test
    model: deepseek-chat
  gpt4:
    provider: openai
    api_key: sk-openai
    model: gpt-4o
language: zh
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "deepseek", cfg.DefaultModel)
	assert.Equal(t, "zh", cfg.Language)
	assert.Len(t, cfg.Models, 2)

	deepseek, ok := cfg.Models["deepseek"]
	assert.True(t, ok)
	assert.Equal(t, "deepseek", deepseek.Provider)
	assert.Equal(t, "deepseek-chat", deepseek.Model)
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/.czoca.yaml")
	assert.Error(t, err)
}

func TestSupportedProviders(t *testing.T) {
	providers := SupportedProviders()
	assert.Contains(t, providers, "openai")
	assert.Contains(t, providers, "deepseek")
	assert.Contains(t, providers, "ollama")
	assert.Contains(t, providers, "gemini")
	assert.Contains(t, providers, "grok")
}

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})

	t.Run("no models is valid", func(t *testing.T) {
		cfg := &Config{DefaultModel: "deepseek"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("default model not found", func(t *testing.T) {
		cfg := &Config{
			DefaultModel: "nonexistent",
			Models: map[string]ModelConfig{
				"deepseek": {
					Provider: "deepseek",
					APIKey:   "sk-test",
					Model:    "deepseek-chat",
				},
			},
		}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "default model")
	})

	t.Run("invalid model config", func(t *testing.T) {
		cfg := &Config{
			Models: map[string]ModelConfig{
				"deepseek": {
					Provider: "invalid-provider",
					APIKey:   "sk-test",
					Model:    "deepseek-chat",
				},
			},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid changelog format", func(t *testing.T) {
		cfg := &Config{Changelog: &ChangelogConfig{Format: "html"}}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported changelog format")
	})

	t.Run("invalid retry config", func(t *testing.T) {
		cfg := &Config{Retry: &RetryConfig{MaxAttempts: 3, BackoffBase: 4, BackoffMax: 1}}
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_GetChangelogConfig(t *testing.T) {
	t.Run("nil section uses defaults", func(t *testing.T) {
		cfg := &Config{}
		assert.Equal(t, DefaultChangelogConfig(), cfg.GetChangelogConfig())
	})

	t.Run("fills unset values", func(t *testing.T) {
		cfg := &Config{Changelog: &ChangelogConfig{Format: "yaml", Incremental: true}}
		cl := cfg.GetChangelogConfig()
		assert.Equal(t, "CHANGELOG.md", cl.File)
		assert.Equal(t, "yaml", cl.Format)
		assert.Equal(t, "Unreleased", cl.UnreleasedTitle)
		assert.True(t, cl.Incremental)
	})
}

func TestConfig_GetInfoFile(t *testing.T) {
	t.Run("empty means embedded", func(t *testing.T) {
		path, err := (&Config{}).GetInfoFile()
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("expands home", func(t *testing.T) {
		homeDir, err := os.UserHomeDir()
		require.NoError(t, err)

		path, err := (&Config{InfoFile: "~/oca/info.txt"}).GetInfoFile()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(homeDir, "oca", "info.txt"), path)
	})

	t.Run("plain path unchanged", func(t *testing.T) {
		path, err := (&Config{InfoFile: "/etc/czoca/info.txt"}).GetInfoFile()
		require.NoError(t, err)
		assert.Equal(t, "/etc/czoca/info.txt", path)
	})
}

func TestLoadFromFile_Sections(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".czoca.yaml")

	configContent := `
info_file: ./docs/info.txt
commit:
  auto_yes: true
  sign_off: true
changelog:
  file: HISTORY.md
  format: yaml
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "./docs/info.txt", cfg.InfoFile)
	assert.True(t, cfg.GetCommitConfig().AutoYes)
	assert.True(t, cfg.GetCommitConfig().SignOff)
	assert.Equal(t, "HISTORY.md", cfg.GetChangelogConfig().File)
	assert.Equal(t, "yaml", cfg.GetChangelogConfig().Format)
	assert.Equal(t, "Unreleased", cfg.GetChangelogConfig().UnreleasedTitle)
	assert.Equal(t, "en", cfg.GetLanguage(""))
}

func TestLoadFromFile_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".czoca.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("changelog:\n  format: pdf\n"), 0644))

	_, err := LoadFromFile(configPath)
	assert.Error(t, err)
}

func TestLoad_CustomPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
