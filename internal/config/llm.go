// Package config provides configuration utilities for the application.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/subtrail/subtrail/internal/common"
	"github.com/subtrail/subtrail/internal/llm"
)

// LoadLLMConfig loads AI provider configuration from Viper and environment
// variables. It follows this precedence:
// 1. Viper configuration (from config file or SUBTRAIL_ env vars)
// 2. Direct environment variables (OPENAI_API_KEY)
// 3. Default values
func LoadLLMConfig() (*llm.Config, error) {
	config := llm.Config{
		Provider:          "openai",
		Model:             "gpt-4o-mini",
		Temperature:       0.2,
		MaxTokens:         4096,
		RequestsPerMinute: 30,
	}

	if v := viper.GetString("llm.provider"); v != "" {
		config.Provider = v
	}
	if v := viper.GetString("llm.api_key"); v != "" {
		config.APIKey = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		config.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		config.BaseURL = v
	}
	if viper.IsSet("llm.temperature") {
		config.Temperature = viper.GetFloat64("llm.temperature")
	}
	if viper.IsSet("llm.max_tokens") {
		config.MaxTokens = viper.GetInt("llm.max_tokens")
	}
	if viper.IsSet("llm.requests_per_minute") {
		config.RequestsPerMinute = viper.GetInt("llm.requests_per_minute")
	}

	if config.APIKey == "" {
		config.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if config.APIKey == "" {
		return nil, common.NewUserError(
			"no AI API key configured; set llm.api_key in the config file or export OPENAI_API_KEY",
			common.ErrMissingConfig)
	}

	return &config, nil
}
