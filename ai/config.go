// Copyright 2025 Electoral QA Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of the Ollama-compatible server.
	// Example: "http://localhost:11434"
	Host string

	// EmbeddingModel is the model identifier used for text embeddings.
	// Example: "nomic-embed-text"
	EmbeddingModel string

	// GenerationModel is the model identifier used for answer generation.
	// Example: "mistral"
	GenerationModel string

	// Temperature controls sampling randomness during generation.
	Temperature float64

	// TopP is the nucleus-sampling cutoff during generation.
	TopP float64

	// MaxTokens caps the number of generated output tokens.
	MaxTokens int

	// ContextWindow is the model context size requested from the server.
	ContextWindow int

	// StopSequences end generation when emitted.
	StopSequences []string

	// RepetitionPenalty discourages repeated tokens during generation.
	RepetitionPenalty float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the Ollama server base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGenerationModel sets the generation model identifier.
func WithGenerationModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerationModel = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxTokens sets the output token cap.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// DefaultConfig returns a Config with sensible defaults for a local Ollama
// server. Generation options match the tuning the answer quality was
// evaluated with.
func DefaultConfig() *Config {
	return &Config{
		Host:              "http://localhost:11434",
		EmbeddingModel:    "nomic-embed-text",
		GenerationModel:   "mistral",
		Temperature:       0.7,
		TopP:              0.9,
		MaxTokens:         1024,
		ContextWindow:     4096,
		StopSequences:     []string{"</s>"},
		RepetitionPenalty: 1.1,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form: no trailing
// slash on the host URL.
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(c.Host, "/")
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GenerationModel == "" {
		return errors.New("ai config: GenerationModel is required")
	}
	if c.MaxTokens <= 0 {
		return errors.New("ai config: MaxTokens must be positive")
	}
	if c.ContextWindow <= 0 {
		return errors.New("ai config: ContextWindow must be positive")
	}
	return nil
}
