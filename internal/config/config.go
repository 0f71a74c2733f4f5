package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "REVIEWMINER_CONFIG"
	outputDirEnv     = "REVIEWMINER_OUTPUT_DIR"
	auditPathEnv     = "REVIEWMINER_AUDIT_DB"
	inferenceURLEnv  = "INFERENCE_URL"
	inferenceKeyEnv  = "INFERENCE_API_KEY"
	chatGPTAPIKeyEnv = "CHATGPT_API_KEY"
	chatGPTModelEnv  = "CHATGPT_MODEL"

	defaultSentimentModel = "nlptown/bert-base-multilingual-uncased-sentiment"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Output    OutputConfig    `yaml:"output"`
	Audit     AuditConfig     `yaml:"audit"`
	Inference InferenceConfig `yaml:"inference"`
	Chat      ChatConfig      `yaml:"chat"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OutputConfig describes where enriched datasets are persisted.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// AuditConfig locates the local run-audit database.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// InferenceConfig describes the sentiment model service integration.
type InferenceConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	Model    string `yaml:"model"`
}

// ChatConfig defines how to contact the recommendation chat API.
type ChatConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// PipelineConfig tunes batch classification and column substitution.
type PipelineConfig struct {
	Workers   int               `yaml:"workers"`
	ColumnMap map[string]string `yaml:"columnMap"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if cfg.Pipeline.Workers < 1 {
		cfg.Pipeline.Workers = 1
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(outputDirEnv); v != "" {
		c.Output.Dir = v
	}

	if v := os.Getenv(auditPathEnv); v != "" {
		c.Audit.Path = v
	}

	if v := os.Getenv(inferenceURLEnv); v != "" {
		c.Inference.Endpoint = v
	}

	if v := os.Getenv(inferenceKeyEnv); v != "" {
		c.Inference.APIKey = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.Chat.APIKey = v
	}

	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.Chat.Model = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Output.Dir != "" {
		base.Output = override.Output
	}

	if override.Audit.Path != "" {
		base.Audit = override.Audit
	}

	if override.Inference.Endpoint != "" {
		base.Inference.Endpoint = override.Inference.Endpoint
	}
	if override.Inference.APIKey != "" {
		base.Inference.APIKey = override.Inference.APIKey
	}
	if override.Inference.Model != "" {
		base.Inference.Model = override.Inference.Model
	}

	if override.Chat.Endpoint != "" {
		base.Chat.Endpoint = override.Chat.Endpoint
	}
	if override.Chat.Model != "" {
		base.Chat.Model = override.Chat.Model
	}
	if override.Chat.APIKey != "" {
		base.Chat.APIKey = override.Chat.APIKey
	}
	if override.Chat.SystemPrompt != "" {
		base.Chat.SystemPrompt = override.Chat.SystemPrompt
	}

	if override.Pipeline.Workers > 0 {
		base.Pipeline.Workers = override.Pipeline.Workers
	}
	if len(override.Pipeline.ColumnMap) > 0 {
		base.Pipeline.ColumnMap = override.Pipeline.ColumnMap
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Dir: "output_data"},
		Audit:   AuditConfig{Path: "reviewminer_audit.db"},
		Inference: InferenceConfig{
			Endpoint: "http://localhost:8090",
			Model:    defaultSentimentModel,
		},
		Chat: ChatConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			SystemPrompt: "Provide a thorough Business Recommendation based on the reviews and sentiment scores.",
		},
		Pipeline: PipelineConfig{Workers: 4},
	}
}
