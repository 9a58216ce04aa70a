package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Serper    SerperConfig    `yaml:"serper" mapstructure:"serper"`
	Jina      JinaConfig      `yaml:"jina" mapstructure:"jina"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// LLMConfig selects the language-model backend shared by every stage.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai" or "anthropic"
	Model    string `yaml:"model" mapstructure:"model"`
}

// OpenAIConfig holds settings for any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// SearchConfig selects the web-search backend.
type SearchConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "serper" or "jina"
}

// SerperConfig holds Serper (Google Search API) settings.
type SerperConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	GL      string `yaml:"gl" mapstructure:"gl"`
	HL      string `yaml:"hl" mapstructure:"hl"`
}

// JinaConfig holds Jina AI Search settings.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// FetchConfig configures the page fetcher.
type FetchConfig struct {
	TimeoutSecs     int   `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxConnsPerHost int   `yaml:"max_conns_per_host" mapstructure:"max_conns_per_host"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS     bool  `yaml:"insecure_tls" mapstructure:"insecure_tls"`
}

// PipelineConfig configures the question-answering pipeline.
type PipelineConfig struct {
	TopN       int    `yaml:"top_n" mapstructure:"top_n"`
	WordLimit  int    `yaml:"word_limit" mapstructure:"word_limit"`
	MaxSources int    `yaml:"max_sources" mapstructure:"max_sources"`
	MaxOptions int    `yaml:"max_options" mapstructure:"max_options"`
	Profile    string `yaml:"profile" mapstructure:"profile"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// envAliases binds keys to the variable names used by existing .env files
// in addition to the UNIQA_ prefixed form.
var envAliases = map[string]string{
	"openai.key":      "OPENAI_API_KEY",
	"openai.base_url": "OPENAI_BASE_URL",
	"serper.key":      "SERPER_API_KEY",
	"anthropic.key":   "ANTHROPIC_API_KEY",
	"jina.key":        "JINA_API_KEY",
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("UNIQA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range envAliases {
		prefixed := "UNIQA_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("search.provider", "serper")
	v.SetDefault("serper.base_url", "https://google.serper.dev")
	v.SetDefault("serper.gl", "ru")
	v.SetDefault("serper.hl", "ru")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("fetch.timeout_secs", 10)
	v.SetDefault("fetch.max_conns_per_host", 5)
	v.SetDefault("fetch.max_body_bytes", 2*1024*1024)
	v.SetDefault("fetch.insecure_tls", false)
	v.SetDefault("pipeline.top_n", 3)
	v.SetDefault("pipeline.word_limit", 1000)
	v.SetDefault("pipeline.max_sources", 3)
	v.SetDefault("pipeline.max_options", 10)
	v.SetDefault("pipeline.profile", "")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.timeout_secs", 120)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that credentials for the selected providers are present
// and that pipeline bounds are sane. All problems are reported at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.LLM.Provider {
	case "openai":
		if c.OpenAI.Key == "" {
			problems = append(problems, "openai.key is required")
		}
	case "anthropic":
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
	default:
		problems = append(problems, "unknown llm.provider "+c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		problems = append(problems, "llm.model is required")
	}

	switch c.Search.Provider {
	case "serper":
		if c.Serper.Key == "" {
			problems = append(problems, "serper.key is required")
		}
	case "jina":
		if c.Jina.Key == "" {
			problems = append(problems, "jina.key is required")
		}
	default:
		problems = append(problems, "unknown search.provider "+c.Search.Provider)
	}

	if c.Pipeline.TopN < 1 || c.Pipeline.TopN > 10 {
		problems = append(problems, "pipeline.top_n must be between 1 and 10")
	}
	if c.Pipeline.WordLimit < 1 {
		problems = append(problems, "pipeline.word_limit must be > 0")
	}
	if c.Pipeline.MaxSources < 1 || c.Pipeline.MaxSources > 3 {
		problems = append(problems, "pipeline.max_sources must be between 1 and 3")
	}
	if c.Pipeline.MaxOptions < 2 || c.Pipeline.MaxOptions > 10 {
		problems = append(problems, "pipeline.max_options must be between 2 and 10")
	}
	if c.Fetch.TimeoutSecs < 1 {
		problems = append(problems, "fetch.timeout_secs must be > 0")
	}
	if c.Server.Port <= 0 {
		problems = append(problems, "server.port must be > 0")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
