package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	HistoryRemotePostgres = "postgres"
	HistoryRemoteSupabase = "supabase"
	HistoryRemoteNone     = "none"

	HistoryModeSync  = "sync"
	HistoryModeQueue = "queue"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	GeminiAPIKey string
	OpenAIKey    string
	GroqKey      string

	DatabaseURL string

	SupabaseURL            string
	SupabaseJWTSecret      string
	SupabaseServiceRoleKey string

	RedisURL      string
	LocalStateDir string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Generation GenerationConfig
	Image      ImageConfig
	Chat       ChatConfig
	History    HistoryConfig
}

type GenerationConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

type ImageConfig struct {
	Model string `yaml:"model"`
}

type ChatConfig struct {
	Model       string `yaml:"model"`
	MaxSessions int    `yaml:"max_sessions"`
}

// HistoryConfig selects the remote history backend. An empty Remote means
// auto: postgres when DATABASE_URL is set, supabase when the REST
// credentials are, otherwise none.
type HistoryConfig struct {
	Remote string `yaml:"remote"`
	Mode   string `yaml:"mode"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		GeminiAPIKey:             firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY")),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		GroqKey:                  os.Getenv("GROQ_API_KEY"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		SupabaseURL:              os.Getenv("SUPABASE_URL"),
		SupabaseJWTSecret:        os.Getenv("SUPABASE_JWT_SECRET"),
		SupabaseServiceRoleKey:   os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		LocalStateDir:            os.Getenv("LOCAL_STATE_DIR"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
		Generation: GenerationConfig{
			Provider: os.Getenv("GENERATION_PROVIDER"),
			Model:    os.Getenv("GENERATION_MODEL"),
		},
		Image: ImageConfig{Model: os.Getenv("IMAGE_MODEL")},
		Chat:  ChatConfig{Model: os.Getenv("CHAT_MODEL")},
		History: HistoryConfig{
			Remote: os.Getenv("HISTORY_REMOTE"),
			Mode:   os.Getenv("HISTORY_REMOTE_MODE"),
		},
	}

	if v := os.Getenv("CHAT_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CHAT_MAX_SESSIONS must be an integer: %w", err)
		}
		cfg.Chat.MaxSessions = n
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// LoadFromYAML fills settings the environment left empty. A missing file is
// not an error.
func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Generation GenerationConfig `yaml:"generation"`
		Image      ImageConfig      `yaml:"image"`
		Chat       ChatConfig       `yaml:"chat"`
		History    HistoryConfig    `yaml:"history"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	fill(&c.Generation.Provider, yamlConfig.Generation.Provider)
	fill(&c.Generation.Model, yamlConfig.Generation.Model)
	fill(&c.Image.Model, yamlConfig.Image.Model)
	fill(&c.Chat.Model, yamlConfig.Chat.Model)
	fill(&c.History.Remote, yamlConfig.History.Remote)
	fill(&c.History.Mode, yamlConfig.History.Mode)
	if c.Chat.MaxSessions == 0 {
		c.Chat.MaxSessions = yamlConfig.Chat.MaxSessions
	}

	return nil
}

func (c *Config) SetDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.ServiceName == "" {
		c.ServiceName = "culinai-chef"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "1.0.0"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Generation.Provider == "" {
		c.Generation.Provider = "gemini"
	}
	if c.Image.Model == "" {
		c.Image.Model = "gemini-2.5-flash-image"
	}
	if c.Chat.Model == "" {
		c.Chat.Model = "gemini-3-pro-preview"
	}
	if c.Chat.MaxSessions == 0 {
		c.Chat.MaxSessions = 1000
	}
	if c.History.Mode == "" {
		c.History.Mode = HistoryModeSync
	}
	if c.LocalStateDir == "" {
		c.LocalStateDir = "data/state"
	}
}

// HistoryRemote resolves the remote history backend, applying the auto rule
// when none was configured.
func (c *Config) HistoryRemote() string {
	if c.History.Remote != "" {
		return c.History.Remote
	}
	switch {
	case c.DatabaseURL != "":
		return HistoryRemotePostgres
	case c.SupabaseURL != "" && c.SupabaseServiceRoleKey != "":
		return HistoryRemoteSupabase
	default:
		return HistoryRemoteNone
	}
}

// Nothing is required: missing provider keys surface as configuration
// errors on the feature that needs them.
func (c *Config) validate() error {
	switch c.Generation.Provider {
	case "gemini", "openai", "groq":
	default:
		return fmt.Errorf("GENERATION_PROVIDER must be gemini, openai or groq, got %q", c.Generation.Provider)
	}

	switch c.HistoryRemote() {
	case HistoryRemotePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("HISTORY_REMOTE=postgres requires DATABASE_URL")
		}
	case HistoryRemoteSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("HISTORY_REMOTE=supabase requires SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY")
		}
	case HistoryRemoteNone:
	default:
		return fmt.Errorf("HISTORY_REMOTE must be postgres, supabase or none, got %q", c.History.Remote)
	}

	switch c.History.Mode {
	case HistoryModeSync:
	case HistoryModeQueue:
		if c.RedisURL == "" {
			return fmt.Errorf("HISTORY_REMOTE_MODE=queue requires REDIS_URL")
		}
	default:
		return fmt.Errorf("HISTORY_REMOTE_MODE must be sync or queue, got %q", c.History.Mode)
	}

	if c.Chat.MaxSessions < 0 {
		return fmt.Errorf("CHAT_MAX_SESSIONS must be positive")
	}
	return nil
}

func fill(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
