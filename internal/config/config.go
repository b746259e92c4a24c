package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	Timeout        time.Duration
	VertexProject  string
	VertexLocation string
}

// MailConfig enables outreach delivery through the Gmail API.
type MailConfig struct {
	CredentialsFile string
	TokenFile       string
	Sender          string
}

// Enabled reports whether enough settings are present to deliver mail.
func (m MailConfig) Enabled() bool {
	return m.CredentialsFile != "" && m.TokenFile != ""
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port             string
	DatabasePath     string
	CORSAllowOrigins []string
	BodyLimit        string
	UploadMaxBytes   int64
	LLM              LLMConfig
	RateLimitAI      RateLimitConfig
	AuthEnabled      bool
	JWTSecret        string
	TokenTTL         time.Duration
	AdminEmail       string
	AdminPassword    string
	PhoneRegion      string
	EmailMXCheck     bool
	CompanyName      string
	Mail             MailConfig
}

// fileConfig mirrors the optional YAML file named by CONFIG_FILE.
type fileConfig struct {
	Port             string   `yaml:"port"`
	DatabasePath     string   `yaml:"database_path"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
	BodyLimit        string   `yaml:"body_limit"`
	UploadMaxBytes   int64    `yaml:"upload_max_bytes"`
	RateLimitAI      string   `yaml:"rate_limit_ai"`
	AuthEnabled      *bool    `yaml:"auth_enabled"`
	JWTTTL           string   `yaml:"jwt_ttl"`
	PhoneRegion      string   `yaml:"phone_region"`
	EmailMXCheck     bool     `yaml:"email_mx_check"`
	CompanyName      string   `yaml:"company_name"`
	LLM              struct {
		Provider       string `yaml:"provider"`
		Model          string `yaml:"model"`
		BaseURL        string `yaml:"base_url"`
		Timeout        string `yaml:"timeout"`
		VertexProject  string `yaml:"vertex_project"`
		VertexLocation string `yaml:"vertex_location"`
	} `yaml:"llm"`
	Mail struct {
		CredentialsFile string `yaml:"credentials_file"`
		TokenFile       string `yaml:"token_file"`
		Sender          string `yaml:"sender"`
	} `yaml:"mail"`
}

// Load reads configuration from an optional YAML file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	cfg := &Config{
		Port:          getEnv("PORT", orDefault(file.Port, "3001")),
		DatabasePath:  getEnv("DATABASE_PATH", orDefault(file.DatabasePath, "data/hireloop.db")),
		BodyLimit:     getEnv("BODY_LIMIT", orDefault(file.BodyLimit, "10M")),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:      parseDuration(getEnv("JWT_TTL", orDefault(file.JWTTTL, "24h"))),
		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		PhoneRegion:   strings.ToUpper(getEnv("PHONE_REGION", orDefault(file.PhoneRegion, "US"))),
		CompanyName:   getEnv("COMPANY_NAME", orDefault(file.CompanyName, "HireLoop")),
		Mail: MailConfig{
			CredentialsFile: getEnv("GMAIL_CREDENTIALS_FILE", file.Mail.CredentialsFile),
			TokenFile:       getEnv("GMAIL_TOKEN_FILE", file.Mail.TokenFile),
			Sender:          getEnv("MAIL_SENDER", file.Mail.Sender),
		},
	}

	origins := file.CORSAllowOrigins
	if raw, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok && raw != "" {
		origins = splitList(raw)
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg.CORSAllowOrigins = origins

	uploadMax := file.UploadMaxBytes
	if raw := getEnv("UPLOAD_MAX_BYTES", ""); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid UPLOAD_MAX_BYTES value: %q", raw)
		}
		uploadMax = parsed
	}
	if uploadMax <= 0 {
		uploadMax = 5 * 1024 * 1024
	}
	cfg.UploadMaxBytes = uploadMax

	authDefault := "false"
	if file.AuthEnabled != nil && *file.AuthEnabled {
		authDefault = "true"
	}
	authEnabled, err := strconv.ParseBool(getEnv("AUTH_ENABLED", authDefault))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_ENABLED value: %w", err)
	}
	cfg.AuthEnabled = authEnabled

	mxDefault := strconv.FormatBool(file.EmailMXCheck)
	mxCheck, err := strconv.ParseBool(getEnv("EMAIL_MX_CHECK", mxDefault))
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_MX_CHECK value: %w", err)
	}
	cfg.EmailMXCheck = mxCheck

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_AI", orDefault(file.RateLimitAI, "30/min")))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AI value: %w", err)
	}
	cfg.RateLimitAI = rl

	llmCfg, err := loadLLM(file)
	if err != nil {
		return nil, err
	}
	cfg.LLM = llmCfg

	return cfg, nil
}

func loadLLM(file fileConfig) (LLMConfig, error) {
	openAIKey := getEnv("OPENAI_API_KEY", os.Getenv("VITE_OPENAI_API_KEY"))
	groqKey := os.Getenv("GROQ_API_KEY")

	defaultProvider := "none"
	if openAIKey != "" {
		defaultProvider = "openai"
	}
	provider := strings.ToLower(getEnv("LLM_PROVIDER", orDefault(file.LLM.Provider, defaultProvider)))

	cfg := LLMConfig{
		Provider:       provider,
		BaseURL:        getEnv("LLM_BASE_URL", file.LLM.BaseURL),
		Timeout:        parseDurationDefault(getEnv("LLM_TIMEOUT", orDefault(file.LLM.Timeout, "60s")), 60*time.Second),
		VertexProject:  getEnv("GOOGLE_CLOUD_PROJECT", file.LLM.VertexProject),
		VertexLocation: getEnv("GOOGLE_CLOUD_LOCATION", orDefault(file.LLM.VertexLocation, "us-central1")),
	}

	var defaultModel string
	switch provider {
	case "openai":
		cfg.APIKey = openAIKey
		defaultModel = "gpt-4o-mini"
	case "groq":
		cfg.APIKey = groqKey
		defaultModel = "llama-3.1-8b-instant"
	case "vertex":
		if cfg.VertexProject == "" {
			return LLMConfig{}, fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the vertex provider")
		}
		defaultModel = "gemini-1.5-flash"
	case "none":
	default:
		return LLMConfig{}, fmt.Errorf("unsupported LLM_PROVIDER: %s", provider)
	}
	cfg.Model = getEnv("LLM_MODEL", orDefault(file.LLM.Model, defaultModel))

	return cfg, nil
}

func loadFile(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &file, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDuration(input string) time.Duration {
	return parseDurationDefault(input, 24*time.Hour)
}

func parseDurationDefault(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
