package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// DevelopmentSecret signs tokens when JWT_SECRET is unset outside production.
// Anyone who knows it can forge sessions.
const DevelopmentSecret = "dev_insecure_secret_change_me"

var ErrMissingCredentialsFile = errors.New("CREDENTIALS_FILE is required in production")

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth  AuthConfig
	Web   WebConfig
	GenAI GenAIConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret              string        `env:"JWT_SECRET"`
	TokenTTL               time.Duration `env:"TOKEN_TTL,                default=8h"`
	CookieName             string        `env:"COOKIE_NAME,              default=auth_token"`
	CredentialsFile        string        `env:"CREDENTIALS_FILE"`
	RoleMatch              string        `env:"ROLE_MATCH,               default=fold"`
	MasterRole             string        `env:"MASTER_ROLE,              default=master"`
	MasterDefaultProcesses []string      `env:"MASTER_DEFAULT_PROCESSES, default=raw,kiln,clinker,cement,dispatch"`
	ApproverRoles          []string      `env:"APPROVER_ROLES,           default=Operations Head,Plant Manager,master"`
}

type WebConfig struct {
	LoginPath         string   `env:"LOGIN_PATH,         default=/login"`
	ProtectedPrefixes []string `env:"PROTECTED_PREFIXES, default=/monitor"`
	Root              string   `env:"WEB_ROOT,           default=web"`
}

type GenAIConfig struct {
	APIKey          string        `env:"GENAI_API_KEY"`
	Endpoint        string        `env:"GENAI_ENDPOINT,     default=https://generativelanguage.googleapis.com/v1beta"`
	Model           string        `env:"GENAI_MODEL,        default=gemini-1.5-flash-latest"`
	Timeout         time.Duration `env:"GENAI_TIMEOUT,      default=20s"`
	Temperature     float64       `env:"GENAI_TEMPERATURE,  default=0.7"`
	MaxOutputTokens int           `env:"GENAI_MAX_TOKENS,   default=400"`
	CacheTTL        time.Duration `env:"ADVISORY_CACHE_TTL, default=10m"`
}

// MongoConfig and RedisConfig are optional. An empty URI or address selects
// the in-process fallback.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=cempulse"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom is Load with an explicit lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// SigningSecret returns the token secret. insecure is true when the
// development fallback is in use.
func (c *Config) SigningSecret() (secret string, insecure bool, err error) {
	if c.Auth.JWTSecret != "" {
		return c.Auth.JWTSecret, false, nil
	}
	if c.IsProduction() {
		return "", false, domain.ErrMissingSecret
	}
	return DevelopmentSecret, true, nil
}

func (c *Config) RoleMatch() domain.RoleMatch {
	return domain.RoleMatch(strings.ToLower(c.Auth.RoleMatch))
}

func (c *Config) Validate() error {
	if _, _, err := c.SigningSecret(); err != nil {
		return err
	}
	if c.IsProduction() && c.Auth.CredentialsFile == "" {
		return ErrMissingCredentialsFile
	}
	switch c.RoleMatch() {
	case domain.RoleMatchFold, domain.RoleMatchExact:
	default:
		return fmt.Errorf("config: ROLE_MATCH must be fold or exact, got %q", c.Auth.RoleMatch)
	}
	if c.Auth.TokenTTL < time.Second {
		return fmt.Errorf("config: TOKEN_TTL must be at least 1s, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.CookieName == "" {
		return errors.New("config: COOKIE_NAME must not be empty")
	}
	return nil
}
