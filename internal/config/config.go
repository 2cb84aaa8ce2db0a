package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

const (
	IdentityProviderFirebase = "firebase"
	IdentityProviderCognito  = "cognito"

	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	SummarizerCohere = "cohere"
	SummarizerOpenAI = "openai"
)

type Config struct {
	ServerPort       string   `env:"SERVER_PORT" envDefault:"8080"`
	AppEnv           string   `env:"APP_ENV" envDefault:"local"`
	AuthDevMode      bool     `env:"AUTH_DEV_MODE" envDefault:"false"`
	LogLevel         string   `env:"LOG_LEVEL" envDefault:"info"`
	IdentityProvider string   `env:"IDENTITY_PROVIDER" envDefault:"firebase"`
	StoreDriver      string   `env:"STORE_DRIVER" envDefault:"postgres"`
	CORSOrigins      []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	DB         DBConfig         `envPrefix:"DB_"`
	Firebase   FirebaseConfig   `envPrefix:"FIREBASE_"`
	Cognito    CognitoConfig    `envPrefix:"COGNITO_"`
	Summarizer SummarizerConfig
	Slack      SlackConfig `envPrefix:"SLACK_"`
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if c.AuthDevMode && c.AppEnv != "local" {
		return fmt.Errorf("AUTH_DEV_MODE must not be enabled in %s environment", c.AppEnv)
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
	case StoreDriverMemory:
		if c.AppEnv != "local" {
			return fmt.Errorf("STORE_DRIVER=memory must not be used in %s environment", c.AppEnv)
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: must be one of postgres, memory", c.StoreDriver)
	}

	switch c.IdentityProvider {
	case IdentityProviderFirebase:
		if !c.AuthDevMode {
			projectID, err := c.Firebase.ResolveProjectID()
			if err != nil {
				return err
			}
			if projectID == "" {
				return fmt.Errorf("FIREBASE_PROJECT_ID or FIREBASE_SERVICE_ACCOUNT is required when AUTH_DEV_MODE is disabled")
			}
		}
	case IdentityProviderCognito:
		if !c.AuthDevMode {
			if c.Cognito.UserPoolID == "" {
				return fmt.Errorf("COGNITO_USER_POOL_ID is required when AUTH_DEV_MODE is disabled")
			}
			if c.Cognito.AppClientID == "" {
				return fmt.Errorf("COGNITO_APP_CLIENT_ID is required when AUTH_DEV_MODE is disabled")
			}
		}
	default:
		return fmt.Errorf("invalid IDENTITY_PROVIDER %q: must be one of firebase, cognito", c.IdentityProvider)
	}

	switch c.Summarizer.Provider {
	case SummarizerCohere, SummarizerOpenAI:
	default:
		return fmt.Errorf("invalid SUMMARIZER_PROVIDER %q: must be one of cohere, openai", c.Summarizer.Provider)
	}

	if c.Slack.WebhookURL != "" {
		if u, err := url.Parse(c.Slack.WebhookURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid SLACK_WEBHOOK_URL: must be an absolute URL")
		}
	}
	return nil
}

type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"todo"`
	Password string `env:"PASSWORD" envDefault:"todo"`
	Name     string `env:"NAME" envDefault:"todo"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

type FirebaseConfig struct {
	ProjectID      string `env:"PROJECT_ID"`
	ServiceAccount string `env:"SERVICE_ACCOUNT"`
}

// ResolveProjectID returns FIREBASE_PROJECT_ID, falling back to the
// project_id field of the FIREBASE_SERVICE_ACCOUNT JSON document.
func (f FirebaseConfig) ResolveProjectID() (string, error) {
	if f.ProjectID != "" {
		return f.ProjectID, nil
	}
	if f.ServiceAccount == "" {
		return "", nil
	}

	var sa struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal([]byte(f.ServiceAccount), &sa); err != nil {
		return "", fmt.Errorf("invalid FIREBASE_SERVICE_ACCOUNT: %w", err)
	}
	return sa.ProjectID, nil
}

type CognitoConfig struct {
	Region          string `env:"REGION" envDefault:"ap-northeast-1"`
	UserPoolID      string `env:"USER_POOL_ID"`
	AppClientID     string `env:"APP_CLIENT_ID"`
	AppClientSecret string `env:"APP_CLIENT_SECRET"`
}

type SummarizerConfig struct {
	Provider string `env:"SUMMARIZER_PROVIDER" envDefault:"cohere"`

	CohereAPIKey  string `env:"COHERE_API_KEY"`
	CohereBaseURL string `env:"COHERE_BASE_URL" envDefault:"https://api.cohere.ai"`
	CohereModel   string `env:"COHERE_MODEL" envDefault:"command"`

	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1/"`
	LLMAPIKey  string `env:"LLM_API_KEY"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
}

type SlackConfig struct {
	WebhookURL string `env:"WEBHOOK_URL"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	// PORT is the conventional variable on most PaaS runtimes.
	if os.Getenv("SERVER_PORT") == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.ServerPort = port
		}
	}

	return cfg, nil
}
