package config

import (
	"time"

	"sttock-tracker/pkg/config"
)

// StaticUser is one entry of the in-memory mock credential database.
type StaticUser struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Auth holds credential-store configuration.
type Auth struct {
	// Driver selects the credential store backend: "postgres" or "static".
	Driver                   string        `mapstructure:"driver"`
	JWTSecret                string        `mapstructure:"jwt_secret"`
	AccessTokenExpiry        time.Duration `mapstructure:"access_token_expiry"`
	RequireEmailVerification bool          `mapstructure:"require_email_verification"`
	EmailDomain              string        `mapstructure:"email_domain"`
	StaticUsers              []StaticUser  `mapstructure:"static_users"`
}

// Storage holds collection-store configuration.
type Storage struct {
	// Driver selects the collection store backend: "postgres" (rows scoped
	// per user) or "file" (single-tenant JSON array, demo mode).
	Driver  string `mapstructure:"driver"`
	DataDir string `mapstructure:"data_dir"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Email holds configuration for the verification email sender.
type Email struct {
	Provider            string `mapstructure:"provider"`
	MailgunDomain       string `mapstructure:"mailgun_domain"`
	MailgunAPIKey       string `mapstructure:"mailgun_api_key"`
	SenderEmail         string `mapstructure:"sender_email"`
	SenderName          string `mapstructure:"sender_name"`
	VerificationBaseURL string `mapstructure:"verification_base_url"`
}

// Cleanup holds the expired-session sweep configuration.
type Cleanup struct {
	SessionSweepSchedule string `mapstructure:"session_sweep_schedule"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Auth     Auth            `mapstructure:"auth"`
	Storage  Storage         `mapstructure:"storage"`
	Gemini   Gemini          `mapstructure:"gemini"`
	Email    Email           `mapstructure:"email"`
	Cleanup  Cleanup         `mapstructure:"cleanup"`
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
