package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Google   ProviderConfig `mapstructure:"google"`
	Facebook ProviderConfig `mapstructure:"facebook"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

// OAuthConfig holds settings shared by all OAuth providers.
type OAuthConfig struct {
	RedirectURI string        `mapstructure:"redirect_uri"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

type ProviderConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// Load reads the optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load() (*Config, error) {
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "debug")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("database.url", "postgresql://postgres@localhost:5432/roster")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_ttl", 5*time.Minute)
	v.SetDefault("jwt.refresh_ttl", 24*time.Hour)

	v.SetDefault("oauth.redirect_uri", "")
	v.SetDefault("oauth.http_timeout", 10*time.Second)

	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("facebook.client_id", "")
	v.SetDefault("facebook.client_secret", "")
}

func bindEnvs(v *viper.Viper) error {
	// Keys whose variable name does not follow the dotted key.
	explicit := map[string]string{
		"oauth.redirect_uri": "REDIRECT_URI",
		"database.url":       "DATABASE_URL",
	}
	for key, env := range explicit {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	keys := []string{
		"logging.level",
		"server.host",
		"server.port",
		"server.shutdown_timeout",
		"jwt.secret",
		"jwt.access_ttl",
		"jwt.refresh_ttl",
		"oauth.http_timeout",
		"google.client_id",
		"google.client_secret",
		"facebook.client_id",
		"facebook.client_secret",
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return fmt.Errorf("bind %s: %w", k, err)
		}
	}
	return nil
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive"))
	}
	if c.OAuth.RedirectURI == "" {
		errs = append(errs, errors.New("REDIRECT_URI is required"))
	}
	if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
		errs = append(errs, errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required"))
	}
	if c.Facebook.ClientID == "" || c.Facebook.ClientSecret == "" {
		errs = append(errs, errors.New("FACEBOOK_CLIENT_ID and FACEBOOK_CLIENT_SECRET are required"))
	}
	return errors.Join(errs...)
}

// ServerAddr returns host:port for the HTTP listener.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
