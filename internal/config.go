package internal

import (
	"fmt"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Mongo MongoConfig       `yaml:"mongo"`
	Auth  AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Mongo.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// MongoConfig holds the document-store connection settings. URL and Database
// are read once at process start; MONGO_URL and DB_NAME environment variables
// override the file values.
type MongoConfig struct {
	URL        string `yaml:"url"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// Validate validates the Mongo configuration.
func (c *MongoConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Collection, validation.Required),
	)
}

// ApplyEnv overrides connection settings from the environment.
func (c *MongoConfig) ApplyEnv() {
	if v := os.Getenv("MONGO_URL"); v != "" {
		c.URL = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database = v
	}
}

// AccountConfig holds one fixed plaintext login. Hashing is deliberately out
// of scope: the account set is two users known at process start.
type AccountConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Validate validates the account configuration.
func (c *AccountConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// AuthConfig holds the two statically configured accounts.
type AuthConfig struct {
	Admin AccountConfig `yaml:"admin"`
	Guest AccountConfig `yaml:"guest"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return fmt.Errorf("auth admin: %w", err)
	}
	if err := c.Guest.Validate(); err != nil {
		return fmt.Errorf("auth guest: %w", err)
	}
	if c.Admin.Username == c.Guest.Username {
		return fmt.Errorf("auth: admin and guest share username %q", c.Admin.Username)
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Mongo: MongoConfig{
			URL:        "mongodb://localhost:27017",
			Database:   "autolearn",
			Collection: "words",
		},
		Auth: AuthConfig{
			Admin: AccountConfig{Username: "admin", Password: "autolearn2024"},
			Guest: AccountConfig{Username: "guest", Password: "guest"},
		},
	}
}
