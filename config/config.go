package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type DatabaseType string

const (
	DatabaseTypeMongo  DatabaseType = "mongo"
	DatabaseTypeMemory DatabaseType = "memory"
)

// Config holds the configuration for the bistro server and its dependencies.
type Config struct {
	// Listen is the address the bistro server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel controls the log verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the document store configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Auth holds the authentication configuration.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// CORS holds the CORS configuration for browser clients.
	CORS *CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// DatabaseConfig holds the document store configuration.
type DatabaseConfig struct {
	// Type selects the store backend. Options: "mongo", "memory".
	Type DatabaseType `yaml:"type" mapstructure:"type"`
	// URI is the MongoDB connection string. Required when type is "mongo".
	URI string `yaml:"uri" mapstructure:"uri"`
	// Name is the database name.
	Name string `yaml:"name" mapstructure:"name"`
}

// AuthConfig holds the authentication configuration.
type AuthConfig struct {
	// JWT holds the token signing configuration.
	JWT *JWTConfig `yaml:"jwt" mapstructure:"jwt"`
}

// JWTConfig holds the token signing configuration.
type JWTConfig struct {
	// Secret is the HS256 signing key. Required, keep confidential.
	Secret string `yaml:"secret" mapstructure:"secret"`
	// TTL is the token validity window.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// CORSConfig holds the CORS configuration.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to call the API. "*" allows all.
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// If no config file is found, defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("BISTRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bistro")
		v.AddConfigPath("/etc/bistro")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:5000")
	v.SetDefault("log_level", "info")

	// Database defaults
	v.SetDefault("database.type", DatabaseTypeMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "bistro")

	// Auth defaults
	v.SetDefault("auth.jwt.secret", "")
	v.SetDefault("auth.jwt.ttl", "1h")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func sanitizeConfig(c *Config) {
	c.Listen = strings.TrimSpace(c.Listen)
	if c.Database != nil {
		c.Database.URI = strings.TrimSpace(c.Database.URI)
		c.Database.Name = strings.TrimSpace(c.Database.Name)
	}
	if c.Auth != nil && c.Auth.JWT != nil {
		c.Auth.JWT.Secret = strings.TrimSpace(c.Auth.JWT.Secret)
	}
}

func validateConfig(c *Config) error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Database == nil {
		return fmt.Errorf("database configuration is required")
	}
	switch c.Database.Type {
	case DatabaseTypeMongo:
		if c.Database.URI == "" {
			return fmt.Errorf("database.uri is required for the mongo store")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required for the mongo store")
		}
	case DatabaseTypeMemory:
	default:
		return fmt.Errorf("unknown database type: %s", c.Database.Type)
	}
	if c.Auth == nil || c.Auth.JWT == nil || c.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret is required")
	}
	return nil
}
