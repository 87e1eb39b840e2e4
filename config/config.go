package config

import (
	"fmt"
	"log"

	"sitegen_server/internal/sitegen"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" switches gin to release mode

	// AI Configuration
	OpenAIKey     string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"` // optional, for compatible gateways
	OpenAIModel   string `mapstructure:"OPENAI_MODEL"`

	// Storage
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	// Generation
	PageConcurrency  int    `mapstructure:"PAGE_CONCURRENCY"`
	OrphanPagePolicy string `mapstructure:"ORPHAN_PAGE_POLICY"` // "drop" or "retain"
	MaxUploadImages  int    `mapstructure:"MAX_UPLOAD_IMAGES"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":     ":8080",
	"APP_ENV":            "development",
	"OPENAI_API_KEY":     "",
	"OPENAI_BASE_URL":    "",
	"OPENAI_MODEL":       "gpt-4o",
	"DATABASE_PATH":      "data/sitegen.db",
	"PAGE_CONCURRENCY":   1,
	"ORPHAN_PAGE_POLICY": "drop",
	"MAX_UPLOAD_IMAGES":  3,
}

// LoadConfig reads configuration from config.yaml in path and environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Defaults also register the keys, so AutomaticEnv picks them up on Unmarshal.
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", v.ConfigFileUsed())
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	if config.OpenAIKey == "" {
		log.Println("WARN: OPENAI_API_KEY is not set.")
	}
	return config, nil
}

// Validate rejects values the generation pipeline cannot run with and
// normalises ORPHAN_PAGE_POLICY to its canonical spelling.
func (c *Config) Validate() error {
	policy, err := sitegen.ParseOrphanPolicy(c.OrphanPagePolicy)
	if err != nil {
		return fmt.Errorf("invalid ORPHAN_PAGE_POLICY: %w", err)
	}
	c.OrphanPagePolicy = string(policy)
	if c.PageConcurrency < 1 {
		return fmt.Errorf("invalid PAGE_CONCURRENCY %d: must be at least 1", c.PageConcurrency)
	}
	if c.MaxUploadImages < 0 {
		return fmt.Errorf("invalid MAX_UPLOAD_IMAGES %d", c.MaxUploadImages)
	}
	return nil
}
