package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	SeedURLs      string `mapstructure:"SEED_URLS"`
	MaxDepth      int    `mapstructure:"MAX_DEPTH"`
	CrawlWorkers  int    `mapstructure:"CRAWL_WORKERS"`
	OutputDir     string `mapstructure:"OUTPUT_DIR"`
	FetchTimeout  int    `mapstructure:"FETCH_TIMEOUT"`  // seconds
	LevelPause    int    `mapstructure:"LEVEL_PAUSE"`    // seconds
	CrawlInterval int    `mapstructure:"CRAWL_INTERVAL"` // minutes, recurring mode
	RetryDelay    int    `mapstructure:"RETRY_DELAY"`    // minutes, after a failed run
	ServerPort    string `mapstructure:"SERVER_PORT"`
	LogFile       string `mapstructure:"LOG_FILE"`
}

// DefaultSeeds are the CTI sources crawled when no seed URLs are supplied.
var DefaultSeeds = []string{
	"https://www.mandiant.com/resources/blog",
	"https://unit42.paloaltonetworks.com/",
	"https://www.securelist.com/",
	"https://www.crowdstrike.com/blog/",
	"https://www.microsoft.com/security/blog/",
	"https://www.proofpoint.com/us/threat-insight",
	"https://blog.talosintelligence.com/",
	"https://www.ibm.com/security/security-intelligence",
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	// This allows configuration purely through environment variables in production
	_ = viper.ReadInConfig()

	// Set default values
	viper.SetDefault("SEED_URLS", "")
	viper.SetDefault("MAX_DEPTH", 3)
	viper.SetDefault("CRAWL_WORKERS", 5)
	viper.SetDefault("OUTPUT_DIR", "./data")
	viper.SetDefault("FETCH_TIMEOUT", 10)
	viper.SetDefault("LEVEL_PAUSE", 1)
	viper.SetDefault("CRAWL_INTERVAL", 60)
	viper.SetDefault("RETRY_DELAY", 5)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_FILE", "cticrawl.log")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Seeds returns the configured seed URLs, falling back to DefaultSeeds.
func (c *Config) Seeds() []string {
	if strings.TrimSpace(c.SeedURLs) == "" {
		return DefaultSeeds
	}
	var seeds []string
	for _, s := range strings.Split(c.SeedURLs, ",") {
		if s = strings.TrimSpace(s); s != "" {
			seeds = append(seeds, s)
		}
	}
	return seeds
}
