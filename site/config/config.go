/* config.go
 * Contains the site configuration loaded from config.yaml with sensitive values
 * overridden from the environment (.env is loaded first when present, and is not
 * committed). Every field has a working default so the generator runs with no
 * config file at all
 */

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full site configuration
type Config struct {
	Site    SiteConfig    `mapstructure:"site"`
	News    NewsConfig    `mapstructure:"news"`
	Blogger BloggerConfig `mapstructure:"blogger"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

// SiteConfig drives the static site generator
type SiteConfig struct {
	Domain        string   `mapstructure:"domain"`         // canonical base URL, no trailing slash
	FeedURL       string   `mapstructure:"feed_url"`       // events.json location
	OutputDir     string   `mapstructure:"output_dir"`     // dist directory
	Timezone      string   `mapstructure:"timezone"`       // reference timezone for calendar days
	Brands        []string `mapstructure:"brands"`         // brand page slugs
	HomepageLimit int      `mapstructure:"homepage_limit"` // events embedded on the homepage
}

// NewsConfig drives the team news enrichment
type NewsConfig struct {
	APIKey     string `mapstructure:"api_key"`
	CallBudget int    `mapstructure:"call_budget"`
}

// BloggerConfig drives the Blogger sync tool. The OAuth values always come from
// the environment
type BloggerConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
	BlogID       string `mapstructure:"blog_id"`
	MongoURI     string `mapstructure:"mongo_uri"` // optional post registry
	Database     string `mapstructure:"database"`
}

// ServeConfig drives the preview server
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads config.yaml (from ./ or ./config) and applies environment
// overrides. A missing config file is fine, missing required values are not
// checked here: each task validates what it needs
func Load() (*Config, error) {
	// .env may not exist, that's fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("site.domain", "https://footybite.online")
	v.SetDefault("site.feed_url", "https://raw.githubusercontent.com/albinchristo04/ptv/refs/heads/main/events.json")
	v.SetDefault("site.output_dir", "dist")
	v.SetDefault("site.timezone", "UTC")
	v.SetDefault("site.brands", []string{"footybite", "footybyte", "fotybyte"})
	v.SetDefault("site.homepage_limit", 50)
	v.SetDefault("news.call_budget", 20)
	v.SetDefault("blogger.database", "footybite")
	v.SetDefault("serve.addr", ":8080")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// applyEnvOverrides copies secrets and deployment specific values from the
// environment over whatever the yaml had
func applyEnvOverrides(cfg *Config) {
	overrides := map[string]*string{
		"SITE_DOMAIN":           &cfg.Site.Domain,
		"FEED_URL":              &cfg.Site.FeedURL,
		"GNEWS_API_KEY":         &cfg.News.APIKey,
		"BLOGGER_CLIENT_ID":     &cfg.Blogger.ClientID,
		"BLOGGER_CLIENT_SECRET": &cfg.Blogger.ClientSecret,
		"BLOGGER_REFRESH_TOKEN": &cfg.Blogger.RefreshToken,
		"BLOGGER_BLOG_ID":       &cfg.Blogger.BlogID,
		"MONGO_URI":             &cfg.Blogger.MongoURI,
	}
	for key, target := range overrides {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}
}

// Location resolves the configured reference timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Site.Timezone, err)
	}
	return loc, nil
}
