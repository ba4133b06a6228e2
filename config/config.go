package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// maxPageSize is the largest page NewsAPI serves on the free tier.
const maxPageSize = 100

// Config holds all configuration parameters read from environment variables.
type Config struct {
	NewsAPIKey     string `envconfig:"NEWS_API_KEY" required:"true"`
	NewsAPIBaseURL string `envconfig:"NEWS_API_BASE_URL" default:"https://newsapi.org/v2"`
	NewsKeywords   string `envconfig:"NEWS_KEYWORDS" default:"stocks,market,finance,economy"`
	NewsDaysBack   int    `envconfig:"NEWS_DAYS_BACK" default:"7"`
	NewsPageSize   int    `envconfig:"NEWS_PAGE_SIZE" default:"50"`
	NewsLanguage   string `envconfig:"NEWS_LANGUAGE" default:"en"`
	HTTPTimeout    int    `envconfig:"HTTP_TIMEOUT_SECONDS" default:"10"`

	DBPath  string `envconfig:"DB_PATH" default:"data/financial_news.db"`
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`
	Serve    bool   `envconfig:"SERVE" default:"false"`

	// Optional artifact archival to an S3-compatible store.
	S3Key    string `envconfig:"S3_KEY"`
	S3Secret string `envconfig:"S3_SECRET"`
	S3URL    string `envconfig:"S3_URL"`
	S3Region string `envconfig:"S3_REGION"`
	S3Bucket string `envconfig:"S3_BUCKET"`
}

// Keywords returns the configured search keywords as a list.
func (c *Config) Keywords() []string {
	parts := strings.Split(c.NewsKeywords, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

// PageSize returns the configured page size clamped to the API maximum.
func (c *Config) PageSize() int {
	if c.NewsPageSize <= 0 || c.NewsPageSize > maxPageSize {
		return maxPageSize
	}
	return c.NewsPageSize
}

// S3Enabled reports whether artifact archival is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
