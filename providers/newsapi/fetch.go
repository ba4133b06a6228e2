package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"news-pulse/config"
	"news-pulse/models"
)

// Fetcher encapsulates the interaction with NewsAPI.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger

	client *http.Client
}

// NewFetcher creates a new NewsAPI fetcher. The API key is taken from the
// config passed in here, never from ambient process state.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		Config: cfg,
		Logger: logger,
		client: &http.Client{Timeout: time.Duration(cfg.HTTPTimeout) * time.Second},
	}
}

// Name returns the provider name.
func (f *Fetcher) Name() string {
	return "newsapi"
}

// Fetch queries the "everything" endpoint for the configured keywords over
// the lookback window and maps the result into article rows. An empty result
// set is not an error; any network, status, or envelope problem is.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.Article, error) {
	keywords := f.Config.Keywords()
	log := f.Logger.With(
		zap.Strings("keywords", keywords),
		zap.Int("days_back", f.Config.NewsDaysBack),
	)
	log.Info("Fetching financial news")

	searchURL := f.buildEverythingURL(keywords, time.Now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build newsapi request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Error("NewsAPI request failed", zap.Error(err))
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("NewsAPI returned non-200 status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	var envelope EverythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		log.Error("Failed to parse NewsAPI response", zap.Error(err))
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}

	if envelope.Status != "ok" {
		log.Error("NewsAPI reported an error",
			zap.String("code", envelope.Code),
			zap.String("message", envelope.Message))
		return nil, fmt.Errorf("newsapi error %s: %s", envelope.Code, envelope.Message)
	}

	if len(envelope.Articles) == 0 {
		log.Warn("No articles found")
		return nil, nil
	}

	extractedAt := time.Now()
	articles := make([]models.Article, 0, len(envelope.Articles))
	for _, a := range envelope.Articles {
		articles = append(articles, mapArticleToModel(a, extractedAt))
	}

	log.Info("Successfully extracted articles", zap.Int("count", len(articles)))
	return articles, nil
}

// buildEverythingURL builds the query URL for the "everything" endpoint.
func (f *Fetcher) buildEverythingURL(keywords []string, now time.Time) string {
	from := now.AddDate(0, 0, -f.Config.NewsDaysBack)

	params := url.Values{}
	params.Set("q", strings.Join(keywords, " OR "))
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", now.Format("2006-01-02"))
	params.Set("language", f.Config.NewsLanguage)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(f.Config.PageSize()))
	params.Set("apiKey", f.Config.NewsAPIKey)

	return f.Config.NewsAPIBaseURL + "/everything?" + params.Encode()
}

// mapArticleToModel converts an API article object into our article row.
// A missing source name falls back to "Unknown"; an unparseable publish
// timestamp leaves the field at its zero value for the validator to count.
func mapArticleToModel(a APIArticle, extractedAt time.Time) models.Article {
	sourceName := strings.TrimSpace(a.Source.Name)
	if sourceName == "" {
		sourceName = "Unknown"
	}

	var publishedAt time.Time
	if a.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			publishedAt = t
		}
	}

	return models.Article{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		SourceName:  sourceName,
		PublishedAt: publishedAt,
		ExtractedAt: extractedAt,
	}
}
