package providers

import (
	"context"

	"news-pulse/models"
)

// Provider is the interface a news source must implement.
type Provider interface {
	// Fetch pulls articles for the configured keyword window. A failed or
	// malformed upstream call returns an error; a legitimately empty result
	// set returns (nil, nil).
	Fetch(ctx context.Context) ([]models.Article, error)

	// Name returns the unique name of the provider (e.g. "newsapi").
	Name() string
}
