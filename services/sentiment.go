package services

import (
	"time"

	"github.com/jonreiter/govader"
	"go.uber.org/zap"

	"news-pulse/models"
)

// Compound-score thresholds for the categorical label.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Mean-compound thresholds for the market verdict.
const (
	marketPositiveThreshold = 0.25
	marketNegativeThreshold = -0.25
)

// SentimentSummary holds the aggregate statistics of one transform run.
// It is informational only and never persisted as table columns.
type SentimentSummary struct {
	Counts        map[string]int     `json:"counts"`
	Percentages   map[string]float64 `json:"percentages"`
	MeanCompound  float64            `json:"mean_compound"`
	MarketVerdict string             `json:"market_verdict"`
}

// SentimentService scores articles with the VADER lexicon and derives the
// categorical label plus calendar features.
type SentimentService struct {
	Logger   *zap.Logger
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewSentimentService creates a sentiment transformer with a fresh analyzer.
func NewSentimentService(logger *zap.Logger) *SentimentService {
	return &SentimentService{
		Logger:   logger,
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Transform scores every article on title+description and attaches the four
// sentiment scores, the label, and calendar features. An empty input passes
// through unchanged.
func (s *SentimentService) Transform(articles []models.Article) ([]models.EnrichedArticle, SentimentSummary) {
	if len(articles) == 0 {
		s.Logger.Warn("Nothing to analyze, dataset is empty")
		return nil, SentimentSummary{}
	}

	s.Logger.Info("Analyzing article sentiment", zap.Int("count", len(articles)))

	enriched := make([]models.EnrichedArticle, 0, len(articles))
	for _, a := range articles {
		scores := s.analyzer.PolarityScores(a.Title + " " + a.Description)

		row := models.EnrichedArticle{
			Article:           a,
			SentimentCompound: scores.Compound,
			SentimentPositive: scores.Positive,
			SentimentNegative: scores.Negative,
			SentimentNeutral:  scores.Neutral,
			SentimentLabel:    CategorizeSentiment(scores.Compound),
		}

		if !a.PublishedAt.IsZero() {
			published := a.PublishedAt.UTC()
			year, month, day := published.Date()
			row.Date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			row.Hour = published.Hour()
			row.DayOfWeek = published.Weekday().String()
		}

		enriched = append(enriched, row)
	}

	summary := summarize(enriched)
	s.Logger.Info("Sentiment analysis complete",
		zap.Int("positive", summary.Counts["positive"]),
		zap.Int("negative", summary.Counts["negative"]),
		zap.Int("neutral", summary.Counts["neutral"]),
		zap.Float64("mean_compound", summary.MeanCompound),
		zap.String("market_verdict", summary.MarketVerdict))

	return enriched, summary
}

// CategorizeSentiment maps a compound score to its categorical label.
func CategorizeSentiment(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return "positive"
	case compound <= negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// summarize computes the per-label distribution, mean compound score, and
// the coarse market verdict.
func summarize(enriched []models.EnrichedArticle) SentimentSummary {
	summary := SentimentSummary{
		Counts:      map[string]int{},
		Percentages: map[string]float64{},
	}

	var total float64
	for _, row := range enriched {
		summary.Counts[row.SentimentLabel]++
		total += row.SentimentCompound
	}
	for label, count := range summary.Counts {
		summary.Percentages[label] = float64(count) / float64(len(enriched)) * 100
	}
	summary.MeanCompound = total / float64(len(enriched))

	switch {
	case summary.MeanCompound >= marketPositiveThreshold:
		summary.MarketVerdict = "POSITIVE"
	case summary.MeanCompound <= marketNegativeThreshold:
		summary.MarketVerdict = "NEGATIVE"
	default:
		summary.MarketVerdict = "NEUTRAL"
	}

	return summary
}
