package services

import (
	"context"

	"gorm.io/gorm"
)

// StatsTotals summarizes the whole news_sentiment table.
type StatsTotals struct {
	TotalArticles int64  `json:"total_articles"`
	DaysCovered   int64  `json:"days_covered"`
	OldestArticle string `json:"oldest_article"`
	NewestArticle string `json:"newest_article"`
}

// LabelStat is the per-label breakdown with its average compound score.
type LabelStat struct {
	SentimentLabel string  `json:"sentiment_label"`
	Count          int64   `json:"count"`
	AvgScore       float64 `json:"avg_score"`
}

// StatsReport is the aggregate view served to operators.
type StatsReport struct {
	Totals       StatsTotals `json:"totals"`
	Distribution []LabelStat `json:"sentiment_distribution"`
}

// StatsService computes read-only aggregates over the news_sentiment table.
type StatsService struct {
	DB *gorm.DB
}

// NewStatsService creates a stats service bound to an open database handle.
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// Query aggregates totals and the per-label distribution. It fails when the
// news_sentiment table does not exist yet, i.e. before the first successful
// load.
func (s *StatsService) Query(ctx context.Context) (*StatsReport, error) {
	db := s.DB.WithContext(ctx)

	var report StatsReport
	err := db.Raw(`
		SELECT
			COUNT(*) AS total_articles,
			COUNT(DISTINCT date) AS days_covered,
			COALESCE(MIN(publishedAt), '') AS oldest_article,
			COALESCE(MAX(publishedAt), '') AS newest_article
		FROM news_sentiment
	`).Scan(&report.Totals).Error
	if err != nil {
		return nil, err
	}

	err = db.Raw(`
		SELECT
			sentiment_label,
			COUNT(*) AS count,
			ROUND(AVG(sentiment_compound), 3) AS avg_score
		FROM news_sentiment
		GROUP BY sentiment_label
		ORDER BY count DESC
	`).Scan(&report.Distribution).Error
	if err != nil {
		return nil, err
	}

	return &report, nil
}
