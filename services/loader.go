package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"news-pulse/models"
)

const insertBatchSize = 100

// DBLoader persists enriched articles into the news_sentiment table with
// full-refresh semantics: the table is dropped and recreated on every run.
type DBLoader struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewDBLoader creates a loader bound to an open database handle.
func NewDBLoader(db *gorm.DB, logger *zap.Logger) *DBLoader {
	return &DBLoader{DB: db, Logger: logger}
}

// Load writes all rows into news_sentiment, replacing prior contents. Any
// migration or insert error is caught here, logged with the schema column
// list for diagnosis, and returned as the failure signal; it never
// propagates as a panic.
func (l *DBLoader) Load(ctx context.Context, enriched []models.EnrichedArticle) error {
	if len(enriched) == 0 {
		l.Logger.Warn("Nothing to load, dataset is empty")
		return fmt.Errorf("load: empty dataset")
	}

	l.Logger.Info("Loading to database", zap.Int("records", len(enriched)))

	db := l.DB.WithContext(ctx)

	// Drop and recreate to avoid schema conflicts between runs.
	if err := db.Migrator().DropTable(&models.NewsSentiment{}); err != nil {
		return l.fail("drop table", err)
	}
	if err := db.AutoMigrate(&models.NewsSentiment{}); err != nil {
		return l.fail("create table", err)
	}

	rows := make([]models.NewsSentiment, 0, len(enriched))
	for _, e := range enriched {
		rows = append(rows, toRow(e))
	}

	if err := db.CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return l.fail("insert", err)
	}

	var total int64
	if err := db.Model(&models.NewsSentiment{}).Count(&total).Error; err != nil {
		return l.fail("count", err)
	}
	l.Logger.Info("Load complete",
		zap.Int("loaded", len(rows)),
		zap.Int64("total_records", total))

	l.logLatest(db)
	return nil
}

// fail logs a load error together with the schema columns and wraps it.
func (l *DBLoader) fail(op string, err error) error {
	l.Logger.Error("Database load failed",
		zap.String("operation", op),
		zap.Strings("schema_columns", models.SchemaColumns()),
		zap.Error(err))
	return fmt.Errorf("load: %s: %w", op, err)
}

// logLatest reports the most recently published rows for operator visibility.
// Failures here are informational only.
func (l *DBLoader) logLatest(db *gorm.DB) {
	var latest []models.NewsSentiment
	err := db.Model(&models.NewsSentiment{}).
		Order("publishedAt DESC").
		Limit(5).
		Find(&latest).Error
	if err != nil {
		l.Logger.Warn("Could not query latest articles", zap.Error(err))
		return
	}
	for _, row := range latest {
		l.Logger.Info("Latest article in database",
			zap.String("title", truncateTitle(row.Title, 50)),
			zap.String("sentiment_label", row.SentimentLabel),
			zap.Float64("sentiment_compound", row.SentimentCompound),
			zap.Time("date", row.Date))
	}
}

// truncateTitle shortens a title to at most n runes for log output,
// never splitting a multi-byte character.
func truncateTitle(title string, n int) string {
	runes := []rune(title)
	if len(runes) <= n {
		return title
	}
	return string(runes[:n])
}

// toRow maps an enriched article onto the persisted schema. The date column
// is coerced to a pure date; day_of_week stays in the file artifacts only.
func toRow(e models.EnrichedArticle) models.NewsSentiment {
	date := e.Date
	if !date.IsZero() {
		year, month, day := date.UTC().Date()
		date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	return models.NewsSentiment{
		Title:             e.Title,
		Description:       e.Description,
		URL:               e.URL,
		SourceName:        e.SourceName,
		PublishedAt:       e.PublishedAt,
		Date:              date,
		Hour:              e.Hour,
		SentimentCompound: e.SentimentCompound,
		SentimentPositive: e.SentimentPositive,
		SentimentNegative: e.SentimentNegative,
		SentimentNeutral:  e.SentimentNeutral,
		SentimentLabel:    e.SentimentLabel,
		ExtractedAt:       e.ExtractedAt,
	}
}
