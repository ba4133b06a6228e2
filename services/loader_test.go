package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"news-pulse/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db
}

func sampleEnriched(n int) []models.EnrichedArticle {
	rows := make([]models.EnrichedArticle, 0, n)
	for i := 0; i < n; i++ {
		a := goodArticle(i)
		rows = append(rows, models.EnrichedArticle{
			Article:           a,
			SentimentCompound: 0.4,
			SentimentPositive: 0.5,
			SentimentNegative: 0.1,
			SentimentNeutral:  0.4,
			SentimentLabel:    "positive",
			Date:              time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			Hour:              10,
			DayOfWeek:         "Thursday",
		})
	}
	return rows
}

func TestLoad_PersistsAllRows(t *testing.T) {
	db := openTestDB(t)
	loader := NewDBLoader(db, zap.NewNop())

	if err := loader.Load(context.Background(), sampleEnriched(8)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.NewsSentiment{}).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 8 {
		t.Errorf("Expected 8 rows, got %d", count)
	}

	var row models.NewsSentiment
	if err := db.Where("sentiment_label = ?", "positive").Take(&row).Error; err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if row.SourceName != "Example News" {
		t.Errorf("Unexpected source name: %q", row.SourceName)
	}
	if row.SentimentCompound != 0.4 {
		t.Errorf("Unexpected compound score: %f", row.SentimentCompound)
	}
}

func TestLoad_IsIdempotentPerRun(t *testing.T) {
	db := openTestDB(t)
	loader := NewDBLoader(db, zap.NewNop())
	rows := sampleEnriched(5)

	if err := loader.Load(context.Background(), rows); err != nil {
		t.Fatalf("First load failed: %v", err)
	}
	if err := loader.Load(context.Background(), rows); err != nil {
		t.Fatalf("Second load failed: %v", err)
	}

	// Drop-then-recreate semantics: loading twice must not double the count.
	var count int64
	if err := db.Model(&models.NewsSentiment{}).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected 5 rows after double load, got %d", count)
	}
}

func TestLoad_ReplacesPriorContents(t *testing.T) {
	db := openTestDB(t)
	loader := NewDBLoader(db, zap.NewNop())

	if err := loader.Load(context.Background(), sampleEnriched(10)); err != nil {
		t.Fatalf("First load failed: %v", err)
	}
	if err := loader.Load(context.Background(), sampleEnriched(3)); err != nil {
		t.Fatalf("Second load failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.NewsSentiment{}).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected the smaller second load to replace the first, got %d rows", count)
	}
}

func TestLoad_EmptyDatasetFails(t *testing.T) {
	db := openTestDB(t)
	loader := NewDBLoader(db, zap.NewNop())

	if err := loader.Load(context.Background(), nil); err == nil {
		t.Error("Expected an error for an empty dataset")
	}
}

func TestTruncateTitle_RuneSafe(t *testing.T) {
	long := strings.Repeat("é", 60)

	got := truncateTitle(long, 50)
	if !utf8.ValidString(got) {
		t.Errorf("Truncated title is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 50 {
		t.Errorf("Expected 50 runes, got %d", n)
	}

	short := "A short headline"
	if got := truncateTitle(short, 50); got != short {
		t.Errorf("Short title must pass through unchanged, got %q", got)
	}
}

func TestLoad_DateIsCoercedToPureDate(t *testing.T) {
	db := openTestDB(t)
	loader := NewDBLoader(db, zap.NewNop())

	rows := sampleEnriched(1)
	rows[0].Date = time.Date(2026, 8, 20, 13, 45, 12, 0, time.UTC)

	if err := loader.Load(context.Background(), rows); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var row models.NewsSentiment
	if err := db.Take(&row).Error; err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	want := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if !row.Date.UTC().Equal(want) {
		t.Errorf("Expected date %v, got %v", want, row.Date)
	}
}
