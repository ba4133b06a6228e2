package services

import (
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"news-pulse/models"
)

// Cleaning thresholds for article text fields.
const (
	MinTitleLength       = 10
	MinDescriptionLength = 20
)

// highRemovalThreshold is the removal percentage above which a run is
// flagged WARNING.
const highRemovalThreshold = 50.0

// Validator runs data quality checks and cleaning over raw article tables.
type Validator struct {
	Logger *zap.Logger
}

// NewValidator creates a new validator.
func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{Logger: logger}
}

// Validate runs the four quality checks without mutating the input, then
// applies cleaning and derives the report status. The checks are
// independent of each other; in particular freshness is computed whether or
// not duplicates were found.
func (v *Validator) Validate(articles []models.Article) ([]models.Article, models.QualityReport) {
	v.Logger.Info("Running data quality checks", zap.Int("records", len(articles)))

	report := models.QualityReport{
		Status:    models.ReportPassed,
		Timestamp: time.Now(),
	}

	if len(articles) == 0 {
		v.Logger.Warn("Dataset is empty")
		report.Status = models.ReportFailed
		report.Reason = "Empty dataset"
		return nil, report
	}

	initial := len(articles)
	report.InitialRecords = initial
	report.Checks = models.QualityChecks{
		MissingValues:  v.checkMissingValues(articles),
		Duplicates:     v.checkDuplicates(articles),
		Freshness:      v.checkFreshness(articles),
		ContentQuality: v.checkContentQuality(articles),
	}

	clean := cleanArticles(articles)

	final := len(clean)
	removed := initial - final
	report.FinalRecords = final
	report.RemovedRecords = removed
	report.RemovalPercentage = float64(removed) / float64(initial) * 100

	switch {
	case final == 0:
		report.Status = models.ReportFailed
		report.Reason = "No records after cleaning"
	case report.RemovalPercentage > highRemovalThreshold:
		report.Status = models.ReportWarning
		report.Reason = "High removal rate"
	}

	v.Logger.Info("Cleaning complete",
		zap.Int("initial", initial),
		zap.Int("final", final),
		zap.Int("removed", removed),
		zap.Float64("removal_pct", report.RemovalPercentage),
		zap.String("status", report.Status))

	return clean, report
}

// checkMissingValues counts empty critical fields per field name.
func (v *Validator) checkMissingValues(articles []models.Article) map[string]int {
	missing := map[string]int{
		"title":       0,
		"description": 0,
		"url":         0,
		"publishedAt": 0,
	}
	for _, a := range articles {
		if a.Title == "" {
			missing["title"]++
		}
		if a.Description == "" {
			missing["description"]++
		}
		if a.URL == "" {
			missing["url"]++
		}
		if a.PublishedAt.IsZero() {
			missing["publishedAt"]++
		}
	}
	for field, count := range missing {
		if count > 0 {
			v.Logger.Warn("Missing values in critical field",
				zap.String("field", field), zap.Int("count", count))
		}
	}
	return missing
}

// checkDuplicates counts rows whose (title, publishedAt) pair already
// appeared in an earlier row.
func (v *Validator) checkDuplicates(articles []models.Article) int {
	seen := make(map[string]bool, len(articles))
	duplicates := 0
	for _, a := range articles {
		key := dedupKey(a)
		if seen[key] {
			duplicates++
		}
		seen[key] = true
	}
	if duplicates > 0 {
		v.Logger.Warn("Found duplicate articles", zap.Int("count", duplicates))
	}
	return duplicates
}

// checkFreshness computes the publish-time span over rows carrying a real
// timestamp. Returns nil when no row does.
func (v *Validator) checkFreshness(articles []models.Article) *models.FreshnessReport {
	var oldest, newest time.Time
	for _, a := range articles {
		if a.PublishedAt.IsZero() {
			continue
		}
		t := a.PublishedAt.UTC()
		if oldest.IsZero() || t.Before(oldest) {
			oldest = t
		}
		if newest.IsZero() || t.After(newest) {
			newest = t
		}
	}
	if oldest.IsZero() {
		return nil
	}

	spanDays := int(time.Since(oldest).Hours() / 24)
	v.Logger.Info("Data freshness",
		zap.Time("oldest", oldest),
		zap.Time("newest", newest),
		zap.Int("span_days", spanDays))

	return &models.FreshnessReport{Oldest: oldest, Newest: newest, SpanDays: spanDays}
}

// checkContentQuality counts articles with too-short titles or descriptions.
func (v *Validator) checkContentQuality(articles []models.Article) models.ContentQualityReport {
	var cq models.ContentQualityReport
	for _, a := range articles {
		if a.Title != "" && utf8.RuneCountInString(a.Title) < MinTitleLength {
			cq.ShortTitles++
		}
		if a.Description != "" && utf8.RuneCountInString(a.Description) < MinDescriptionLength {
			cq.ShortDescriptions++
		}
	}
	if cq.ShortTitles > 0 {
		v.Logger.Warn("Articles with very short titles", zap.Int("count", cq.ShortTitles))
	}
	if cq.ShortDescriptions > 0 {
		v.Logger.Warn("Articles with very short descriptions", zap.Int("count", cq.ShortDescriptions))
	}
	return cq
}

// cleanArticles drops rows with empty title/description, duplicate
// (title, publishedAt) pairs keeping the first occurrence, and too-short
// content.
func cleanArticles(articles []models.Article) []models.Article {
	seen := make(map[string]bool, len(articles))
	clean := make([]models.Article, 0, len(articles))

	for _, a := range articles {
		if a.Title == "" || a.Description == "" {
			continue
		}
		key := dedupKey(a)
		if seen[key] {
			continue
		}
		seen[key] = true
		if utf8.RuneCountInString(a.Title) < MinTitleLength {
			continue
		}
		if utf8.RuneCountInString(a.Description) < MinDescriptionLength {
			continue
		}
		clean = append(clean, a)
	}

	if len(clean) == 0 {
		return nil
	}
	return clean
}

func dedupKey(a models.Article) string {
	return a.Title + "|" + a.PublishedAt.UTC().Format(time.RFC3339Nano)
}
