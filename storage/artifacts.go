package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"news-pulse/models"
)

// Artifact file names under the data directory.
const (
	RawFile           = "raw_news.csv"
	CleanFile         = "clean_news.csv"
	EnrichedFile      = "news_with_sentiment.csv"
	QualityReportFile = "quality_report.txt"
)

// ArtifactStore writes the per-stage file artifacts and optionally archives
// them to an S3-compatible store.
type ArtifactStore struct {
	Dir    string
	Logger *zap.Logger

	// S3Client and Bucket are optional; archival is skipped when unset.
	S3Client *s3.Client
	Bucket   string
}

// NewArtifactStore creates a store rooted at dir.
func NewArtifactStore(dir string, logger *zap.Logger) *ArtifactStore {
	return &ArtifactStore{Dir: dir, Logger: logger}
}

// SaveRaw writes the raw extraction table as a delimited file.
func (s *ArtifactStore) SaveRaw(articles []models.Article) (string, error) {
	return s.writeArticleCSV(RawFile, articles)
}

// SaveClean writes the cleaned table as a delimited file.
func (s *ArtifactStore) SaveClean(articles []models.Article) (string, error) {
	return s.writeArticleCSV(CleanFile, articles)
}

// SaveEnriched writes the sentiment-enriched table, including the
// artifact-only day_of_week column.
func (s *ArtifactStore) SaveEnriched(enriched []models.EnrichedArticle) (string, error) {
	header := []string{
		"title", "description", "url", "source_name", "publishedAt",
		"date", "hour", "day_of_week",
		"sentiment_compound", "sentiment_positive", "sentiment_negative",
		"sentiment_neutral", "sentiment_label", "extracted_at",
	}
	records := make([][]string, 0, len(enriched))
	for _, e := range enriched {
		records = append(records, []string{
			e.Title, e.Description, e.URL, e.SourceName,
			formatTime(e.PublishedAt),
			formatDate(e.Date),
			strconv.Itoa(e.Hour),
			e.DayOfWeek,
			formatFloat(e.SentimentCompound),
			formatFloat(e.SentimentPositive),
			formatFloat(e.SentimentNegative),
			formatFloat(e.SentimentNeutral),
			e.SentimentLabel,
			formatTime(e.ExtractedAt),
		})
	}
	return s.writeCSV(EnrichedFile, header, records)
}

// SaveQualityReport renders the report into its fixed text layout.
func (s *ArtifactStore) SaveQualityReport(report models.QualityReport) (string, error) {
	var b strings.Builder
	divider := strings.Repeat("=", 60)

	b.WriteString("DATA QUALITY REPORT\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", report.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Status: %s\n", report.Status)
	if report.Reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", report.Reason)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Initial Records: %d\n", report.InitialRecords)
	fmt.Fprintf(&b, "Final Records: %d\n", report.FinalRecords)
	fmt.Fprintf(&b, "Removed: %d (%.1f%%)\n\n", report.RemovedRecords, report.RemovalPercentage)

	b.WriteString("CHECKS:\n")

	b.WriteString("\nmissing_values:\n")
	fields := make([]string, 0, len(report.Checks.MissingValues))
	for field := range report.Checks.MissingValues {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(&b, "  %s: %d\n", field, report.Checks.MissingValues[field])
	}

	b.WriteString("\nduplicates:\n")
	fmt.Fprintf(&b, "  %d\n", report.Checks.Duplicates)

	if report.Checks.Freshness != nil {
		b.WriteString("\nfreshness:\n")
		fmt.Fprintf(&b, "  oldest: %s\n", report.Checks.Freshness.Oldest.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "  newest: %s\n", report.Checks.Freshness.Newest.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "  span_days: %d\n", report.Checks.Freshness.SpanDays)
	}

	b.WriteString("\ncontent_quality:\n")
	fmt.Fprintf(&b, "  short_titles: %d\n", report.Checks.ContentQuality.ShortTitles)
	fmt.Fprintf(&b, "  short_descriptions: %d\n", report.Checks.ContentQuality.ShortDescriptions)

	path := filepath.Join(s.Dir, QualityReportFile)
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write quality report: %w", err)
	}
	return path, nil
}

// Archive uploads the run's artifacts to the configured bucket. A nil S3
// client makes this a no-op.
func (s *ArtifactStore) Archive(ctx context.Context) error {
	if s.S3Client == nil || s.Bucket == "" {
		return nil
	}

	prefix := time.Now().Format("2006-01-02")
	for _, name := range []string{RawFile, CleanFile, EnrichedFile, QualityReportFile} {
		path := filepath.Join(s.Dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read artifact %s: %w", name, err)
		}
		key := prefix + "/" + name
		if _, err := UploadObject(ctx, s.S3Client, s.Bucket, key, data); err != nil {
			return fmt.Errorf("archive artifact %s: %w", name, err)
		}
		s.Logger.Info("Artifact archived", zap.String("bucket", s.Bucket), zap.String("key", key))
	}
	return nil
}

func (s *ArtifactStore) writeArticleCSV(name string, articles []models.Article) (string, error) {
	header := []string{"title", "description", "url", "source_name", "publishedAt", "extracted_at"}
	records := make([][]string, 0, len(articles))
	for _, a := range articles {
		records = append(records, []string{
			a.Title, a.Description, a.URL, a.SourceName,
			formatTime(a.PublishedAt), formatTime(a.ExtractedAt),
		})
	}
	return s.writeCSV(name, header, records)
}

func (s *ArtifactStore) writeCSV(name string, header []string, records [][]string) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artifact %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header %s: %w", name, err)
	}
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("write rows %s: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", name, err)
	}
	return path, nil
}

func (s *ArtifactStore) ensureDir() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
