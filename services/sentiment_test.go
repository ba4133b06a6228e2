package services

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"news-pulse/models"
)

func TestCategorizeSentiment(t *testing.T) {
	cases := []struct {
		compound float64
		want     string
	}{
		{1.0, "positive"},
		{0.05, "positive"},
		{0.049, "neutral"},
		{0.0, "neutral"},
		{-0.049, "neutral"},
		{-0.05, "negative"},
		{-1.0, "negative"},
	}

	for _, c := range cases {
		if got := CategorizeSentiment(c.compound); got != c.want {
			t.Errorf("CategorizeSentiment(%f) = %q, want %q", c.compound, got, c.want)
		}
	}
}

func TestTransform_PositiveHeadline(t *testing.T) {
	s := NewSentimentService(zap.NewNop())

	articles := []models.Article{{
		Title:       "Stocks soar to record highs",
		Description: "Markets rallied today on strong earnings",
		PublishedAt: time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC),
	}}

	enriched, _ := s.Transform(articles)

	if len(enriched) != 1 {
		t.Fatalf("Expected 1 enriched article, got %d", len(enriched))
	}
	row := enriched[0]
	if row.SentimentCompound <= 0 {
		t.Errorf("Expected positive compound score, got %f", row.SentimentCompound)
	}
	if row.SentimentLabel != "positive" {
		t.Errorf("Expected label positive, got %q", row.SentimentLabel)
	}
}

func TestTransform_ScoreRangesAndLabelConsistency(t *testing.T) {
	s := NewSentimentService(zap.NewNop())

	articles := []models.Article{
		{Title: "Markets crash in worst day of the year", Description: "Investors panicked as losses deepened across every sector"},
		{Title: "Shares edge slightly higher", Description: "A quiet session ended with modest gains for most indexes"},
		{Title: "Central bank leaves rates unchanged", Description: "The committee voted to hold the benchmark rate steady this month"},
	}

	enriched, _ := s.Transform(articles)

	for i, row := range enriched {
		if row.SentimentCompound < -1 || row.SentimentCompound > 1 {
			t.Errorf("Row %d: compound out of range: %f", i, row.SentimentCompound)
		}
		for name, score := range map[string]float64{
			"positive": row.SentimentPositive,
			"negative": row.SentimentNegative,
			"neutral":  row.SentimentNeutral,
		} {
			if score < 0 || score > 1 {
				t.Errorf("Row %d: %s score out of range: %f", i, name, score)
			}
		}
		if row.SentimentLabel != CategorizeSentiment(row.SentimentCompound) {
			t.Errorf("Row %d: label %q inconsistent with compound %f", i, row.SentimentLabel, row.SentimentCompound)
		}
	}
}

func TestTransform_CalendarFeatures(t *testing.T) {
	s := NewSentimentService(zap.NewNop())

	published := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC) // a Tuesday
	articles := []models.Article{{
		Title:       "A perfectly average headline",
		Description: "A description long enough to be kept by the cleaner",
		PublishedAt: published,
	}}

	enriched, _ := s.Transform(articles)

	row := enriched[0]
	wantDate := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	if !row.Date.Equal(wantDate) {
		t.Errorf("Expected date %v, got %v", wantDate, row.Date)
	}
	if row.Hour != 14 {
		t.Errorf("Expected hour 14, got %d", row.Hour)
	}
	if row.DayOfWeek != "Tuesday" {
		t.Errorf("Expected Tuesday, got %q", row.DayOfWeek)
	}
}

func TestTransform_MissingTimestampLeavesCalendarZero(t *testing.T) {
	s := NewSentimentService(zap.NewNop())

	articles := []models.Article{{
		Title:       "A headline without timestamp",
		Description: "Still long enough for the downstream cleaning rules",
	}}

	enriched, _ := s.Transform(articles)

	row := enriched[0]
	if !row.Date.IsZero() || row.Hour != 0 || row.DayOfWeek != "" {
		t.Errorf("Expected zero calendar features, got date=%v hour=%d day=%q",
			row.Date, row.Hour, row.DayOfWeek)
	}
}

func TestTransform_EmptyInputPassesThrough(t *testing.T) {
	s := NewSentimentService(zap.NewNop())

	enriched, summary := s.Transform(nil)

	if enriched != nil {
		t.Errorf("Expected nil output for empty input, got %v", enriched)
	}
	if summary.MarketVerdict != "" || len(summary.Counts) != 0 {
		t.Errorf("Expected zero summary, got %+v", summary)
	}
}

func TestTransform_SummaryDistribution(t *testing.T) {
	s := NewSentimentService(zap.NewNop())

	articles := []models.Article{
		{Title: "Great wonderful amazing rally", Description: "Fantastic gains delighted happy investors everywhere"},
		{Title: "Terrible horrible crash", Description: "Awful losses devastated worried investors everywhere"},
	}

	enriched, summary := s.Transform(articles)

	total := 0
	for _, count := range summary.Counts {
		total += count
	}
	if total != len(enriched) {
		t.Errorf("Label counts sum to %d, want %d", total, len(enriched))
	}

	var pctSum float64
	for _, pct := range summary.Percentages {
		pctSum += pct
	}
	if pctSum < 99.9 || pctSum > 100.1 {
		t.Errorf("Percentages sum to %f, want 100", pctSum)
	}

	if summary.MarketVerdict == "" {
		t.Error("Expected a market verdict")
	}
}
