package models

import "time"

// Article is one raw news item as returned by the extractor.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	SourceName  string    `json:"source_name"`
	PublishedAt time.Time `json:"publishedAt"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// EnrichedArticle is a cleaned article with sentiment scores and calendar features.
type EnrichedArticle struct {
	Article

	SentimentCompound float64 `json:"sentiment_compound"` // -1 to +1
	SentimentPositive float64 `json:"sentiment_positive"` // 0 to 1
	SentimentNegative float64 `json:"sentiment_negative"` // 0 to 1
	SentimentNeutral  float64 `json:"sentiment_neutral"`  // 0 to 1
	SentimentLabel    string  `json:"sentiment_label"`

	Date      time.Time `json:"date"`
	Hour      int       `json:"hour"`
	DayOfWeek string    `json:"day_of_week"` // kept in file artifacts only, not persisted
}

// NewsSentiment is the persisted row of the news_sentiment table.
// Column names and order are fixed; the loader drops and recreates the
// table from this model on every run.
type NewsSentiment struct {
	Title             string    `gorm:"column:title;type:text" json:"title"`
	Description       string    `gorm:"column:description;type:text" json:"description"`
	URL               string    `gorm:"column:url;type:text" json:"url"`
	SourceName        string    `gorm:"column:source_name;type:text" json:"source_name"`
	PublishedAt       time.Time `gorm:"column:publishedAt" json:"publishedAt"`
	Date              time.Time `gorm:"column:date;type:date" json:"date"`
	Hour              int       `gorm:"column:hour" json:"hour"`
	SentimentCompound float64   `gorm:"column:sentiment_compound" json:"sentiment_compound"`
	SentimentPositive float64   `gorm:"column:sentiment_positive" json:"sentiment_positive"`
	SentimentNegative float64   `gorm:"column:sentiment_negative" json:"sentiment_negative"`
	SentimentNeutral  float64   `gorm:"column:sentiment_neutral" json:"sentiment_neutral"`
	SentimentLabel    string    `gorm:"column:sentiment_label;type:text" json:"sentiment_label"`
	ExtractedAt       time.Time `gorm:"column:extracted_at" json:"extracted_at"`
}

// TableName names the analytical target table explicitly.
func (NewsSentiment) TableName() string {
	return "news_sentiment"
}

// SchemaColumns lists the table columns in persisted order, used for
// diagnostics when a load fails.
func SchemaColumns() []string {
	return []string{
		"title", "description", "url", "source_name",
		"publishedAt", "date", "hour",
		"sentiment_compound", "sentiment_positive", "sentiment_negative",
		"sentiment_neutral", "sentiment_label", "extracted_at",
	}
}
