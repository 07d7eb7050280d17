package domain

import "time"

// Placeholder values the pipeline does not compute yet. They are written to
// every page as-is until a real market-data source is wired in.
const (
	// SentimentMixed is the only sentiment label currently produced.
	SentimentMixed = "Mixed"
	// KeyEventsPlaceholder is published as the page's "Key Events" number.
	// It is not derived from the fetched news count.
	KeyEventsPlaceholder = 5
)

// NewsItem is a single organic search result used as report input.
type NewsItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// MarketSnapshot is the market-data seam. Every field is a fixed default.
type MarketSnapshot struct {
	Indices   map[string]float64
	TopMovers []string
	Sentiment string
}

// ReportDocument is the composed daily report.
type ReportDocument struct {
	Title string
	Body  string
}

// RemoteRecord mirrors the page written to the destination database.
type RemoteRecord struct {
	Name      string
	Date      time.Time
	Sentiment string
	KeyEvents int
	Body      string
}
