// Package report renders the daily market commentary as Markdown.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"financial-intel/internal/domain"
)

const (
	// MaxNewsItems caps how many news items are rendered.
	MaxNewsItems = 5

	EmptyNewsNotice = "Unable to fetch current news. Please check API configurations."

	fallbackTitle   = "News Item"
	fallbackSnippet = "No description available"

	titleDateLayout = "January 02, 2006"
	stampLayout     = "2006-01-02 15:04"
)

//go:embed templates/daily.md.tmpl
var templateFS embed.FS

var dailyTemplate = template.Must(
	template.New("daily.md.tmpl").
		Funcs(template.FuncMap{
			"inc":     func(i int) int { return i + 1 },
			"percent": percent,
		}).
		ParseFS(templateFS, "templates/daily.md.tmpl"),
)

type templateData struct {
	Date        string
	News        []domain.NewsItem
	EmptyNews   string
	Theses      []Thesis
	Allocations []Allocation
	Risks       []RiskFactor
	Catalysts   []string
	SourceCount int
	GeneratedAt string
}

// FormatDate renders a day the way report and page titles show it.
func FormatDate(t time.Time) string {
	return t.Format(titleDateLayout)
}

// Compose renders the report body. The output depends only on the inputs;
// the footer reports len(news) even though at most MaxNewsItems are shown.
func Compose(news []domain.NewsItem, now time.Time) (string, error) {
	shown := news
	if len(shown) > MaxNewsItems {
		shown = shown[:MaxNewsItems]
	}
	rendered := make([]domain.NewsItem, 0, len(shown))
	for _, n := range shown {
		if n.Title == "" {
			n.Title = fallbackTitle
		}
		if n.Snippet == "" {
			n.Snippet = fallbackSnippet
		}
		rendered = append(rendered, n)
	}

	data := templateData{
		Date:        FormatDate(now),
		News:        rendered,
		EmptyNews:   EmptyNewsNotice,
		Theses:      theses,
		Allocations: allocations,
		Risks:       riskFactors,
		Catalysts:   catalysts,
		SourceCount: len(news),
		GeneratedAt: now.UTC().Format(stampLayout) + " UTC",
	}

	var buf bytes.Buffer
	if err := dailyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("report: render: %w", err)
	}
	return buf.String(), nil
}
