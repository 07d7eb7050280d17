package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"financial-intel/internal/domain"
	"financial-intel/internal/integrations/notion"
	"financial-intel/internal/report"
)

const (
	// MaxBlockChars is Notion's per-block text limit. Content beyond it is
	// dropped, not split into further blocks.
	MaxBlockChars = 2000

	TitlePrefix = "Financial Intelligence - "

	PropName      = "Name"
	PropDate      = "Date"
	PropSentiment = "Market Sentiment"
	PropKeyEvents = "Key Events"

	dateLayout = "2006-01-02"
)

// PageCreator creates one database page.
type PageCreator interface {
	CreatePage(ctx context.Context, in notion.CreatePageRequest) (*notion.Page, error)
}

// Result describes the page that was written.
type Result struct {
	Record domain.RemoteRecord
	URL    string
}

// Publisher writes the daily report into a Notion database.
type Publisher struct {
	pages      PageCreator
	databaseID string
	log        *slog.Logger
}

func NewPublisher(pages PageCreator, databaseID string, log *slog.Logger) (*Publisher, error) {
	if pages == nil {
		return nil, errors.New("publish: page creator must not be nil")
	}
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, errors.New("publish: database id must not be empty")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{pages: pages, databaseID: databaseID, log: log}, nil
}

// Title returns the page title for the given day.
func Title(day time.Time) string {
	return TitlePrefix + report.FormatDate(day)
}

// Truncate returns at most MaxBlockChars characters of s.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxBlockChars {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxBlockChars {
			return s[:i]
		}
		n++
	}
	return s
}

// BuildRecord derives the remote record for a document. Sentiment and
// KeyEvents are placeholders, see domain.KeyEventsPlaceholder.
func BuildRecord(body string, day time.Time) domain.RemoteRecord {
	return domain.RemoteRecord{
		Name:      Title(day),
		Date:      day,
		Sentiment: domain.SentimentMixed,
		KeyEvents: domain.KeyEventsPlaceholder,
		Body:      Truncate(body),
	}
}

// BuildRequest converts a record into the Notion create-page payload.
func BuildRequest(databaseID string, rec domain.RemoteRecord) notion.CreatePageRequest {
	return notion.CreatePageRequest{
		Parent: notion.Parent{DatabaseID: databaseID},
		Properties: map[string]notion.Property{
			PropName:      notion.TitleProperty(rec.Name),
			PropDate:      notion.DateProperty(rec.Date.Format(dateLayout)),
			PropSentiment: notion.SelectProperty(rec.Sentiment),
			PropKeyEvents: notion.NumberProperty(rec.KeyEvents),
		},
		Children: []notion.Block{notion.ParagraphBlock(rec.Body)},
	}
}

// Publish creates the page once. Any failure is returned; nothing is retried
// or cleaned up.
func (p *Publisher) Publish(ctx context.Context, body string, day time.Time) (Result, error) {
	rec := BuildRecord(body, day)
	if n := utf8.RuneCountInString(body); n > MaxBlockChars {
		p.log.Debug("report truncated to fit one block", "chars", n, "kept", MaxBlockChars)
	}

	page, err := p.pages.CreatePage(ctx, BuildRequest(p.databaseID, rec))
	if err != nil {
		var statusErr *notion.HTTPStatusError
		if errors.As(err, &statusErr) {
			p.log.Error("create page rejected", "title", rec.Name, "status", statusErr.StatusCode, "response", statusErr.Body)
		} else {
			p.log.Error("create page failed", "title", rec.Name, "err", err)
		}
		return Result{Record: rec}, fmt.Errorf("publish: create page %q: %w", rec.Name, err)
	}

	res := Result{Record: rec}
	if page != nil {
		res.URL = page.URL
	}
	p.log.Info("created page", "title", rec.Name, "url", res.URL)
	return res, nil
}
