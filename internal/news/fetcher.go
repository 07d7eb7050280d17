package news

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"financial-intel/internal/domain"
)

const (
	// ResultsRequested is the result count asked of the provider per query.
	ResultsRequested = 5
	// ResultsKept is how many organic results are kept per query.
	ResultsKept = 3

	dateLayout = "2006-01-02"
)

// Status classifies the outcome of one query.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Searcher runs a single web search.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]domain.NewsItem, error)
}

// QueryOutcome records what happened to one query.
type QueryOutcome struct {
	Query  string
	Status Status
	Items  []domain.NewsItem
	Err    error
}

// FetchResult aggregates every query of a run.
type FetchResult struct {
	Items    []domain.NewsItem
	Outcomes []QueryOutcome
	Failures int
	Skipped  int
}

// Fetcher collects news snippets for the daily report.
type Fetcher struct {
	search Searcher
	log    *slog.Logger
}

// NewFetcher returns a Fetcher. A nil searcher means no provider key is
// configured: every query is skipped without a network call.
func NewFetcher(search Searcher, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{search: search, log: log}
}

// Queries returns the fixed queries for the given day, in issue order.
func Queries(day time.Time) []string {
	d := day.Format(dateLayout)
	return []string{
		"major financial news worldwide " + d + " stock market",
		"market movers stocks " + d,
		"investment opportunities " + d + " emerging markets",
	}
}

// Fetch issues each query once. Failures are recorded and counted, never
// returned, so the caller always gets whatever succeeded.
func (f *Fetcher) Fetch(ctx context.Context, day time.Time) FetchResult {
	var res FetchResult
	for _, q := range Queries(day) {
		out := f.fetchOne(ctx, q)
		switch out.Status {
		case StatusOK:
			res.Items = append(res.Items, out.Items...)
		case StatusFailed:
			res.Failures++
		case StatusSkipped:
			res.Skipped++
		}
		res.Outcomes = append(res.Outcomes, out)
	}
	return res
}

func (f *Fetcher) fetchOne(ctx context.Context, query string) QueryOutcome {
	if f.search == nil {
		f.log.Info("no search api key configured, skipping query", "query", query)
		return QueryOutcome{Query: query, Status: StatusSkipped}
	}

	items, err := f.search.Search(ctx, query, ResultsRequested)
	if err != nil {
		attrs := []any{"query", query, "err", err}
		var statusErr interface{ HTTPStatusCode() int }
		if errors.As(err, &statusErr) {
			attrs = append(attrs, "status", statusErr.HTTPStatusCode())
		}
		f.log.Warn("search failed", attrs...)
		return QueryOutcome{Query: query, Status: StatusFailed, Err: err}
	}

	if len(items) > ResultsKept {
		items = items[:ResultsKept]
	}
	f.log.Debug("search complete", "query", query, "results", len(items))
	return QueryOutcome{Query: query, Status: StatusOK, Items: items}
}
