package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"financial-intel/internal/config"
	"financial-intel/internal/market"
	"financial-intel/internal/news"
	"financial-intel/internal/publish"
	"financial-intel/internal/report"
)

type ConfigLoader interface {
	Load(ctx context.Context) (config.Config, error)
}

// Runner executes the daily update: load config, fetch news, compose the
// report and publish it. Each call to Run is independent.
type Runner struct {
	loader     ConfigLoader
	newClients ClientFactory
	log        *slog.Logger
	now        func() time.Time
}

type RunInput struct {
	// DryRun composes the report without publishing it.
	DryRun bool
}

type RunOutput struct {
	RunID          string
	Title          string
	PageURL        string
	Document       string
	NewsCount      int
	SearchFailures int
	SearchSkipped  int
	Published      bool
}

func NewRunner(loader ConfigLoader, newClients ClientFactory, log *slog.Logger) (*Runner, error) {
	if loader == nil {
		return nil, errors.New("usecase: config loader must not be nil")
	}
	if newClients == nil {
		return nil, errors.New("usecase: client factory must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		loader:     loader,
		newClients: newClients,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (r *Runner) Run(ctx context.Context, in RunInput) (RunOutput, error) {
	out := RunOutput{RunID: newRunID()}
	log := r.log.With("run_id", out.RunID)
	now := r.now()

	log.Info("starting daily financial intelligence update", "time", now.Format("2006-01-02 15:04:05 UTC"))

	cfg, err := r.loader.Load(ctx)
	if err != nil {
		log.Error("configuration invalid", "err", err)
		return out, newError(ErrorConfiguration, "config_load_error", err)
	}
	log.Info("configuration validated", "search_enabled", cfg.SearchEnabled())

	clients, err := r.newClients(cfg)
	if err != nil {
		log.Error("client setup failed", "err", err)
		return out, newError(ErrorInternal, "client_setup_error", err)
	}

	log.Info("fetching financial news")
	var searcher news.Searcher
	if cfg.SearchEnabled() {
		searcher = clients.Search
	}
	fetched := news.NewFetcher(searcher, log).Fetch(ctx, now)
	out.NewsCount = len(fetched.Items)
	out.SearchFailures = fetched.Failures
	out.SearchSkipped = fetched.Skipped
	log.Info("news fetched", "items", out.NewsCount, "failed_queries", fetched.Failures, "skipped_queries", fetched.Skipped)

	log.Info("analyzing market data")
	snapshot := market.Snapshot()
	log.Info("market data analyzed", "sentiment", snapshot.Sentiment)

	log.Info("generating investment insights")
	doc, err := report.Compose(fetched.Items, now)
	if err != nil {
		log.Error("compose failed", "err", err)
		return out, newError(ErrorInternal, "compose_error", err)
	}
	out.Document = doc
	out.Title = publish.Title(now)
	log.Info("insights generated", "chars", len(doc))

	if in.DryRun {
		log.Info("dry run, skipping publish", "title", out.Title)
		return out, nil
	}

	log.Info("creating notion page")
	publisher, err := publish.NewPublisher(clients.Pages, cfg.NotionDatabaseID, log)
	if err != nil {
		log.Error("publisher setup failed", "err", err)
		return out, newError(ErrorInternal, "publisher_setup_error", err)
	}
	res, err := publisher.Publish(ctx, doc, now)
	if err != nil {
		log.Error("failed to create daily update", "err", err)
		return out, newError(ErrorPublish, "create_page_error", err)
	}
	out.PageURL = res.URL
	out.Published = true

	log.Info("daily financial update completed", "title", out.Title, "url", out.PageURL)
	return out, nil
}

var newRunID = func() string {
	return uuid.NewString()
}
