package usecase

import (
	"fmt"

	"financial-intel/internal/config"
	"financial-intel/internal/integrations/notion"
	"financial-intel/internal/integrations/serper"
	"financial-intel/internal/news"
	"financial-intel/internal/publish"
)

// Clients are the outbound dependencies of one run.
type Clients struct {
	// Search is nil when no search-provider key is configured.
	Search news.Searcher
	Pages  publish.PageCreator
}

// ClientFactory builds Clients from a validated Config.
type ClientFactory func(cfg config.Config) (Clients, error)

// NewClients is the production ClientFactory.
func NewClients(cfg config.Config) (Clients, error) {
	var out Clients

	if cfg.SearchEnabled() {
		s, err := serper.NewClient(cfg.SerperAPIKey,
			serper.WithBaseURL(cfg.SerperBaseURL),
			serper.WithTimeout(cfg.SearchTimeout),
		)
		if err != nil {
			return Clients{}, fmt.Errorf("usecase: create search client: %w", err)
		}
		out.Search = s
	}

	pages, err := notion.NewClient(cfg.NotionAPIKey,
		notion.WithBaseURL(cfg.NotionBaseURL),
		notion.WithTimeout(cfg.PublishTimeout),
		notion.WithVersion(cfg.NotionVersion),
	)
	if err != nil {
		return Clients{}, fmt.Errorf("usecase: create notion client: %w", err)
	}
	out.Pages = pages
	return out, nil
}
