// Package market is where a market-data source will plug in. It performs no
// I/O today.
package market

import "financial-intel/internal/domain"

// Snapshot returns the placeholder market state. Indices and movers are
// empty and the sentiment is always domain.SentimentMixed.
// TODO: populate from a quotes provider once one is chosen.
func Snapshot() domain.MarketSnapshot {
	return domain.MarketSnapshot{
		Indices:   map[string]float64{},
		TopMovers: []string{},
		Sentiment: domain.SentimentMixed,
	}
}
