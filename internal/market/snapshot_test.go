package market

import (
	"testing"

	"github.com/stretchr/testify/require"

	"financial-intel/internal/domain"
)

func TestSnapshot_IsFixed(t *testing.T) {
	s := Snapshot()
	require.Empty(t, s.Indices)
	require.NotNil(t, s.Indices)
	require.Empty(t, s.TopMovers)
	require.Equal(t, domain.SentimentMixed, s.Sentiment)
	require.Equal(t, s, Snapshot())
}
