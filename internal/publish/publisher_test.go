package publish

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"financial-intel/internal/domain"
	"financial-intel/internal/integrations/notion"
)

type fakePages struct {
	page  *notion.Page
	err   error
	calls int
	last  notion.CreatePageRequest
}

func (f *fakePages) CreatePage(_ context.Context, in notion.CreatePageRequest) (*notion.Page, error) {
	f.calls++
	f.last = in
	return f.page, f.err
}

var testDay = time.Date(2026, time.October, 18, 7, 0, 0, 0, time.UTC)

func newTestPublisher(t *testing.T, pages PageCreator) *Publisher {
	t.Helper()
	p, err := NewPublisher(pages, "db-1", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return p
}

func blockText(t *testing.T, req notion.CreatePageRequest) string {
	t.Helper()
	require.Len(t, req.Children, 1)
	require.NotNil(t, req.Children[0].Paragraph)
	require.Len(t, req.Children[0].Paragraph.RichText, 1)
	return req.Children[0].Paragraph.RichText[0].Text.Content
}

func TestNewPublisher_ValidatesDependencies(t *testing.T) {
	_, err := NewPublisher(nil, "db-1", nil)
	require.Error(t, err)

	_, err = NewPublisher(&fakePages{}, " ", nil)
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	short := strings.Repeat("a", 1999)
	require.Equal(t, short, Truncate(short))

	exact := strings.Repeat("b", MaxBlockChars)
	require.Equal(t, exact, Truncate(exact))

	long := strings.Repeat("c", 5000)
	require.Len(t, Truncate(long), MaxBlockChars)

	multi := strings.Repeat("💰", 2100)
	out := Truncate(multi)
	require.Equal(t, MaxBlockChars, utf8.RuneCountInString(out))
	require.True(t, utf8.ValidString(out))
}

func TestPublish_BuildsPage(t *testing.T) {
	pages := &fakePages{page: &notion.Page{URL: "https://www.notion.so/p-1"}}
	res, err := newTestPublisher(t, pages).Publish(context.Background(), "# Report", testDay)
	require.NoError(t, err)
	require.Equal(t, 1, pages.calls)
	require.Equal(t, "https://www.notion.so/p-1", res.URL)

	req := pages.last
	require.Equal(t, "db-1", req.Parent.DatabaseID)
	require.Equal(t, "Financial Intelligence - October 18, 2026", req.Properties[PropName].Title[0].Text.Content)
	require.Equal(t, "2026-10-18", req.Properties[PropDate].Date.Start)
	require.Equal(t, "Mixed", req.Properties[PropSentiment].Select.Name)
	require.Equal(t, 5, *req.Properties[PropKeyEvents].Number)
	require.Equal(t, "# Report", blockText(t, req))

	require.Equal(t, domain.RemoteRecord{
		Name:      "Financial Intelligence - October 18, 2026",
		Date:      testDay,
		Sentiment: domain.SentimentMixed,
		KeyEvents: domain.KeyEventsPlaceholder,
		Body:      "# Report",
	}, res.Record)
}

func TestPublish_TruncatesLongBody(t *testing.T) {
	pages := &fakePages{page: &notion.Page{}}
	body := strings.Repeat("x", 4321)
	_, err := newTestPublisher(t, pages).Publish(context.Background(), body, testDay)
	require.NoError(t, err)
	require.Equal(t, body[:MaxBlockChars], blockText(t, pages.last))
}

func TestPublish_KeyEventsIgnoresContent(t *testing.T) {
	pages := &fakePages{page: &notion.Page{}}
	_, err := newTestPublisher(t, pages).Publish(context.Background(), "", testDay)
	require.NoError(t, err)
	require.Equal(t, domain.KeyEventsPlaceholder, *pages.last.Properties[PropKeyEvents].Number)
}

func TestPublish_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{name: "status", err: &notion.HTTPStatusError{StatusCode: 400, Body: "validation_error"}},
		{name: "transport", err: errors.New("connection reset")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pages := &fakePages{err: tc.err}
			res, err := newTestPublisher(t, pages).Publish(context.Background(), "body", testDay)
			require.ErrorIs(t, err, tc.err)
			require.Empty(t, res.URL)
			require.Equal(t, 1, pages.calls)
		})
	}
}

func TestPublish_NilPage(t *testing.T) {
	res, err := newTestPublisher(t, &fakePages{}).Publish(context.Background(), "body", testDay)
	require.NoError(t, err)
	require.Empty(t, res.URL)
}
