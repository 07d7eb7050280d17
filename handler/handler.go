package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"financial-intel/internal/usecase"
)

// Runner is the use case invoked once per scheduled event.
type Runner interface {
	Run(ctx context.Context, in usecase.RunInput) (usecase.RunOutput, error)
}

// Response is returned to the Lambda runtime on success.
type Response struct {
	RunID          string `json:"runId"`
	Title          string `json:"title"`
	PageURL        string `json:"pageUrl,omitempty"`
	NewsCount      int    `json:"newsCount"`
	SearchFailures int    `json:"searchFailures"`
}

type Handler struct {
	runner Runner
	log    *slog.Logger
}

func NewHandler(r Runner, log *slog.Logger) (*Handler, error) {
	if r == nil {
		return nil, errors.New("handler: runner must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{runner: r, log: log}, nil
}

// Handle serves an EventBridge scheduled event. A failed run is returned as
// an error so the invocation is recorded as failed.
func (h *Handler) Handle(ctx context.Context, ev events.CloudWatchEvent) (Response, error) {
	h.log.Info("scheduled invocation", "event_id", ev.ID, "source", ev.Source, "time", ev.Time)

	out, err := h.runner.Run(ctx, usecase.RunInput{})
	if err != nil {
		return Response{RunID: out.RunID}, err
	}
	return Response{
		RunID:          out.RunID,
		Title:          out.Title,
		PageURL:        out.PageURL,
		NewsCount:      out.NewsCount,
		SearchFailures: out.SearchFailures,
	}, nil
}
