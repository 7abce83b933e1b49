package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

type recorder struct {
	invalidated []string
	published   []string
	invErr      error
	pubErr      error
}

func (r *recorder) InvalidateEvent(ctx context.Context, eventID string) error {
	if r.invErr != nil {
		return r.invErr
	}
	r.invalidated = append(r.invalidated, eventID)
	return nil
}

func (r *recorder) PublishEventChanged(ctx context.Context, eventID string) error {
	if r.pubErr != nil {
		return r.pubErr
	}
	r.published = append(r.published, eventID)
	return nil
}

func TestService_EventChanged(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	id := uuid.New()

	rec := &recorder{}
	svc := New(rec, rec, logger)
	if err := svc.EventChanged(context.Background(), id); err != nil {
		t.Fatalf("EventChanged: %v", err)
	}
	if len(rec.invalidated) != 1 || rec.invalidated[0] != id.String() {
		t.Errorf("invalidated = %v", rec.invalidated)
	}
	if len(rec.published) != 1 || rec.published[0] != id.String() {
		t.Errorf("published = %v", rec.published)
	}

	boom := errors.New("boom")
	svc = New(&recorder{pubErr: boom}, &recorder{pubErr: boom}, logger)
	if err := svc.EventChanged(context.Background(), id); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestService_HandleEventChanged(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := &recorder{}
	svc := New(rec, nil, logger)
	svc.HandleEventChanged(context.Background(), "abc")
	if len(rec.invalidated) != 1 || rec.invalidated[0] != "abc" {
		t.Errorf("invalidated = %v", rec.invalidated)
	}

	// errors are logged, not returned
	New(&recorder{invErr: errors.New("down")}, nil, logger).HandleEventChanged(context.Background(), "abc")
}
