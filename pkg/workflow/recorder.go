package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one applied terminal transition.
type Record struct {
	Workflow   Kind      `json:"workflow"`
	UserID     string    `json:"userId"`
	Sequence   uint64    `json:"sequence"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	ResultRef  string    `json:"resultRef,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Submission is a stored Record.
type Submission struct {
	ID uuid.UUID `json:"id"`
	Record
}

// Recorder journals terminal transitions. A failing recorder never changes
// the workflow outcome.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// NopRecorder drops every record.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Record) error { return nil }

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, rec Record) error

func (f RecorderFunc) Record(ctx context.Context, rec Record) error { return f(ctx, rec) }
