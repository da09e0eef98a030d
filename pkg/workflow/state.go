package workflow

import (
	"errors"
	"time"
)

// Status is the position of a workflow in its submission lifecycle.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

func (s Status) Terminal() bool { return s == StatusSuccess || s == StatusFailed }

// Kind names a workflow in logs and the journal.
type Kind string

const (
	KindAnalyze  Kind = "analyze"
	KindGenerate Kind = "generate"
)

// ErrSuperseded is returned to a submission whose response arrived after a
// newer submission had started. Its outcome was discarded.
var ErrSuperseded = errors.New("workflow: submission superseded by a newer one")

// State is one observable snapshot of a workflow. Result is set only in
// StatusSuccess, Error only in StatusFailed.
type State[T any] struct {
	Status     Status    `json:"status"`
	Sequence   uint64    `json:"sequence"`
	Result     *T        `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt,omitzero"`
	FinishedAt time.Time `json:"finishedAt,omitzero"`
}

// Pending reports an in-flight request. Callers use it to suppress a
// second submit.
func (s State[T]) Pending() bool { return s.Status == StatusPending }
