package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Options configure a workflow. Zero values are usable.
type Options struct {
	UserID   string
	Recorder Recorder
	Logger   *slog.Logger
	Now      func() time.Time
}

// flow is the state machine shared by both workflows. Transitions happen
// under mu; the request itself runs outside it. Every submission takes the
// next sequence number and only the latest one may apply its outcome.
type flow[T any] struct {
	kind      Kind
	userID    string
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
	resultRef func(T) string

	mu    sync.Mutex
	seq   uint64
	state State[T]
}

func newFlow[T any](kind Kind, opts Options, resultRef func(T) string) *flow[T] {
	f := &flow[T]{
		kind:      kind,
		userID:    opts.UserID,
		recorder:  opts.Recorder,
		logger:    opts.Logger,
		now:       opts.Now,
		resultRef: resultRef,
		state:     State[T]{Status: StatusIdle},
	}
	if f.recorder == nil {
		f.recorder = NopRecorder{}
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.now == nil {
		f.now = time.Now
	}
	f.logger = f.logger.With("workflow", string(kind), "user_id", opts.UserID)
	return f
}

func (f *flow[T]) snapshot() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// reject is a submission that failed local validation: it supersedes any
// in-flight request and goes straight to Failed.
func (f *flow[T]) reject(ctx context.Context, err error) (State[T], error) {
	f.mu.Lock()
	f.seq++
	now := f.now()
	f.state = State[T]{
		Status:     StatusFailed,
		Sequence:   f.seq,
		Error:      err.Error(),
		StartedAt:  now,
		FinishedAt: now,
	}
	st := f.state
	f.mu.Unlock()

	f.record(ctx, st)
	return st, err
}

// begin clears the previous outcome and enters Pending.
func (f *flow[T]) begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.state = State[T]{
		Status:    StatusPending,
		Sequence:  f.seq,
		StartedAt: f.now(),
	}
	return f.seq
}

// finish applies the outcome of submission seq unless a newer one started.
func (f *flow[T]) finish(ctx context.Context, seq uint64, result T, err error) (State[T], error) {
	f.mu.Lock()
	if seq != f.seq {
		st := f.state
		f.mu.Unlock()
		f.logger.Info("stale response discarded", "sequence", seq, "current", st.Sequence)
		return st, ErrSuperseded
	}
	f.state.FinishedAt = f.now()
	if err != nil {
		f.state.Status = StatusFailed
		f.state.Error = err.Error()
	} else {
		f.state.Status = StatusSuccess
		f.state.Result = &result
	}
	st := f.state
	f.mu.Unlock()

	if err != nil {
		f.logger.Warn("submission failed", "sequence", seq, "error", err)
	} else {
		f.logger.Info("submission succeeded", "sequence", seq, "latency", st.FinishedAt.Sub(st.StartedAt))
	}
	f.record(ctx, st)
	return st, err
}

func (f *flow[T]) record(ctx context.Context, st State[T]) {
	rec := Record{
		Workflow:   f.kind,
		UserID:     f.userID,
		Sequence:   st.Sequence,
		Status:     st.Status,
		Error:      st.Error,
		StartedAt:  st.StartedAt,
		FinishedAt: st.FinishedAt,
	}
	if st.Result != nil && f.resultRef != nil {
		rec.ResultRef = f.resultRef(*st.Result)
	}
	if err := f.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		f.logger.Error("journal write failed", "sequence", st.Sequence, "error", err)
	}
}
