package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/oneresume/pkg/workflow"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SubmissionRepository journals workflow submissions in PostgreSQL (pgx).
type SubmissionRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewSubmissionRepository(pool *pgxpool.Pool) (*SubmissionRepository, error) {
	repo := &SubmissionRepository{pool: pool, now: time.Now}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SubmissionRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS workflow_submissions (
			id UUID PRIMARY KEY,
			workflow TEXT NOT NULL,
			user_id TEXT NOT NULL,
			sequence BIGINT NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			result_ref TEXT NOT NULL DEFAULT '',
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS workflow_submissions_user_idx
			ON workflow_submissions (user_id, finished_at DESC);
	`)
	return err
}

// Ping checks the connection and that the journal table is queryable.
func (r *SubmissionRepository) Ping(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `SELECT 1 FROM workflow_submissions LIMIT 1`); err != nil {
		return fmt.Errorf("journal ping: %w", err)
	}
	return nil
}

// Record implements workflow.Recorder.
func (r *SubmissionRepository) Record(ctx context.Context, rec workflow.Record) error {
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = r.now()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = rec.FinishedAt
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO workflow_submissions
			(id, workflow, user_id, sequence, status, error, result_ref, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.New(), string(rec.Workflow), rec.UserID, int64(rec.Sequence), string(rec.Status),
		rec.Error, rec.ResultRef, rec.StartedAt.UTC(), rec.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ListByUser возвращает запуски пользователя, начиная с последних.
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]workflow.Submission, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.pool.Query(ctx, `
		SELECT id, workflow, user_id, sequence, status, error, result_ref, started_at, finished_at
		FROM workflow_submissions
		WHERE user_id = $1
		ORDER BY finished_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, scanSubmission)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []workflow.Submission{}
	}
	return out, nil
}

func scanSubmission(row pgx.CollectableRow) (workflow.Submission, error) {
	var (
		s        workflow.Submission
		kind     string
		status   string
		sequence int64
	)
	if err := row.Scan(&s.ID, &kind, &s.UserID, &sequence, &status, &s.Error, &s.ResultRef, &s.StartedAt, &s.FinishedAt); err != nil {
		return workflow.Submission{}, err
	}
	s.Workflow = workflow.Kind(kind)
	s.Status = workflow.Status(status)
	s.Sequence = uint64(sequence)
	s.StartedAt = s.StartedAt.UTC()
	s.FinishedAt = s.FinishedAt.UTC()
	return s, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ workflow.Recorder = (*SubmissionRepository)(nil)
