package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storage "github.com/artem13815/oneresume/pkg/storage/postgres"
	"github.com/artem13815/oneresume/pkg/workflow"
)

func TestClampPage(t *testing.T) {
	cases := []struct{ limit, offset, wantLimit, wantOffset int }{
		{0, 0, defaultPageSize, 0},
		{-5, -1, defaultPageSize, 0},
		{10, 30, 10, 30},
		{1000, 0, maxPageSize, 0},
	}
	for _, tc := range cases {
		l, o := clampPage(tc.limit, tc.offset)
		assert.Equal(t, tc.wantLimit, l)
		assert.Equal(t, tc.wantOffset, o)
	}
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestSubmissionRepository_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := storage.Open(ctx, storage.Config{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo, err := NewSubmissionRepository(pool)
	require.NoError(t, err)
	require.NoError(t, repo.Ping(ctx))

	user := "it-" + uuid.NewString()
	started := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Record(ctx, workflow.Record{
			Workflow:   workflow.KindAnalyze,
			UserID:     user,
			Sequence:   uint64(i),
			Status:     workflow.StatusSuccess,
			ResultRef:  "jd-" + string(rune('0'+i)),
			StartedAt:  started,
			FinishedAt: started.Add(time.Duration(i) * time.Second),
		}))
	}

	got, err := repo.ListByUser(ctx, user, 2, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(3), got[0].Sequence)
	assert.Equal(t, "jd-3", got[0].ResultRef)
	assert.Equal(t, workflow.KindAnalyze, got[0].Workflow)

	none, err := repo.ListByUser(ctx, "nobody-"+uuid.NewString(), 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
