package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/oneresume/pkg/jd"
	"github.com/artem13815/oneresume/pkg/profile"
	"github.com/artem13815/oneresume/pkg/remote"
	"github.com/artem13815/oneresume/pkg/resume"
)

type blockingAnalyzer struct {
	entered chan struct{}
	release chan struct{}
}

func (b blockingAnalyzer) Analyze(context.Context, string) (jd.Analysis, error) {
	close(b.entered)
	<-b.release
	return jd.Analysis{ID: "a1"}, nil
}

func newManager(analyzer jd.Analyzer) (*Manager, *time.Time) {
	client := remote.New("http://localhost:1", nil)
	if analyzer == nil {
		analyzer = jd.NewAPI(client)
	}
	m := NewManager(profile.NewAPI(client), analyzer, resume.NewAPI(client), nil, nil)
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	return m, &clock
}

func TestManager_GetIsPerUser(t *testing.T) {
	m, _ := newManager(nil)

	a := m.Get("u1")
	assert.Same(t, a, m.Get("u1"))
	assert.Equal(t, "u1", a.Profile.UserID())

	b := m.Get("u2")
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, m.Len())
}

func TestManager_EvictIdle(t *testing.T) {
	m, clock := newManager(nil)

	a := m.Get("u1")
	*clock = clock.Add(30 * time.Minute)
	m.Get("u2")
	*clock = clock.Add(31 * time.Minute)

	assert.Equal(t, 1, m.Evict(time.Hour))
	assert.Equal(t, 1, m.Len())
	assert.NotSame(t, a, m.Get("u1"))
}

func TestManager_EvictKeepsBusyWorkspace(t *testing.T) {
	an := blockingAnalyzer{entered: make(chan struct{}), release: make(chan struct{})}
	m, clock := newManager(an)

	ws := m.Get("u1")
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = ws.Analyze.Submit(context.Background(), "Backend engineer with Go experience")
	}()
	<-an.entered

	*clock = clock.Add(2 * time.Hour)
	assert.Zero(t, m.Evict(time.Hour))
	assert.Same(t, ws, m.Get("u1"))

	close(an.release)
	<-done
	*clock = clock.Add(2 * time.Hour)
	assert.Equal(t, 1, m.Evict(time.Hour))
}

func TestJanitor_SweepAndLifecycle(t *testing.T) {
	m, clock := newManager(nil)
	m.Get("u1")
	*clock = clock.Add(2 * time.Hour)

	j := NewJanitor(m, time.Minute, time.Hour, nil)
	require.NoError(t, j.Start())
	j.sweep()
	assert.Zero(t, m.Len())
	j.Stop()
}
