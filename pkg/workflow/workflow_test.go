package workflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/oneresume/pkg/jd"
	"github.com/artem13815/oneresume/pkg/profile"
	"github.com/artem13815/oneresume/pkg/remote"
	"github.com/artem13815/oneresume/pkg/remote/remotetest"
	"github.com/artem13815/oneresume/pkg/resume"
	"github.com/artem13815/oneresume/pkg/validation"
)

type analyzerFunc func(ctx context.Context, text string) (jd.Analysis, error)

func (f analyzerFunc) Analyze(ctx context.Context, text string) (jd.Analysis, error) { return f(ctx, text) }

type generatorFunc func(ctx context.Context, profileID, jdText string) (resume.GenerationResult, error)

func (f generatorFunc) Generate(ctx context.Context, profileID, jdText string) (resume.GenerationResult, error) {
	return f(ctx, profileID, jdText)
}

func (f generatorFunc) DownloadRefs(resumeID string) resume.DownloadRefs {
	return resume.DownloadRefs{PDF: resumeID + ".pdf", DOCX: resumeID + ".docx"}
}

type memRecorder struct {
	mu   sync.Mutex
	recs []Record
	err  error
}

func (m *memRecorder) Record(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return m.err
}

func (m *memRecorder) all() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.recs...)
}

type staticProfile struct {
	p  profile.Profile
	ok bool
}

func (s staticProfile) Snapshot() (profile.Profile, bool) { return s.p, s.ok }

const longJD = "Senior Go engineer for backend services"

func TestAnalyze_ShortTextSkipsNetwork(t *testing.T) {
	var calls int32
	w := NewAnalyzeWorkflow(analyzerFunc(func(context.Context, string) (jd.Analysis, error) {
		atomic.AddInt32(&calls, 1)
		return jd.Analysis{}, nil
	}), Options{})

	st, err := w.Submit(context.Background(), "  too short        ")
	assert.ErrorIs(t, err, jd.ErrTextTooShort)
	assert.True(t, validation.Is(err))
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "JD text must be at least 20 characters.", st.Error)
	assert.Nil(t, st.Result)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestAnalyze_Success(t *testing.T) {
	srv := remotetest.New(t)
	rec := &memRecorder{}
	w := NewAnalyzeWorkflow(jd.NewAPI(remote.New(srv.URL, nil)), Options{UserID: "u1", Recorder: rec})

	assert.Equal(t, StatusIdle, w.State().Status)

	st, err := w.Submit(context.Background(), "Platform Engineer\nKubernetes and Go")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, st.Status)
	require.NotNil(t, st.Result)
	assert.Equal(t, "Platform Engineer", st.Result.StructuredData.RoleTitle)
	assert.Empty(t, st.Error)
	assert.Equal(t, uint64(1), st.Sequence)

	recs := rec.all()
	require.Len(t, recs, 1)
	assert.Equal(t, KindAnalyze, recs[0].Workflow)
	assert.Equal(t, "u1", recs[0].UserID)
	assert.Equal(t, st.Result.ID, recs[0].ResultRef)
	assert.Equal(t, StatusSuccess, recs[0].Status)
}

func TestAnalyze_RemoteErrorVerbatim(t *testing.T) {
	w := NewAnalyzeWorkflow(analyzerFunc(func(context.Context, string) (jd.Analysis, error) {
		return jd.Analysis{}, &remote.ServiceError{Status: 503, Body: "model overloaded"}
	}), Options{})

	st, err := w.Submit(context.Background(), longJD)
	require.Error(t, err)
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "API 503: model overloaded", st.Error)
	assert.Nil(t, st.Result)
}

func TestAnalyze_NewSubmissionClearsPreviousOutcome(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var n int32
	w := NewAnalyzeWorkflow(analyzerFunc(func(context.Context, string) (jd.Analysis, error) {
		if atomic.AddInt32(&n, 1) == 1 {
			return jd.Analysis{}, errors.New("first failed")
		}
		close(entered)
		<-release
		return jd.Analysis{ID: "a2"}, nil
	}), Options{})

	st, _ := w.Submit(context.Background(), longJD)
	require.Equal(t, StatusFailed, st.Status)

	done := make(chan State[jd.Analysis])
	go func() {
		st, _ := w.Submit(context.Background(), longJD)
		done <- st
	}()
	<-entered
	pending := w.State()
	assert.True(t, pending.Pending())
	assert.Empty(t, pending.Error)
	assert.Nil(t, pending.Result)

	close(release)
	final := <-done
	assert.Equal(t, StatusSuccess, final.Status)
	assert.Equal(t, "a2", final.Result.ID)
}

func TestAnalyze_StaleResponseDiscarded(t *testing.T) {
	firstEntered := make(chan struct{})
	releaseFirst := make(chan struct{})
	w := NewAnalyzeWorkflow(analyzerFunc(func(_ context.Context, text string) (jd.Analysis, error) {
		if text == longJD+" first" {
			close(firstEntered)
			<-releaseFirst
			return jd.Analysis{ID: "old"}, nil
		}
		return jd.Analysis{ID: "new"}, nil
	}), Options{})

	type outcome struct {
		st  State[jd.Analysis]
		err error
	}
	done := make(chan outcome)
	go func() {
		st, err := w.Submit(context.Background(), longJD+" first")
		done <- outcome{st, err}
	}()
	<-firstEntered

	second, err := w.Submit(context.Background(), longJD+" second")
	require.NoError(t, err)
	assert.Equal(t, "new", second.Result.ID)

	close(releaseFirst)
	first := <-done
	assert.ErrorIs(t, first.err, ErrSuperseded)
	assert.Equal(t, "new", first.st.Result.ID)

	cur := w.State()
	assert.Equal(t, StatusSuccess, cur.Status)
	assert.Equal(t, "new", cur.Result.ID)
	assert.Equal(t, uint64(2), cur.Sequence)
}

func TestAnalyze_ValidationSupersedesInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	w := NewAnalyzeWorkflow(analyzerFunc(func(context.Context, string) (jd.Analysis, error) {
		close(entered)
		<-release
		return jd.Analysis{ID: "late"}, nil
	}), Options{})

	done := make(chan error)
	go func() {
		_, err := w.Submit(context.Background(), longJD)
		done <- err
	}()
	<-entered

	st, err := w.Submit(context.Background(), "short")
	assert.ErrorIs(t, err, jd.ErrTextTooShort)
	assert.Equal(t, StatusFailed, st.Status)

	close(release)
	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, StatusFailed, w.State().Status)
}

func TestAnalyze_RecorderFailureIgnored(t *testing.T) {
	rec := &memRecorder{err: errors.New("db down")}
	w := NewAnalyzeWorkflow(analyzerFunc(func(context.Context, string) (jd.Analysis, error) {
		return jd.Analysis{ID: "a1"}, nil
	}), Options{Recorder: rec})

	st, err := w.Submit(context.Background(), longJD)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Len(t, rec.all(), 1)
}

func TestGenerate_NoProfileCheckedFirst(t *testing.T) {
	srv := remotetest.New(t)
	w := NewGenerateWorkflow(staticProfile{}, resume.NewAPI(remote.New(srv.URL, nil)), Options{})

	st, err := w.Submit(context.Background(), "short")
	assert.ErrorIs(t, err, profile.ErrNoProfile)
	assert.Equal(t, "No profile found. Please create one first.", st.Error)
	assert.Zero(t, srv.Calls())
}

func TestGenerate_ShortJDSkipsNetwork(t *testing.T) {
	srv := remotetest.New(t)
	src := staticProfile{p: profile.Profile{ID: "p1"}, ok: true}
	w := NewGenerateWorkflow(src, resume.NewAPI(remote.New(srv.URL, nil)), Options{})

	st, err := w.Submit(context.Background(), "Go dev")
	assert.ErrorIs(t, err, resume.ErrJDTooShort)
	assert.Equal(t, "Job description must be at least 20 characters.", st.Error)
	assert.Zero(t, srv.Calls())

	_, ok := w.DownloadRefs()
	assert.False(t, ok)
}

func TestGenerate_WithAggregate(t *testing.T) {
	srv := remotetest.New(t)
	client := remote.New(srv.URL, nil)
	srv.SeedProfile("u1")
	agg := profile.NewAggregate(profile.NewAPI(client), "u1", nil)
	_, err := agg.Load(context.Background())
	require.NoError(t, err)

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &memRecorder{}
	w := NewGenerateWorkflow(agg, resume.NewAPI(client), Options{
		UserID:   "u1",
		Recorder: rec,
		Now:      func() time.Time { return clock },
	})

	st, err := w.Submit(context.Background(), "Data Engineer\nSpark, Go and Postgres")
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, "Data Engineer", st.Result.JobTitle)
	assert.Equal(t, resume.ConfidenceStrong, st.Result.SkillConfidence["Go"])
	assert.Equal(t, clock, st.StartedAt)

	refs, ok := w.DownloadRefs()
	require.True(t, ok)
	assert.Equal(t, client.BaseURL+"/api/resumes/"+st.Result.ResumeID+"/download?format=docx", refs.DOCX)

	recs := rec.all()
	require.Len(t, recs, 1)
	assert.Equal(t, KindGenerate, recs[0].Workflow)
	assert.Equal(t, st.Result.ResumeID, recs[0].ResultRef)
}

func TestGenerate_StaleResponseDiscarded(t *testing.T) {
	firstEntered := make(chan struct{})
	releaseFirst := make(chan struct{})
	src := staticProfile{p: profile.Profile{ID: "p1"}, ok: true}
	rec := &memRecorder{}
	w := NewGenerateWorkflow(src, generatorFunc(func(_ context.Context, _, text string) (resume.GenerationResult, error) {
		if text == longJD+" first" {
			close(firstEntered)
			<-releaseFirst
			return resume.GenerationResult{ResumeID: "r-old"}, nil
		}
		return resume.GenerationResult{ResumeID: "r-new"}, nil
	}), Options{Recorder: rec})

	type outcome struct {
		st  State[resume.GenerationResult]
		err error
	}
	done := make(chan outcome)
	go func() {
		st, err := w.Submit(context.Background(), longJD+" first")
		done <- outcome{st, err}
	}()
	<-firstEntered
	assert.True(t, w.State().Pending())

	second, err := w.Submit(context.Background(), longJD+" second")
	require.NoError(t, err)
	assert.Equal(t, "r-new", second.Result.ResumeID)

	close(releaseFirst)
	first := <-done
	assert.ErrorIs(t, first.err, ErrSuperseded)
	assert.Equal(t, "r-new", first.st.Result.ResumeID)

	cur := w.State()
	assert.Equal(t, StatusSuccess, cur.Status)
	assert.Equal(t, uint64(2), cur.Sequence)
	refs, ok := w.DownloadRefs()
	require.True(t, ok)
	assert.Equal(t, "r-new.pdf", refs.PDF)

	recs := rec.all()
	require.Len(t, recs, 1)
	assert.Equal(t, "r-new", recs[0].ResultRef)
}
