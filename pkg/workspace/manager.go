// Package workspace holds the per-user client state: one profile aggregate
// and one instance of each workflow.
package workspace

import (
	"log/slog"
	"sync"
	"time"

	"github.com/artem13815/oneresume/pkg/jd"
	"github.com/artem13815/oneresume/pkg/profile"
	"github.com/artem13815/oneresume/pkg/resume"
	"github.com/artem13815/oneresume/pkg/workflow"
)

type Workspace struct {
	UserID   string
	Profile  *profile.Aggregate
	Analyze  *workflow.AnalyzeWorkflow
	Generate *workflow.GenerateWorkflow
}

// busy reports whether a workflow still waits for its response.
func (w *Workspace) busy() bool {
	return w.Analyze.State().Pending() || w.Generate.State().Pending()
}

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

type Manager struct {
	profiles *profile.API
	analyzer jd.Analyzer
	resumes  resume.Generator
	recorder workflow.Recorder
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	byUser map[string]*entry
}

func NewManager(profiles *profile.API, analyzer jd.Analyzer, resumes resume.Generator, recorder workflow.Recorder, logger *slog.Logger) *Manager {
	if recorder == nil {
		recorder = workflow.NopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		profiles: profiles,
		analyzer: analyzer,
		resumes:  resumes,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
		byUser:   map[string]*entry{},
	}
}

// Get returns the workspace of userID, creating it on first use.
func (m *Manager) Get(userID string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if e, ok := m.byUser[userID]; ok {
		e.lastSeen = now
		return e.ws
	}
	agg := profile.NewAggregate(m.profiles, userID, m.logger)
	opts := workflow.Options{UserID: userID, Recorder: m.recorder, Logger: m.logger}
	ws := &Workspace{
		UserID:   userID,
		Profile:  agg,
		Analyze:  workflow.NewAnalyzeWorkflow(m.analyzer, opts),
		Generate: workflow.NewGenerateWorkflow(agg, m.resumes, opts),
	}
	m.byUser[userID] = &entry{ws: ws, lastSeen: now}
	return ws
}

// Evict forgets workspaces not used for longer than idle. Workspaces with
// a request in flight are kept. It returns how many were removed.
func (m *Manager) Evict(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-idle)
	n := 0
	for uid, e := range m.byUser {
		if e.lastSeen.After(cutoff) || e.ws.busy() {
			continue
		}
		delete(m.byUser, uid)
		n++
	}
	return n
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byUser)
}
