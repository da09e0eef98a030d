package workflow

import (
	"context"

	"github.com/artem13815/oneresume/pkg/profile"
	"github.com/artem13815/oneresume/pkg/resume"
	"github.com/artem13815/oneresume/pkg/validation"
)

// ProfileSource exposes the loaded profile of the active user.
type ProfileSource interface {
	Snapshot() (profile.Profile, bool)
}

// GenerateWorkflow drives resume generation for the loaded profile.
type GenerateWorkflow struct {
	flow      *flow[resume.GenerationResult]
	profiles  ProfileSource
	generator resume.Generator
}

func NewGenerateWorkflow(profiles ProfileSource, generator resume.Generator, opts Options) *GenerateWorkflow {
	return &GenerateWorkflow{
		flow:      newFlow(KindGenerate, opts, func(r resume.GenerationResult) string { return r.ResumeID }),
		profiles:  profiles,
		generator: generator,
	}
}

func (w *GenerateWorkflow) State() State[resume.GenerationResult] { return w.flow.snapshot() }

// Submit checks that a profile is loaded, then the JD length, and only then
// issues the request.
func (w *GenerateWorkflow) Submit(ctx context.Context, jdText string) (State[resume.GenerationResult], error) {
	p, ok := w.profiles.Snapshot()
	if !ok || p.ID == "" {
		return w.flow.reject(ctx, profile.ErrNoProfile)
	}
	if err := validation.MinLength(jdText, validation.MinTextLength, string(resume.ErrJDTooShort)); err != nil {
		return w.flow.reject(ctx, err)
	}
	seq := w.flow.begin()
	res, err := w.generator.Generate(ctx, p.ID, jdText)
	return w.flow.finish(ctx, seq, res, err)
}

// DownloadRefs returns download addresses for the current result.
func (w *GenerateWorkflow) DownloadRefs() (resume.DownloadRefs, bool) {
	st := w.flow.snapshot()
	if st.Status != StatusSuccess || st.Result == nil {
		return resume.DownloadRefs{}, false
	}
	return w.generator.DownloadRefs(st.Result.ResumeID), true
}
