package workflow

import (
	"context"

	"github.com/artem13815/oneresume/pkg/jd"
	"github.com/artem13815/oneresume/pkg/validation"
)

// AnalyzeWorkflow drives JD analysis: validate, then one request, then a
// terminal state holding either the analysis or the error text.
type AnalyzeWorkflow struct {
	flow     *flow[jd.Analysis]
	analyzer jd.Analyzer
}

func NewAnalyzeWorkflow(analyzer jd.Analyzer, opts Options) *AnalyzeWorkflow {
	return &AnalyzeWorkflow{
		flow:     newFlow(KindAnalyze, opts, func(a jd.Analysis) string { return a.ID }),
		analyzer: analyzer,
	}
}

func (w *AnalyzeWorkflow) State() State[jd.Analysis] { return w.flow.snapshot() }

// Submit runs one analysis and returns the state it left behind. Short
// text fails without a request.
func (w *AnalyzeWorkflow) Submit(ctx context.Context, text string) (State[jd.Analysis], error) {
	if err := validation.MinLength(text, validation.MinTextLength, string(jd.ErrTextTooShort)); err != nil {
		return w.flow.reject(ctx, err)
	}
	seq := w.flow.begin()
	res, err := w.analyzer.Analyze(ctx, text)
	return w.flow.finish(ctx, seq, res, err)
}
