package resume

import (
	"sort"

	"github.com/artem13815/oneresume/pkg/jd"
	"github.com/artem13815/oneresume/pkg/remote"
)

// ConfidenceTier grades how well the profile backs a skill the JD asks for.
// Unknown tiers from the server are kept as is.
type ConfidenceTier string

const (
	ConfidenceStrong   ConfidenceTier = "strong"
	ConfidenceInferred ConfidenceTier = "inferred"
	ConfidenceWeak     ConfidenceTier = "weak"
)

func (t ConfidenceTier) Known() bool {
	switch t {
	case ConfidenceStrong, ConfidenceInferred, ConfidenceWeak:
		return true
	}
	return false
}

// Format is a downloadable document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// GenerationResult is the outcome of one generate call.
type GenerationResult struct {
	ResumeID        string                    `json:"resume_id"`
	JobTitle        string                    `json:"job_title"`
	Version         int                       `json:"version"`
	PDFPath         string                    `json:"pdf_path"`
	DOCXPath        string                    `json:"docx_path"`
	JDAnalysis      jd.Structured             `json:"jd_analysis"`
	SkillConfidence map[string]ConfidenceTier `json:"skill_confidence"`
	KeywordCoverage map[string]bool           `json:"keyword_coverage"`
}

func (g *GenerationResult) normalize() {
	if g.SkillConfidence == nil {
		g.SkillConfidence = map[string]ConfidenceTier{}
	}
	if g.KeywordCoverage == nil {
		g.KeywordCoverage = map[string]bool{}
	}
}

// CoveredKeywords returns the covered and missing keywords, each sorted.
func (g GenerationResult) CoveredKeywords() (covered, missing []string) {
	covered, missing = []string{}, []string{}
	for k, ok := range g.KeywordCoverage {
		if ok {
			covered = append(covered, k)
		} else {
			missing = append(missing, k)
		}
	}
	sort.Strings(covered)
	sort.Strings(missing)
	return covered, missing
}

// Resume is an entry of the generated documents list.
type Resume struct {
	ID        string      `json:"id"`
	ProfileID string      `json:"profile_id"`
	JDID      string      `json:"jd_id,omitempty"`
	JobTitle  string      `json:"job_title"`
	Version   int         `json:"version"`
	FilePath  string      `json:"file_path,omitempty"`
	CreatedAt remote.Time `json:"created_at"`
}

// DownloadRefs are the constructed download addresses of one resume.
type DownloadRefs struct {
	PDF  string `json:"pdf"`
	DOCX string `json:"docx"`
}
