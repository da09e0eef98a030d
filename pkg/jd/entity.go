package jd

import (
	"github.com/artem13815/oneresume/pkg/remote"
)

// Structured holds the fields the service extracts from a job description.
type Structured struct {
	RoleTitle        string   `json:"role_title"`
	ExperienceLevel  string   `json:"experience_level"`
	RoleCategory     string   `json:"role_category"`
	MustHaveSkills   []string `json:"must_have_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
	Keywords         []string `json:"keywords"`
}

// Analysis is one analyze result. It is not part of the profile.
type Analysis struct {
	ID             string      `json:"id"`
	StructuredData Structured  `json:"structured_data"`
	CreatedAt      remote.Time `json:"created_at"`
}

func (s *Structured) normalize() {
	if s.MustHaveSkills == nil {
		s.MustHaveSkills = []string{}
	}
	if s.NiceToHaveSkills == nil {
		s.NiceToHaveSkills = []string{}
	}
	if s.Keywords == nil {
		s.Keywords = []string{}
	}
}
