package profile

import (
	"github.com/artem13815/oneresume/pkg/remote"
)

// Profile is the aggregate root: one per user, owning every collection
// below. Snapshots are never patched in place; they are replaced by the
// next fetch.
type Profile struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	CreatedAt        remote.Time       `json:"created_at"`
	PersonalInfo     *PersonalInfo     `json:"personal_info,omitempty"`
	Education        []Education       `json:"education"`
	Skills           []Skill           `json:"skills"`
	Experience       []Experience      `json:"experience"`
	Projects         []Project         `json:"projects"`
	Certifications   []Certification   `json:"certifications"`
	Achievements     []Achievement     `json:"achievements"`
	ExternalProfiles []ExternalProfile `json:"external_profiles"`
}

type PersonalInfo struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type Education struct {
	ID           string `json:"id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartYear    *int   `json:"start_year,omitempty"`
	EndYear      *int   `json:"end_year,omitempty"`
	Grade        string `json:"grade,omitempty"`
}

type Skill struct {
	ID            string `json:"id"`
	SkillName     string `json:"skill_name"`
	SkillCategory string `json:"skill_category,omitempty"`
}

// Bullet is owned by its Experience or Project and created with it.
type Bullet struct {
	ID         string `json:"id,omitempty"`
	BulletText string `json:"bullet_text"`
}

type Experience struct {
	ID        string   `json:"id"`
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Bullets   []Bullet `json:"bullets"`
}

type Project struct {
	ID           string   `json:"id"`
	ProjectTitle string   `json:"project_title"`
	Description  string   `json:"description,omitempty"`
	TechStack    string   `json:"tech_stack,omitempty"`
	Bullets      []Bullet `json:"bullets"`
}

type Certification struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuing_organization,omitempty"`
	Year                *int   `json:"year,omitempty"`
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

type ExternalProfile struct {
	ID         string `json:"id"`
	Platform   string `json:"platform"`
	ProfileURL string `json:"profile_url"`
}

// normalize replaces null collections with empty ones.
func (p *Profile) normalize() {
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Skills == nil {
		p.Skills = []Skill{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	for i := range p.Experience {
		if p.Experience[i].Bullets == nil {
			p.Experience[i].Bullets = []Bullet{}
		}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Projects {
		if p.Projects[i].Bullets == nil {
			p.Projects[i].Bullets = []Bullet{}
		}
	}
	if p.Certifications == nil {
		p.Certifications = []Certification{}
	}
	if p.Achievements == nil {
		p.Achievements = []Achievement{}
	}
	if p.ExternalProfiles == nil {
		p.ExternalProfiles = []ExternalProfile{}
	}
}

// Counts summarises collection sizes, e.g. for a status bar.
type Counts struct {
	Education        int `json:"education"`
	Skills           int `json:"skills"`
	Experience       int `json:"experience"`
	Projects         int `json:"projects"`
	Certifications   int `json:"certifications"`
	Achievements     int `json:"achievements"`
	ExternalProfiles int `json:"external_profiles"`
}

func (p *Profile) Counts() Counts {
	return Counts{
		Education:        len(p.Education),
		Skills:           len(p.Skills),
		Experience:       len(p.Experience),
		Projects:         len(p.Projects),
		Certifications:   len(p.Certifications),
		Achievements:     len(p.Achievements),
		ExternalProfiles: len(p.ExternalProfiles),
	}
}
