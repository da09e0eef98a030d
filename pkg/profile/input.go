package profile

import (
	"strings"

	"github.com/artem13815/oneresume/pkg/validation"
)

// PersonalInfoInput replaces the personal info record wholesale.
type PersonalInfoInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (in PersonalInfoInput) Validate() error {
	return validation.Required(in.FullName, string(ErrFullNameRequired))
}

type EducationInput struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartYear    *int   `json:"start_year,omitempty"`
	EndYear      *int   `json:"end_year,omitempty"`
	Grade        string `json:"grade,omitempty"`
}

func (in EducationInput) Validate() error {
	if strings.TrimSpace(in.Institution) == "" || strings.TrimSpace(in.Degree) == "" {
		return ErrInstitutionRequired
	}
	return nil
}

type SkillInput struct {
	SkillName     string `json:"skill_name"`
	SkillCategory string `json:"skill_category,omitempty"`
}

func (in SkillInput) Validate() error {
	return validation.Required(in.SkillName, string(ErrSkillNameRequired))
}

// ExperienceInput takes bullets as free text, one bullet per line.
type ExperienceInput struct {
	Company   string `json:"company"`
	Role      string `json:"role"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Bullets   string `json:"bullets,omitempty"`
}

func (in ExperienceInput) Validate() error {
	if strings.TrimSpace(in.Company) == "" || strings.TrimSpace(in.Role) == "" {
		return ErrCompanyRoleRequired
	}
	return nil
}

type experienceBody struct {
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Bullets   []Bullet `json:"bullets"`
}

func (in ExperienceInput) body() experienceBody {
	return experienceBody{
		Company:   in.Company,
		Role:      in.Role,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Bullets:   ParseBullets(in.Bullets),
	}
}

// ProjectInput takes bullets as free text, one bullet per line.
type ProjectInput struct {
	ProjectTitle string `json:"project_title"`
	Description  string `json:"description,omitempty"`
	TechStack    string `json:"tech_stack,omitempty"`
	Bullets      string `json:"bullets,omitempty"`
}

func (in ProjectInput) Validate() error {
	return validation.Required(in.ProjectTitle, string(ErrProjectTitleMissing))
}

type projectBody struct {
	ProjectTitle string   `json:"project_title"`
	Description  string   `json:"description,omitempty"`
	TechStack    string   `json:"tech_stack,omitempty"`
	Bullets      []Bullet `json:"bullets"`
}

func (in ProjectInput) body() projectBody {
	return projectBody{
		ProjectTitle: in.ProjectTitle,
		Description:  in.Description,
		TechStack:    in.TechStack,
		Bullets:      ParseBullets(in.Bullets),
	}
}

type CertificationInput struct {
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuing_organization,omitempty"`
	Year                *int   `json:"year,omitempty"`
}

func (in CertificationInput) Validate() error {
	return validation.Required(in.Name, string(ErrCertNameRequired))
}

type AchievementInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (in AchievementInput) Validate() error {
	return validation.Required(in.Title, string(ErrTitleRequired))
}

type ExternalProfileInput struct {
	Platform   string `json:"platform"`
	ProfileURL string `json:"profile_url"`
}

func (in ExternalProfileInput) Validate() error {
	if strings.TrimSpace(in.Platform) == "" || strings.TrimSpace(in.ProfileURL) == "" {
		return ErrPlatformURLRequired
	}
	return nil
}
