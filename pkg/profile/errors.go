package profile

import (
	"errors"

	"github.com/artem13815/oneresume/pkg/validation"
)

var (
	// ErrNoProfile means the user has no profile yet. A fetch-by-user 404
	// is reported with it; callers route to onboarding instead of failing.
	ErrNoProfile = validation.Error("No profile found. Please create one first.")

	ErrUnknownCollection = errors.New("unknown profile collection")

	ErrFullNameRequired    = validation.Error("Full name is required.")
	ErrInstitutionRequired = validation.Error("Institution and degree are required.")
	ErrSkillNameRequired   = validation.Error("Skill name is required.")
	ErrCompanyRoleRequired = validation.Error("Company and role are required.")
	ErrProjectTitleMissing = validation.Error("Project title is required.")
	ErrCertNameRequired    = validation.Error("Certification name is required.")
	ErrTitleRequired       = validation.Error("Achievement title is required.")
	ErrPlatformURLRequired = validation.Error("Platform and profile URL are required.")
	ErrIDRequired          = validation.Error("Item id is required.")
)
