package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/artem13815/oneresume/pkg/remote"
)

// API is the thin per-endpoint layer over the remote profile routes. It
// never touches a snapshot; Aggregate owns that.
type API struct {
	client *remote.Client
}

func NewAPI(client *remote.Client) *API {
	return &API{client: client}
}

func (a *API) Create(ctx context.Context, userID string) (Profile, error) {
	p, err := remote.Call[Profile](ctx, a.client, http.MethodPost, "/api/profiles/"+url.PathEscape(userID), nil)
	if err != nil {
		return Profile{}, err
	}
	p.normalize()
	return p, nil
}

func (a *API) Get(ctx context.Context, profileID string) (Profile, error) {
	p, err := remote.Call[Profile](ctx, a.client, http.MethodGet, "/api/profiles/"+url.PathEscape(profileID), nil)
	if err != nil {
		return Profile{}, err
	}
	p.normalize()
	return p, nil
}

// GetByUser fetches the whole aggregate. A 404 is reported as ErrNoProfile.
func (a *API) GetByUser(ctx context.Context, userID string) (Profile, error) {
	p, err := remote.Call[Profile](ctx, a.client, http.MethodGet, "/api/profiles/by-user/"+url.PathEscape(userID), nil)
	if err != nil {
		if remote.IsNotFound(err) {
			return Profile{}, fmt.Errorf("%w: %w", ErrNoProfile, err)
		}
		return Profile{}, err
	}
	p.normalize()
	return p, nil
}

func (a *API) Delete(ctx context.Context, profileID string) error {
	return remote.Exec(ctx, a.client, http.MethodDelete, "/api/profiles/"+url.PathEscape(profileID), nil)
}

func (a *API) UpsertPersonalInfo(ctx context.Context, profileID string, in PersonalInfoInput) (PersonalInfo, error) {
	if err := in.Validate(); err != nil {
		return PersonalInfo{}, err
	}
	path := "/api/profiles/" + url.PathEscape(profileID) + "/personal-info"
	return remote.Call[PersonalInfo](ctx, a.client, http.MethodPut, path, in)
}

func (a *API) AddEducation(ctx context.Context, profileID string, in EducationInput) (Education, error) {
	if err := in.Validate(); err != nil {
		return Education{}, err
	}
	return remote.Call[Education](ctx, a.client, http.MethodPost, addPath(profileID, CollectionEducation), in)
}

func (a *API) AddSkill(ctx context.Context, profileID string, in SkillInput) (Skill, error) {
	if err := in.Validate(); err != nil {
		return Skill{}, err
	}
	return remote.Call[Skill](ctx, a.client, http.MethodPost, addPath(profileID, CollectionSkills), in)
}

// AddExperience creates the experience together with its bullets in a
// single request.
func (a *API) AddExperience(ctx context.Context, profileID string, in ExperienceInput) (Experience, error) {
	if err := in.Validate(); err != nil {
		return Experience{}, err
	}
	return remote.Call[Experience](ctx, a.client, http.MethodPost, addPath(profileID, CollectionExperience), in.body())
}

func (a *API) AddProject(ctx context.Context, profileID string, in ProjectInput) (Project, error) {
	if err := in.Validate(); err != nil {
		return Project{}, err
	}
	return remote.Call[Project](ctx, a.client, http.MethodPost, addPath(profileID, CollectionProjects), in.body())
}

func (a *API) AddCertification(ctx context.Context, profileID string, in CertificationInput) (Certification, error) {
	if err := in.Validate(); err != nil {
		return Certification{}, err
	}
	return remote.Call[Certification](ctx, a.client, http.MethodPost, addPath(profileID, CollectionCertifications), in)
}

func (a *API) AddAchievement(ctx context.Context, profileID string, in AchievementInput) (Achievement, error) {
	if err := in.Validate(); err != nil {
		return Achievement{}, err
	}
	return remote.Call[Achievement](ctx, a.client, http.MethodPost, addPath(profileID, CollectionAchievements), in)
}

func (a *API) AddExternalProfile(ctx context.Context, profileID string, in ExternalProfileInput) (ExternalProfile, error) {
	if err := in.Validate(); err != nil {
		return ExternalProfile{}, err
	}
	return remote.Call[ExternalProfile](ctx, a.client, http.MethodPost, addPath(profileID, CollectionExternalProfiles), in)
}

// DeleteItem removes one entity of collection c. The server answers 204.
func (a *API) DeleteItem(ctx context.Context, c Collection, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}
	path := "/api/profiles/" + string(c) + "/" + url.PathEscape(id)
	return remote.Exec(ctx, a.client, http.MethodDelete, path, nil)
}

func addPath(profileID string, c Collection) string {
	return "/api/profiles/" + url.PathEscape(profileID) + "/" + string(c)
}

func list[T any](ctx context.Context, a *API, profileID string, c Collection) ([]T, error) {
	items, err := remote.Call[[]T](ctx, a.client, http.MethodGet, addPath(profileID, c), nil)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (a *API) ListEducation(ctx context.Context, profileID string) ([]Education, error) {
	return list[Education](ctx, a, profileID, CollectionEducation)
}

func (a *API) ListSkills(ctx context.Context, profileID string) ([]Skill, error) {
	return list[Skill](ctx, a, profileID, CollectionSkills)
}

func (a *API) ListExperience(ctx context.Context, profileID string) ([]Experience, error) {
	return list[Experience](ctx, a, profileID, CollectionExperience)
}

func (a *API) ListProjects(ctx context.Context, profileID string) ([]Project, error) {
	return list[Project](ctx, a, profileID, CollectionProjects)
}

func (a *API) ListCertifications(ctx context.Context, profileID string) ([]Certification, error) {
	return list[Certification](ctx, a, profileID, CollectionCertifications)
}

func (a *API) ListAchievements(ctx context.Context, profileID string) ([]Achievement, error) {
	return list[Achievement](ctx, a, profileID, CollectionAchievements)
}

func (a *API) ListExternalProfiles(ctx context.Context, profileID string) ([]ExternalProfile, error) {
	return list[ExternalProfile](ctx, a, profileID, CollectionExternalProfiles)
}
