package profile

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Aggregate keeps the client's view of one user's profile. The view only
// changes at reload boundaries: every successful mutation is followed by a
// fresh fetch-by-user before the mutator returns, and nothing is patched
// locally.
type Aggregate struct {
	api    *API
	userID string
	logger *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	snap    *Profile
	issued  uint64
	applied uint64
}

func NewAggregate(api *API, userID string, logger *slog.Logger) *Aggregate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregate{
		api:    api,
		userID: userID,
		logger: logger.With("user_id", userID),
	}
}

func (a *Aggregate) UserID() string { return a.userID }

// Snapshot returns the last loaded profile. ok is false when there is no
// profile (never loaded, or the server has none). The returned value shares
// slices with the stored snapshot and must not be modified.
func (a *Aggregate) Snapshot() (Profile, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.snap == nil {
		return Profile{}, false
	}
	return *a.snap, true
}

// Load fetches the aggregate. Concurrent loads share one request, which
// runs detached from the caller's cancellation: a caller whose ctx ends
// gets ctx.Err() while the others still receive the result.
// ErrNoProfile clears the snapshot.
func (a *Aggregate) Load(ctx context.Context) (Profile, error) {
	ch := a.group.DoChan(a.userID, func() (any, error) {
		return a.fetch(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return Profile{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Profile{}, res.Err
		}
		return res.Val.(Profile), nil
	}
}

// Ensure returns the loaded profile, fetching it when there is none yet.
// A "no profile" outcome is never cached: the profile may have been created
// elsewhere since.
func (a *Aggregate) Ensure(ctx context.Context) (Profile, error) {
	if p, ok := a.Snapshot(); ok {
		return p, nil
	}
	return a.Load(ctx)
}

// reload starts a new fetch instead of joining one that began before the
// caller's mutation was acknowledged.
func (a *Aggregate) reload(ctx context.Context) (Profile, error) {
	a.group.Forget(a.userID)
	return a.Load(ctx)
}

func (a *Aggregate) fetch(ctx context.Context) (Profile, error) {
	a.mu.Lock()
	a.issued++
	seq := a.issued
	a.mu.Unlock()

	p, err := a.api.GetByUser(ctx, a.userID)

	a.mu.Lock()
	defer a.mu.Unlock()
	// an older fetch finishing late must not overwrite a newer one
	if seq <= a.applied {
		if err != nil {
			return Profile{}, err
		}
		return p, nil
	}
	switch {
	case err == nil:
		a.applied = seq
		a.snap = &p
		a.logger.Debug("profile reloaded", "profile_id", p.ID)
	case errors.Is(err, ErrNoProfile):
		a.applied = seq
		a.snap = nil
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (a *Aggregate) profileID() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.snap == nil || a.snap.ID == "" {
		return "", ErrNoProfile
	}
	return a.snap.ID, nil
}

// mutate runs op against the current profile and reloads afterwards. On
// failure the snapshot is left as it was.
func (a *Aggregate) mutate(ctx context.Context, name string, op func(profileID string) error) (Profile, error) {
	id, err := a.profileID()
	if err != nil {
		return Profile{}, err
	}
	if err := op(id); err != nil {
		a.logger.Warn("profile mutation failed", "op", name, "profile_id", id, "error", err)
		return Profile{}, err
	}
	return a.reload(ctx)
}

// Create makes the user's profile on demand and loads it.
func (a *Aggregate) Create(ctx context.Context) (Profile, error) {
	if _, err := a.api.Create(ctx, a.userID); err != nil {
		a.logger.Warn("profile create failed", "error", err)
		return Profile{}, err
	}
	return a.reload(ctx)
}

// DeleteProfile removes the whole profile and clears the snapshot.
func (a *Aggregate) DeleteProfile(ctx context.Context) error {
	id, err := a.profileID()
	if err != nil {
		return err
	}
	if err := a.api.Delete(ctx, id); err != nil {
		a.logger.Warn("profile delete failed", "profile_id", id, "error", err)
		return err
	}
	if _, err := a.reload(ctx); err != nil && !errors.Is(err, ErrNoProfile) {
		return err
	}
	return nil
}

func (a *Aggregate) UpsertPersonalInfo(ctx context.Context, in PersonalInfoInput) (Profile, error) {
	return a.mutate(ctx, "upsert_personal_info", func(id string) error {
		_, err := a.api.UpsertPersonalInfo(ctx, id, in)
		return err
	})
}

func (a *Aggregate) AddEducation(ctx context.Context, in EducationInput) (Profile, error) {
	return a.mutate(ctx, "add_education", func(id string) error {
		_, err := a.api.AddEducation(ctx, id, in)
		return err
	})
}

func (a *Aggregate) AddSkill(ctx context.Context, in SkillInput) (Profile, error) {
	return a.mutate(ctx, "add_skill", func(id string) error {
		_, err := a.api.AddSkill(ctx, id, in)
		return err
	})
}

func (a *Aggregate) AddExperience(ctx context.Context, in ExperienceInput) (Profile, error) {
	return a.mutate(ctx, "add_experience", func(id string) error {
		_, err := a.api.AddExperience(ctx, id, in)
		return err
	})
}

func (a *Aggregate) AddProject(ctx context.Context, in ProjectInput) (Profile, error) {
	return a.mutate(ctx, "add_project", func(id string) error {
		_, err := a.api.AddProject(ctx, id, in)
		return err
	})
}

func (a *Aggregate) AddCertification(ctx context.Context, in CertificationInput) (Profile, error) {
	return a.mutate(ctx, "add_certification", func(id string) error {
		_, err := a.api.AddCertification(ctx, id, in)
		return err
	})
}

func (a *Aggregate) AddAchievement(ctx context.Context, in AchievementInput) (Profile, error) {
	return a.mutate(ctx, "add_achievement", func(id string) error {
		_, err := a.api.AddAchievement(ctx, id, in)
		return err
	})
}

func (a *Aggregate) AddExternalProfile(ctx context.Context, in ExternalProfileInput) (Profile, error) {
	return a.mutate(ctx, "add_external_profile", func(id string) error {
		_, err := a.api.AddExternalProfile(ctx, id, in)
		return err
	})
}

// Delete removes one entity of collection c by id and reloads.
func (a *Aggregate) Delete(ctx context.Context, c Collection, id string) (Profile, error) {
	return a.mutate(ctx, "delete_"+string(c), func(string) error {
		return a.api.DeleteItem(ctx, c, id)
	})
}

func (a *Aggregate) DeleteEducation(ctx context.Context, id string) (Profile, error) {
	return a.Delete(ctx, CollectionEducation, id)
}

func (a *Aggregate) DeleteSkill(ctx context.Context, id string) (Profile, error) {
	return a.Delete(ctx, CollectionSkills, id)
}

func (a *Aggregate) DeleteExperience(ctx context.Context, id string) (Profile, error) {
	return a.Delete(ctx, CollectionExperience, id)
}

func (a *Aggregate) DeleteProject(ctx context.Context, id string) (Profile, error) {
	return a.Delete(ctx, CollectionProjects, id)
}

func (a *Aggregate) DeleteCertification(ctx context.Context, id string) (Profile, error) {
	return a.Delete(ctx, CollectionCertifications, id)
}

func (a *Aggregate) DeleteAchievement(ctx context.Context, id string) (Profile, error) {
	return a.Delete(ctx, CollectionAchievements, id)
}

func (a *Aggregate) DeleteExternalProfile(ctx context.Context, id string) (Profile, error) {
	return a.Delete(ctx, CollectionExternalProfiles, id)
}
