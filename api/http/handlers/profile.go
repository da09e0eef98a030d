package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/oneresume/api/http/presenter"
	"github.com/artem13815/oneresume/pkg/profile"
	"github.com/artem13815/oneresume/pkg/validation"
	"github.com/artem13815/oneresume/pkg/workspace"
)

type ProfileHandler struct {
	workspaces *workspace.Manager
}

func NewProfileHandler(workspaces *workspace.Manager) *ProfileHandler {
	return &ProfileHandler{workspaces: workspaces}
}

type profileResponse struct {
	Profile profile.Profile `json:"profile"`
	Counts  profile.Counts  `json:"counts"`
}

func respondProfile(c *fiber.Ctx, status int, p profile.Profile) error {
	return presenter.JSON(c, status, profileResponse{Profile: p, Counts: p.Counts()})
}

func (h *ProfileHandler) aggregate(c *fiber.Ctx) (*profile.Aggregate, error) {
	uid, err := userID(c)
	if err != nil {
		return nil, err
	}
	return h.workspaces.Get(uid).Profile, nil
}

// loaded makes sure the aggregate has been fetched at least once, so
// mutators can find the profile id.
func (h *ProfileHandler) loaded(c *fiber.Ctx) (*profile.Aggregate, error) {
	agg, err := h.aggregate(c)
	if err != nil {
		return nil, err
	}
	if _, err := agg.Ensure(c.UserContext()); err != nil {
		return nil, err
	}
	return agg, nil
}

// Get перезагружает и возвращает профиль текущего пользователя.
// @Summary Get profile
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profileResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	agg, err := h.aggregate(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := agg.Load(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return respondProfile(c, http.StatusOK, p)
}

// Create создаёт пустой профиль для текущего пользователя.
// @Summary Create profile
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 201 {object} profileResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /profile [post]
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	agg, err := h.aggregate(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := agg.Create(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return respondProfile(c, http.StatusCreated, p)
}

// Delete удаляет профиль пользователя.
// @Summary Delete profile
// @Tags    profile
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile [delete]
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	agg, err := h.loaded(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := agg.DeleteProfile(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// UpsertPersonalInfo replaces the personal info record.
// @Summary Save personal info
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   input body profile.PersonalInfoInput true "personal info"
// @Security BearerAuth
// @Success 200 {object} profileResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /profile/personal-info [put]
func (h *ProfileHandler) UpsertPersonalInfo(c *fiber.Ctx) error {
	var in profile.PersonalInfoInput
	if err := c.BodyParser(&in); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	agg, err := h.loaded(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := agg.UpsertPersonalInfo(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return respondProfile(c, http.StatusOK, p)
}

// AddItem добавляет одну запись в коллекцию профиля.
// @Summary Add profile item
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   collection path string true "education | skills | experience | projects | certifications | achievements | external-profiles"
// @Security BearerAuth
// @Success 201 {object} profileResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile/{collection} [post]
func (h *ProfileHandler) AddItem(c *fiber.Ctx) error {
	coll, err := profile.ParseCollection(c.Params("collection"))
	if err != nil {
		return writeError(c, err)
	}
	agg, err := h.loaded(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := addItem(c, agg, coll)
	if err != nil {
		return writeError(c, err)
	}
	return respondProfile(c, http.StatusCreated, p)
}

const errBadPayload = validation.Error("invalid JSON payload")

func decode[T any](c *fiber.Ctx) (T, error) {
	var in T
	if err := c.BodyParser(&in); err != nil {
		return in, errBadPayload
	}
	return in, nil
}

func addItem(c *fiber.Ctx, agg *profile.Aggregate, coll profile.Collection) (profile.Profile, error) {
	ctx := c.UserContext()
	switch coll {
	case profile.CollectionEducation:
		in, err := decode[profile.EducationInput](c)
		if err != nil {
			return profile.Profile{}, err
		}
		return agg.AddEducation(ctx, in)
	case profile.CollectionSkills:
		in, err := decode[profile.SkillInput](c)
		if err != nil {
			return profile.Profile{}, err
		}
		return agg.AddSkill(ctx, in)
	case profile.CollectionExperience:
		in, err := decode[profile.ExperienceInput](c)
		if err != nil {
			return profile.Profile{}, err
		}
		return agg.AddExperience(ctx, in)
	case profile.CollectionProjects:
		in, err := decode[profile.ProjectInput](c)
		if err != nil {
			return profile.Profile{}, err
		}
		return agg.AddProject(ctx, in)
	case profile.CollectionCertifications:
		in, err := decode[profile.CertificationInput](c)
		if err != nil {
			return profile.Profile{}, err
		}
		return agg.AddCertification(ctx, in)
	case profile.CollectionAchievements:
		in, err := decode[profile.AchievementInput](c)
		if err != nil {
			return profile.Profile{}, err
		}
		return agg.AddAchievement(ctx, in)
	case profile.CollectionExternalProfiles:
		in, err := decode[profile.ExternalProfileInput](c)
		if err != nil {
			return profile.Profile{}, err
		}
		return agg.AddExternalProfile(ctx, in)
	}
	return profile.Profile{}, profile.ErrUnknownCollection
}

// DeleteItem удаляет запись из коллекции профиля.
// @Summary Delete profile item
// @Tags    profile
// @Produce json
// @Param   collection path string true "collection"
// @Param   id path string true "item id"
// @Security BearerAuth
// @Success 200 {object} profileResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /profile/{collection}/{id} [delete]
func (h *ProfileHandler) DeleteItem(c *fiber.Ctx) error {
	coll, err := profile.ParseCollection(c.Params("collection"))
	if err != nil {
		return writeError(c, err)
	}
	agg, err := h.loaded(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := agg.Delete(c.UserContext(), coll, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respondProfile(c, http.StatusOK, p)
}
