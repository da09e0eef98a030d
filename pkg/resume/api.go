package resume

import (
	"context"
	"net/http"
	"net/url"

	"github.com/artem13815/oneresume/pkg/remote"
	"github.com/artem13815/oneresume/pkg/validation"
)

// ErrJDTooShort is returned before any request when the JD is too short.
const ErrJDTooShort = validation.Error("Job description must be at least 20 characters.")

// Generator is what the generate workflow needs from the service.
type Generator interface {
	Generate(ctx context.Context, profileID, jdText string) (GenerationResult, error)
	DownloadRefs(resumeID string) DownloadRefs
}

type API struct {
	client *remote.Client
}

func NewAPI(client *remote.Client) *API {
	return &API{client: client}
}

type generateRequest struct {
	ProfileID string `json:"profile_id"`
	JDText    string `json:"jd_text"`
}

// Generate asks the service for a resume tailored to jdText.
func (a *API) Generate(ctx context.Context, profileID, jdText string) (GenerationResult, error) {
	out, err := remote.Call[GenerationResult](ctx, a.client, http.MethodPost, "/api/resumes/generate",
		generateRequest{ProfileID: profileID, JDText: jdText})
	if err != nil {
		return GenerationResult{}, err
	}
	out.normalize()
	return out, nil
}

// List returns the generated documents of a profile. The service answers
// 404 when there are none; that is an empty list here.
func (a *API) List(ctx context.Context, profileID string) ([]Resume, error) {
	path := "/api/resumes/?profile_id=" + url.QueryEscape(profileID)
	out, err := remote.Call[[]Resume](ctx, a.client, http.MethodGet, path, nil)
	if err != nil {
		if remote.IsNotFound(err) {
			return []Resume{}, nil
		}
		return nil, err
	}
	if out == nil {
		out = []Resume{}
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, id string) (Resume, error) {
	return remote.Call[Resume](ctx, a.client, http.MethodGet, "/api/resumes/"+url.PathEscape(id), nil)
}

// DownloadURL is the address of the rendered document. It is handed to the
// caller and never fetched here.
func (a *API) DownloadURL(resumeID string, format Format) string {
	return a.client.DownloadURL(resumeID, string(format))
}

func (a *API) DownloadRefs(resumeID string) DownloadRefs {
	return DownloadRefs{
		PDF:  a.DownloadURL(resumeID, FormatPDF),
		DOCX: a.DownloadURL(resumeID, FormatDOCX),
	}
}

var _ Generator = (*API)(nil)
