package jd

import (
	"context"
	"net/http"
	"net/url"

	"github.com/artem13815/oneresume/pkg/remote"
	"github.com/artem13815/oneresume/pkg/validation"
)

// ErrTextTooShort is returned before any request when the JD is too short.
const ErrTextTooShort = validation.Error("JD text must be at least 20 characters.")

// Analyzer is what the analyze workflow needs from the service.
type Analyzer interface {
	Analyze(ctx context.Context, rawText string) (Analysis, error)
}

type API struct {
	client *remote.Client
}

func NewAPI(client *remote.Client) *API {
	return &API{client: client}
}

type analyzeRequest struct {
	RawText string `json:"raw_text"`
}

// Analyze sends the raw JD text for field extraction.
func (a *API) Analyze(ctx context.Context, rawText string) (Analysis, error) {
	out, err := remote.Call[Analysis](ctx, a.client, http.MethodPost, "/api/jd/analyze", analyzeRequest{RawText: rawText})
	if err != nil {
		return Analysis{}, err
	}
	out.StructuredData.normalize()
	return out, nil
}

func (a *API) Get(ctx context.Context, id string) (Analysis, error) {
	out, err := remote.Call[Analysis](ctx, a.client, http.MethodGet, "/api/jd/"+url.PathEscape(id), nil)
	if err != nil {
		return Analysis{}, err
	}
	out.StructuredData.normalize()
	return out, nil
}

var _ Analyzer = (*API)(nil)
