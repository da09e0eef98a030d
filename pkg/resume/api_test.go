package resume

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/oneresume/pkg/remote"
	"github.com/artem13815/oneresume/pkg/remote/remotetest"
)

func TestAPI_GenerateListGet(t *testing.T) {
	srv := remotetest.New(t)
	api := NewAPI(remote.New(srv.URL, nil))
	ctx := context.Background()
	pid := srv.SeedProfile("u1")

	empty, err := api.List(ctx, pid)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	res, err := api.Generate(ctx, pid, "Backend Engineer\nGo, Postgres, Kubernetes")
	require.NoError(t, err)
	assert.NotEmpty(t, res.ResumeID)
	assert.Equal(t, "Backend Engineer", res.JobTitle)
	assert.Equal(t, 1, res.Version)
	assert.Equal(t, ConfidenceStrong, res.SkillConfidence["Go"])
	assert.True(t, res.SkillConfidence["Kubernetes"].Known())

	covered, missing := res.CoveredKeywords()
	assert.Equal(t, []string{"backend"}, covered)
	assert.Equal(t, []string{"grpc"}, missing)

	list, err := api.List(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, res.ResumeID, list[0].ID)

	got, err := api.Get(ctx, res.ResumeID)
	require.NoError(t, err)
	assert.Equal(t, pid, got.ProfileID)
}

func TestAPI_ListServerError(t *testing.T) {
	srv := remotetest.New(t)
	api := NewAPI(remote.New(srv.URL, nil))
	srv.Fail(http.MethodGet, "/api/resumes", http.StatusInternalServerError, "db down")

	_, err := api.List(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, "API 500: db down", err.Error())
}

func TestAPI_DownloadRefs(t *testing.T) {
	api := NewAPI(remote.New("http://api.example.com/", nil))

	assert.Equal(t, "http://api.example.com/api/resumes/r1/download?format=docx", api.DownloadURL("r1", FormatDOCX))
	assert.Equal(t, DownloadRefs{
		PDF:  "http://api.example.com/api/resumes/r1/download?format=pdf",
		DOCX: "http://api.example.com/api/resumes/r1/download?format=docx",
	}, api.DownloadRefs("r1"))
}

func TestConfidenceTier_Known(t *testing.T) {
	assert.True(t, ConfidenceWeak.Known())
	assert.False(t, ConfidenceTier("unsure").Known())
}
