package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/oneresume/pkg/session"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, nil)
}

func TestCall_DecodesPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/things", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "widget", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"t1","name":"widget"}`)
	})

	got, err := Call[item](context.Background(), c, http.MethodPost, "/api/things", map[string]string{"name": "widget"})
	require.NoError(t, err)
	assert.Equal(t, item{ID: "t1", Name: "widget"}, got)
}

func TestCall_NoContentIsEmptySuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	got, err := Call[item](context.Background(), c, http.MethodDelete, "/api/things/t1", nil)
	require.NoError(t, err)
	assert.Equal(t, item{}, got)
}

func TestCall_ServiceErrorCarriesStatusAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"detail":"Profile already exists"}`)
	})

	_, err := Call[item](context.Background(), c, http.MethodPost, "/api/profiles/u1", nil)
	require.Error(t, err)

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.Status)
	assert.Equal(t, `API 409: {"detail":"Profile already exists"}`, err.Error())
	assert.False(t, IsNotFound(err))
}

func TestCall_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	})
	_, err := Call[item](context.Background(), c, http.MethodGet, "/api/things/x", nil)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestCall_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})
	_, err := Call[item](context.Background(), c, http.MethodGet, "/api/things/x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Zero(t, StatusOf(err))
}

func TestCall_AttachesSessionAndRequestID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "u1", r.Header.Get("X-User-ID"))
		assert.Equal(t, "rid-1", r.Header.Get("X-Request-ID"))
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := session.NewContext(context.Background(), session.Session{UserID: "u1", Token: "tok"})
	ctx = WithRequestID(ctx, "rid-1")
	require.NoError(t, Exec(ctx, c, http.MethodDelete, "/api/users/u1", nil))
}

func TestCall_WithoutSessionSendsNoAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, Exec(context.Background(), c, http.MethodGet, "/", nil))
}

func TestDownloadURL(t *testing.T) {
	c := New("http://api.example.com/", nil)
	assert.Equal(t, "http://api.example.com/api/resumes/r1/download?format=docx", c.DownloadURL("r1", "docx"))
	assert.Equal(t, "http://api.example.com/api/resumes/r1/download?format=pdf", c.DownloadURL("r1", ""))
}

func TestNew_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("  ", nil).BaseURL)
}

func TestTime_Unmarshal(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-05-01T10:20:30Z"`:        time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC),
		`"2024-05-01T10:20:30.123456"`: time.Date(2024, 5, 1, 10, 20, 30, 123456000, time.UTC),
		`"2024-05-01T12:20:30+02:00"`:   time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC),
	}
	for in, want := range cases {
		var got Time
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.True(t, want.Equal(got.Time), "%s: got %s", in, got.Time)
	}

	var null Time
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	assert.True(t, null.IsZero())

	var bad Time
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}
