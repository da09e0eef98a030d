package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/oneresume/pkg/session"
	"github.com/artem13815/oneresume/pkg/users"
)

func TestGenerator_IssueAndParse(t *testing.T) {
	g := NewGenerator("secret", "oneresume", time.Hour)

	s, err := g.Issue(context.Background(), users.User{ID: "u1", Email: "a@b.c"})
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, time.Hour, s.ExpiresAt.Sub(s.IssuedAt))

	parsed, err := g.Parse(s.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", parsed.UserID)
	assert.Equal(t, "a@b.c", parsed.Email)
	assert.Equal(t, s.ID, parsed.ID)
	assert.True(t, s.ExpiresAt.Equal(parsed.ExpiresAt))
}

func TestGenerator_RejectsForeignIssuerAndSecret(t *testing.T) {
	s, err := NewGenerator("secret", "other", time.Hour).Issue(context.Background(), users.User{ID: "u1"})
	require.NoError(t, err)

	_, err = NewGenerator("secret", "oneresume", time.Hour).Parse(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewGenerator("different", "other", time.Hour).Parse(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerator_RejectsExpired(t *testing.T) {
	g := NewGenerator("secret", "oneresume", time.Minute)
	g.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	s, err := g.Issue(context.Background(), users.User{ID: "u1"})
	require.NoError(t, err)

	g.now = time.Now
	_, err = g.Parse(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerator_RequiresUserID(t *testing.T) {
	_, err := NewGenerator("secret", "x", time.Hour).Issue(context.Background(), users.User{})
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	g := NewGenerator("secret", "oneresume", time.Hour)
	s, err := g.Issue(context.Background(), users.User{ID: "u42"})
	require.NoError(t, err)

	app := fiber.New()
	app.Use(NewAuthMiddleware(g))
	app.Get("/me", func(c *fiber.Ctx) error {
		got, ok := session.FromContext(c.UserContext())
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"local": c.Locals("userId"), "session": got.UserID})
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"bearer", "Bearer " + s.Token, http.StatusOK},
		{"bare token", s.Token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
