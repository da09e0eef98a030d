package users

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/artem13815/oneresume/pkg/remote"
	"github.com/artem13815/oneresume/pkg/session"
	"github.com/artem13815/oneresume/pkg/validation"
)

// API wraps the identity endpoints of the OneResume API.
type API struct {
	client *remote.Client
}

func NewAPI(client *remote.Client) *API {
	return &API{client: client}
}

// LoginOrRegister signs an existing user in or registers a new one.
func (a *API) LoginOrRegister(ctx context.Context, creds Credentials) (User, error) {
	if err := creds.Validate(); err != nil {
		return User{}, err
	}
	u, err := remote.Call[User](ctx, a.client, http.MethodPost, "/api/users/login-or-register", creds)
	if err != nil {
		if remote.IsUnauthorized(err) {
			return User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return User{}, err
	}
	return u, nil
}

func (a *API) Create(ctx context.Context, in NewUser) (User, error) {
	if err := validation.Required(in.Username, string(ErrUsernameRequired)); err != nil {
		return User{}, err
	}
	if err := (Credentials{Email: in.Email, Password: in.Password}).Validate(); err != nil {
		return User{}, err
	}
	return remote.Call[User](ctx, a.client, http.MethodPost, "/api/users/", in)
}

func (a *API) List(ctx context.Context) ([]User, error) {
	out, err := remote.Call[[]User](ctx, a.client, http.MethodGet, "/api/users/", nil)
	if out == nil {
		out = []User{}
	}
	return out, err
}

func (a *API) Get(ctx context.Context, id string) (User, error) {
	u, err := remote.Call[User](ctx, a.client, http.MethodGet, "/api/users/"+url.PathEscape(id), nil)
	if remote.IsNotFound(err) {
		return User{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return u, err
}

func (a *API) Delete(ctx context.Context, id string) error {
	return remote.Exec(ctx, a.client, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil)
}

// Validate applies the sign-in form rules before any network call.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return ErrCredentialsRequired
	}
	if utf8.RuneCountInString(c.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// AuthUseCase describes sign-in behavior.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

type AuthResult struct {
	User    User
	Session session.Session
}

type authService struct {
	api    *API
	issuer SessionIssuer
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(api *API, issuer SessionIssuer) AuthUseCase {
	return &authService{api: api, issuer: issuer}
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.api.LoginOrRegister(ctx, Credentials{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return AuthResult{}, err
	}
	sess, err := s.issuer.Issue(ctx, user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue session: %w", err)
	}
	return AuthResult{User: user, Session: sess}, nil
}
