package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/artem13815/oneresume/pkg/session"
	"github.com/artem13815/oneresume/pkg/users"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Claims включает стандартные поля и email пользователя.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

var _ users.SessionIssuer = (*Generator)(nil)

// Issue signs a session token for user.
func (g *Generator) Issue(ctx context.Context, user users.User) (session.Session, error) {
	if user.ID == "" {
		return session.Session{}, errors.New("jwt: user id is empty")
	}
	now := g.now().UTC().Truncate(time.Second)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    g.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Email: user.Email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return session.Session{}, fmt.Errorf("sign token: %w", err)
	}
	return session.Session{
		ID:        claims.ID,
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(g.ttl),
	}, nil
}

// Parse validates a token (HS256, issuer) and rebuilds its session.
func (g *Generator) Parse(tokenStr string) (session.Session, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(g.now),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return session.Session{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return session.Session{}, ErrInvalidToken
	}
	s := session.Session{
		ID:     claims.ID,
		UserID: claims.Subject,
		Email:  claims.Email,
		Token:  tokenStr,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return s, nil
}
