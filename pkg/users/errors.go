package users

import (
	"errors"

	"github.com/artem13815/oneresume/pkg/validation"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCredentialsRequired = validation.Error("Please enter both email and password.")
	ErrPasswordTooShort    = validation.Error("Password must be at least 6 characters.")
	ErrUsernameRequired    = validation.Error("Username is required.")
)

// MinPasswordLength mirrors the sign-in form rule.
const MinPasswordLength = 6
