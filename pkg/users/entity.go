package users

import (
	"github.com/artem13815/oneresume/pkg/remote"
)

// User is the identity record returned by the OneResume API.
type User struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	CreatedAt remote.Time `json:"created_at"`
}

// Credentials are forwarded to the API as plain fields; hashing, if any,
// happens on the server.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUser is the payload of explicit account creation.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
