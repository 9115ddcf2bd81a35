package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login attempt. The
// message never distinguishes a wrong username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials holds the single admin account, sourced from the
// environment. When passwordHash is set it takes precedence over the
// plaintext password.
type Credentials struct {
	username     string
	password     string
	passwordHash string
}

func NewCredentials(username, password, passwordHash string) *Credentials {
	return &Credentials{
		username:     username,
		password:     password,
		passwordHash: passwordHash,
	}
}

// Verify checks a login attempt against the configured admin account.
func (c *Credentials) Verify(username, password string) error {
	if c.username == "" {
		return ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1

	var passOK bool
	if c.passwordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
	}

	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword converts a plaintext password into a bcrypt hash, for
// generating ADMIN_PASSWORD_HASH values.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password: empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
