package admin

import (
	"regexp"
	"strings"

	"shop-backend/internal/pkg/errs"
)

var (
	ErrInvalidUsername    = errs.New("invalid admin username")
	ErrPasswordTooWeak    = errs.New("password must be at least 8 characters long")
	ErrInvalidCredentials = errs.New("invalid username or password")
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._\-]{2,63}$`)

type Username struct {
	value string
}

// NewUsername lower-cases the input so logins are case insensitive.
func NewUsername(s string) (Username, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !usernameRegex.MatchString(s) {
		return Username{}, ErrInvalidUsername
	}
	return Username{value: s}, nil
}

func (u Username) Value() string {
	return u.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 8 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

type Credentials struct {
	username Username
	password Password
}

func NewCredentials(usernameStr, passwordStr string) (Credentials, error) {
	username, err := NewUsername(usernameStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		username: username,
		password: password,
	}, nil
}

func (c Credentials) Username() Username {
	return c.username
}

func (c Credentials) Password() Password {
	return c.password
}
