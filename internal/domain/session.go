package domain

import "strings"

// Session is the identity and bearer token currently active in the client.
// User and Token are always set and cleared together.
type Session struct {
	User  User
	Token string
}

func NewSession(user User, token string) (Session, error) {
	if user.IsZero() {
		return Session{}, ErrInvalidSession
	}
	if strings.TrimSpace(token) == "" {
		return Session{}, ErrInvalidSession
	}

	return Session{User: user, Token: token}, nil
}

func (s Session) Authenticated() bool {
	return s.Token != "" && !s.User.IsZero()
}
