package domain

import "strings"

type UserID string

type User struct {
	ID    UserID
	Name  string
	Email string
}

func (u User) IsZero() bool {
	return strings.TrimSpace(string(u.ID)) == "" &&
		strings.TrimSpace(u.Name) == "" &&
		strings.TrimSpace(u.Email) == ""
}

// DisplayName falls back to the email when the server sent no name.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return strings.TrimSpace(u.Email)
}

type Registration struct {
	Name     string
	Email    string
	Password string
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return NewValidationError("Name, email and password are required.")
	}
	return nil
}
