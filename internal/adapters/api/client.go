package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports"
)

const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathForgotPassword = "/auth/forgot-password"
	pathResetPassword  = "/auth/reset-password/"
	pathProfile        = "/profile"
	pathNotes          = "/notes"
	pathCreateNote     = "/notes/create"
)

// Client exposes the server's endpoints as typed calls over a Gateway.
type Client struct {
	gateway *Gateway
}

var (
	_ ports.AuthAPI  = (*Client)(nil)
	_ ports.NotesAPI = (*Client)(nil)
)

func NewClient(gateway *Gateway) *Client {
	return &Client{gateway: gateway}
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var resp loginResponse
	if err := c.gateway.Do(ctx, http.MethodPost, pathLogin, credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return domain.Session{}, err
	}
	if resp.User == nil {
		return domain.Session{}, errors.New("login response missing user")
	}

	session, err := domain.NewSession(resp.User.toDomain(), resp.Token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login response: %w", err)
	}

	return session, nil
}

func (c *Client) Register(ctx context.Context, registration domain.Registration) error {
	return c.gateway.Do(ctx, http.MethodPost, pathRegister, registerRequest{
		Name:     registration.Name,
		Email:    registration.Email,
		Password: registration.Password,
	}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	if err := c.gateway.Do(ctx, http.MethodPost, pathForgotPassword, emailRequest{Email: email}, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	var resp messageResponse
	path := pathResetPassword + url.PathEscape(resetToken)
	if err := c.gateway.Do(ctx, http.MethodPost, path, passwordRequest{Password: password}, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name, email string) (domain.User, error) {
	var resp profileResponse
	if err := c.gateway.Do(ctx, http.MethodPut, pathProfile, profileRequest{Name: name, Email: email}, &resp); err != nil {
		return domain.User{}, err
	}
	if resp.User == nil {
		return domain.User{}, errors.New("profile response missing user")
	}

	user := resp.User.toDomain()
	if user.IsZero() {
		return domain.User{}, errors.New("profile response has an empty user")
	}

	return user, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]domain.Note, error) {
	var raw json.RawMessage
	if err := c.gateway.Do(ctx, http.MethodGet, pathNotes, nil, &raw); err != nil {
		return nil, err
	}

	return decodeNoteList(raw)
}

// CreateNote ignores the response body; callers re-list to pick up
// server-assigned fields.
func (c *Client) CreateNote(ctx context.Context, input domain.NoteInput) error {
	return c.gateway.Do(ctx, http.MethodPost, pathCreateNote, noteRequest{Title: input.Title, Content: input.Content}, nil)
}

func (c *Client) UpdateNote(ctx context.Context, id domain.NoteID, input domain.NoteInput) error {
	return c.gateway.Do(ctx, http.MethodPut, notePath(id), noteRequest{Title: input.Title, Content: input.Content}, nil)
}

func (c *Client) DeleteNote(ctx context.Context, id domain.NoteID) error {
	return c.gateway.Do(ctx, http.MethodDelete, notePath(id), nil, nil)
}

func notePath(id domain.NoteID) string {
	return pathNotes + "/" + url.PathEscape(string(id))
}
