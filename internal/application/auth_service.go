package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports"
)

// AuthService runs the account flows and keeps the SessionStore in step with
// their outcome.
type AuthService struct {
	api     ports.AuthAPI
	session *SessionStore
	guard   *SessionGuard
}

func NewAuthService(api ports.AuthAPI, session *SessionStore, guard *SessionGuard) *AuthService {
	return &AuthService{api: api, session: session, guard: guard}
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, newOperationError(OpLogin, msgLoginFailed, domain.NewValidationError(msgCredentialsRequired))
	}

	session, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, newOperationError(OpLogin, msgLoginFailed, err)
	}

	if err := s.session.Login(ctx, session.User, session.Token); err != nil {
		return domain.Session{}, newOperationError(OpLogin, msgLoginFailed, fmt.Errorf("persist session: %w", err))
	}

	return session, nil
}

// Register creates the account; it does not sign in.
func (s *AuthService) Register(ctx context.Context, registration domain.Registration) (string, error) {
	registration.Name = strings.TrimSpace(registration.Name)
	registration.Email = strings.TrimSpace(registration.Email)
	if err := registration.Validate(); err != nil {
		return "", newOperationError(OpRegister, msgRegisterFailed, err)
	}

	if err := s.api.Register(ctx, registration); err != nil {
		return "", newOperationError(OpRegister, msgRegisterFailed, err)
	}

	return MsgRegistered, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", newOperationError(OpForgotPassword, msgForgotFailed, domain.NewValidationError(msgEmailRequired))
	}

	message, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		return "", newOperationError(OpForgotPassword, msgForgotFailed, err)
	}

	return orDefault(message, MsgResetEmailSent), nil
}

// SendResetLink requests a reset email for the signed-in user.
func (s *AuthService) SendResetLink(ctx context.Context) (string, error) {
	email := strings.TrimSpace(s.session.Current().User.Email)
	if email == "" {
		return "", newOperationError(OpSendResetLink, msgSendLinkFailed, domain.NewValidationError(msgNoUserEmail))
	}

	message, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		return "", newOperationError(OpSendResetLink, msgSendLinkFailed, s.guard.Check(ctx, err))
	}

	return orDefault(message, MsgResetLinkSent), nil
}

func (s *AuthService) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	resetToken = strings.TrimSpace(resetToken)
	if resetToken == "" {
		return "", newOperationError(OpResetPassword, msgResetFailed, domain.NewValidationError(msgResetTokenRequired))
	}
	if strings.TrimSpace(password) == "" {
		return "", newOperationError(OpResetPassword, msgResetFailed, domain.NewValidationError(msgPasswordEmpty))
	}

	message, err := s.api.ResetPassword(ctx, resetToken, password)
	if err != nil {
		return "", newOperationError(OpResetPassword, msgResetFailed, err)
	}

	return orDefault(message, MsgPasswordReset), nil
}

// UpdateProfile saves name and email server-side, then replaces the session
// user with what the server returned.
func (s *AuthService) UpdateProfile(ctx context.Context, name, email string) (domain.User, error) {
	if !s.session.Authenticated() {
		return domain.User{}, newOperationError(OpUpdateProfile, msgProfileFailed, domain.ErrNotAuthenticated)
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return domain.User{}, newOperationError(OpUpdateProfile, msgProfileFailed, domain.NewValidationError(msgProfileRequired))
	}

	user, err := s.api.UpdateProfile(ctx, name, email)
	if err != nil {
		return domain.User{}, newOperationError(OpUpdateProfile, msgProfileFailed, s.guard.Check(ctx, err))
	}

	if err := s.session.UpdateUser(ctx, user); err != nil {
		return domain.User{}, newOperationError(OpUpdateProfile, msgProfileFailed, fmt.Errorf("persist session: %w", err))
	}

	return user, nil
}

func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return newOperationError(OpLogout, msgLogoutFailed, err)
	}

	return nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
