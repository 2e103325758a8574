// Package services holds the application logic between the HTTP layer
// and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/contacthub/internal/common"
	"github.com/dmitrijs2005/contacthub/internal/logging"
	"github.com/dmitrijs2005/contacthub/internal/server/auth"
	"github.com/dmitrijs2005/contacthub/internal/server/avatars"
	"github.com/dmitrijs2005/contacthub/internal/server/mailer"
	"github.com/dmitrijs2005/contacthub/internal/server/models"
	"github.com/dmitrijs2005/contacthub/internal/server/repositories/users"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService implements signup, email confirmation, login, refresh
// token rotation, and avatar updates.
type UserService struct {
	repo    users.Repository
	tokens  *auth.TokenManager
	mailer  mailer.Mailer
	avatars avatars.Store
	baseURL string
	logger  logging.Logger
}

func NewUserService(repo users.Repository, tokens *auth.TokenManager, m mailer.Mailer, store avatars.Store, baseURL string, logger logging.Logger) *UserService {
	return &UserService{
		repo:    repo,
		tokens:  tokens,
		mailer:  m,
		avatars: store,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Signup registers a new unconfirmed account. The email must be unused;
// a taken address returns common.ErrConflict. The password is stored
// only as a bcrypt hash and the avatar defaults to the account's
// gravatar. The confirmation email goes out in the background and its
// failure never fails the signup.
func (s *UserService) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrConflict
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hash: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Avatar:   avatars.GravatarURL(email),
		Role:     models.RoleUser,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("user create: %w", err)
	}

	s.SendConfirmationEmail(created.Email, created.Username)

	return created, nil
}

// SendConfirmationEmail issues an email-scope token and dispatches the
// confirmation message without blocking the caller. Failures are logged
// and swallowed; the user can request another email later.
func (s *UserService) SendConfirmationEmail(email, username string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error(context.Background(), "confirmation mail panic", "error", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		token, err := s.tokens.CreateEmailToken(email)
		if err != nil {
			s.logger.Error(ctx, "email token create failed", "error", err)
			return
		}

		if err := s.mailer.SendConfirmation(ctx, email, username, s.baseURL, token); err != nil {
			s.logger.Error(ctx, "confirmation mail send failed", "email", email, "error", err)
		}
	}()
}

// RequestConfirmationEmail re-sends the confirmation message for an
// existing unconfirmed account. For an already confirmed account it is
// a no-op reporting success, and an unknown address returns
// common.ErrNotFound.
func (s *UserService) RequestConfirmationEmail(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("user lookup: %w", err)
	}

	if user.Confirmed {
		return nil
	}

	s.SendConfirmationEmail(user.Email, user.Username)
	return nil
}

// ConfirmEmail validates the email-scope token from the confirmation
// link and marks the account confirmed. Confirming twice is a no-op
// reporting success.
func (s *UserService) ConfirmEmail(ctx context.Context, token string) error {
	email, err := s.tokens.Subject(token, auth.ScopeEmail)
	if err != nil {
		return err
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("user lookup: %w", err)
	}

	if user.Confirmed {
		return nil
	}

	if err := s.repo.MarkConfirmed(ctx, email); err != nil {
		return fmt.Errorf("mark confirmed: %w", err)
	}
	return nil
}

// Login authenticates by email and password and issues a fresh token
// pair, persisting the refresh token on the account. Unknown email and
// wrong password both map to common.ErrUnauthorized so the response
// does not leak which accounts exist; an unconfirmed account returns
// common.ErrEmailNotConfirmed.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info(ctx, "login with unknown email", "email", email)
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	if !auth.VerifyPassword(password, user.Password) {
		s.logger.Info(ctx, "login with wrong password", "email", email)
		return nil, common.ErrUnauthorized
	}

	if !user.Confirmed {
		return nil, common.ErrEmailNotConfirmed
	}

	pair, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRefreshToken(ctx, user.Email, &pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return pair, nil
}

// Refresh rotates the token pair. The presented token must carry the
// refresh scope and must equal the single token stored on the account;
// a mismatch revokes the stored token and returns
// common.ErrUnauthorized, so a replayed old token logs the account out
// everywhere. The swap of the stored token is compare-and-swap, losing
// a concurrent rotation race also returns common.ErrUnauthorized.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	email, err := s.tokens.Subject(refreshToken, auth.ScopeRefresh)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		s.logger.Warn(ctx, "refresh token reuse detected", "email", email)
		if err := s.repo.UpdateRefreshToken(ctx, email, nil); err != nil {
			s.logger.Error(ctx, "refresh token revoke failed", "email", email, "error", err)
		}
		return nil, common.ErrUnauthorized
	}

	pair, err := s.issuePair(email)
	if err != nil {
		return nil, err
	}

	err = s.repo.RotateRefreshToken(ctx, email, &refreshToken, &pair.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return pair, nil
}

func (s *UserService) issuePair(email string) (*TokenPair, error) {
	access, err := s.tokens.CreateAccessToken(email)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}

	refresh, err := s.tokens.CreateRefreshToken(email)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// CurrentUser resolves an access-scope token to the account it belongs
// to. Any token or lookup failure maps to common.ErrUnauthorized.
func (s *UserService) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	email, err := s.tokens.Subject(accessToken, auth.ScopeAccess)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	return user, nil
}

// UpdateAvatar uploads the image to object storage under the account's
// stable key and stores the resulting URL on the account.
func (s *UserService) UpdateAvatar(ctx context.Context, email string, body io.Reader, contentType string) (*models.User, error) {
	url, err := s.avatars.Upload(ctx, avatars.Key(email), body, contentType)
	if err != nil {
		return nil, fmt.Errorf("avatar upload: %w", err)
	}

	user, err := s.repo.UpdateAvatar(ctx, email, url)
	if err != nil {
		return nil, fmt.Errorf("avatar update: %w", err)
	}
	return user, nil
}
