// Package auth contains the credential and session lifecycle: signup, login,
// token issuance, token authentication, and the admin-only user listing.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/DorLamesh/devops-web-app/internal/common"
	"github.com/DorLamesh/devops-web-app/internal/server/audit"
	"github.com/DorLamesh/devops-web-app/internal/server/config"
	"github.com/DorLamesh/devops-web-app/internal/server/models"
	"github.com/DorLamesh/devops-web-app/internal/server/passwd"
	"github.com/DorLamesh/devops-web-app/internal/server/repositories/tokens"
	"github.com/DorLamesh/devops-web-app/internal/server/repositories/users"
)

const bootstrapAdminEmail = "admin@example.com"

// Service provides authentication-related operations:
// - Signup: validate the password, create the user, issue a session token
// - Login: verify credentials and issue a session token
// - Authenticate: resolve a presented token to a user
// - Profile / AdminListUsers: the token-protected read flows
type Service struct {
	users      users.Repository
	tokens     tokens.Repository
	sink       audit.Sink
	bcryptCost int
	adminPass  string
}

// NewService constructs a Service using repositories and server config.
func NewService(u users.Repository, t tokens.Repository, sink audit.Sink, cfg *config.Config) *Service {
	return &Service{
		users:      u,
		tokens:     t,
		sink:       sink,
		bcryptCost: cfg.BcryptCost,
		adminPass:  cfg.AdminPassword,
	}
}

// Issue mints an opaque session token for the user and persists the
// association. A token collision is astronomically unlikely but retryable,
// so one regeneration is attempted before giving up.
func (s *Service) Issue(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	err := s.tokens.Create(ctx, token, userID)
	if errors.Is(err, common.ErrorConflict) {
		token = uuid.NewString()
		err = s.tokens.Create(ctx, token, userID)
	}
	if err != nil {
		return "", fmt.Errorf("error storing token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a presented token to its user. An empty token fails
// immediately without a store round-trip. The returned user carries no
// password hash.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching token: %w", err)
	}
	return user, nil
}

// Login verifies the supplied credentials and, on success, issues a fresh
// session token. The identifier is matched against username or email in a
// single query; first match wins. An unknown identifier and a wrong password
// are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, identifier, password, ip string) (string, error) {
	user, err := s.users.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	if err := passwd.Compare(user.PasswordHash, password); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := s.Issue(ctx, user.ID)
	if err != nil {
		return "", err
	}

	s.sink.Emit(&audit.Event{Action: audit.ActionLogin, UserID: &user.ID, IP: ip})

	return token, nil
}

// Signup creates a new user and issues their first session token. The
// password policy runs first; its rejection reason is returned as a
// *passwd.PolicyError. A duplicate username or email yields
// common.ErrorConflict without revealing which field collided.
func (s *Service) Signup(ctx context.Context, username, email, password string, strict bool, ip string) (string, error) {
	if err := passwd.Validate(password, strict); err != nil {
		return "", err
	}

	if err := s.checkTaken(ctx, username); err != nil {
		return "", err
	}
	if email != "" {
		if err := s.checkTaken(ctx, email); err != nil {
			return "", err
		}
	}

	hash, err := passwd.Hash(password, s.bcryptCost)
	if err != nil {
		return "", err
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	user, err = s.users.Create(ctx, user)
	if err != nil {
		// A concurrent signup can still trip the unique constraint after the
		// pre-check; that race surfaces as the same conflict.
		if errors.Is(err, common.ErrorConflict) {
			return "", common.ErrorConflict
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.Issue(ctx, user.ID)
	if err != nil {
		return "", err
	}

	s.sink.Emit(&audit.Event{Action: audit.ActionSignup, UserID: &user.ID, IP: ip})

	return token, nil
}

func (s *Service) checkTaken(ctx context.Context, identifier string) error {
	_, err := s.users.GetByUsernameOrEmail(ctx, identifier)
	if err == nil {
		return common.ErrorConflict
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return fmt.Errorf("error searching user: %w", err)
}

// Profile returns the public view of the token's owner. Failed
// authentication produces no audit event.
func (s *Service) Profile(ctx context.Context, token, ip string) (*models.PublicUser, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	s.sink.Emit(&audit.Event{Action: audit.ActionProfileView, UserID: &user.ID, IP: ip})

	return user.Public(), nil
}

// AdminListUsers returns every user's public view including the creation
// timestamp. Only the fixed admin identity may call it.
func (s *Service) AdminListUsers(ctx context.Context, token, ip string) ([]*models.PublicUser, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.Username != common.AdminUsername {
		return nil, common.ErrorForbidden
	}

	all, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	result := make([]*models.PublicUser, 0, len(all))
	for _, u := range all {
		result = append(result, u.Public())
	}

	s.sink.Emit(&audit.Event{Action: audit.ActionAdminUsersList, UserID: &user.ID, IP: ip})

	return result, nil
}

// EnsureAdmin creates the bootstrap admin user with the configured default
// password if it does not exist yet. It is idempotent; a concurrent creation
// is treated as success.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	_, err := s.users.GetByUsername(ctx, common.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error searching admin user: %w", err)
	}

	hash, err := passwd.Hash(s.adminPass, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &models.User{Username: common.AdminUsername, Email: bootstrapAdminEmail, PasswordHash: hash}
	if _, err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil
		}
		return fmt.Errorf("error creating admin user: %w", err)
	}

	return nil
}
