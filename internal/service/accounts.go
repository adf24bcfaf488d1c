package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type Accounts struct {
	logger *slog.Logger
	users  domain.UserRepository
}

func NewAccounts(logger *slog.Logger, users domain.UserRepository) *Accounts {
	return &Accounts{
		logger: logger,
		users:  users,
	}
}

func (a *Accounts) Register(ctx context.Context, username, password string, age int) (*domain.User, error) {
	user := domain.NewUser(username, age)

	err := user.Password.Set(password)
	if err != nil {
		return nil, err
	}

	err = a.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate does not reveal whether the username exists.
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}

		return nil, err
	}

	match, err := user.Password.Matches(password)
	if err != nil {
		return nil, err
	}

	if !match {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (a *Accounts) FindById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := a.users.GetById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}

	return user, nil
}

func (a *Accounts) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	user, err := a.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}

	a.logger.Info("user role changed", "user_id", id, "role", role)

	return user, nil
}

// EnsureManager creates the manager account, or promotes an existing user with
// that username. Calling it again is harmless.
func (a *Accounts) EnsureManager(ctx context.Context, username, password string, age int) error {
	user, err := a.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		user, err = a.Register(ctx, username, password, age)
		if err != nil {
			return fmt.Errorf("failed to create manager %q: %w", username, err)
		}
	case err != nil:
		return err
	}

	if user.IsManager() {
		return nil
	}

	_, err = a.UpdateRole(ctx, user.ID, domain.RoleManager)
	return err
}
