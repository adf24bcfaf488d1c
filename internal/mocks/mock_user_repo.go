package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	CreateFunc        func(ctx context.Context, user *domain.User) error
	GetByIdFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	UpdateRoleFunc    func(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *MockUserRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	return m.UpdateRoleFunc(ctx, id, role)
}
