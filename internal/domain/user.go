package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleManager
}

type User struct {
	ID        uuid.UUID
	Username  string
	Password  password
	Age       int
	Role      Role
	CreatedAt time.Time
}

func NewUser(username string, age int) *User {
	return &User{
		ID:       uuid.New(),
		Username: username,
		Age:      age,
		Role:     RoleCustomer,
	}
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetById(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) (*User, error)
}
