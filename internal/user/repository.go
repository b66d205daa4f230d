package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repository is the persistence contract consumed by the services. The
// auth core only ever sees this interface, never the SQL.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByLoginID(ctx context.Context, loginID string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateEmergencyInfo(ctx context.Context, id int64, info EmergencyInfo) error
	Delete(ctx context.Context, id int64) error
}
