// Package vehicle links one vehicle record to a user account.
package vehicle

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("vehicle not found")
	ErrAlreadyLinked = errors.New("vehicle already linked")
)

// Vehicle is the record linked to an account. An account holds at most
// one vehicle; linking a second requires unlinking first.
type Vehicle struct {
	ID          int64
	UserID      int64
	PlateNumber string
	Model       string
	LinkedAt    time.Time
}

// Repository is the persistence contract for vehicle links.
type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByUserID(ctx context.Context, userID int64) (*Vehicle, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}
