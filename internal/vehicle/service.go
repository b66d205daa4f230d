package vehicle

import (
	"context"
	"errors"

	"drivehub/internal/logging"
)

// Service wraps the repository with the link/unlink rules.
type Service struct {
	repo Repository
	log  logging.Logger
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Link attaches a vehicle to the user. A user with a vehicle already
// linked gets ErrAlreadyLinked, whether from the pre-check or from the
// unique index when two requests race.
func (s *Service) Link(ctx context.Context, userID int64, plateNumber, model string) (*Vehicle, error) {
	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return nil, ErrAlreadyLinked
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	v := &Vehicle{UserID: userID, PlateNumber: plateNumber, Model: model}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "vehicle linked", "user_id", userID, "vehicle_id", v.ID)
	return v, nil
}

func (s *Service) GetForUser(ctx context.Context, userID int64) (*Vehicle, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) Unlink(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	s.log.Info(ctx, "vehicle unlinked", "user_id", userID)
	return nil
}
