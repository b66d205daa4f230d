package vehicle

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// PostgresRepository implements Repository over database/sql. The
// one-vehicle-per-user rule is enforced by a unique index on user_id;
// the unique violation maps to ErrAlreadyLinked.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, v *Vehicle) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO user_vehicles (user_id, plate_number, model, linked_at)
		 VALUES ($1, $2, $3, NOW())
		 RETURNING id, linked_at`,
		v.UserID, v.PlateNumber, v.Model,
	).Scan(&v.ID, &v.LinkedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrAlreadyLinked
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*Vehicle, error) {
	v := &Vehicle{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, plate_number, model, linked_at
		 FROM user_vehicles WHERE user_id = $1`,
		userID,
	).Scan(&v.ID, &v.UserID, &v.PlateNumber, &v.Model, &v.LinkedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_vehicles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
