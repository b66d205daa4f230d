package user

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepository implements Repository over database/sql.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, login_id, password_hash, role, name, phone,
	gender, blood_type, emergency_contact_1, emergency_contact_2, emergency_contact_3,
	character_type, terms_of_service_agreed, privacy_policy_agreed, terms_agreed_at,
	created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, u *User) error {
	query := `INSERT INTO users (email, login_id, password_hash, role, name, phone,
		gender, blood_type, emergency_contact_1, emergency_contact_2, emergency_contact_3,
		character_type, terms_of_service_agreed, privacy_policy_agreed, terms_agreed_at,
		created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6,
		NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		u.Email, u.LoginID, u.PasswordHash, u.Role, u.Name, u.Phone,
		u.Gender, u.BloodType, u.EmergencyContact1, u.EmergencyContact2, u.EmergencyContact3,
		u.CharacterType, u.TermsOfServiceAgreed, u.PrivacyPolicyAgreed, u.TermsAgreedAt,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresRepository) GetByLoginID(ctx context.Context, loginID string) (*User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE login_id = $1`, loginID)
}

func (r *PostgresRepository) getBy(ctx context.Context, query string, arg any) (*User, error) {
	u := &User{}
	var loginID, gender, bloodType sql.NullString
	var termsAgreedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &loginID, &u.PasswordHash, &u.Role, &u.Name, &u.Phone,
		&gender, &bloodType, &u.EmergencyContact1, &u.EmergencyContact2, &u.EmergencyContact3,
		&u.CharacterType, &u.TermsOfServiceAgreed, &u.PrivacyPolicyAgreed, &termsAgreedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	u.LoginID = loginID.String
	u.Gender = Gender(gender.String)
	u.BloodType = BloodType(bloodType.String)
	if termsAgreedAt.Valid {
		t := termsAgreedAt.Time
		u.TermsAgreedAt = &t
	}
	return u, nil
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepository) UpdateEmergencyInfo(ctx context.Context, id int64, info EmergencyInfo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET gender = NULLIF($1, ''), blood_type = NULLIF($2, ''),
			emergency_contact_1 = $3, emergency_contact_2 = $4, emergency_contact_3 = $5,
			character_type = $6, updated_at = NOW()
		 WHERE id = $7`,
		info.Gender, info.BloodType,
		info.EmergencyContact1, info.EmergencyContact2, info.EmergencyContact3,
		info.CharacterType, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
