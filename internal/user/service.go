package user

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"drivehub/internal/logging"
)

var (
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTermsNotAgreed     = errors.New("required terms not agreed")
	ErrPasswordMismatch   = errors.New("current password does not match")
)

const bcryptCost = bcrypt.DefaultCost

// RegisterInput carries everything needed to create an account. Email
// verification is checked by the auth orchestration before this input
// reaches the service.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string

	Gender            Gender
	BloodType         BloodType
	EmergencyContact1 string
	EmergencyContact2 string
	EmergencyContact3 string
	CharacterType     string

	TermsOfServiceAgreed bool
	PrivacyPolicyAgreed  bool
}

// Service implements account operations on top of the repository. It
// owns the password hashing primitive; callers only ever pass
// plaintexts across this boundary.
type Service struct {
	repo Repository
	log  logging.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Register creates an ordinary user account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if !in.TermsOfServiceAgreed || !in.PrivacyPolicyAgreed {
		return nil, ErrTermsNotAgreed
	}

	exists, err := s.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	agreedAt := s.now()
	u := &User{
		Email:                in.Email,
		PasswordHash:         string(hash),
		Role:                 RoleUser,
		Name:                 in.Name,
		Phone:                in.Phone,
		Gender:               in.Gender,
		BloodType:            in.BloodType,
		EmergencyContact1:    in.EmergencyContact1,
		EmergencyContact2:    in.EmergencyContact2,
		EmergencyContact3:    in.EmergencyContact3,
		CharacterType:        in.CharacterType,
		TermsOfServiceAgreed: true,
		PrivacyPolicyAgreed:  true,
		TermsAgreedAt:        &agreedAt,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// Authenticate verifies an email+password pair. Lookup misses and hash
// mismatches collapse into one error so responses cannot be used to
// probe which emails exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// AuthenticateAdmin verifies an admin loginId+password pair and the
// ADMIN role.
func (s *Service) AuthenticateAdmin(ctx context.Context, loginID, password string) (*User, error) {
	u, err := s.repo.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.Role != RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, email)
}

// ChangePassword swaps the stored hash after checking the current
// password.
func (s *Service) ChangePassword(ctx context.Context, id int64, current, next string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

func (s *Service) UpdateEmergencyInfo(ctx context.Context, id int64, info EmergencyInfo) (*User, error) {
	if err := s.repo.UpdateEmergencyInfo(ctx, id, info); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}
