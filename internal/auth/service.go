// Package auth orchestrates the session lifecycle: registration gated on
// email verification, login, refresh rotation, and logout revocation.
package auth

import (
	"context"
	"errors"
	"time"

	"drivehub/internal/logging"
	"drivehub/internal/token"
	"drivehub/internal/user"
)

var (
	ErrNotVerified    = errors.New("email not verified")
	ErrMissingToken   = errors.New("no token presented")
	ErrWrongTokenType = errors.New("wrong token type for this operation")
)

// UserDirectory is the slice of the user service the session core needs.
type UserDirectory interface {
	Register(ctx context.Context, in user.RegisterInput) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
	AuthenticateAdmin(ctx context.Context, loginID, password string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	Delete(ctx context.Context, id int64) error
}

// EmailVerifier reports and clears the verified flag written by the
// verification code flow.
type EmailVerifier interface {
	IsVerified(ctx context.Context, email string) bool
	ClearVerification(ctx context.Context, email string) error
}

// Revoker puts a jti on the deny-list for the remainder of its lifetime.
type Revoker interface {
	Revoke(ctx context.Context, jti string, kind token.Kind, ttl time.Duration) error
}

// TokenValidator checks a presented token end to end.
type TokenValidator interface {
	Validate(ctx context.Context, tokenStr string) (*token.Claims, error)
}

// TokenPair is one issuance: a fresh access token and a fresh refresh
// token for the same subject.
type TokenPair struct {
	AccessToken   string
	AccessClaims  *token.Claims
	RefreshToken  string
	RefreshClaims *token.Claims
}

// Service wires the user directory, the verification flow, and the token
// core into the operations the HTTP layer exposes.
type Service struct {
	users     UserDirectory
	verifier  EmailVerifier
	issuer    *token.Issuer
	validator TokenValidator
	revoker   Revoker
	log       logging.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(users UserDirectory, verifier EmailVerifier, issuer *token.Issuer,
	validator TokenValidator, revoker Revoker, log logging.Logger, opts ...Option) *Service {
	s := &Service{
		users:     users,
		verifier:  verifier,
		issuer:    issuer,
		validator: validator,
		revoker:   revoker,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account for an email that passed code verification
// and signs the new user in. The verified flag is consumed on success so
// it cannot back a second registration attempt.
func (s *Service) Register(ctx context.Context, in user.RegisterInput) (*user.User, *TokenPair, error) {
	if !s.verifier.IsVerified(ctx, in.Email) {
		return nil, nil, ErrNotVerified
	}

	u, err := s.users.Register(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	if err := s.verifier.ClearVerification(ctx, in.Email); err != nil {
		s.log.Warn(ctx, "failed to clear verified flag", "email", in.Email, "error", err)
	}

	pair, err := s.issuePair(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Login authenticates an ordinary user by email and password.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *TokenPair, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issuePair(u)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info(ctx, "login", "user_id", u.ID, "role", u.Role)
	return u, pair, nil
}

// AdminLogin authenticates an admin by loginId and password.
func (s *Service) AdminLogin(ctx context.Context, loginID, password string) (*user.User, *TokenPair, error) {
	u, err := s.users.AuthenticateAdmin(ctx, loginID, password)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issuePair(u)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info(ctx, "admin login", "user_id", u.ID)
	return u, pair, nil
}

// Refresh rotates a session. The presented refresh token must be live and
// unrevoked; it is revoked for its remaining lifetime before the new pair
// is minted, so each refresh token funds one rotation. The accompanying
// access token, when presented, is revoked best-effort.
//
// Two concurrent calls with the same refresh token can both pass the
// revocation check and both receive a pair. That window is accepted: the
// rotation is idempotent in effect and the old token still dies.
func (s *Service) Refresh(ctx context.Context, refreshToken, accessToken string) (*user.User, *TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, ErrMissingToken
	}

	claims, err := s.validator.Validate(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}
	if claims.Kind() != token.KindRefresh {
		return nil, nil, ErrWrongTokenType
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, err
	}

	if err := s.revoker.Revoke(ctx, claims.ID, token.KindRefresh, claims.Remaining(s.now())); err != nil {
		return nil, nil, err
	}
	s.revokeBestEffort(ctx, accessToken, token.KindAccess)

	// Re-read the account so role changes and deletions take effect at
	// the next rotation rather than at refresh-token expiry.
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(u)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info(ctx, "session rotated", "user_id", u.ID, "old_jti", claims.ID)
	return u, pair, nil
}

// Logout revokes whatever tokens the client presented. Both revocations
// are best-effort: a logout never fails because the deny-list is down.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken string) {
	s.revokeBestEffort(ctx, accessToken, token.KindAccess)
	s.revokeBestEffort(ctx, refreshToken, token.KindRefresh)
}

// DeleteAccount removes the account and kills the presented session.
func (s *Service) DeleteAccount(ctx context.Context, userID int64, accessToken, refreshToken string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.Logout(ctx, accessToken, refreshToken)
	return nil
}

func (s *Service) issuePair(u *user.User) (*TokenPair, error) {
	role := token.Role(u.Role)

	access, accessClaims, err := s.issuer.IssueAccess(u.ID, u.Email, role)
	if err != nil {
		return nil, err
	}
	refresh, refreshClaims, err := s.issuer.IssueRefresh(u.ID, u.Email, role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:   access,
		AccessClaims:  accessClaims,
		RefreshToken:  refresh,
		RefreshClaims: refreshClaims,
	}, nil
}

// revokeBestEffort validates and revokes a presented token of the given
// kind. Malformed, expired, or mistyped tokens are ignored; there is
// nothing live to revoke.
func (s *Service) revokeBestEffort(ctx context.Context, tokenStr string, kind token.Kind) {
	if tokenStr == "" {
		return
	}
	claims, err := s.validator.Validate(ctx, tokenStr)
	if err != nil || claims.Kind() != kind {
		return
	}
	if err := s.revoker.Revoke(ctx, claims.ID, kind, claims.Remaining(s.now())); err != nil {
		s.log.Warn(ctx, "best-effort revocation failed", "jti", claims.ID, "kind", kind, "error", err)
	}
}
