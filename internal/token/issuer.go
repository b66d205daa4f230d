package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer mints access and refresh tokens. Every call produces a fresh
// jti; the clock and id generator are injectable so issuance is
// deterministic under test.
type Issuer struct {
	signer *Signer
	now    func() time.Time
	newID  func() string
}

// IssuerOption tweaks an Issuer. Used by tests to pin the clock or the
// jti source.
type IssuerOption func(*Issuer)

func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

func WithIDGenerator(newID func() string) IssuerOption {
	return func(i *Issuer) { i.newID = newID }
}

func NewIssuer(signer *Signer, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		signer: signer,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IssueAccess mints an access token for the subject. Lifetime depends on
// the role: 15 minutes for users, 60 for admins.
func (i *Issuer) IssueAccess(userID int64, email string, role Role) (string, *Claims, error) {
	return i.issue(userID, email, role, KindAccess, AccessTTL(role))
}

// IssueRefresh mints a refresh token: 14 days for users, 12 hours for
// admins.
func (i *Issuer) IssueRefresh(userID int64, email string, role Role) (string, *Claims, error) {
	return i.issue(userID, email, role, KindRefresh, RefreshTTL(role))
}

func (i *Issuer) issue(userID int64, email string, role Role, kind Kind, ttl time.Duration) (string, *Claims, error) {
	now := i.now()
	claims := &Claims{
		Email: email,
		Role:  role,
		Typ:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        i.newID(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := i.signer.Sign(claims)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}
