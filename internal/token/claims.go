// Package token implements the signed-credential core: claims shape,
// HS256 signing and verification, role-aware issuance, and validation
// against expiry and the revocation deny-list.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the account role carried inside a token. An absent role is
// treated as RoleUser.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Kind distinguishes access tokens from refresh tokens. Tokens minted
// before the type claim existed carry no kind and are treated as access.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Lifetimes per role. Admin access tokens live longer because the admin
// console keeps sessions open; admin refresh tokens live shorter to cap
// the blast radius of a stolen admin credential.
const (
	AccessTTLUser   = 15 * time.Minute
	AccessTTLAdmin  = 60 * time.Minute
	RefreshTTLUser  = 14 * 24 * time.Hour
	RefreshTTLAdmin = 12 * time.Hour
)

var ErrBadSubject = errors.New("token subject is not a numeric user id")

// Claims is the signed payload of every token issued by this service.
// ID (jti), Subject, IssuedAt and ExpiresAt come from RegisteredClaims.
type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
	Typ   Kind   `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrBadSubject
	}
	return id, nil
}

// Kind returns the token kind, defaulting to access for legacy tokens
// that predate the type claim.
func (c *Claims) Kind() Kind {
	if c.Typ == "" {
		return KindAccess
	}
	return c.Typ
}

// EffectiveRole defaults an absent role claim to RoleUser.
func (c *Claims) EffectiveRole() Role {
	if c.Role == "" {
		return RoleUser
	}
	return c.Role
}

// Remaining reports how much lifetime the token has left at now.
// Non-positive means the token is already unusable.
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}

// AccessTTL returns the access-token lifetime for a role.
func AccessTTL(role Role) time.Duration {
	if role == RoleAdmin {
		return AccessTTLAdmin
	}
	return AccessTTLUser
}

// RefreshTTL returns the refresh-token lifetime for a role.
func RefreshTTL(role Role) time.Duration {
	if role == RoleAdmin {
		return RefreshTTLAdmin
	}
	return RefreshTTLUser
}
