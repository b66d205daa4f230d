package token

import (
	"context"
	"errors"
	"time"

	"drivehub/internal/logging"
)

var (
	ErrExpired = errors.New("token expired")
	ErrRevoked = errors.New("token revoked")
)

// RevocationChecker reports whether a jti is on the deny-list for a
// given token kind.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string, kind Kind) (bool, error)
}

// Validator checks a presented token end to end: signature, structural
// shape, expiry, and revocation status. It holds no mutable state and is
// safe for concurrent use.
type Validator struct {
	signer  *Signer
	revoked RevocationChecker
	now     func() time.Time
	log     logging.Logger
}

func NewValidator(signer *Signer, revoked RevocationChecker, log logging.Logger, opts ...ValidatorOption) *Validator {
	v := &Validator{
		signer:  signer,
		revoked: revoked,
		now:     time.Now,
		log:     log,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type ValidatorOption func(*Validator)

func WithValidatorClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) { v.now = now }
}

// Validate returns the claims of a live, unrevoked token, or one of
// ErrMalformed, ErrBadSignature, ErrExpired, ErrRevoked.
//
// When the revocation store is unreachable the validator fails OPEN and
// treats the token as not revoked. Revocation is a narrowing of an
// otherwise valid credential; refusing every request while Redis is down
// would turn a cache outage into a full login outage. The opposite
// policy applies to email verification (see internal/verification).
func (v *Validator) Validate(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := v.signer.Verify(tokenStr)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil || !v.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}

	revoked, err := v.revoked.IsRevoked(ctx, claims.ID, claims.Kind())
	if err != nil {
		v.log.Warn(ctx, "revocation check failed, failing open", "jti", claims.ID, "error", err)
	} else if revoked {
		return nil, ErrRevoked
	}

	return claims, nil
}
