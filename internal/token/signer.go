package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("malformed token")
	ErrBadSignature = errors.New("invalid token signature")
)

const minSecretLen = 32

// Signer signs and verifies compact HS256 tokens with a single symmetric
// key held for the process lifetime. It deliberately does not check
// expiry or revocation; that policy belongs to the Validator.
type Signer struct {
	key    []byte
	parser *jwt.Parser
}

// NewSigner validates the shared secret and builds the parser once.
func NewSigner(secret string) (*Signer, error) {
	if len(secret) < minSecretLen {
		return nil, errors.New("token: signing secret must be at least 32 bytes")
	}
	return &Signer{
		key: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			// Expiry is enforced by the Validator against an injected
			// clock, not here.
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Sign produces the compact serialized form of claims.
func (s *Signer) Sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify checks the signature and structural well-formedness of a compact
// token and returns its claims. Expired tokens still verify here.
func (s *Signer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := s.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrBadSignature
		}
		return nil, ErrMalformed
	}
	if !parsed.Valid {
		return nil, ErrBadSignature
	}
	return claims, nil
}
