// Package revocation implements the shared token deny-list. Revoked jtis
// are written to Redis with a TTL equal to the remaining lifetime of the
// token they revoke, so the list never outlives the tokens it covers.
package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"drivehub/internal/token"
)

var ErrUnavailable = errors.New("revocation store unavailable")

const defaultPrefix = "blacklist"

// Store records and queries revoked token ids. Access and refresh jtis
// live in independent namespaces so the two id spaces can never collide.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewStore(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) key(jti string, kind token.Kind) string {
	return s.prefix + ":" + string(kind) + ":" + jti
}

// Revoke marks a jti as revoked for the remainder of its lifetime.
// A non-positive ttl means the token has already expired on its own and
// no entry is written.
func (s *Store) Revoke(ctx context.Context, jti string, kind token.Kind, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, s.key(jti, kind), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether the jti is on the deny-list for its kind.
func (s *Store) IsRevoked(ctx context.Context, jti string, kind token.Kind) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(jti, kind)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}
