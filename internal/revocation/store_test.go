package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"drivehub/internal/token"
)

func newStoreTest(t *testing.T) (*Store, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(rdb, "")
	return store, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestRevokeAndQuery(t *testing.T) {
	store, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Revoke(ctx, "jti-1", token.KindAccess, time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	revoked, err := store.IsRevoked(ctx, "jti-1", token.KindAccess)
	if err != nil {
		t.Fatalf("isRevoked: %v", err)
	}
	if !revoked {
		t.Fatal("expected jti-1 revoked in access namespace")
	}

	revoked, err = store.IsRevoked(ctx, "jti-2", token.KindAccess)
	if err != nil {
		t.Fatalf("isRevoked: %v", err)
	}
	if revoked {
		t.Fatal("expected jti-2 not revoked")
	}
}

func TestNamespacesAreIndependent(t *testing.T) {
	store, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Revoke(ctx, "shared-id", token.KindAccess, time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	revoked, err := store.IsRevoked(ctx, "shared-id", token.KindRefresh)
	if err != nil {
		t.Fatalf("isRevoked: %v", err)
	}
	if revoked {
		t.Fatal("access revocation must not leak into the refresh namespace")
	}
}

func TestNonPositiveTTLWritesNothing(t *testing.T) {
	store, mr, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Revoke(ctx, "dead", token.KindRefresh, 0); err != nil {
		t.Fatalf("revoke with zero ttl: %v", err)
	}
	if err := store.Revoke(ctx, "dead", token.KindRefresh, -time.Second); err != nil {
		t.Fatalf("revoke with negative ttl: %v", err)
	}

	if len(mr.Keys()) != 0 {
		t.Fatalf("expected no keys written, got %v", mr.Keys())
	}
}

func TestEntryExpiresWithTokenLifetime(t *testing.T) {
	store, mr, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Revoke(ctx, "jti-ttl", token.KindRefresh, 30*time.Second); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	mr.FastForward(31 * time.Second)

	revoked, err := store.IsRevoked(ctx, "jti-ttl", token.KindRefresh)
	if err != nil {
		t.Fatalf("isRevoked: %v", err)
	}
	if revoked {
		t.Fatal("entry should have expired with the token lifetime")
	}
}

func TestUnavailableStoreSurfacesError(t *testing.T) {
	store, mr, done := newStoreTest(t)
	defer done()
	ctx := context.Background()
	mr.Close()

	if err := store.Revoke(ctx, "x", token.KindAccess, time.Minute); err == nil {
		t.Fatal("expected error from closed redis")
	}
	if _, err := store.IsRevoked(ctx, "x", token.KindAccess); err == nil {
		t.Fatal("expected error from closed redis")
	}
}
