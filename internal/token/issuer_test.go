package token

import (
	"testing"
	"time"
)

func TestLifetimesByRoleAndKind(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	issuer, _ := testIssuer(t, now)

	cases := []struct {
		name string
		mint func() (string, *Claims, error)
		kind Kind
		ttl  time.Duration
	}{
		{"user access", func() (string, *Claims, error) { return issuer.IssueAccess(1, "u@x.com", RoleUser) }, KindAccess, 15 * time.Minute},
		{"admin access", func() (string, *Claims, error) { return issuer.IssueAccess(1, "a@x.com", RoleAdmin) }, KindAccess, 60 * time.Minute},
		{"user refresh", func() (string, *Claims, error) { return issuer.IssueRefresh(1, "u@x.com", RoleUser) }, KindRefresh, 14 * 24 * time.Hour},
		{"admin refresh", func() (string, *Claims, error) { return issuer.IssueRefresh(1, "a@x.com", RoleAdmin) }, KindRefresh, 12 * time.Hour},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, claims, err := tc.mint()
			if err != nil {
				t.Fatalf("issue: %v", err)
			}
			if claims.Kind() != tc.kind {
				t.Fatalf("kind = %q, want %q", claims.Kind(), tc.kind)
			}
			if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != tc.ttl {
				t.Fatalf("lifetime = %v, want %v", got, tc.ttl)
			}
		})
	}
}

func TestEveryIssuanceMintsFreshID(t *testing.T) {
	signer, err := NewSigner(testSecret)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	issuer := NewIssuer(signer)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		_, claims, err := issuer.IssueAccess(1, "u@x.com", RoleUser)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if claims.ID == "" || seen[claims.ID] {
			t.Fatalf("duplicate or empty jti at iteration %d: %q", i, claims.ID)
		}
		seen[claims.ID] = true
	}
}

func TestLegacyClaimsDefaultToAccessAndUser(t *testing.T) {
	c := &Claims{}
	if c.Kind() != KindAccess {
		t.Fatalf("kind = %q, want access", c.Kind())
	}
	if c.EffectiveRole() != RoleUser {
		t.Fatalf("role = %q, want USER", c.EffectiveRole())
	}
}
