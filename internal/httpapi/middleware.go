package httpapi

import (
	"net/http"
	"strings"

	"drivehub/internal/token"
)

// RequireAuth guards a route group: it validates the Bearer token,
// requires the access kind, and attaches the caller Identity to the
// request context.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			respondError(w, http.StatusUnauthorized, codeMissingToken, "no token presented")
			return
		}

		claims, err := h.validator.Validate(r.Context(), raw)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if claims.Kind() != token.KindAccess {
			respondError(w, http.StatusUnauthorized, codeWrongTokenType, "refresh token cannot access the API")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			respondServiceError(w, err)
			return
		}

		id := Identity{
			UserID:    userID,
			Email:     claims.Email,
			Role:      claims.EffectiveRole(),
			JTI:       claims.ID,
			ExpiresAt: claims.ExpiresAt.Time,
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	})
}

// RequireAdmin narrows an authenticated group to admin callers.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok || id.Role != token.RoleAdmin {
			respondError(w, http.StatusForbidden, codeForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
