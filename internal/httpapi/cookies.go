package httpapi

import (
	"net/http"

	"drivehub/internal/token"
)

const refreshCookieName = "refreshToken"

// setRefreshCookie stores the refresh token in an HttpOnly cookie scoped
// to the whole API. SameSite=None because the web client lives on a
// different origin; Secure is off only in local development.
func (h *Handler) setRefreshCookie(w http.ResponseWriter, value string, role token.Role) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(token.RefreshTTL(role).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteNoneMode,
	})
}

func refreshTokenFromCookie(r *http.Request) string {
	c, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
