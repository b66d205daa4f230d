package httpapi

import (
	"net/http"

	"drivehub/internal/auth"
	"drivehub/internal/user"
)

func (h *Handler) SendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.verification.SendCode(r.Context(), req.Email); err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"sent": true})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.verification.VerifyCode(r.Context(), req.Email, req.Code); err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"verified": true})
}

func (h *Handler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := h.validate.Var(email, "required,email"); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "email query parameter required")
		return
	}
	exists, err := h.users.EmailExists(r.Context(), email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"available": !exists})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, pair, err := h.auth.Register(r.Context(), user.RegisterInput{
		Email:                req.Email,
		Password:             req.Password,
		Name:                 req.Name,
		Phone:                req.Phone,
		Gender:               user.Gender(req.Gender),
		BloodType:            user.BloodType(req.BloodType),
		EmergencyContact1:    req.EmergencyContact1,
		EmergencyContact2:    req.EmergencyContact2,
		EmergencyContact3:    req.EmergencyContact3,
		CharacterType:        req.CharacterType,
		TermsOfServiceAgreed: req.TermsOfServiceAgreed,
		PrivacyPolicyAgreed:  req.PrivacyPolicyAgreed,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.writeSession(w, http.StatusCreated, u, pair)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	u, pair, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, u, pair)
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	u, pair, err := h.auth.AdminLogin(r.Context(), req.LoginID, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, u, pair)
}

// Refresh rotates the session carried by the refresh cookie. The access
// token, when the client still holds one, rides along in the
// Authorization header so it can be retired with the old refresh token.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	refresh := refreshTokenFromCookie(r)
	u, pair, err := h.auth.Refresh(r.Context(), refresh, bearerToken(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, u, pair)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context(), bearerToken(r), refreshTokenFromCookie(r))
	h.clearRefreshCookie(w)
	respondData(w, http.StatusOK, map[string]any{"loggedOut": true})
}

// writeSession sets the refresh cookie and returns the access token with
// the public user record. The refresh token itself never appears in the
// body.
func (h *Handler) writeSession(w http.ResponseWriter, status int, u *user.User, pair *auth.TokenPair) {
	h.setRefreshCookie(w, pair.RefreshToken, pair.RefreshClaims.EffectiveRole())
	respondData(w, status, map[string]any{
		"token": tokenResponse{
			AccessToken:          pair.AccessToken,
			AccessTokenExpiresAt: pair.AccessClaims.ExpiresAt.Unix(),
		},
		"user": toUserResponse(u),
	})
}
