package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"drivehub/internal/user"
)

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	u, err := h.users.GetByID(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req changePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.users.ChangePassword(r.Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"changed": true})
}

func (h *Handler) UpdateEmergencyInfo(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req emergencyInfoRequest
	if !h.decode(w, r, &req) {
		return
	}
	u, err := h.users.UpdateEmergencyInfo(r.Context(), id.UserID, user.EmergencyInfo{
		Gender:            user.Gender(req.Gender),
		BloodType:         user.BloodType(req.BloodType),
		EmergencyContact1: req.EmergencyContact1,
		EmergencyContact2: req.EmergencyContact2,
		EmergencyContact3: req.EmergencyContact3,
		CharacterType:     req.CharacterType,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toUserResponse(u))
}

// AdminGetUser returns any user's profile for the admin console.
func (h *Handler) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "user id must be numeric")
		return
	}
	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toUserResponse(u))
}

// DeleteAccount removes the caller's account and ends the session the
// request rode in on.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	err := h.auth.DeleteAccount(r.Context(), id.UserID, bearerToken(r), refreshTokenFromCookie(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h.clearRefreshCookie(w)
	respondData(w, http.StatusOK, map[string]any{"deleted": true})
}
