package httpapi

import "net/http"

func (h *Handler) LinkVehicle(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req linkVehicleRequest
	if !h.decode(w, r, &req) {
		return
	}
	v, err := h.vehicles.Link(r.Context(), id.UserID, req.PlateNumber, req.Model)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusCreated, toVehicleResponse(v))
}

func (h *Handler) MyVehicle(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	v, err := h.vehicles.GetForUser(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toVehicleResponse(v))
}

func (h *Handler) UnlinkVehicle(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	if err := h.vehicles.Unlink(r.Context(), id.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"unlinked": true})
}
