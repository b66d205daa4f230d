package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"drivehub/internal/auth"
	"drivehub/internal/token"
	"drivehub/internal/user"
	"drivehub/internal/vehicle"
	"drivehub/internal/verification"
)

// Stable error codes carried in the response envelope. Clients branch on
// the code, not the message.
const (
	codeInvalidRequest     = 1000
	codeInternal           = 1001
	codeInvalidCredentials = 2000
	codeInvalidToken       = 2001
	codeExpiredToken       = 2002
	codeRevokedToken       = 2003
	codeMissingToken       = 2004
	codeWrongTokenType     = 2005
	codeForbidden          = 2006
	codeEmailTaken         = 3000
	codeEmailNotVerified   = 3001
	codeCodeExpired        = 3002
	codeCodeMismatch       = 3003
	codeCodeFormat         = 3004
	codeTooManySends       = 3005
	codeTermsNotAgreed     = 3006
	codePasswordMismatch   = 3007
	codeUserNotFound       = 4000
	codeVehicleNotFound    = 4100
	codeVehicleLinked      = 4101
)

type envelope struct {
	Success bool   `json:"success"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, envelope{Success: false, Code: code, Message: message})
}

// respondServiceError maps domain sentinels onto HTTP status and
// envelope code. Unknown errors become an opaque 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		respondError(w, http.StatusUnauthorized, codeMissingToken, "no token presented")
	case errors.Is(err, auth.ErrWrongTokenType):
		respondError(w, http.StatusUnauthorized, codeWrongTokenType, "wrong token type")
	case errors.Is(err, auth.ErrNotVerified):
		respondError(w, http.StatusForbidden, codeEmailNotVerified, "email not verified")
	case errors.Is(err, token.ErrExpired):
		respondError(w, http.StatusUnauthorized, codeExpiredToken, "token expired")
	case errors.Is(err, token.ErrRevoked):
		respondError(w, http.StatusUnauthorized, codeRevokedToken, "token revoked")
	case errors.Is(err, token.ErrMalformed), errors.Is(err, token.ErrBadSignature), errors.Is(err, token.ErrBadSubject):
		respondError(w, http.StatusUnauthorized, codeInvalidToken, "invalid token")
	case errors.Is(err, user.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, codeInvalidCredentials, "invalid credentials")
	case errors.Is(err, user.ErrAlreadyRegistered), errors.Is(err, verification.ErrAlreadyRegistered):
		respondError(w, http.StatusConflict, codeEmailTaken, "email already registered")
	case errors.Is(err, user.ErrTermsNotAgreed):
		respondError(w, http.StatusBadRequest, codeTermsNotAgreed, "required terms not agreed")
	case errors.Is(err, user.ErrPasswordMismatch):
		respondError(w, http.StatusBadRequest, codePasswordMismatch, "current password does not match")
	case errors.Is(err, user.ErrNotFound):
		respondError(w, http.StatusNotFound, codeUserNotFound, "user not found")
	case errors.Is(err, verification.ErrRateLimited):
		respondError(w, http.StatusTooManyRequests, codeTooManySends, "too many verification emails")
	case errors.Is(err, verification.ErrCodeExpired):
		respondError(w, http.StatusBadRequest, codeCodeExpired, "verification code expired")
	case errors.Is(err, verification.ErrCodeMismatch):
		respondError(w, http.StatusBadRequest, codeCodeMismatch, "verification code does not match")
	case errors.Is(err, verification.ErrCodeFormatInvalid):
		respondError(w, http.StatusBadRequest, codeCodeFormat, "verification code must be 5 digits")
	case errors.Is(err, vehicle.ErrAlreadyLinked):
		respondError(w, http.StatusConflict, codeVehicleLinked, "vehicle already linked")
	case errors.Is(err, vehicle.ErrNotFound):
		respondError(w, http.StatusNotFound, codeVehicleNotFound, "no vehicle linked")
	default:
		respondError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}
