// Package httpapi is the HTTP transport: routing, request decoding and
// validation, the auth middleware, and the response envelope.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"drivehub/internal/auth"
	"drivehub/internal/logging"
	"drivehub/internal/user"
	"drivehub/internal/vehicle"
)

// AuthService is the session lifecycle consumed by the handlers.
type AuthService interface {
	Register(ctx context.Context, in user.RegisterInput) (*user.User, *auth.TokenPair, error)
	Login(ctx context.Context, email, password string) (*user.User, *auth.TokenPair, error)
	AdminLogin(ctx context.Context, loginID, password string) (*user.User, *auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken, accessToken string) (*user.User, *auth.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string)
	DeleteAccount(ctx context.Context, userID int64, accessToken, refreshToken string) error
}

// UserService is the profile surface consumed by the handlers.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ChangePassword(ctx context.Context, id int64, current, next string) error
	UpdateEmergencyInfo(ctx context.Context, id int64, info user.EmergencyInfo) (*user.User, error)
}

// VehicleService is the vehicle link surface consumed by the handlers.
type VehicleService interface {
	Link(ctx context.Context, userID int64, plateNumber, model string) (*vehicle.Vehicle, error)
	GetForUser(ctx context.Context, userID int64) (*vehicle.Vehicle, error)
	Unlink(ctx context.Context, userID int64) error
}

// VerificationService is the email code flow consumed by the handlers.
type VerificationService interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
}

// Handler holds every dependency of the HTTP surface.
type Handler struct {
	auth          AuthService
	users         UserService
	vehicles      VehicleService
	verification  VerificationService
	validator     auth.TokenValidator
	validate      *validator.Validate
	log           logging.Logger
	secureCookies bool
}

func NewHandler(authSvc AuthService, users UserService, vehicles VehicleService,
	verification VerificationService, tokenValidator auth.TokenValidator,
	log logging.Logger, secureCookies bool) *Handler {
	return &Handler{
		auth:          authSvc,
		users:         users,
		vehicles:      vehicles,
		verification:  verification,
		validator:     tokenValidator,
		validate:      validator.New(),
		log:           log,
		secureCookies: secureCookies,
	}
}

// decode unmarshals and validates the request body. A false return means
// the error response has already been written.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "malformed request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}
