package httpapi

import (
	"time"

	"drivehub/internal/user"
	"drivehub/internal/vehicle"
)

type sendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`

	Gender            string `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	BloodType         string `json:"bloodType" validate:"omitempty,oneof=A B AB O"`
	EmergencyContact1 string `json:"emergencyContact1"`
	EmergencyContact2 string `json:"emergencyContact2"`
	EmergencyContact3 string `json:"emergencyContact3"`
	CharacterType     string `json:"characterType"`

	TermsOfServiceAgreed bool `json:"termsOfServiceAgreed"`
	PrivacyPolicyAgreed  bool `json:"privacyPolicyAgreed"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminLoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type emergencyInfoRequest struct {
	Gender            string `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	BloodType         string `json:"bloodType" validate:"omitempty,oneof=A B AB O"`
	EmergencyContact1 string `json:"emergencyContact1"`
	EmergencyContact2 string `json:"emergencyContact2"`
	EmergencyContact3 string `json:"emergencyContact3"`
	CharacterType     string `json:"characterType"`
}

type linkVehicleRequest struct {
	PlateNumber string `json:"plateNumber" validate:"required"`
	Model       string `json:"model" validate:"required"`
}

type tokenResponse struct {
	AccessToken          string `json:"accessToken"`
	AccessTokenExpiresAt int64  `json:"accessTokenExpiresAt"`
}

type userResponse struct {
	ID                int64      `json:"id"`
	Email             string     `json:"email"`
	Role              string     `json:"role"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Gender            string     `json:"gender,omitempty"`
	BloodType         string     `json:"bloodType,omitempty"`
	EmergencyContact1 string     `json:"emergencyContact1,omitempty"`
	EmergencyContact2 string     `json:"emergencyContact2,omitempty"`
	EmergencyContact3 string     `json:"emergencyContact3,omitempty"`
	CharacterType     string     `json:"characterType,omitempty"`
	TermsAgreedAt     *time.Time `json:"termsAgreedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:                u.ID,
		Email:             u.Email,
		Role:              string(u.Role),
		Name:              u.Name,
		Phone:             u.Phone,
		Gender:            string(u.Gender),
		BloodType:         string(u.BloodType),
		EmergencyContact1: u.EmergencyContact1,
		EmergencyContact2: u.EmergencyContact2,
		EmergencyContact3: u.EmergencyContact3,
		CharacterType:     u.CharacterType,
		TermsAgreedAt:     u.TermsAgreedAt,
		CreatedAt:         u.CreatedAt,
	}
}

type vehicleResponse struct {
	ID          int64     `json:"id"`
	PlateNumber string    `json:"plateNumber"`
	Model       string    `json:"model"`
	LinkedAt    time.Time `json:"linkedAt"`
}

func toVehicleResponse(v *vehicle.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		Model:       v.Model,
		LinkedAt:    v.LinkedAt,
	}
}
