// Package user holds the account domain: the user record, its postgres
// repository, and credential/profile operations.
package user

import "time"

// Role mirrors the role claim carried in tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Gender and BloodType are part of the emergency profile shown to first
// responders.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type BloodType string

const (
	BloodA  BloodType = "A"
	BloodB  BloodType = "B"
	BloodAB BloodType = "AB"
	BloodO  BloodType = "O"
)

// User is the persisted account record. PasswordHash is bcrypt output
// and never leaves the service.
type User struct {
	ID           int64
	Email        string
	LoginID      string // admin-only short login, empty for ordinary users
	PasswordHash string
	Role         Role
	Name         string
	Phone        string

	Gender            Gender
	BloodType         BloodType
	EmergencyContact1 string
	EmergencyContact2 string
	EmergencyContact3 string
	CharacterType     string

	TermsOfServiceAgreed bool
	PrivacyPolicyAgreed  bool
	TermsAgreedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmergencyInfo is the updatable slice of the profile.
type EmergencyInfo struct {
	Gender            Gender
	BloodType         BloodType
	EmergencyContact1 string
	EmergencyContact2 string
	EmergencyContact3 string
	CharacterType     string
}
