package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"drivehub/internal/logging"
)

type memoryRepo struct {
	nextID int64
	byID   map[int64]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[int64]*User{}}
}

func (r *memoryRepo) Create(_ context.Context, u *User) error {
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) GetByLoginID(_ context.Context, loginID string) (*User, error) {
	for _, u := range r.byID {
		if u.LoginID == loginID && loginID != "" {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *memoryRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *memoryRepo) UpdateEmergencyInfo(_ context.Context, id int64, info EmergencyInfo) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Gender = info.Gender
	u.BloodType = info.BloodType
	u.EmergencyContact1 = info.EmergencyContact1
	u.EmergencyContact2 = info.EmergencyContact2
	u.EmergencyContact3 = info.EmergencyContact3
	u.CharacterType = info.CharacterType
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:                "a@x.com",
		Password:             "hunter22",
		Name:                 "Alex",
		Phone:                "010-1234-5678",
		TermsOfServiceAgreed: true,
		PrivacyPolicyAgreed:  true,
	}
}

func TestRegisterHashesPasswordAndStampsTerms(t *testing.T) {
	svc := NewService(newMemoryRepo(), logging.Nop{})

	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")))
	assert.Equal(t, RoleUser, u.Role)
	require.NotNil(t, u.TermsAgreedAt)
}

func TestRegisterRejectsDuplicateAndMissingTerms(t *testing.T) {
	svc := NewService(newMemoryRepo(), logging.Nop{})
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput())
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	in := registerInput()
	in.Email = "b@x.com"
	in.PrivacyPolicyAgreed = false
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrTermsNotAgreed)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newMemoryRepo(), logging.Nop{})
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "a@x.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	_, err = svc.Authenticate(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reads identically to a bad password.
	_, err = svc.Authenticate(ctx, "ghost@x.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateAdminRequiresAdminRole(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, logging.Nop{})
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpw1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &User{
		Email: "root@x.com", LoginID: "root", PasswordHash: string(hash), Role: RoleAdmin,
	}))
	require.NoError(t, repo.Create(ctx, &User{
		Email: "mortal@x.com", LoginID: "mortal", PasswordHash: string(hash), Role: RoleUser,
	}))

	u, err := svc.AuthenticateAdmin(ctx, "root", "adminpw1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)

	_, err = svc.AuthenticateAdmin(ctx, "mortal", "adminpw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc := NewService(newMemoryRepo(), logging.Nop{})
	ctx := context.Background()

	u, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, u.ID, "wrong", "newpass99"), ErrPasswordMismatch)
	require.NoError(t, svc.ChangePassword(ctx, u.ID, "hunter22", "newpass99"))

	_, err = svc.Authenticate(ctx, "a@x.com", "newpass99")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "a@x.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateEmergencyInfo(t *testing.T) {
	svc := NewService(newMemoryRepo(), logging.Nop{})
	ctx := context.Background()

	u, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	updated, err := svc.UpdateEmergencyInfo(ctx, u.ID, EmergencyInfo{
		Gender:            GenderFemale,
		BloodType:         BloodAB,
		EmergencyContact1: "010-9999-0000",
		CharacterType:     "calm",
	})
	require.NoError(t, err)
	assert.Equal(t, BloodAB, updated.BloodType)
	assert.Equal(t, "010-9999-0000", updated.EmergencyContact1)
}
