package vehicle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivehub/internal/logging"
)

type memoryRepo struct {
	nextID   int64
	byUserID map[int64]*Vehicle
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byUserID: map[int64]*Vehicle{}}
}

func (r *memoryRepo) Create(_ context.Context, v *Vehicle) error {
	if _, ok := r.byUserID[v.UserID]; ok {
		return ErrAlreadyLinked
	}
	r.nextID++
	v.ID = r.nextID
	v.LinkedAt = time.Now()
	cp := *v
	r.byUserID[v.UserID] = &cp
	return nil
}

func (r *memoryRepo) GetByUserID(_ context.Context, userID int64) (*Vehicle, error) {
	v, ok := r.byUserID[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memoryRepo) DeleteByUserID(_ context.Context, userID int64) error {
	if _, ok := r.byUserID[userID]; !ok {
		return ErrNotFound
	}
	delete(r.byUserID, userID)
	return nil
}

func TestLinkAndFetch(t *testing.T) {
	svc := NewService(newMemoryRepo(), logging.Nop{})
	ctx := context.Background()

	v, err := svc.Link(ctx, 7, "12가3456", "Ioniq 5")
	require.NoError(t, err)
	assert.NotZero(t, v.ID)
	assert.False(t, v.LinkedAt.IsZero())

	got, err := svc.GetForUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "12가3456", got.PlateNumber)
}

func TestLinkRejectsSecondVehicle(t *testing.T) {
	svc := NewService(newMemoryRepo(), logging.Nop{})
	ctx := context.Background()

	_, err := svc.Link(ctx, 7, "12가3456", "Ioniq 5")
	require.NoError(t, err)

	_, err = svc.Link(ctx, 7, "99호9999", "Sonata")
	assert.ErrorIs(t, err, ErrAlreadyLinked)

	// A different user is unaffected.
	_, err = svc.Link(ctx, 8, "99호9999", "Sonata")
	assert.NoError(t, err)
}

func TestUnlinkThenRelink(t *testing.T) {
	svc := NewService(newMemoryRepo(), logging.Nop{})
	ctx := context.Background()

	_, err := svc.Link(ctx, 7, "12가3456", "Ioniq 5")
	require.NoError(t, err)

	require.NoError(t, svc.Unlink(ctx, 7))
	assert.ErrorIs(t, svc.Unlink(ctx, 7), ErrNotFound)

	_, err = svc.GetForUser(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Link(ctx, 7, "99호9999", "Sonata")
	assert.NoError(t, err)
}
