package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trawers-adr/registration-backend/interfaces"
)

func testStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMemoryStore_InsertAndFind(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	reg, err := store.Insert(ctx, interfaces.NewRegistration{
		FullName: "Jan Kowalski", Email: "jan@example.com", Phone: "500100100",
	})
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusInProgress, reg.Status)
	assert.NotZero(t, reg.ID)
	assert.False(t, reg.CreatedAt.IsZero())

	byPhone, err := store.FindByContact(ctx, "500100100", "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, byPhone.ID)

	byEmail, err := store.FindByContact(ctx, "000000000", "jan@example.com")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, byEmail.ID)

	_, err = store.FindByContact(ctx, "000000000", "nobody@example.com")
	assert.ErrorIs(t, err, interfaces.ErrRegistrationNotFound)
}

func TestMemoryStore_DuplicateContactRejected(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, interfaces.NewRegistration{
		FullName: "Jan Kowalski", Email: "jan@example.com", Phone: "500100100",
	})
	require.NoError(t, err)

	_, err = store.Insert(ctx, interfaces.NewRegistration{
		FullName: "Inny Jan", Email: "jan@example.com", Phone: "600200200",
	})
	assert.ErrorIs(t, err, interfaces.ErrDuplicateContact)

	_, err = store.Insert(ctx, interfaces.NewRegistration{
		FullName: "Inny Jan", Email: "inny@example.com", Phone: "500100100",
	})
	assert.ErrorIs(t, err, interfaces.ErrDuplicateContact)
}

func TestMemoryStore_AllNewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, interfaces.NewRegistration{
		FullName: "Jan", Email: "jan@example.com", Phone: "1",
	})
	require.NoError(t, err)
	second, err := store.Insert(ctx, interfaces.NewRegistration{
		FullName: "Anna", Email: "anna@example.com", Phone: "2",
	})
	require.NoError(t, err)

	regs, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, second.ID, regs[0].ID)
	assert.Equal(t, first.ID, regs[1].ID)
}

func TestMemoryStore_UpdateStatus(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	reg, err := store.Insert(ctx, interfaces.NewRegistration{
		FullName: "Jan", Email: "jan@example.com", Phone: "1",
	})
	require.NoError(t, err)

	updated, err := store.UpdateStatus(ctx, reg.ID, interfaces.StatusQualified)
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusQualified, updated.Status)

	_, err = store.UpdateStatus(ctx, 9999, interfaces.StatusQualified)
	assert.ErrorIs(t, err, interfaces.ErrRegistrationNotFound)
}

func TestMemoryStore_CompleteStageOne(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	reg, err := store.Insert(ctx, interfaces.NewRegistration{
		FullName: "Jan", Email: "jan@example.com", Phone: "500100100",
	})
	require.NoError(t, err)

	fiszka := "F-9"
	category := "B"
	updated, err := store.CompleteStageOne(ctx, interfaces.StageOneUpdate{
		ID: reg.ID, FiszkaNumber: &fiszka, Category: &category,
	})
	require.NoError(t, err)
	assert.Equal(t, interfaces.StatusStageOneComplete, updated.Status)
	require.NotNil(t, updated.FiszkaNumber)
	assert.Equal(t, "F-9", *updated.FiszkaNumber)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "B", *updated.Category)

	// A later update by phone without optionals keeps the stored values.
	updated, err = store.CompleteStageOne(ctx, interfaces.StageOneUpdate{Phone: "500100100"})
	require.NoError(t, err)
	require.NotNil(t, updated.FiszkaNumber)
	assert.Equal(t, "F-9", *updated.FiszkaNumber)

	_, err = store.CompleteStageOne(ctx, interfaces.StageOneUpdate{ID: 9999})
	assert.ErrorIs(t, err, interfaces.ErrRegistrationNotFound)
}

func TestMemoryStore_Settings(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, interfaces.SettingFiszkaLink)
	assert.ErrorIs(t, err, interfaces.ErrSettingNotFound)

	created, err := store.Put(ctx, interfaces.SettingFiszkaLink, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", created.Value)

	updated, err := store.Put(ctx, interfaces.SettingFiszkaLink, "https://example.com/b")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b", updated.Value)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	got, err := store.Get(ctx, interfaces.SettingFiszkaLink)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b", got.Value)
}
