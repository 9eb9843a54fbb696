package repository_test

import (
	"context"
	"testing"

	"artist-booking/internal/model"
	"artist-booking/internal/repository"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityRepository_Insert(t *testing.T) {
	repo := repository.NewAvailabilityRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)
		artistID := createTestArtist(t, "anna", model.ApprovalApproved)

		slot, err := repo.Insert(ctx, artistID, day(2026, 12, 24))

		require.NoError(t, err)
		assert.NotZero(t, slot.ID)
		assert.Equal(t, "2026-12-24", slot.Day())
	})

	t.Run("Failed - Duplicate", func(t *testing.T) {
		setupTestWithTruncate(t)
		artistID := createTestArtist(t, "anna", model.ApprovalApproved)
		createTestSlot(t, artistID, day(2026, 12, 24))

		_, err := repo.Insert(ctx, artistID, day(2026, 12, 24))

		assert.ErrorIs(t, err, apperrors.ErrAvailabilityExists)
		assertRowCount(t, "availabilities", 1)
	})
}

func TestAvailabilityRepository_Delete(t *testing.T) {
	repo := repository.NewAvailabilityRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)
		artistID := createTestArtist(t, "anna", model.ApprovalApproved)
		id := createTestSlot(t, artistID, day(2026, 12, 24))

		removed, err := repo.Delete(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, removed.ID)
		assertRowCount(t, "availabilities", 0)
	})

	t.Run("NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		_, err := repo.Delete(ctx, 99999)

		assert.ErrorIs(t, err, apperrors.ErrAvailabilityNotFound)
	})
}

func TestAvailabilityRepository_ListOrdering(t *testing.T) {
	repo := repository.NewAvailabilityRepository(getTestDB())
	ctx := context.Background()

	setupTestWithTruncate(t)
	a := createTestArtist(t, "anna", model.ApprovalApproved)
	b := createTestArtist(t, "ben", model.ApprovalApproved)
	createTestSlot(t, b, day(2026, 12, 2))
	createTestSlot(t, a, day(2026, 12, 2))
	createTestSlot(t, a, day(2026, 12, 1))

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, a, all[0].ArtistID)
	assert.Equal(t, "2026-12-01", all[0].Day())
	assert.Equal(t, a, all[1].ArtistID)
	assert.Equal(t, b, all[2].ArtistID)

	own, err := repo.List(ctx, &b)
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestAvailabilityRepository_InsertRangeTx(t *testing.T) {
	repo := repository.NewAvailabilityRepository(getTestDB())
	ctx := context.Background()

	setupTestWithTruncate(t)
	artistID := createTestArtist(t, "anna", model.ApprovalApproved)
	createTestSlot(t, artistID, day(2026, 12, 3))

	tx, cleanup := setupTestWithTransaction(t)
	defer cleanup()

	added, err := repo.InsertRangeTx(ctx, tx, artistID, day(2026, 12, 1), day(2026, 12, 5))

	require.NoError(t, err)
	assert.Equal(t, 4, added)
}

func TestAvailabilityRepository_InsertForAllOn(t *testing.T) {
	repo := repository.NewAvailabilityRepository(getTestDB())
	ctx := context.Background()

	setupTestWithTruncate(t)
	a := createTestArtist(t, "anna", model.ApprovalApproved)
	createTestArtist(t, "ben", model.ApprovalApproved)
	createTestArtist(t, "carl", model.ApprovalPending)
	createTestSlot(t, a, day(2026, 12, 31))

	created, eligible, err := repo.InsertForAllOn(ctx, day(2026, 12, 31), true)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 2, eligible)

	created, eligible, err = repo.InsertForAllOn(ctx, day(2026, 12, 31), false)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 3, eligible)
}
