package usecase

import (
	"context"
	"testing"

	"merkato-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWishlistRepo struct {
	nextID  int64
	entries []domain.WishlistEntry
}

func (f *fakeWishlistRepo) GetWishlist(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	var out []domain.WishlistEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWishlistRepo) AddEntry(ctx context.Context, userID string, productID int64) (*domain.WishlistEntry, error) {
	f.nextID++
	entry := domain.WishlistEntry{ID: f.nextID, UserID: userID, ProductID: productID}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeWishlistRepo) RemoveEntry(ctx context.Context, userID string, productID int64) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.UserID != userID || e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func TestWishlistAllowsDuplicateRows(t *testing.T) {
	repo := &fakeWishlistRepo{}
	uc := NewWishlistUsecase(repo)
	ctx := context.Background()

	_, err := uc.AddToWishlist(ctx, "user-1", 10)
	require.NoError(t, err)
	_, err = uc.AddToWishlist(ctx, "user-1", 10)
	require.NoError(t, err)

	entries, err := uc.GetWishlist(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRemoveFromWishlistCleansDuplicates(t *testing.T) {
	repo := &fakeWishlistRepo{}
	uc := NewWishlistUsecase(repo)
	ctx := context.Background()

	_, _ = uc.AddToWishlist(ctx, "user-1", 10)
	_, _ = uc.AddToWishlist(ctx, "user-1", 10)
	_, _ = uc.AddToWishlist(ctx, "user-1", 11)

	require.NoError(t, uc.RemoveFromWishlist(ctx, "user-1", 10))

	entries, err := uc.GetWishlist(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(11), entries[0].ProductID)
}

func TestWishlistedIDsDeduplicates(t *testing.T) {
	repo := &fakeWishlistRepo{}
	uc := NewWishlistUsecase(repo)
	ctx := context.Background()

	_, _ = uc.AddToWishlist(ctx, "user-1", 10)
	_, _ = uc.AddToWishlist(ctx, "user-1", 10)
	_, _ = uc.AddToWishlist(ctx, "user-1", 12)
	_, _ = uc.AddToWishlist(ctx, "user-2", 99)

	ids, err := uc.WishlistedIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{10, 12}, ids)
}
