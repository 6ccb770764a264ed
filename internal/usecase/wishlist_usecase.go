package usecase

import (
	"context"

	"merkato-backend/internal/domain"
)

type WishlistUsecase struct {
	repo domain.WishlistRepository
}

func NewWishlistUsecase(repo domain.WishlistRepository) *WishlistUsecase {
	return &WishlistUsecase{repo: repo}
}

func (u *WishlistUsecase) GetWishlist(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	return u.repo.GetWishlist(ctx, userID)
}

func (u *WishlistUsecase) AddToWishlist(ctx context.Context, userID string, productID int64) (*domain.WishlistEntry, error) {
	return u.repo.AddEntry(ctx, userID, productID)
}

func (u *WishlistUsecase) RemoveFromWishlist(ctx context.Context, userID string, productID int64) error {
	return u.repo.RemoveEntry(ctx, userID, productID)
}

// WishlistedIDs returns the set of product ids on the user's wishlist, used
// by the product grid to pick filled vs outline heart icons.
func (u *WishlistUsecase) WishlistedIDs(ctx context.Context, userID string) ([]int64, error) {
	entries, err := u.repo.GetWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(entries))
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		if !seen[e.ProductID] {
			seen[e.ProductID] = true
			ids = append(ids, e.ProductID)
		}
	}
	return ids, nil
}
