package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	repo "storefront/internal/repository"
)

type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
}

func NewFavoriteUsecase(favoriteRepo repo.FavoriteRepository, productRepo repo.ProductRepository) *FavoriteUsecase {
	return &FavoriteUsecase{favoriteRepo: favoriteRepo, productRepo: productRepo}
}

// お気に入りの商品ID（追加順）
func (u *FavoriteUsecase) IDs(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return []string{}, NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized)
	}
	ids, err := u.favoriteRepo.ListProductIDs(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "list favorites", "user_id", userID, "err", err)
		return []string{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Products はお気に入りの商品本体。削除済みの商品は含めない。
func (u *FavoriteUsecase) Products(ctx context.Context, userID string) ([]model.Product, error) {
	ids, err := u.IDs(ctx, userID)
	if err != nil {
		return []model.Product{}, err
	}
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	ps, err := u.productRepo.List(ctx, repo.ProductListQuery{IDs: ids})
	if err != nil {
		slog.ErrorContext(ctx, "list favorite products", "user_id", userID, "err", err)
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	for i := range ps {
		ps[i] = catalog.Sanitize(ps[i])
	}
	return ps, nil
}

// Add は追加後のID一覧を返す。既にあれば何もしない。
func (u *FavoriteUsecase) Add(ctx context.Context, userID, productID string) ([]string, error) {
	productID = strings.TrimSpace(productID)
	if userID == "" {
		return []string{}, NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized)
	}
	if productID == "" {
		return []string{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidID)
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return []string{}, NewHTTPError(http.StatusNotFound, i18n.MsgProductNotFound)
		}
		return []string{}, errDB()
	}
	if err := u.favoriteRepo.Add(ctx, userID, productID); err != nil {
		slog.ErrorContext(ctx, "add favorite", "user_id", userID, "product_id", productID, "err", err)
		return []string{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
	}
	return u.IDs(ctx, userID)
}

// Remove は削除後のID一覧を返す。無くてもエラーにしない。
func (u *FavoriteUsecase) Remove(ctx context.Context, userID, productID string) ([]string, error) {
	productID = strings.TrimSpace(productID)
	if userID == "" {
		return []string{}, NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized)
	}
	if productID == "" {
		return []string{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidID)
	}
	if err := u.favoriteRepo.Remove(ctx, userID, productID); err != nil {
		slog.ErrorContext(ctx, "remove favorite", "user_id", userID, "product_id", productID, "err", err)
		return []string{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
	}
	return u.IDs(ctx, userID)
}
