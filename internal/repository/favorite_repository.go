package repository

import "context"

type FavoriteRepository interface {
	ListProductIDs(ctx context.Context, userID string) ([]string, error)
	// すでにあれば何もしない
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}
