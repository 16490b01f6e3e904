package repository

import (
	"errors"
	"strings"

	repo "storefront/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres の unique_violation
const pgUniqueViolation = "23505"

// mapError はDBエラーをリポジトリのエラーにそろえる
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrConflict
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return repo.ErrConflict
	}
	// SQLite
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return repo.ErrConflict
	}
	return err
}
