package usecase

import "context"

// Invalidator は読み取り側のキャッシュを捨てる
type Invalidator interface {
	Invalidate()
}

// runThenReload は「更新 → キャッシュ破棄 → 一覧の再取得」を順に行う。
// 更新が失敗したら破棄も再取得もしない。
func runThenReload[T any](
	ctx context.Context,
	cmd func(ctx context.Context) error,
	invalidate Invalidator,
	reload func(ctx context.Context) (T, error),
) (T, error) {
	var zero T
	if err := cmd(ctx); err != nil {
		return zero, err
	}
	if invalidate != nil {
		invalidate.Invalidate()
	}
	return reload(ctx)
}
