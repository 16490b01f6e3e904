package repository

import "errors"

// 対象が見つからない
var ErrNotFound = errors.New("not found")

// 一意制約に違反した（メール重複など）
var ErrConflict = errors.New("conflict")

// 在庫・売上の更新に1未満の数量が渡された
var ErrInvalidQuantity = errors.New("invalid quantity")
