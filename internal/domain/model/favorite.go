package model

import "time"

// お気に入り（ユーザー×商品）
type Favorite struct {
	UserID    string    `gorm:"primaryKey;type:varchar(36)" json:"userId"`
	ProductID string    `gorm:"primaryKey;type:varchar(36)" json:"productId"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
