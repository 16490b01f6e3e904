package model

import (
	"time"

	"storefront/internal/i18n"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        i18n.Text `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description i18n.Text `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Image       string    `gorm:"type:text" json:"image"`
	Order       int       `gorm:"column:display_order;not null;default:0;index" json:"order"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// IDが空ならUUIDを振る
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
