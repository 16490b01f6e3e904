package model

import (
	"time"

	"storefront/internal/i18n"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        i18n.Text     `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description i18n.Text     `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	CategoryID  string        `gorm:"type:varchar(36);index" json:"categoryId"`
	Sizes       []ProductSize `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	Images      StringList    `json:"images"`
	Featured    bool          `gorm:"not null;default:false;index" json:"featured"`
	SoldCount   int64         `gorm:"not null;default:0" json:"soldCount"`
	Order       int           `gorm:"column:display_order;not null;default:0;index" json:"order"`
	CreatedAt   time.Time     `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// サイズ別の価格と在庫（例: 50ml）
type ProductSize struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	ProductID string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_product_size" json:"-"`
	Label     string          `gorm:"column:size;type:varchar(50);not null;uniqueIndex:idx_product_size" json:"size"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock     int64           `gorm:"not null;default:0" json:"stock"`
	Position  int             `gorm:"not null;default:0" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FindSize はラベルに一致するサイズを返す
func (p Product) FindSize(label string) (ProductSize, bool) {
	for _, s := range p.Sizes {
		if s.Label == label {
			return s, true
		}
	}
	return ProductSize{}, false
}

// FirstImage は一覧やカート用の代表画像
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
