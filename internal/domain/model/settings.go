package model

import (
	"time"

	"storefront/internal/i18n"

	"github.com/shopspring/decimal"
)

// SettingsID は唯一の設定レコードのID
const SettingsID = "general"

type SocialMedia struct {
	Facebook  string `gorm:"type:text" json:"facebook"`
	Instagram string `gorm:"type:text" json:"instagram"`
	Twitter   string `gorm:"type:text" json:"twitter"`
}

type ShippingSettings struct {
	FreeShippingThreshold decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"freeShippingThreshold"`
	ShippingCost          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shippingCost"`
}

type HeroSection struct {
	Title      i18n.Text `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Subtitle   i18n.Text `gorm:"embedded;embeddedPrefix:subtitle_" json:"subtitle"`
	ButtonText i18n.Text `gorm:"embedded;embeddedPrefix:button_text_" json:"buttonText"`
	Image      string    `gorm:"type:text" json:"image"`
}

type AboutSection struct {
	Title   i18n.Text `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Content i18n.Text `gorm:"embedded;embeddedPrefix:content_" json:"content"`
	Image   string    `gorm:"type:text" json:"image"`
}

// 店舗設定（1レコードだけ）
type Settings struct {
	ID               string           `gorm:"primaryKey;type:varchar(36)" json:"-"`
	StoreName        i18n.Text        `gorm:"embedded;embeddedPrefix:store_name_" json:"storeName"`
	StoreDescription i18n.Text        `gorm:"embedded;embeddedPrefix:store_description_" json:"storeDescription"`
	ContactEmail     string           `gorm:"type:varchar(255)" json:"contactEmail"`
	ContactPhone     string           `gorm:"type:varchar(50)" json:"contactPhone"`
	Address          i18n.Text        `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	SocialMedia      SocialMedia      `gorm:"embedded;embeddedPrefix:social_" json:"socialMedia"`
	Shipping         ShippingSettings `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping"`
	Currency         string           `gorm:"type:varchar(10);not null" json:"currency"`
	TaxRate          decimal.Decimal  `gorm:"type:numeric(5,2);not null" json:"taxRate"`
	MaintenanceMode  bool             `gorm:"not null" json:"maintenanceMode"`
	Hero             HeroSection      `gorm:"embedded;embeddedPrefix:hero_" json:"hero"`
	About            AboutSection     `gorm:"embedded;embeddedPrefix:about_" json:"about"`
	UpdatedAt        time.Time        `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// DefaultSettings は未保存のときに返す初期値
func DefaultSettings() Settings {
	return Settings{
		ID:       SettingsID,
		Currency: "AED",
		TaxRate:  decimal.NewFromInt(5),
		Shipping: ShippingSettings{
			FreeShippingThreshold: decimal.Zero,
			ShippingCost:          decimal.Zero,
		},
	}
}

// ShippingFor は小計に対する送料。
// 送料が0なら常に0、閾値が0より大きく小計が閾値以上なら無料。
func (s Settings) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if !s.Shipping.ShippingCost.IsPositive() {
		return decimal.Zero
	}
	if s.Shipping.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(s.Shipping.FreeShippingThreshold) {
		return decimal.Zero
	}
	return s.Shipping.ShippingCost
}
