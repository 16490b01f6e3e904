package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus は既知のステータスだけ受け付ける
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

type Order struct {
	ID        string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    *string         `gorm:"type:varchar(36);index" json:"userId,omitempty"`
	FirstName string          `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName  string          `gorm:"type:varchar(255);not null" json:"lastName"`
	Email     string          `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string          `gorm:"type:varchar(50);not null" json:"phone"`
	Address   string          `gorm:"type:text;not null" json:"address"`
	City      string          `gorm:"type:varchar(255);not null" json:"city"`
	Country   string          `gorm:"type:varchar(255);not null" json:"country"`
	Notes     string          `gorm:"type:text" json:"notes"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Shipping  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Status    OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time       `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
