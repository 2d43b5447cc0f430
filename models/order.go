package models

import (
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderPaid       OrderStatus = "PAID"
	OrderCanceled   OrderStatus = "CANCELED"
	OrderFailed     OrderStatus = "FAILED"
	OrderExpired    OrderStatus = "EXPIRED"
)

// Terminal returns true once no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderPaid, OrderCanceled, OrderFailed, OrderExpired:
		return true
	}
	return false
}

// Order is a payment intent. The OrderID is the opaque string handed to the
// gateway widget; a PENDING order expires 30 minutes after creation.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OrderID   string      `json:"orderId" gorm:"uniqueIndex;not null"`
	BuyerID   string      `json:"buyerId" gorm:"type:uuid;not null"`
	CreatorID string      `json:"creatorId" gorm:"type:uuid;not null"`
	Amount    int         `json:"amount" gorm:"not null"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	Method    string      `json:"method"`
	ExpiresAt time.Time   `json:"expiresAt"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type OrderCreate struct {
	CreatorID string `json:"creatorId" binding:"required"`
}

func (Order) TableName() string {
	return "orders"
}
