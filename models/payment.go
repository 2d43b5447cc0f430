package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPaid PaymentStatus = "PAID"
)

// Payment is written exactly once, when the gateway confirms an order.
// It is never mutated afterwards; a refund is a separate gateway call.
type Payment struct {
	ID         string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PaymentKey string        `json:"paymentKey" gorm:"uniqueIndex;not null"`
	OrderID    string        `json:"orderId" gorm:"not null"`
	BuyerID    string        `json:"buyerId" gorm:"type:uuid;not null"`
	CreatorID  string        `json:"creatorId" gorm:"type:uuid;not null"`
	Amount     int           `json:"amount" gorm:"not null"`
	Status     PaymentStatus `json:"status" gorm:"type:varchar(20);default:'PAID'"`
	PaidAt     *time.Time    `json:"paidAt"`
	CreatedAt  time.Time     `json:"createdAt"`
}

func (Payment) TableName() string {
	return "payments"
}
