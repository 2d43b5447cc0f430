package models

import (
	"time"
)

type SettlementItemStatus string

const (
	SettlementItemRecorded  SettlementItemStatus = "RECORDED"
	SettlementItemConfirmed SettlementItemStatus = "CONFIRMED"
)

type SettlementState string

const (
	SettlementPending   SettlementState = "PENDING"
	SettlementCompleted SettlementState = "COMPLETED"
)

// SettlementItem is one ledger line per confirmed payment. The unique index
// on PaymentID is what makes the weekly batch idempotent.
type SettlementItem struct {
	ID               string               `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID        string               `json:"creatorId" gorm:"type:uuid;not null;index"`
	PaymentID        string               `json:"paymentId" gorm:"type:uuid;uniqueIndex;not null"`
	GrossAmount      int                  `json:"grossAmount" gorm:"not null"`
	PlatformFee      int                  `json:"platformFee" gorm:"not null"`
	SettlementAmount int                  `json:"settlementAmount" gorm:"not null"`
	Status           SettlementItemStatus `json:"status" gorm:"type:varchar(20);default:'RECORDED'"`
	SettlementID     *string              `json:"settlementId" gorm:"type:uuid"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// Settlement rolls a creator's recorded items into one confirmed calendar
// month.
type Settlement struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID   string          `json:"creatorId" gorm:"type:uuid;not null;index"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	TotalAmount int             `json:"totalAmount"`
	Status      SettlementState `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	SettledAt   *time.Time      `json:"settledAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (SettlementItem) TableName() string {
	return "settlement_items"
}

func (Settlement) TableName() string {
	return "settlements"
}
