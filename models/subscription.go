package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

type SubscriptionTier string

const (
	TierFree SubscriptionTier = "FREE"
	TierPaid SubscriptionTier = "PAID"
)

// Subscription is the user→creator edge. One row per pair, enforced by the
// unique index; a paid tier carries an expiry date, the free tier never does.
type Subscription struct {
	ID        string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string             `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair"`
	CreatorID string             `json:"creatorId" gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair"`
	Status    SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	Tier      SubscriptionTier   `json:"tier" gorm:"type:varchar(20);default:'FREE'"`
	ExpiresAt *time.Time         `json:"expiresAt"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type SubscriptionStatusUpdate struct {
	Status SubscriptionStatus `json:"status" binding:"required"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
