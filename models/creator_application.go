package models

import (
	"time"
)

type CreatorApplicationStatus string

const (
	CreatorApplicationPending  CreatorApplicationStatus = "PENDING"
	CreatorApplicationApproved CreatorApplicationStatus = "APPROVED"
	CreatorApplicationRejected CreatorApplicationStatus = "REJECTED"
)

// CreatorApplication is a user's request to publish paid content. Approval by
// an admin grants the CREATOR role and links the payout account.
type CreatorApplication struct {
	ID            string                   `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID        string                   `json:"userId" gorm:"type:uuid;not null"`
	BankCode      string                   `json:"bankCode" binding:"required"`
	AccountNumber string                   `json:"accountNumber" binding:"required"`
	AccountHolder string                   `json:"accountHolder" binding:"required"`
	Introduction  string                   `json:"introduction"`
	Status        CreatorApplicationStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

type CreatorApplicationCreate struct {
	BankCode      string `json:"bankCode" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	AccountHolder string `json:"accountHolder" binding:"required"`
	Introduction  string `json:"introduction"`
}

type CreatorApplicationStatusUpdate struct {
	Status CreatorApplicationStatus `json:"status" binding:"required" example:"APPROVED"`
}

func (CreatorApplication) TableName() string {
	return "creator_applications"
}
