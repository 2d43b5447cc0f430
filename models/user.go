package models

import (
	"time"
)

type Role string

const (
	AdminRole   Role = "ADMIN"
	UserRole    Role = "USER"
	CreatorRole Role = "CREATOR"
)

type User struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	Password          string    `json:"-"`
	UserName          string    `json:"username"`
	Role              Role      `json:"role" gorm:"type:varchar(20);default:'USER'"`
	Bio               string    `json:"bio"`
	ProfilePicture    string    `json:"profilePicture"`
	SubscriptionPrice int       `json:"subscriptionPrice"`
	Enable            bool      `json:"enable" gorm:"default:true"`
	BankCode          string    `json:"bankCode"`
	AccountNumber     string    `json:"accountNumber"`
	AccountHolder     string    `json:"accountHolder"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserName string `json:"username"`
}

type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserUpdate struct {
	UserName          string `json:"username"`
	Bio               string `json:"bio"`
	SubscriptionPrice int    `json:"subscriptionPrice"`
}

func (User) TableName() string {
	return "users"
}
