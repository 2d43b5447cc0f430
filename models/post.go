package models

import (
	"time"
)

type PostVisibility string

const (
	VisibilityPublic          PostVisibility = "PUBLIC"
	VisibilitySubscribersOnly PostVisibility = "SUBSCRIBERS_ONLY"
)

type Post struct {
	ID           string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID       string         `json:"userId" gorm:"column:user_id;type:uuid;not null"`
	Name         string         `json:"name" binding:"required"`
	Content      string         `json:"content"`
	PictureURL   string         `json:"pictureUrl" gorm:"column:picture_url"`
	Visibility   PostVisibility `json:"visibility" gorm:"type:varchar(20);default:'PUBLIC'"`
	ReportStatus ReportStatus   `json:"reportStatus" gorm:"type:varchar(20);default:'NORMAL'"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type PostCreate struct {
	Name       string         `json:"name" binding:"required"`
	Content    string         `json:"content"`
	PictureURL string         `json:"pictureUrl"`
	Visibility PostVisibility `json:"visibility"`
}

type PostUpdate struct {
	Name       string         `json:"name"`
	Content    string         `json:"content"`
	Visibility PostVisibility `json:"visibility"`
}

func (Post) TableName() string {
	return "posts"
}
