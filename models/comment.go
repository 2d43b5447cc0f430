package models

import (
	"time"
)

// Comment forms a two-level tree: a root comment may have direct replies,
// replies cannot be replied to. Depth is checked at creation, not by schema.
type Comment struct {
	ID           string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID       string       `json:"postId" gorm:"column:post_id;type:uuid;not null;index"`
	UserID       string       `json:"userId" gorm:"column:user_id;type:uuid;not null"`
	ParentID     *string      `json:"parentId" gorm:"column:parent_id;type:uuid;index"`
	Content      string       `json:"content" binding:"required"`
	ReportStatus ReportStatus `json:"reportStatus" gorm:"type:varchar(20);default:'NORMAL'"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type CommentCreate struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parentId"`
}

func (Comment) TableName() string {
	return "comments"
}
