package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotifCommentCreated       NotificationType = "COMMENT_CREATED"
	NotifCommentReported      NotificationType = "COMMENT_REPORTED"
	NotifPostReported         NotificationType = "POST_REPORTED"
	NotifSubscriptionExpiring NotificationType = "SUBSCRIPTION_EXPIRING"
	NotifAnnouncement         NotificationType = "ANNOUNCEMENT"
)

type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string           `json:"userId" gorm:"type:uuid;not null;index"`
	Type      NotificationType `json:"type" gorm:"type:varchar(40);not null"`
	TargetRef string           `json:"targetRef"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	ReadAt    *time.Time       `json:"readAt"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

// MessageContext carries the business fields the templates interpolate.
type MessageContext struct {
	ActorName string
	PostName  string
	DaysLeft  int
	Custom    string
}

// RenderMessage produces the title/body pair for a notification type.
// Each type has exactly one fixed template.
func RenderMessage(t NotificationType, ctx MessageContext) (title string, body string) {
	switch t {
	case NotifCommentCreated:
		return "New comment", fmt.Sprintf("%s commented on your post %q", ctx.ActorName, ctx.PostName)
	case NotifCommentReported:
		return "Comment reported", fmt.Sprintf("Your comment on %q has been reported", ctx.PostName)
	case NotifPostReported:
		return "Post reported", fmt.Sprintf("Your post %q has been reported", ctx.PostName)
	case NotifSubscriptionExpiring:
		return "Subscription expiring", fmt.Sprintf("Your subscription to %s expires in %d days", ctx.ActorName, ctx.DaysLeft)
	case NotifAnnouncement:
		return "Announcement", ctx.Custom
	}
	return "Notification", ctx.Custom
}
