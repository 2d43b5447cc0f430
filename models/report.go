package models

import "time"

type ReportReason string

const (
	DISLIKE          ReportReason = "DISLIKE"
	HARASSMENT       ReportReason = "HARASSMENT"
	SELF_HARM        ReportReason = "SELF_HARM"
	VIOLENCE         ReportReason = "VIOLENCE"
	RESTRICTED_ITEMS ReportReason = "RESTRICTED_ITEMS"
	NUDITY           ReportReason = "NUDITY"
	SCAM             ReportReason = "SCAM"
	MISINFORMATION   ReportReason = "MISINFORMATION"
	ILLEGAL_CONTENT  ReportReason = "ILLEGAL_CONTENT"
	OTHER            ReportReason = "OTHER"
)

type ReportTargetType string

const (
	ReportTargetPost    ReportTargetType = "POST"
	ReportTargetComment ReportTargetType = "COMMENT"
)

// ReportStatus is the visibility flag carried by posts and comments.
type ReportStatus string

const (
	ReportStatusNormal   ReportStatus = "NORMAL"
	ReportStatusReported ReportStatus = "REPORT"
)

// Report is a (reporter, target) edge. The unique triple index closes the
// race between two identical reports submitted concurrently.
type Report struct {
	ID           string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TargetType   ReportTargetType `json:"targetType" gorm:"type:varchar(20);not null;uniqueIndex:idx_reports_edge"`
	TargetID     string           `json:"targetId" gorm:"type:uuid;not null;uniqueIndex:idx_reports_edge"`
	ReportedBy   string           `json:"reportedBy" gorm:"type:uuid;not null;uniqueIndex:idx_reports_edge"`
	Reason       ReportReason     `json:"reason" gorm:"not null"`
	CustomReason string           `json:"customReason"`
	CreatedAt    time.Time        `json:"createdAt"`
}

type ReportCreate struct {
	Reason       ReportReason `json:"reason" binding:"required"`
	CustomReason string       `json:"customReason"`
}

func (Report) TableName() string {
	return "reports"
}

func ValidReportReason(r ReportReason) bool {
	switch r {
	case DISLIKE, HARASSMENT, SELF_HARM, VIOLENCE, RESTRICTED_ITEMS,
		NUDITY, SCAM, MISINFORMATION, ILLEGAL_CONTENT, OTHER:
		return true
	}
	return false
}
