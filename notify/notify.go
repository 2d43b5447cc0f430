// Package notify creates inbox notifications for business events. Storage
// and delivery beyond the inbox row are out of its hands.
package notify

import (
	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/utils"

	"gorm.io/gorm"
)

// Create renders the message for the given type and inserts the inbox row.
func Create(recipientID string, t models.NotificationType, targetRef string, ctx models.MessageContext) error {
	return CreateTx(db.DB, recipientID, t, targetRef, ctx)
}

// CreateTx is Create inside a caller-owned transaction.
func CreateTx(tx *gorm.DB, recipientID string, t models.NotificationType, targetRef string, ctx models.MessageContext) error {
	title, body := models.RenderMessage(t, ctx)
	n := models.Notification{
		UserID:    recipientID,
		Type:      t,
		TargetRef: targetRef,
		Title:     title,
		Body:      body,
	}
	return tx.Create(&n).Error
}

// BestEffort is Create with the error swallowed into the log. Used where the
// triggering operation must not fail because the inbox insert did.
func BestEffort(recipientID string, t models.NotificationType, targetRef string, ctx models.MessageContext) {
	if err := Create(recipientID, t, targetRef, ctx); err != nil {
		utils.LogError(err, "Error creating notification "+string(t))
	}
}
