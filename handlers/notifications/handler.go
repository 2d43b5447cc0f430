package notifications

import (
	"net/http"
	"time"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/notify"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary List the user's notifications
// @Description Return the connected user's inbox, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Notification
// @Router /notifications [get]
func GetMyNotifications(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	var list []models.Notification
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching notifications in GetMyNotifications")
		utils.SendError(c, http.StatusInternalServerError, "Error fetching notifications")
		return
	}

	c.JSON(http.StatusOK, list)
}

// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Notification marked as read"
// @Failure 403 {object} utils.Response "code: FORBIDDEN"
// @Router /notifications/{id}/read [post]
func MarkRead(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	var notification models.Notification
	if err := db.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "Notification not found")
		return
	}
	if notification.UserID != userID {
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "You are not authorized to update this notification")
		return
	}

	now := time.Now()
	if err := db.DB.Model(&notification).Update("read_at", now).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error marking notification read in MarkRead")
		utils.SendError(c, http.StatusInternalServerError, "Error updating notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

type announcementBody struct {
	Message string `json:"message" binding:"required"`
}

// @Summary Broadcast an announcement (Admin only)
// @Description Send an announcement notification to every enabled user
// @Tags admin
// @Accept json
// @Produce json
// @Param announcement body announcementBody true "Announcement text"
// @Security BearerAuth
// @Success 200 {object} map[string]int64 "recipients: count"
// @Router /admin/announcements [post]
func BroadcastAnnouncement(c *gin.Context) {
	var body announcementBody
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	var userIDs []string
	if err := db.DB.Model(&models.User{}).Where("enable = ?", true).Pluck("id", &userIDs).Error; err != nil {
		utils.LogError(err, "Error listing users in BroadcastAnnouncement")
		utils.SendError(c, http.StatusInternalServerError, "Error listing users")
		return
	}

	var sent int64
	for _, id := range userIDs {
		if err := notify.Create(id, models.NotifAnnouncement, "", models.MessageContext{Custom: body.Message}); err != nil {
			utils.LogError(err, "Error sending announcement to "+id)
			continue
		}
		sent++
	}

	utils.LogSuccess("Announcement broadcast")
	c.JSON(http.StatusOK, gin.H{"recipients": sent})
}
