package users

import (
	"errors"
	"net/http"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Apply to become a creator
// @Description Submit a creator application with payout account details
// @Tags users
// @Accept json
// @Produce json
// @Param application body models.CreatorApplicationCreate true "Application"
// @Security BearerAuth
// @Success 201 {object} models.CreatorApplication
// @Failure 409 {object} utils.Response "code: CONFLICT"
// @Router /me/creator-application [post]
func ApplyAsCreator(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "User not found")
		return
	}
	if user.Role == models.CreatorRole {
		utils.SendErrorCode(c, http.StatusConflict, utils.CodeConflict, "You are already a creator")
		return
	}

	var pending models.CreatorApplication
	err := db.DB.Where("user_id = ? AND status = ?", userID, models.CreatorApplicationPending).
		First(&pending).Error
	if err == nil {
		utils.SendErrorCode(c, http.StatusConflict, utils.CodeConflict, "You already have a pending application")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.SendError(c, http.StatusInternalServerError, "Error checking applications")
		return
	}

	var body models.CreatorApplicationCreate
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	application := models.CreatorApplication{
		UserID:        userID.(string),
		BankCode:      body.BankCode,
		AccountNumber: body.AccountNumber,
		AccountHolder: body.AccountHolder,
		Introduction:  body.Introduction,
		Status:        models.CreatorApplicationPending,
	}
	if err := db.DB.Create(&application).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating application in ApplyAsCreator")
		utils.SendError(c, http.StatusInternalServerError, "Error creating application")
		return
	}

	utils.LogSuccessWithUser(userID, "Creator application submitted")
	c.JSON(http.StatusCreated, application)
}

// @Summary List creator applications (Admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CreatorApplication
// @Router /admin/creator-applications [get]
func GetCreatorApplications(c *gin.Context) {
	var list []models.CreatorApplication
	if err := db.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving applications")
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Review a creator application (Admin only)
// @Description Approve or reject an application. Approval grants the CREATOR role and links the payout account.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param status body models.CreatorApplicationStatusUpdate true "New status"
// @Security BearerAuth
// @Success 200 {object} models.CreatorApplication
// @Failure 409 {object} utils.Response "code: CONFLICT"
// @Router /admin/creator-applications/{id} [patch]
func ReviewCreatorApplication(c *gin.Context) {
	applicationID := c.Param("id")

	var application models.CreatorApplication
	if err := db.DB.First(&application, "id = ?", applicationID).Error; err != nil {
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "Application not found")
		return
	}
	if application.Status != models.CreatorApplicationPending {
		utils.SendErrorCode(c, http.StatusConflict, utils.CodeConflict, "This application has already been reviewed")
		return
	}

	var body models.CreatorApplicationStatusUpdate
	if !utils.ValidateRequestBody(c, &body) {
		return
	}
	if body.Status != models.CreatorApplicationApproved && body.Status != models.CreatorApplicationRejected {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Status must be APPROVED or REJECTED")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&application).Update("status", body.Status).Error; err != nil {
			return err
		}
		if body.Status != models.CreatorApplicationApproved {
			return nil
		}
		return tx.Model(&models.User{}).Where("id = ?", application.UserID).
			Updates(map[string]interface{}{
				"role":           models.CreatorRole,
				"bank_code":      application.BankCode,
				"account_number": application.AccountNumber,
				"account_holder": application.AccountHolder,
			}).Error
	})
	if err != nil {
		utils.LogError(err, "Error reviewing application in ReviewCreatorApplication")
		utils.SendError(c, http.StatusInternalServerError, "Error reviewing the application")
		return
	}

	application.Status = body.Status
	utils.LogSuccess("Creator application reviewed")
	c.JSON(http.StatusOK, application)
}
