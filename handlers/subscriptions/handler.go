package subscriptions

import (
	"errors"
	"net/http"
	"time"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Subscribe to a creator
// @Description Create a free subscription to a creator
// @Tags subscriptions
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Security BearerAuth
// @Success 201 {object} models.Subscription
// @Failure 400 {object} utils.Response "code: SELF_SUBSCRIBE_FORBIDDEN"
// @Failure 403 {object} utils.Response "code: NOT_CREATOR"
// @Failure 409 {object} utils.Response "code: CONFLICT"
// @Router /subscriptions/{creatorId} [post]
func SubscribeHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}
	creatorID := c.Param("creatorId")

	sub, err := Subscribe(db.DB, userID.(string), creatorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfSubscribe):
			utils.LogErrorWithUser(userID, nil, "Self subscribe refused in SubscribeHandler")
			utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeSelfSubscribeForbidden, "You cannot subscribe to yourself")
		case errors.Is(err, ErrNotCreator):
			utils.LogErrorWithUser(userID, nil, "Target is not a creator in SubscribeHandler")
			utils.SendErrorCode(c, http.StatusForbidden, utils.CodeNotCreator, "Can only subscribe to a creator")
		case errors.Is(err, ErrAlreadySubscribed):
			utils.LogErrorWithUser(userID, nil, "Duplicate subscription in SubscribeHandler")
			utils.SendErrorCode(c, http.StatusConflict, utils.CodeConflict, "You already have a subscription with this creator")
		default:
			utils.LogErrorWithUser(userID, err, "Error creating subscription in SubscribeHandler")
			utils.SendError(c, http.StatusInternalServerError, "Error creating subscription")
		}
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription created in SubscribeHandler")
	c.JSON(http.StatusCreated, sub)
}

// @Summary Update a subscription's status
// @Description Set a subscription to ACTIVE or CANCELED. Other statuses are ignored.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Param status body models.SubscriptionStatusUpdate true "New status"
// @Security BearerAuth
// @Success 200 {object} models.Subscription
// @Failure 403 {object} utils.Response "code: FORBIDDEN"
// @Failure 404 {object} utils.Response "code: NOT_FOUND"
// @Router /subscription/{subscriptionId}/status [patch]
func UpdateStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	subscriptionID := c.Param("subscriptionId")
	if _, err := uuid.Parse(subscriptionID); err != nil {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Invalid subscription ID")
		return
	}

	var body models.SubscriptionStatusUpdate
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	var sub models.Subscription
	if err := db.DB.First(&sub, "id = ?", subscriptionID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Subscription not found in UpdateStatus")
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "Subscription not found")
		return
	}

	if sub.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not the owner in UpdateStatus")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "You are not authorized to update this subscription")
		return
	}

	// Only ACTIVE and CANCELED are applied; anything else falls through
	// untouched.
	switch body.Status {
	case models.SubscriptionActive, models.SubscriptionCanceled:
		if err := db.DB.Model(&sub).Update("status", body.Status).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error updating status in UpdateStatus")
			utils.SendError(c, http.StatusInternalServerError, "Error updating the subscription status")
			return
		}
		sub.Status = body.Status
	default:
	}

	utils.LogSuccessWithUser(userID, "Subscription status updated in UpdateStatus")
	c.JSON(http.StatusOK, sub)
}

// @Summary Delete a subscription
// @Description Delete a subscription. Refused while a paid period is still running.
// @Tags subscriptions
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Subscription deleted"
// @Failure 403 {object} utils.Response "code: FORBIDDEN"
// @Failure 409 {object} utils.Response "code: CANNOT_DELETE_NOT_EXPIRED"
// @Router /subscription/{subscriptionId} [delete]
func Delete(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	subscriptionID := c.Param("subscriptionId")
	if _, err := uuid.Parse(subscriptionID); err != nil {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Invalid subscription ID")
		return
	}

	var sub models.Subscription
	if err := db.DB.First(&sub, "id = ?", subscriptionID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Subscription not found in Delete")
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "Subscription not found")
		return
	}

	if sub.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not the owner in Delete")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "You are not authorized to delete this subscription")
		return
	}

	// An active paid relationship cannot be deleted out from under the
	// creator; it must run out first.
	if sub.ExpiresAt != nil && time.Now().Before(*sub.ExpiresAt) {
		utils.LogErrorWithUser(userID, nil, "Subscription not expired in Delete")
		utils.SendErrorCode(c, http.StatusConflict, utils.CodeCannotDeleteNotExpired, "Subscription has not expired yet")
		return
	}

	if err := db.DB.Delete(&sub).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting subscription in Delete")
		utils.SendError(c, http.StatusInternalServerError, "Error deleting the subscription")
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription deleted in Delete")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted"})
}

// @Summary List the user's subscriptions
// @Description Return all subscriptions of the connected user
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subscription
// @Router /subscriptions [get]
func GetUserSubscriptions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	var subs []models.Subscription
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching subscriptions in GetUserSubscriptions")
		utils.SendError(c, http.StatusInternalServerError, "Error fetching subscriptions")
		return
	}

	utils.LogSuccessWithUser(userID, "Subscriptions listed in GetUserSubscriptions")
	c.JSON(http.StatusOK, subs)
}

// @Summary Details of a subscription
// @Description Return one subscription of the connected user
// @Tags subscriptions
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Security BearerAuth
// @Success 200 {object} models.Subscription
// @Failure 403 {object} utils.Response "code: FORBIDDEN"
// @Failure 404 {object} utils.Response "code: NOT_FOUND"
// @Router /subscription/{subscriptionId} [get]
func GetSubscriptionDetail(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	subscriptionID := c.Param("subscriptionId")
	if _, err := uuid.Parse(subscriptionID); err != nil {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Invalid subscription ID")
		return
	}

	var sub models.Subscription
	if err := db.DB.First(&sub, "id = ?", subscriptionID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Subscription not found in GetSubscriptionDetail")
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "Subscription not found")
		return
	}

	if sub.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not the owner in GetSubscriptionDetail")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "You are not authorized to view this subscription")
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription detail fetched in GetSubscriptionDetail")
	c.JSON(http.StatusOK, sub)
}
