package settlements

import (
	"net/http"
	"time"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Record the settlement ledger for a creator (Admin only)
// @Description Run the ledger over the last completed week, or the current partial week with ?window=current
// @Tags admin
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Param window query string false "last (default) or current"
// @Security BearerAuth
// @Success 200 {object} map[string]int "created: number of items recorded"
// @Router /admin/creators/{creatorId}/settlement-items [post]
func RecordLedgerHandler(c *gin.Context) {
	creatorID := c.Param("creatorId")
	if _, err := uuid.Parse(creatorID); err != nil {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Invalid creator ID")
		return
	}

	now := time.Now()
	var start, end time.Time
	if c.Query("window") == "current" {
		start, end = CurrentWeekWindow(now)
	} else {
		start, end = LastWeekWindow(now)
	}

	created, err := RecordLedger(db.DB, creatorID, start, end)
	if err != nil {
		utils.LogError(err, "Error recording ledger in RecordLedgerHandler")
		utils.SendError(c, http.StatusInternalServerError, "Error recording the settlement ledger")
		return
	}

	utils.LogSuccess("Ledger recorded in RecordLedgerHandler")
	c.JSON(http.StatusOK, gin.H{"created": created})
}

// @Summary Confirm the prior month's settlement for a creator (Admin only)
// @Description Fold the creator's recorded items of the prior calendar month into one completed settlement
// @Tags admin
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Security BearerAuth
// @Success 200 {object} models.Settlement
// @Success 204 {object} nil "No items to confirm"
// @Router /admin/creators/{creatorId}/settlements [post]
func ConfirmMonthHandler(c *gin.Context) {
	creatorID := c.Param("creatorId")
	if _, err := uuid.Parse(creatorID); err != nil {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Invalid creator ID")
		return
	}

	settlement, err := ConfirmMonth(db.DB, creatorID, time.Now())
	if err != nil {
		utils.LogError(err, "Error confirming month in ConfirmMonthHandler")
		utils.SendError(c, http.StatusInternalServerError, "Error confirming the settlement")
		return
	}
	if settlement == nil {
		c.Status(http.StatusNoContent)
		return
	}

	utils.LogSuccess("Settlement confirmed in ConfirmMonthHandler")
	c.JSON(http.StatusOK, settlement)
}

// @Summary List a creator's settlements
// @Description Return a creator's settlements, newest first. Admins may query any creator; creators only themselves.
// @Tags settlements
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Security BearerAuth
// @Success 200 {array} models.Settlement
// @Failure 403 {object} utils.Response "code: FORBIDDEN"
// @Router /creators/{creatorId}/settlements [get]
func GetSettlements(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}
	creatorID := c.Param("creatorId")

	role, _ := c.Get("role")
	if role != string(models.AdminRole) && userID != creatorID {
		utils.LogErrorWithUser(userID, nil, "Forbidden settlement access in GetSettlements")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "You are not authorized to view these settlements")
		return
	}

	var list []models.Settlement
	if err := db.DB.Where("creator_id = ?", creatorID).Order("period_start DESC").Find(&list).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching settlements in GetSettlements")
		utils.SendError(c, http.StatusInternalServerError, "Error fetching settlements")
		return
	}

	utils.LogSuccessWithUser(userID, "Settlements listed in GetSettlements")
	c.JSON(http.StatusOK, list)
}

// @Summary List a creator's settlement items
// @Description Return a creator's ledger items, newest first. Admins may query any creator; creators only themselves.
// @Tags settlements
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Security BearerAuth
// @Success 200 {array} models.SettlementItem
// @Failure 403 {object} utils.Response "code: FORBIDDEN"
// @Router /creators/{creatorId}/settlement-items [get]
func GetSettlementItems(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}
	creatorID := c.Param("creatorId")

	role, _ := c.Get("role")
	if role != string(models.AdminRole) && userID != creatorID {
		utils.LogErrorWithUser(userID, nil, "Forbidden item access in GetSettlementItems")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "You are not authorized to view these items")
		return
	}

	var items []models.SettlementItem
	if err := db.DB.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&items).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching items in GetSettlementItems")
		utils.SendError(c, http.StatusInternalServerError, "Error fetching settlement items")
		return
	}

	utils.LogSuccessWithUser(userID, "Settlement items listed in GetSettlementItems")
	c.JSON(http.StatusOK, items)
}
