package reports

import (
	"errors"
	"net/http"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/notify"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HideThreshold is the report count at which a target is hidden.
const HideThreshold = 1

type target struct {
	ownerID  string
	postName string
}

func loadPostTarget(id string) (*target, error) {
	var post models.Post
	if err := db.DB.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &target{ownerID: post.UserID, postName: post.Name}, nil
}

func loadCommentTarget(id string) (*target, error) {
	var comment models.Comment
	if err := db.DB.First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	t := &target{ownerID: comment.UserID}
	var post models.Post
	if err := db.DB.First(&post, "id = ?", comment.PostID).Error; err == nil {
		t.postName = post.Name
	}
	return t, nil
}

// @Summary Report a post
// @Description Report a post for inappropriate content. The first report hides it.
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param report body models.ReportCreate true "Report reason"
// @Security BearerAuth
// @Success 201 {object} models.Report
// @Failure 403 {object} utils.Response "code: CANNOT_REPORT_SELF"
// @Failure 404 {object} utils.Response "code: POST_NOT_FOUND"
// @Failure 409 {object} utils.Response "code: ALREADY_REPORTED"
// @Router /posts/{id}/report [post]
func ReportPost(c *gin.Context) {
	createReport(c, models.ReportTargetPost)
}

// @Summary Report a comment
// @Description Report a comment for inappropriate content. The first report hides it.
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param report body models.ReportCreate true "Report reason"
// @Security BearerAuth
// @Success 201 {object} models.Report
// @Failure 403 {object} utils.Response "code: CANNOT_REPORT_SELF"
// @Failure 404 {object} utils.Response "code: COMMENT_NOT_FOUND"
// @Failure 409 {object} utils.Response "code: ALREADY_REPORTED"
// @Router /comments/{id}/report [post]
func ReportComment(c *gin.Context) {
	createReport(c, models.ReportTargetComment)
}

func createReport(c *gin.Context, targetType models.ReportTargetType) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}
	targetID := c.Param("id")

	var t *target
	var err error
	if targetType == models.ReportTargetPost {
		t, err = loadPostTarget(targetID)
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Post not found in createReport")
			utils.SendErrorCode(c, http.StatusNotFound, utils.CodePostNotFound, "Post not found")
			return
		}
	} else {
		t, err = loadCommentTarget(targetID)
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Comment not found in createReport")
			utils.SendErrorCode(c, http.StatusNotFound, utils.CodeCommentNotFound, "Comment not found")
			return
		}
	}

	if t.ownerID == userID {
		utils.LogErrorWithUser(userID, nil, "Self report refused in createReport")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeCannotReportSelf, "You cannot report your own content")
		return
	}

	var reportCreate models.ReportCreate
	if !utils.ValidateRequestBody(c, &reportCreate) {
		return
	}
	if !models.ValidReportReason(reportCreate.Reason) {
		utils.LogErrorWithUser(userID, nil, "Invalid report reason in createReport")
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Invalid report reason")
		return
	}

	report := models.Report{
		TargetType:   targetType,
		TargetID:     targetID,
		ReportedBy:   userID.(string),
		Reason:       reportCreate.Reason,
		CustomReason: reportCreate.CustomReason,
	}

	// Duplicates are settled by the unique (target, reporter) index, not an
	// application-level read, so two concurrent identical reports cannot both
	// land.
	if err := db.DB.Create(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.LogErrorWithUser(userID, nil, "Duplicate report in createReport")
			utils.SendErrorCode(c, http.StatusConflict, utils.CodeAlreadyReported, "You have already reported this content")
			return
		}
		utils.LogErrorWithUser(userID, err, "Error creating report in createReport")
		utils.SendError(c, http.StatusInternalServerError, "Error creating report")
		return
	}

	if err := applyThreshold(targetType, targetID); err != nil {
		utils.LogError(err, "Error applying report threshold in createReport")
	}

	notifType := models.NotifPostReported
	if targetType == models.ReportTargetComment {
		notifType = models.NotifCommentReported
	}
	notify.BestEffort(t.ownerID, notifType, targetID, models.MessageContext{PostName: t.postName})

	utils.LogSuccessWithUser(userID, "Report created in createReport")
	c.JSON(http.StatusCreated, report)
}

// applyThreshold hides the target once its report count reaches the
// threshold.
func applyThreshold(targetType models.ReportTargetType, targetID string) error {
	var count int64
	err := db.DB.Model(&models.Report{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count < HideThreshold {
		return nil
	}
	return setReportStatus(targetType, targetID, models.ReportStatusReported)
}

func setReportStatus(targetType models.ReportTargetType, targetID string, status models.ReportStatus) error {
	if targetType == models.ReportTargetPost {
		return db.DB.Model(&models.Post{}).Where("id = ?", targetID).
			Update("report_status", status).Error
	}
	return db.DB.Model(&models.Comment{}).Where("id = ?", targetID).
		Update("report_status", status).Error
}

// @Summary Get all reports (Admin only)
// @Description Get all reports, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Report
// @Router /admin/reports [get]
func GetAllReports(c *gin.Context) {
	var list []models.Report
	if err := db.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		utils.LogError(err, "Error retrieving reports in GetAllReports")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving reports")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		userID = "0"
	}
	utils.LogSuccessWithUser(userID, "Reports listed in GetAllReports")
	c.JSON(http.StatusOK, list)
}
