package reports

import (
	"net/http"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func currentReportStatus(targetType models.ReportTargetType, targetID string) (models.ReportStatus, error) {
	if targetType == models.ReportTargetPost {
		var post models.Post
		if err := db.DB.First(&post, "id = ?", targetID).Error; err != nil {
			return "", err
		}
		return post.ReportStatus, nil
	}
	var comment models.Comment
	if err := db.DB.First(&comment, "id = ?", targetID).Error; err != nil {
		return "", err
	}
	return comment.ReportStatus, nil
}

// @Summary Restore a hidden post (Admin only)
// @Description Unhide a reported post and wipe its reports, resetting the count to zero
// @Tags admin
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post restored"
// @Failure 409 {object} utils.Response "code: NOT_REPORTED_OBJECT"
// @Router /admin/posts/{id}/restore [post]
func RestorePost(c *gin.Context) {
	restoreTarget(c, models.ReportTargetPost)
}

// @Summary Restore a hidden comment (Admin only)
// @Description Unhide a reported comment and wipe its reports
// @Tags admin
// @Produce json
// @Param id path string true "Comment ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Comment restored"
// @Failure 409 {object} utils.Response "code: NOT_REPORTED_OBJECT"
// @Router /admin/comments/{id}/restore [post]
func RestoreComment(c *gin.Context) {
	restoreTarget(c, models.ReportTargetComment)
}

// restoreTarget unhides the content and deletes every report against it: a
// restored item needs a fresh threshold of reports to be hidden again.
func restoreTarget(c *gin.Context, targetType models.ReportTargetType) {
	targetID := c.Param("id")

	status, err := currentReportStatus(targetType, targetID)
	if err != nil {
		utils.LogError(err, "Target not found in restoreTarget")
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "Target not found")
		return
	}
	if status != models.ReportStatusReported {
		utils.LogError(nil, "Target not hidden in restoreTarget")
		utils.SendErrorCode(c, http.StatusConflict, utils.CodeNotReportedObject, "This content is not hidden")
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if targetType == models.ReportTargetPost {
			if err := tx.Model(&models.Post{}).Where("id = ?", targetID).
				Update("report_status", models.ReportStatusNormal).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.Comment{}).Where("id = ?", targetID).
				Update("report_status", models.ReportStatusNormal).Error; err != nil {
				return err
			}
		}
		return tx.Where("target_type = ? AND target_id = ?", targetType, targetID).
			Delete(&models.Report{}).Error
	})
	if err != nil {
		utils.LogError(err, "Error restoring target in restoreTarget")
		utils.SendError(c, http.StatusInternalServerError, "Error restoring the content")
		return
	}

	utils.LogSuccess("Content restored in restoreTarget")
	c.JSON(http.StatusOK, gin.H{"message": "Content restored"})
}

// @Summary Delete a hidden post (Admin only)
// @Description Hard delete a reported post together with its comments, likes and reports
// @Tags admin
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post deleted"
// @Failure 409 {object} utils.Response "code: NOT_REPORTED_OBJECT"
// @Router /admin/posts/{id} [delete]
func DeletePost(c *gin.Context) {
	targetID := c.Param("id")

	status, err := currentReportStatus(models.ReportTargetPost, targetID)
	if err != nil {
		utils.LogError(err, "Post not found in DeletePost")
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodePostNotFound, "Post not found")
		return
	}
	if status != models.ReportStatusReported {
		utils.LogError(nil, "Post not hidden in DeletePost")
		utils.SendErrorCode(c, http.StatusConflict, utils.CodeNotReportedObject, "This post is not hidden")
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Reports against the cascaded comments go with them.
		var commentIDs []string
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", targetID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?", models.ReportTargetComment, commentIDs).
				Delete(&models.Report{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", targetID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", targetID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.ReportTargetPost, targetID).
			Delete(&models.Report{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", targetID).Error
	})
	if err != nil {
		utils.LogError(err, "Error deleting post in DeletePost")
		utils.SendError(c, http.StatusInternalServerError, "Error deleting the post")
		return
	}

	utils.LogSuccess("Post deleted in DeletePost")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// @Summary Delete a hidden comment (Admin only)
// @Description Hard delete a reported comment together with its direct replies and reports
// @Tags admin
// @Produce json
// @Param id path string true "Comment ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Comment deleted"
// @Failure 409 {object} utils.Response "code: NOT_REPORTED_OBJECT"
// @Router /admin/comments/{id} [delete]
func DeleteComment(c *gin.Context) {
	targetID := c.Param("id")

	status, err := currentReportStatus(models.ReportTargetComment, targetID)
	if err != nil {
		utils.LogError(err, "Comment not found in DeleteComment")
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeCommentNotFound, "Comment not found")
		return
	}
	if status != models.ReportStatusReported {
		utils.LogError(nil, "Comment not hidden in DeleteComment")
		utils.SendErrorCode(c, http.StatusConflict, utils.CodeNotReportedObject, "This comment is not hidden")
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Two-level tree: deleting a root takes its direct replies with it,
		// reports included.
		var replyIDs []string
		if err := tx.Model(&models.Comment{}).Where("parent_id = ?", targetID).
			Pluck("id", &replyIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id IN ?",
			models.ReportTargetComment, append(replyIDs, targetID)).
			Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", targetID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id = ?", targetID).Error
	})
	if err != nil {
		utils.LogError(err, "Error deleting comment in DeleteComment")
		utils.SendError(c, http.StatusInternalServerError, "Error deleting the comment")
		return
	}

	utils.LogSuccess("Comment deleted in DeleteComment")
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
