package comments

import (
	"net/http"

	"fanloop-backend/db"
	"fanloop-backend/handlers/posts"
	"fanloop-backend/models"
	"fanloop-backend/notify"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Comment on a post
// @Description Create a comment or a reply. Replies to replies are rejected: the tree is two levels deep.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param comment body models.CommentCreate true "Comment content"
// @Security BearerAuth
// @Success 201 {object} models.Comment
// @Failure 400 {object} utils.Response "code: REPLY_DEPTH_EXCEEDED"
// @Failure 404 {object} utils.Response "code: POST_NOT_FOUND"
// @Router /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}
	postID := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodePostNotFound, "Post not found")
		return
	}

	// Commenting is gated the same way as reading.
	if post.Visibility == models.VisibilitySubscribersOnly {
		if d := posts.CheckAccess(c, post.UserID, post.Visibility); !d.Allowed {
			posts.DenyResponse(c, d)
			return
		}
	}

	var body models.CommentCreate
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	if body.ParentID != nil {
		var parent models.Comment
		if err := db.DB.First(&parent, "id = ?", *body.ParentID).Error; err != nil {
			utils.SendErrorCode(c, http.StatusNotFound, utils.CodeCommentNotFound, "Parent comment not found")
			return
		}
		if parent.PostID != postID {
			utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Parent comment belongs to another post")
			return
		}
		// Max depth 2: a reply cannot itself be replied to.
		if parent.ParentID != nil {
			utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeReplyDepthExceeded, "Replies to replies are not allowed")
			return
		}
	}

	comment := models.Comment{
		PostID:       postID,
		UserID:       userID.(string),
		ParentID:     body.ParentID,
		Content:      body.Content,
		ReportStatus: models.ReportStatusNormal,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating comment in CreateComment")
		utils.SendError(c, http.StatusInternalServerError, "Error creating comment")
		return
	}

	if post.UserID != userID.(string) {
		var author models.User
		actorName := ""
		if err := db.DB.Select("user_name").First(&author, "id = ?", userID).Error; err == nil {
			actorName = author.UserName
		}
		notify.BestEffort(post.UserID, models.NotifCommentCreated, comment.ID, models.MessageContext{
			ActorName: actorName,
			PostName:  post.Name,
		})
	}

	utils.LogSuccessWithUser(userID, "Comment created in CreateComment")
	c.JSON(http.StatusCreated, comment)
}

// @Summary Get a post's comments
// @Description Return the visible comments of a post, oldest first
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.Comment
// @Router /posts/{id}/comments [get]
func GetCommentsByPostID(c *gin.Context) {
	postID := c.Param("id")

	var list []models.Comment
	err := db.DB.Where("post_id = ? AND report_status = ?", postID, models.ReportStatusNormal).
		Order("created_at ASC").Find(&list).Error
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to retrieve comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": list})
}

// @Summary Delete a comment
// @Description Delete a comment owned by the connected user. Deleting a root comment removes its direct replies.
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Comment deleted"
// @Failure 403 {object} utils.Response "code: FORBIDDEN"
// @Router /comments/{id} [delete]
func DeleteComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}
	commentID := c.Param("id")

	var comment models.Comment
	if err := db.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeCommentNotFound, "Comment not found")
		return
	}
	if comment.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not the owner in DeleteComment")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "You are not authorized to delete this comment")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// The comment, its direct replies, and every report against them.
		var replyIDs []string
		if err := tx.Model(&models.Comment{}).Where("parent_id = ?", commentID).
			Pluck("id", &replyIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id IN ?",
			models.ReportTargetComment, append(replyIDs, commentID)).
			Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", commentID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting comment in DeleteComment")
		utils.SendError(c, http.StatusInternalServerError, "Error deleting comment")
		return
	}

	utils.LogSuccessWithUser(userID, "Comment deleted in DeleteComment")
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
