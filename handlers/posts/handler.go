package posts

import (
	"errors"
	"net/http"
	"time"

	"fanloop-backend/access"
	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// viewerFromContext builds the access viewer from what the auth middleware
// put in the gin context. Nil means anonymous.
func viewerFromContext(c *gin.Context) *access.Viewer {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return nil
	}
	v := &access.Viewer{ID: id}
	if role, ok := c.Get("role"); ok {
		if r, ok := role.(string); ok {
			v.Role = models.Role(r)
		}
	}
	return v
}

// CheckAccess loads the viewer's subscription edge and evaluates the access
// rules. Evaluation happens on every request; subscription state moves
// underneath via payments and the scheduler, so nothing is cached.
func CheckAccess(c *gin.Context, ownerID string, visibility models.PostVisibility) access.Decision {
	viewer := viewerFromContext(c)

	var sub *models.Subscription
	if viewer != nil && viewer.ID != ownerID && viewer.Role != models.AdminRole {
		var row models.Subscription
		err := db.DB.Where("user_id = ? AND creator_id = ?", viewer.ID, ownerID).First(&row).Error
		if err == nil {
			sub = &row
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError(err, "Error loading subscription in CheckAccess")
		}
	}

	return access.Evaluate(viewer, ownerID, visibility, sub, time.Now())
}

// DenyResponse maps a deny reason to its HTTP status and error code.
func DenyResponse(c *gin.Context, d access.Decision) {
	switch d.Reason {
	case access.DenyLoginRequired:
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "You must be logged in to view this content")
	case access.DenySubscriptionRequired:
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeSubscriptionRequired, "You must be subscribed to this creator")
	case access.DenyExpired:
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeExpired, "Your subscription has expired")
	case access.DenyPaidSubscriptionRequired:
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodePaidSubscriptionRequired, "A paid subscription is required for this content")
	default:
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "Access denied")
	}
}

// @Summary Create a post
// @Description Create a post owned by the connected creator
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.PostCreate true "Post content"
// @Security BearerAuth
// @Success 201 {object} models.Post
// @Router /posts [post]
func CreatePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	var body models.PostCreate
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	visibility := body.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilitySubscribersOnly {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Invalid visibility")
		return
	}

	post := models.Post{
		UserID:       userID.(string),
		Name:         body.Name,
		Content:      body.Content,
		PictureURL:   body.PictureURL,
		Visibility:   visibility,
		ReportStatus: models.ReportStatusNormal,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating post in CreatePost")
		utils.SendError(c, http.StatusInternalServerError, "Error creating post")
		return
	}

	utils.LogSuccessWithUser(userID, "Post created in CreatePost")
	c.JSON(http.StatusCreated, post)
}

// @Summary Get all posts
// @Description List visible posts. Hidden posts are excluded; gated content bodies are withheld per viewer.
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /posts [get]
func GetAllPosts(c *gin.Context) {
	var list []models.Post
	if err := db.DB.Where("report_status = ?", models.ReportStatusNormal).
		Order("created_at DESC").Find(&list).Error; err != nil {
		utils.LogError(err, "Error retrieving posts in GetAllPosts")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving posts")
		return
	}

	// Listing shows every post's metadata; bodies of gated posts are blanked
	// for viewers who would be denied on the detail route.
	for i := range list {
		if list[i].Visibility != models.VisibilitySubscribersOnly {
			continue
		}
		if d := CheckAccess(c, list[i].UserID, list[i].Visibility); !d.Allowed {
			list[i].Content = ""
			list[i].PictureURL = ""
		}
	}

	c.JSON(http.StatusOK, list)
}

// @Summary Get a post
// @Description Return one post, applying the access rules for the connected viewer
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 401 {object} utils.Response "code: LOGIN_REQUIRED"
// @Failure 403 {object} utils.Response "code: SUBSCRIPTION_REQUIRED / EXPIRED / PAID_SUBSCRIPTION_REQUIRED"
// @Failure 404 {object} utils.Response "code: POST_NOT_FOUND"
// @Router /posts/{id} [get]
func GetPostByID(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodePostNotFound, "Post not found")
		return
	}

	if post.ReportStatus == models.ReportStatusReported {
		viewer := viewerFromContext(c)
		if viewer == nil || (viewer.ID != post.UserID && viewer.Role != models.AdminRole) {
			utils.SendErrorCode(c, http.StatusNotFound, utils.CodePostNotFound, "Post not found")
			return
		}
	}

	if post.Visibility == models.VisibilitySubscribersOnly {
		if d := CheckAccess(c, post.UserID, post.Visibility); !d.Allowed {
			DenyResponse(c, d)
			return
		}
	}

	c.JSON(http.StatusOK, post)
}

// @Summary Update a post
// @Description Update a post owned by the connected user
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body models.PostUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.Post
// @Failure 403 {object} utils.Response "code: FORBIDDEN"
// @Router /posts/{id} [put]
func UpdatePost(c *gin.Context) {
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
	if post.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not the owner in UpdatePost")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "You are not authorized to update this post")
		return
	}

	var body models.PostUpdate
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	updates := map[string]interface{}{}
	if body.Name != "" {
		updates["name"] = body.Name
	}
	if body.Content != "" {
		updates["content"] = body.Content
	}
	if body.Visibility == models.VisibilityPublic || body.Visibility == models.VisibilitySubscribersOnly {
		updates["visibility"] = body.Visibility
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error updating post in UpdatePost")
			utils.SendError(c, http.StatusInternalServerError, "Error updating post")
			return
		}
	}

	utils.LogSuccessWithUser(userID, "Post updated in UpdatePost")
	c.JSON(http.StatusOK, post)
}

// @Summary Delete a post
// @Description Delete a post owned by the connected user, with its comments, likes and reports
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post deleted"
// @Failure 403 {object} utils.Response "code: FORBIDDEN"
// @Router /posts/{id} [delete]
func DeletePost(c *gin.Context) {
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
	if post.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not the owner in DeletePost")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "You are not authorized to delete this post")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Reports against the cascaded comments go with them.
		var commentIDs []string
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?", models.ReportTargetComment, commentIDs).
				Delete(&models.Report{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.ReportTargetPost, postID).
			Delete(&models.Report{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting post in DeletePost")
		utils.SendError(c, http.StatusInternalServerError, "Error deleting post")
		return
	}

	utils.LogSuccessWithUser(userID, "Post deleted in DeletePost")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
