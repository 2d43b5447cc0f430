package likes

import (
	"errors"
	"net/http"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Toggle like on a post
// @Description Add or remove a like on a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Like added/removed successfully"
// @Failure 401 {object} utils.Response "code: LOGIN_REQUIRED"
// @Failure 404 {object} utils.Response "code: POST_NOT_FOUND"
// @Router /posts/{id}/like [post]
func ToggleLike(c *gin.Context) {
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

	var like models.Like
	result := db.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&like)

	if result.Error == nil {
		if err := db.DB.Delete(&like).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Error removing like: "+err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Like removed successfully"})
		return
	}

	like = models.Like{
		PostID: postID,
		UserID: userID.(string),
	}

	if err := db.DB.Create(&like).Error; err != nil {
		// Two toggles racing on the same pair: the loser's insert hits the
		// unique index, which just means the like already exists. Resolve to
		// the current state instead of failing.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusOK, gin.H{"message": "Like added successfully"})
			return
		}
		utils.SendError(c, http.StatusInternalServerError, "Error adding like: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like added successfully"})
}

// @Summary Count likes on a post
// @Description Return the number of likes on a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]int64 "likes: count"
// @Router /posts/{id}/likes [get]
func CountLikes(c *gin.Context) {
	postID := c.Param("id")

	var count int64
	if err := db.DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Error counting likes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": count})
}
