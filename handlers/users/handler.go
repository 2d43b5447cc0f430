package users

import (
	"net/http"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Get the connected user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /me [get]
func GetMe(c *gin.Context) {
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

	c.JSON(http.StatusOK, user)
}

// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Router /users/{id} [get]
func GetUserByID(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                user.ID,
		"username":          user.UserName,
		"bio":               user.Bio,
		"profilePicture":    user.ProfilePicture,
		"role":              user.Role,
		"subscriptionPrice": user.SubscriptionPrice,
	})
}

// @Summary Update the connected user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /me [put]
func UpdateMe(c *gin.Context) {
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

	var body models.UserUpdate
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	updates := map[string]interface{}{}
	if body.UserName != "" {
		updates["user_name"] = body.UserName
	}
	if body.Bio != "" {
		updates["bio"] = body.Bio
	}
	// The membership price only means something for creators.
	if body.SubscriptionPrice > 0 && user.Role == models.CreatorRole {
		updates["subscription_price"] = body.SubscriptionPrice
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error updating profile in UpdateMe")
			utils.SendError(c, http.StatusInternalServerError, "Error updating profile")
			return
		}
	}

	utils.LogSuccessWithUser(userID, "Profile updated in UpdateMe")
	c.JSON(http.StatusOK, user)
}

// @Summary Upload a profile picture
// @Description Upload an image and set it as the connected user's profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Security BearerAuth
// @Success 200 {object} map[string]string "profilePicture: URL"
// @Router /me/profile-picture [post]
func UploadProfilePicture(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Missing file")
		return
	}

	url, err := utils.UploadProfilePicture(file)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error uploading picture in UploadProfilePicture")
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_picture", url).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error saving picture URL in UploadProfilePicture")
		utils.SendError(c, http.StatusInternalServerError, "Error saving profile picture")
		return
	}

	utils.LogSuccessWithUser(userID, "Profile picture updated")
	c.JSON(http.StatusOK, gin.H{"profilePicture": url})
}
