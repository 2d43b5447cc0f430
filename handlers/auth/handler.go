package auth

import (
	"errors"
	"net/http"
	"strings"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Create a new user
// @Description Create a new user with the provided information
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserCreate true "User information"
// @Success 201 {object} map[string]interface{} "message: User created successfully, email: user email"
// @Failure 400 {object} utils.Response "code: INVALID_INPUT"
// @Failure 409 {object} utils.Response "code: CONFLICT"
// @Router /register [post]
func CreateUser(c *gin.Context) {
	var body models.UserCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateEmail(body.Email) {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "Invalid email format")
		return
	}

	if len(body.Password) < 6 {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "The password must contain at least 6 characters")
		return
	}

	hasLower := strings.ContainsAny(body.Password, "abcdefghijklmnopqrstuvwxyz")
	hasUpper := strings.ContainsAny(body.Password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	hasDigit := strings.ContainsAny(body.Password, "0123456789")
	if !hasLower || !hasUpper || !hasDigit {
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "The password must contain at least one lowercase, one uppercase and one digit")
		return
	}

	var existingUser models.User
	if err := db.DB.Where("email = ?", body.Email).First(&existingUser).Error; err == nil {
		utils.SendErrorCode(c, http.StatusConflict, utils.CodeConflict, "This email is already used")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.SendError(c, http.StatusInternalServerError, "Error when checking the email existence")
		return
	}

	passwordHash, err := hashPassword(body.Password)
	if err != nil {
		utils.SendError(c, http.StatusUnprocessableEntity, "Error hashing the password")
		return
	}

	user := models.User{
		Email:    body.Email,
		Password: passwordHash,
		UserName: body.UserName,
		Role:     models.UserRole,
		Enable:   true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SendErrorCode(c, http.StatusConflict, utils.CodeConflict, "This email is already used")
			return
		}
		utils.LogError(err, "Error creating user in CreateUser")
		utils.SendError(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	go utils.SendMail(user.Email, []byte("Subject: Welcome to Fanloop\r\n\r\nYour account has been created."))

	utils.LogSuccessWithUser(user.ID, "User created in CreateUser")
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"email":   user.Email,
	})
}

// @Summary User login
// @Description Log in with email and password, returns the access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLogin true "Credentials"
// @Success 200 {object} map[string]string "accessToken, refreshToken"
// @Failure 401 {object} utils.Response "error: Invalid credentials"
// @Router /login [post]
func Login(c *gin.Context) {
	var body models.UserLogin
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.Enable {
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeForbidden, "This account is disabled")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	access, refresh, err := utils.GenerateTokenPair(user)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error generating tokens in Login")
		utils.SendError(c, http.StatusInternalServerError, "Error generating tokens")
		return
	}

	utils.LogSuccessWithUser(user.ID, "User logged in")
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

type refreshBody struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// @Summary Refresh the token pair
// @Description Exchange a valid refresh token for a new access/refresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param token body refreshBody true "Refresh token"
// @Success 200 {object} map[string]string "accessToken, refreshToken"
// @Failure 401 {object} utils.Response "error: Invalid or expired token"
// @Router /refresh [post]
func Refresh(c *gin.Context) {
	var body refreshBody
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	claims, err := utils.DecodeJWT(body.RefreshToken)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		utils.SendError(c, http.StatusUnauthorized, "Invalid token claims")
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "User no longer exists")
		return
	}

	access, refresh, err := utils.GenerateTokenPair(user)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error generating tokens in Refresh")
		utils.SendError(c, http.StatusInternalServerError, "Error generating tokens")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
