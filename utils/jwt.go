package utils

import (
	"fmt"
	"os"
	"time"

	"fanloop-backend/models"

	"github.com/golang-jwt/jwt"
)

const (
	AccessTokenHours  = 24
	RefreshTokenHours = 24 * 7
)

func GenerateJWT(user models.User, hours int) (string, error) {
	var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * time.Duration(hours)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// GenerateTokenPair issues the access/refresh pair for a login.
func GenerateTokenPair(user models.User) (access string, refresh string, err error) {
	access, err = GenerateJWT(user, AccessTokenHours)
	if err != nil {
		return "", "", err
	}
	refresh, err = GenerateJWT(user, RefreshTokenHours)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func DecodeJWT(tokenString string) (jwt.MapClaims, error) {
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid or expired token")
}
