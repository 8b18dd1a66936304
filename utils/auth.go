package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"localmarket/models"
)

// JwtKey is the HS256 signing key, loaded from JWT_SECRET in main.
var JwtKey = []byte("change_me")

// Claims is the authenticated principal carried by every request: identity,
// role and locality, which is all the core trusts.
type Claims struct {
	UserID   string      `json:"user_id"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	Locality string      `json:"locality"`
	jwt.StandardClaims
}

// GenerateJWT mints a 24h session token for the user.
func GenerateJWT(user *models.User) (string, error) {
	claims := &Claims{
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		Role:     user.Role,
		Locality: user.Locality,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}
