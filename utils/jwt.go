package utils

import (
	"time"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret   []byte
	tokenExpiry = 12 * time.Hour
)

// InitJWT 注入签名密钥与有效期，进程启动时调用一次
func InitJWT(secret string, expiryHours int) {
	jwtSecret = []byte(secret)
	if expiryHours > 0 {
		tokenExpiry = time.Duration(expiryHours) * time.Hour
	}
}

type Claims struct {
	TeamID  uint        `json:"team_id,omitempty"`
	AdminID uint        `json:"admin_id,omitempty"`
	Role    models.Role `json:"role"`
	jwt.RegisteredClaims
}

func GenerateTeamToken(teamID uint) (string, error) {
	return generateToken(Claims{TeamID: teamID, Role: models.RoleTeam})
}

func GenerateAdminToken(adminID uint) (string, error) {
	return generateToken(Claims{AdminID: adminID, Role: models.RoleAdmin})
}

func generateToken(claims Claims) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// TokenExpiry 当前配置的令牌有效期，用于设置 Cookie MaxAge
func TokenExpiry() time.Duration {
	return tokenExpiry
}
