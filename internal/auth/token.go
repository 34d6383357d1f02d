package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

var (
	// ErrInvalidToken возвращается при невалидном или просроченном токене
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims полезная нагрузка токена доступа
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken выпускает HS256 токен для пользователя
func CreateToken(secret string, user *domain.User, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена, возвращая identity
func ParseToken(secret, tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		UserID: claims.Subject,
		Role:   domain.UserRole(claims.Role),
	}, nil
}
