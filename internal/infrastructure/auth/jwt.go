package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"roomfoodfinder/pkg/errors"
)

// JWTManager issues and verifies the HS256 bearer tokens used by the API.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttlSeconds int64) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Issue signs a token carrying the user id as subject.
func (m *JWTManager) Issue(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", errors.Internal("Failed to sign token", err)
	}
	return signed, nil
}

// Verify parses a token and returns the user id it was issued for. Malformed,
// tampered and expired tokens all come back as unauthorized.
func (m *JWTManager) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.Unauthorized("Invalid or expired token", nil)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}
	return sub, nil
}
