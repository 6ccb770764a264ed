package utils

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var secretKey []byte

// SetSecret installs the signing key from config at startup.
func SetSecret(key string) {
	secretKey = []byte(key)
}

// SessionClaims is the decoded session token. IssuedAt never changes over the
// session's life; RefreshedAt moves forward each time the token is re-issued
// inside the refresh window.
type SessionClaims struct {
	UserID      string
	Email       string
	IssuedAt    time.Time
	RefreshedAt time.Time
	ExpiresAt   time.Time
}

// GenerateSessionToken signs a session token. issuedAt is preserved across
// refreshes; pass the same value as refreshedAt on first login.
func GenerateSessionToken(userID, email string, issuedAt, refreshedAt time.Time, expiry time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("jwt secret not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   issuedAt.Unix(),
		"rat":   refreshedAt.Unix(),
		"exp":   refreshedAt.Add(expiry).Unix(),
	})

	return token.SignedString(secretKey)
}

// ValidateSessionToken parses and verifies a session token.
func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	iat, _ := claims["iat"].(float64)
	rat, _ := claims["rat"].(float64)
	exp, _ := claims["exp"].(float64)

	return &SessionClaims{
		UserID:      sub,
		Email:       email,
		IssuedAt:    time.Unix(int64(iat), 0),
		RefreshedAt: time.Unix(int64(rat), 0),
		ExpiresAt:   time.Unix(int64(exp), 0),
	}, nil
}

// ExtractToken pulls the session token from the Authorization header or the
// accessToken cookie.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	if cookie, err := r.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	return ""
}

// GenerateUUID returns a random hex identifier in UUID layout, used for
// verification tokens and upload keys.
func GenerateUUID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}
