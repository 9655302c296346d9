package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the access-token claims carried by NoteTrack tokens.
// Tokens are issued by the identity service; this package only needs to
// mint them for tests/tooling and verify them at the HTTP boundary.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	accessSecret string
	accessExpiry time.Duration
	issuer       string
}

// NewManager creates a new JWT manager
func NewManager(accessSecret string, accessExpiry time.Duration) *Manager {
	return &Manager{
		accessSecret: accessSecret,
		accessExpiry: accessExpiry,
		issuer:       "notetrack",
	}
}

// GenerateAccessToken generates an access token
func (m *Manager) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.accessSecret))
}

// ValidateAccessToken validates and parses an access token
func (m *Manager) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.accessSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.UserID == uuid.Nil {
		// Older tokens carry the user id only in the subject.
		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID in token: %w", err)
		}
		claims.UserID = userID
	}

	return claims, nil
}

// GetAccessExpiry returns access token expiry duration
func (m *Manager) GetAccessExpiry() time.Duration {
	return m.accessExpiry
}
