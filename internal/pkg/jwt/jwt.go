package jwt

import (
	"errors"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"

	sseTokenLifetime = 5 * time.Minute
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is what a session token carries
type Claims struct {
	TokenID string
	UserID  string
	Role    user.Role
	Type    string
}

type Service interface {
	GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string, role user.Role) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(tokenID string, expiresAt time.Time)
	IsTokenRevoked(tokenID string) bool
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]time.Time
	mu                        sync.RWMutex
	now                       func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) *JWTService {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]time.Time),
		now:                       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, role user.Role) (string, int64, error) {
	expiresAt := j.now().Add(j.accessTokenExpirationTime).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"jti":     uuid.NewString(),
		"user_id": userID,
		"role":    string(role),
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for the event stream.
// EventSource cannot send headers, so it travels in the query string.
func (j *JWTService) GenerateSSEToken(userID string, role user.Role) (string, int, error) {
	expiresAt := j.now().Add(sseTokenLifetime).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"jti":     uuid.NewString(),
		"user_id": userID,
		"role":    string(role),
		"type":    TokenTypeSSE,
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int(sseTokenLifetime.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	claims, err := ClaimsFromMap(token.PrivateClaims())
	if err != nil || claims.Type != TokenTypeSSE {
		return Claims{}, ErrInvalidToken
	}
	claims.TokenID = token.JwtID()
	if j.IsTokenRevoked(claims.TokenID) {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// ClaimsFromMap reads the private claims set by this service
func ClaimsFromMap(m map[string]interface{}) (Claims, error) {
	userID, _ := m["user_id"].(string)
	role, _ := m["role"].(string)
	tokenType, _ := m["type"].(string)
	jti, _ := m["jti"].(string)
	if userID == "" || role == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{TokenID: jti, UserID: userID, Role: user.Role(role), Type: tokenType}, nil
}

// RevokeToken blacklists a token id until it would have expired anyway
func (j *JWTService) RevokeToken(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now()
	for id, exp := range j.revokedTokens {
		if now.After(exp) {
			delete(j.revokedTokens, id)
		}
	}
	j.revokedTokens[tokenID] = expiresAt
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}
