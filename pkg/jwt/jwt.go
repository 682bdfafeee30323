package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"pulse-backend/config"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Token types carried in the claims. Only access tokens pass the auth
// middleware; refresh tokens are exchanged at login time.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTService issues and validates HS256 tokens. The user id lives in the
// Subject claim; nothing sensitive goes into the payload.
type JWTService struct {
	secretKey     []byte
	issuer        string
	expireAfter   time.Duration
	refreshExpire time.Duration
}

// CustomClaims is the token payload.
type CustomClaims struct {
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	jwtv5.RegisteredClaims
}

// UserID parses the Subject claim back into a user id.
func (c *CustomClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid subject: %w", err)
	}
	return uint(id), nil
}

// NewJWTService creates the token service from config.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refresh := cfg.RefreshExpire
	if refresh == 0 {
		refresh = 7 * 24 * time.Hour
	}
	return &JWTService{
		secretKey:     []byte(cfg.Secret),
		issuer:        cfg.Issuer,
		expireAfter:   cfg.ExpireTime,
		refreshExpire: refresh,
	}
}

// GenerateTokenPair issues an access token and a longer-lived refresh token
// for the user.
func (s *JWTService) GenerateTokenPair(userID uint, username string) (access, refresh string, err error) {
	access, err = s.generate(userID, username, TokenTypeAccess, s.expireAfter)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.generate(userID, username, TokenTypeRefresh, s.refreshExpire)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *JWTService) generate(userID uint, username, tokenType string, ttl time.Duration) (string, error) {
	if userID == 0 {
		return "", errors.New("userID is required")
	}

	now := time.Now()
	claims := &CustomClaims{
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token string.
func (s *JWTService) ValidateToken(tokenString string) (*CustomClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}
	claims := &CustomClaims{}
	parsedToken, err := jwtv5.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwtv5.Token) (interface{}, error) {
			if token.Method != jwtv5.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secretKey, nil
		},
		jwtv5.WithIssuer(s.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	if !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
