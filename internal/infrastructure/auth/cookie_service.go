package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/segmentio/ksuid"

	"github.com/you/hrmportal/domain"
)

// CookieServiceImpl implements domain.CookieService. The browser never
// holds the bearer token; it holds a signed cookie naming the
// server-side session, minted here as an HS256 JWT.
type CookieServiceImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewCookieService creates a new cookie service.
func NewCookieService(secretKey, issuer string, ttl time.Duration) domain.CookieService {
	return &CookieServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
	}
}

// NewSessionID implements domain.CookieService
func (c *CookieServiceImpl) NewSessionID() string {
	return ksuid.New().String()
}

// generateJTI creates a unique JWT ID
func (c *CookieServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Issue implements domain.CookieService
func (c *CookieServiceImpl) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"iss":        c.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(c.ttl).Unix(),
		"jti":        c.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secretKey)
}

// Validate implements domain.CookieService. Returns the session ID the
// cookie addresses.
func (c *CookieServiceImpl) Validate(cookie string) (string, error) {
	token, err := jwt.Parse(cookie, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrCookieMalformed
		}
		return c.secretKey, nil
	})

	if err != nil || !token.Valid {
		return "", domain.ErrCookieInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrCookieMalformed
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", domain.ErrCookieMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", domain.ErrCookieMalformed
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return "", domain.ErrCookieInvalid
	}

	return sessionID, nil
}
