package service

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookie = "session"
	sessionTTL    = 24 * time.Hour
)

// SessionManager signs and verifies the session cookie. The token is an
// HS256 JWT carrying the normalized username in the "user" claim; all
// session state lives in the cookie, nothing is kept server-side.
type SessionManager struct {
	secret []byte
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: []byte(secret)}
}

func (m *SessionManager) issue(username string) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"user": username,
		"exp":  time.Now().Add(sessionTTL).Unix(),
		"iat":  now,
		"nbf":  now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *SessionManager) parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok {
		if int64(exp) < now {
			return "", errors.New("token expired")
		}
	}
	if nbf, ok := claims["nbf"].(float64); ok {
		if int64(nbf) > now {
			return "", errors.New("token not valid yet")
		}
	}

	username, ok := claims["user"].(string)
	if !ok || username == "" {
		return "", errors.New("user not found")
	}

	return username, nil
}

// Start binds the response's session cookie to username. The username
// must already be normalized.
func (m *SessionManager) Start(c *gin.Context, username string) error {
	token, err := m.issue(username)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
	return nil
}

// Current returns the username bound to the request's session, if any.
func (m *SessionManager) Current(c *gin.Context) (string, bool) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return "", false
	}
	username, err := m.parse(token)
	if err != nil {
		return "", false
	}
	return username, true
}

// End clears the session cookie.
func (m *SessionManager) End(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

// Token issues a signed session token without touching cookies. Used by
// the seed CLI and the websocket smoke path.
func (m *SessionManager) Token(username string) (string, error) {
	return m.issue(username)
}
