package rest

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const HeaderCronSecret = "X-Cron-Secret"

var (
	// ErrTriggerNotConfigured — не задан ни JWT-секрет, ни cron-секрет.
	ErrTriggerNotConfigured = errors.New("sync trigger is not configured")
	ErrUnauthorized         = errors.New("unauthorized")
)

// Authenticator — проверка ручных и cron-триггеров:
// Bearer JWT (HS256, подпись jwtSecret) или X-Cron-Secret.
type Authenticator struct {
	jwtSecret  []byte
	cronSecret []byte
	issuer     string
}

func NewAuthenticator(jwtSecret, cronSecret string) *Authenticator {
	return &Authenticator{jwtSecret: []byte(jwtSecret), cronSecret: []byte(cronSecret)}
}

// WithIssuer — требовать claim iss (пустая строка — не проверять).
func (a *Authenticator) WithIssuer(iss string) *Authenticator {
	a.issuer = iss
	return a
}

// Configured — задан хотя бы один секрет.
func (a *Authenticator) Configured() bool {
	return len(a.jwtSecret) > 0 || len(a.cronSecret) > 0
}

// Check — ErrTriggerNotConfigured, ErrUnauthorized или nil.
func (a *Authenticator) Check(r *http.Request) error {
	if !a.Configured() {
		return ErrTriggerNotConfigured
	}
	if len(a.cronSecret) > 0 {
		if got := r.Header.Get(HeaderCronSecret); got != "" &&
			subtle.ConstantTimeCompare([]byte(got), a.cronSecret) == 1 {
			return nil
		}
	}
	if len(a.jwtSecret) > 0 {
		if raw, ok := bearerToken(r); ok && a.validToken(raw) == nil {
			return nil
		}
	}
	return ErrUnauthorized
}

func (a *Authenticator) validToken(raw string) error {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	_, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	}, opts...)
	return err
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Middleware — gin-обёртка над Check.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch err := a.Check(c.Request); {
		case err == nil:
			c.Next()
		case errors.Is(err, ErrTriggerNotConfigured):
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		}
	}
}
