package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bagdasarian/team-registration/internal/domain"
	"github.com/bagdasarian/team-registration/internal/handler/response"
	"github.com/golang-jwt/jwt/v4"
)

const (
	jwtClaimRole = "role"

	RoleAdmin = "admin"
)

// AdminAuth пропускает только запросы с HS256 токеном, у которого role=admin.
// С пустым secret проверка выключена и списки остаются публичными.
func AdminAuth(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := verifyAdminToken(r.Header.Get("Authorization"), []byte(secret)); err != nil {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func verifyAdminToken(header string, secret []byte) error {
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(tokenString) == "" {
		return errors.New("missing bearer token")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(tokenString), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return err
	}

	role, _ := claims[jwtClaimRole].(string)
	if role != RoleAdmin {
		return fmt.Errorf("invalid role %q", role)
	}

	return nil
}

// IssueAdminToken подписывает токен для AdminAuth
func IssueAdminToken(secret, subject string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", domain.NewConfigurationError("ADMIN_JWT_SECRET is missing")
	}

	claims := jwt.MapClaims{
		"sub":        subject,
		jwtClaimRole: RoleAdmin,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	response.JSON(w, http.StatusUnauthorized, response.Error{
		Error: domain.ErrUnauthorized.Message,
		Code:  domain.ErrUnauthorized.Code,
	})
}
