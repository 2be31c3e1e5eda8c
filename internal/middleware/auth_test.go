package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bagdasarian/team-registration/internal/domain"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/register", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminAuth(t *testing.T) {
	t.Run("валидный токен администратора", func(t *testing.T) {
		token, err := IssueAdminToken(testSecret, "ops", time.Hour, time.Now())
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		AdminAuth(testSecret)(okHandler()).ServeHTTP(rec, requestWithToken(token))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("без заголовка Authorization", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminAuth(testSecret)(okHandler()).ServeHTTP(rec, requestWithToken(""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"admin token required","code":"UNAUTHORIZED"}`, rec.Body.String())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("токен подписан другим секретом", func(t *testing.T) {
		token, err := IssueAdminToken("other-secret", "ops", time.Hour, time.Now())
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		AdminAuth(testSecret)(okHandler()).ServeHTTP(rec, requestWithToken(token))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("истекший токен", func(t *testing.T) {
		token, err := IssueAdminToken(testSecret, "ops", time.Hour, time.Now().Add(-2*time.Hour))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		AdminAuth(testSecret)(okHandler()).ServeHTTP(rec, requestWithToken(token))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("роль не admin", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  "team-7",
			"role": "player",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		AdminAuth(testSecret)(okHandler()).ServeHTTP(rec, requestWithToken(token))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("пустой секрет выключает проверку", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminAuth("")(okHandler()).ServeHTTP(rec, requestWithToken(""))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestIssueAdminToken(t *testing.T) {
	t.Run("claims токена", func(t *testing.T) {
		now := time.Now()
		token, err := IssueAdminToken(testSecret, "ops", 24*time.Hour, now)
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)

		assert.Equal(t, RoleAdmin, claims["role"])
		assert.Equal(t, "ops", claims["sub"])
		assert.Equal(t, float64(now.Add(24*time.Hour).Unix()), claims["exp"])
	})

	t.Run("без секрета - ошибка конфигурации", func(t *testing.T) {
		_, err := IssueAdminToken("", "ops", time.Hour, time.Now())

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeConfiguration, domainErr.Code)
	})
}
