package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"yatube-api/models"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	r.GET("/", handlers...)
	return r
}

type fakeUsers map[string]*models.User

func (f fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	if id == "broken" {
		return nil, errors.New("connection reset")
	}
	if user, ok := f[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

var knownUsers = fakeUsers{
	"u1":     {ID: "u1"},
	"admin":  {ID: "admin", IsAdmin: true},
	"reader": {ID: "reader"},
}

func TestAuthMiddleware(t *testing.T) {
	valid := signToken(t, jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)
	expired := signToken(t, jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)
	foreign := signToken(t, jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(time.Hour).Unix()}, "other")
	deleted := signToken(t, jwt.MapClaims{"user_id": "gone", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)
	broken := signToken(t, jwt.MapClaims{"user_id": "broken", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "u1"},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Token " + valid, wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "user deleted after login", header: "Bearer " + deleted, wantStatus: http.StatusUnauthorized},
		{name: "user lookup fails", header: "Bearer " + broken, wantStatus: http.StatusInternalServerError},
	}

	r := newAuthRouter(AuthMiddleware(testSecret, knownUsers))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := newAuthRouter(OptionalAuthMiddleware(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestAdminOnly(t *testing.T) {
	for userID, want := range map[string]int{"admin": http.StatusOK, "reader": http.StatusForbidden, "ghost": http.StatusUnauthorized} {
		token := signToken(t, jwt.MapClaims{"user_id": userID, "exp": time.Now().Add(time.Hour).Unix()}, testSecret)
		r := newAuthRouter(AuthMiddleware(testSecret, knownUsers), AdminOnly(knownUsers))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, want, w.Code, userID)
	}
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(60, 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCleanupLimiters(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	rl.GetLimiter("1.1.1.1")
	rl.visitors["1.1.1.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.GetLimiter("2.2.2.2")

	rl.CleanupLimiters(time.Minute)
	assert.Equal(t, 1, rl.Len())
}

func TestValidateContentType(t *testing.T) {
	r := gin.New()
	r.Use(ValidateContentType())
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := map[string]int{
		"application/json":                  http.StatusOK,
		"multipart/form-data; boundary=xyz": http.StatusOK,
		"application/x-www-form-urlencoded": http.StatusUnsupportedMediaType,
	}
	for contentType, want := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, contentType)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
