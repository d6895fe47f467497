package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uaite/food-tracker-api/config"
	"github.com/uaite/food-tracker-api/models"
	"github.com/uaite/food-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Zlog = zap.NewNop()
}

func testConfig() *config.Config {
	return &config.Config{
		UserToken:  "user-token-123",
		AdminToken: "admin-token-456",
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		Email: "john@example.com", Name: "John Doe", Role: models.RoleUser,
		DailyCalorieLimit: 2100, Token: "user-token-123",
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Email: "admin@example.com", Name: "Admin User", Role: models.RoleAdmin,
		DailyCalorieLimit: 2500, Token: "admin-token-456",
	}).Error)
}

func authRouter(db *gorm.DB, requireAdmin bool) *gin.Engine {
	r := gin.New()
	group := r.Group("/")
	group.Use(AuthMiddleware(db, testConfig()))
	if requireAdmin {
		group.Use(RequireAdmin())
	}
	group.GET("/probe", func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": user.Email, "role": user.Role})
	})
	return r
}

func doProbe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	r := authRouter(db, false)

	w := doProbe(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Access token required"}`, w.Body.String())

	// a header without the Bearer prefix is just as missing
	w = doProbe(r, "user-token-123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	r := authRouter(db, false)

	w := doProbe(r, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
}

func TestAuthMiddlewareUserRowMissing(t *testing.T) {
	db := newTestDB(t) // no seed: the secret matches but no row backs it
	r := authRouter(db, false)

	w := doProbe(r, "Bearer user-token-123")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"User not found for token"}`, w.Body.String())
}

func TestAuthMiddlewareResolvesIdentity(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	r := authRouter(db, false)

	w := doProbe(r, "Bearer user-token-123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"john@example.com","role":"USER"}`, w.Body.String())

	w = doProbe(r, "Bearer admin-token-456")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"admin@example.com","role":"ADMIN"}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	r := authRouter(db, true)

	w := doProbe(r, "Bearer user-token-123")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, w.Body.String())

	w = doProbe(r, "Bearer admin-token-456")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	// RequireAdmin mounted without the token gate in front still refuses
	r := gin.New()
	r.Use(RequireAdmin())
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doProbe(r, "Bearer admin-token-456")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
}
