package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/musa-q/MyArabicLearner/internal/config"
	"github.com/musa-q/MyArabicLearner/internal/database"
	"github.com/musa-q/MyArabicLearner/internal/models"
	"github.com/musa-q/MyArabicLearner/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubMailer struct {
	token string
}

func (m *stubMailer) SendLoginToken(_, token string) error {
	m.token = token
	return nil
}

func authFixture(t *testing.T) (*gin.Engine, *services.SessionService, *gorm.DB, *stubMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		Env: "test",
		Auth: config.Auth{
			LoginTokenTTL:           15 * time.Minute,
			AccessTokenTTL:          30 * time.Minute,
			RefreshTokenTTL:         720 * time.Hour,
			MaxDevicesPerUser:       5,
			MaxDeviceSessionsPerDay: 20,
			MaxIPRequestsPerHour:    120,
		},
	}
	mail := &stubMailer{}
	sessionService := services.NewSessionService(db, services.NewTokenService(), mail, cfg, zap.NewNop())

	r := gin.New()
	r.GET("/protected", RequireAuth(sessionService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})
	r.GET("/admin", RequireAuth(sessionService, models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, sessionService, db, mail
}

func loginPair(t *testing.T, svc *services.SessionService, mail *stubMailer, email, deviceID string) *services.TokenPair {
	t.Helper()
	if err := svc.StartLogin(email, ""); err != nil {
		t.Fatalf("StartLogin failed: %v", err)
	}
	pair, err := svc.CompleteLogin(email, mail.token, services.DeviceInfo{Identifier: deviceID}, "127.0.0.1")
	if err != nil {
		t.Fatalf("CompleteLogin failed: %v", err)
	}
	return pair
}

func doRequest(r *gin.Engine, path, bearer, deviceID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthAdmitsValidSession(t *testing.T) {
	r, svc, db, mail := authFixture(t)
	user := models.User{Username: "sara", Email: "sara@example.com", Role: models.RoleBasic}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	pair := loginPair(t, svc, mail, "sara@example.com", "laptop")

	w := doRequest(r, "/protected", pair.AccessToken, "laptop")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthRejectsMissingHeaders(t *testing.T) {
	r, _, _, _ := authFixture(t)

	if w := doRequest(r, "/protected", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without headers, got %d", w.Code)
	}
	if w := doRequest(r, "/protected", "sometoken", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without device id, got %d", w.Code)
	}
	if w := doRequest(r, "/protected", "", "laptop"); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	r, svc, db, mail := authFixture(t)
	user := models.User{Username: "sara", Email: "sara@example.com", Role: models.RoleBasic}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	loginPair(t, svc, mail, "sara@example.com", "laptop")

	if w := doRequest(r, "/protected", "forged-token", "laptop"); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for forged token, got %d", w.Code)
	}
}

func TestRequireAuthEnforcesRole(t *testing.T) {
	r, svc, db, mail := authFixture(t)
	basic := models.User{Username: "sara", Email: "sara@example.com", Role: models.RoleBasic}
	if err := db.Create(&basic).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	admin := models.User{Username: "root", Email: "root@example.com", Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	basicPair := loginPair(t, svc, mail, "sara@example.com", "laptop")
	adminPair := loginPair(t, svc, mail, "root@example.com", "desktop")

	if w := doRequest(r, "/admin", basicPair.AccessToken, "laptop"); w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for basic user, got %d", w.Code)
	}
	if w := doRequest(r, "/admin", adminPair.AccessToken, "desktop"); w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}
}
