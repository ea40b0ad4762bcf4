package services

import (
	"errors"
	"testing"
	"time"

	"github.com/musa-q/MyArabicLearner/internal/config"
	"github.com/musa-q/MyArabicLearner/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSessionFixture(t *testing.T, cfg *config.Config) (*SessionService, *gorm.DB, *captureMailer) {
	t.Helper()
	db := newTestDB(t)
	mail := newCaptureMailer()
	svc := NewSessionService(db, NewTokenService(), mail, cfg, zap.NewNop())
	return svc, db, mail
}

func login(t *testing.T, svc *SessionService, mail *captureMailer, email, deviceID string) *TokenPair {
	t.Helper()
	if err := svc.StartLogin(email, ""); err != nil {
		t.Fatalf("StartLogin failed: %v", err)
	}
	pair, err := svc.CompleteLogin(email, mail.tokens[email], DeviceInfo{Identifier: deviceID}, "127.0.0.1")
	if err != nil {
		t.Fatalf("CompleteLogin failed: %v", err)
	}
	return pair
}

func TestStartLoginCreatesUser(t *testing.T) {
	svc, db, mail := newSessionFixture(t, testConfig())

	if err := svc.StartLogin("sara@example.com", "sara"); err != nil {
		t.Fatalf("StartLogin failed: %v", err)
	}

	token := mail.tokens["sara@example.com"]
	if token == "" {
		t.Fatal("Expected a login token to be emailed")
	}

	var user models.User
	if err := db.Where("email = ?", "sara@example.com").First(&user).Error; err != nil {
		t.Fatalf("Expected user to be created: %v", err)
	}
	if user.LoginTokenHash == "" {
		t.Error("Expected login token hash to be stored")
	}
	if user.LoginTokenHash == token {
		t.Error("Expected the stored hash to differ from the plaintext token")
	}
	if user.LoginTokenExpires == nil || user.LoginTokenExpires.Before(time.Now()) {
		t.Error("Expected login token expiry in the future")
	}
}

func TestStartLoginUnknownUserWithoutUsername(t *testing.T) {
	svc, _, _ := newSessionFixture(t, testConfig())

	err := svc.StartLogin("nobody@example.com", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCompleteLoginTokenIsSingleUse(t *testing.T) {
	svc, db, mail := newSessionFixture(t, testConfig())
	createUser(t, db, "sara", "sara@example.com")

	if err := svc.StartLogin("sara@example.com", ""); err != nil {
		t.Fatalf("StartLogin failed: %v", err)
	}
	token := mail.tokens["sara@example.com"]

	pair, err := svc.CompleteLogin("sara@example.com", token, DeviceInfo{Identifier: "laptop"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("CompleteLogin failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Expected a full token pair")
	}

	if _, err := svc.CompleteLogin("sara@example.com", token, DeviceInfo{Identifier: "laptop"}, "127.0.0.1"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken on token reuse, got %v", err)
	}
}

func TestCompleteLoginWrongToken(t *testing.T) {
	svc, db, _ := newSessionFixture(t, testConfig())
	createUser(t, db, "sara", "sara@example.com")

	if err := svc.StartLogin("sara@example.com", ""); err != nil {
		t.Fatalf("StartLogin failed: %v", err)
	}

	_, err := svc.CompleteLogin("sara@example.com", "guessed-token", DeviceInfo{Identifier: "laptop"}, "127.0.0.1")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestDeviceCapEvictsLeastRecentlyUsed(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.MaxDevicesPerUser = 2
	svc, db, mail := newSessionFixture(t, cfg)
	user := createUser(t, db, "sara", "sara@example.com")

	login(t, svc, mail, "sara@example.com", "device-a")
	login(t, svc, mail, "sara@example.com", "device-b")
	login(t, svc, mail, "sara@example.com", "device-c")

	sessions, err := svc.ListSessions(user.ID)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 active sessions after eviction, got %d", len(sessions))
	}
	for _, session := range sessions {
		if session.DeviceIdentifier == "device-a" {
			t.Error("Expected the least recently used session to be evicted")
		}
	}
}

func TestAuthenticateAndAccessExpiry(t *testing.T) {
	svc, db, mail := newSessionFixture(t, testConfig())
	user := createUser(t, db, "sara", "sara@example.com")

	pair := login(t, svc, mail, "sara@example.com", "laptop")

	gotUser, session, err := svc.Authenticate(pair.AccessToken, "laptop")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if gotUser.ID != user.ID {
		t.Errorf("Expected user %d, got %d", user.ID, gotUser.ID)
	}

	// An expired access token is rejected even though the session is active.
	err = db.Model(&models.Session{}).Where("id = ?", session.ID).
		Update("access_expires_at", time.Now().Add(-time.Minute)).Error
	if err != nil {
		t.Fatalf("failed to expire access token: %v", err)
	}
	if _, _, err := svc.Authenticate(pair.AccessToken, "laptop"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for expired access token, got %v", err)
	}

	// The refresh token outlives the access token.
	if _, err := svc.Refresh("sara@example.com", "laptop", pair.RefreshToken); err != nil {
		t.Errorf("Expected refresh to succeed after access expiry, got %v", err)
	}
}

func TestAuthenticateRequiresTokenAndDevice(t *testing.T) {
	svc, _, _ := newSessionFixture(t, testConfig())

	if _, _, err := svc.Authenticate("", "laptop"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized without token, got %v", err)
	}
	if _, _, err := svc.Authenticate("some-token", ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized without device, got %v", err)
	}
}

func TestRefreshRotatesBothTokens(t *testing.T) {
	svc, db, mail := newSessionFixture(t, testConfig())
	createUser(t, db, "sara", "sara@example.com")

	first := login(t, svc, mail, "sara@example.com", "laptop")

	second, err := svc.Refresh("sara@example.com", "laptop", first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if second.AccessToken == first.AccessToken || second.RefreshToken == first.RefreshToken {
		t.Error("Expected refresh to issue a new pair")
	}

	if _, _, err := svc.Authenticate(first.AccessToken, "laptop"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected old access token to be invalidated, got %v", err)
	}
	if _, _, err := svc.Authenticate(second.AccessToken, "laptop"); err != nil {
		t.Errorf("Expected new access token to work, got %v", err)
	}

	// The replaced refresh token is dead.
	if _, err := svc.Refresh("sara@example.com", "laptop", first.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for stale refresh token, got %v", err)
	}
}

func TestLogoutDeactivatesSession(t *testing.T) {
	svc, _, mail := newSessionFixture(t, testConfig())
	svcStartUser(t, svc, "sara", "sara@example.com")

	pair := login(t, svc, mail, "sara@example.com", "laptop")

	_, session, err := svc.Authenticate(pair.AccessToken, "laptop")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if err := svc.Logout(session); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, _, err := svc.Authenticate(pair.AccessToken, "laptop"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestLogoutAllExceptSparesCaller(t *testing.T) {
	svc, _, mail := newSessionFixture(t, testConfig())
	svcStartUser(t, svc, "sara", "sara@example.com")
	svcStartUser(t, svc, "omar", "omar@example.com")

	saraPair := login(t, svc, mail, "sara@example.com", "laptop")
	omarPair := login(t, svc, mail, "omar@example.com", "phone")

	_, saraSession, err := svc.Authenticate(saraPair.AccessToken, "laptop")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if err := svc.LogoutAllExcept(saraSession.ID); err != nil {
		t.Fatalf("LogoutAllExcept failed: %v", err)
	}

	if _, _, err := svc.Authenticate(saraPair.AccessToken, "laptop"); err != nil {
		t.Errorf("Expected the caller's session to survive, got %v", err)
	}
	if _, _, err := svc.Authenticate(omarPair.AccessToken, "phone"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected other sessions to be deactivated, got %v", err)
	}
}

func TestBlocklistedDeviceIsRejected(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.DeviceBlocklist = []string{"stolen-device"}
	svc, db, mail := newSessionFixture(t, cfg)
	createUser(t, db, "sara", "sara@example.com")

	if err := svc.StartLogin("sara@example.com", ""); err != nil {
		t.Fatalf("StartLogin failed: %v", err)
	}

	_, err := svc.CompleteLogin("sara@example.com", mail.tokens["sara@example.com"],
		DeviceInfo{Identifier: "stolen-device"}, "127.0.0.1")
	if !errors.Is(err, ErrSuspiciousActivity) {
		t.Errorf("Expected ErrSuspiciousActivity for blocklisted device, got %v", err)
	}
}

func TestUnparseableIPIsRejected(t *testing.T) {
	svc, db, mail := newSessionFixture(t, testConfig())
	createUser(t, db, "sara", "sara@example.com")

	if err := svc.StartLogin("sara@example.com", ""); err != nil {
		t.Fatalf("StartLogin failed: %v", err)
	}

	_, err := svc.CompleteLogin("sara@example.com", mail.tokens["sara@example.com"],
		DeviceInfo{Identifier: "laptop"}, "not-an-ip")
	if !errors.Is(err, ErrSuspiciousActivity) {
		t.Errorf("Expected ErrSuspiciousActivity for unparseable IP, got %v", err)
	}
}

func svcStartUser(t *testing.T, svc *SessionService, username, email string) {
	t.Helper()
	if err := svc.StartLogin(email, username); err != nil {
		t.Fatalf("StartLogin failed for %s: %v", email, err)
	}
}
