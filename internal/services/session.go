package services

import (
	"errors"
	"net/netip"
	"slices"
	"strings"
	"time"

	"github.com/musa-q/MyArabicLearner/internal/config"
	"github.com/musa-q/MyArabicLearner/internal/mailer"
	"github.com/musa-q/MyArabicLearner/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionService owns the passwordless login flow and per-device sessions:
// login-token issuance, verification, access/refresh rotation, the device cap
// and the suspicion heuristics.
type SessionService struct {
	db     *gorm.DB
	tokens *TokenService
	mailer mailer.Sender
	cfg    *config.Config
	log    *zap.Logger
}

func NewSessionService(db *gorm.DB, tokens *TokenService, sender mailer.Sender, cfg *config.Config, log *zap.Logger) *SessionService {
	return &SessionService{db: db, tokens: tokens, mailer: sender, cfg: cfg, log: log}
}

// TokenPair is the plaintext access/refresh pair handed to the client once.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// DeviceInfo identifies the device a session is bound to.
type DeviceInfo struct {
	Identifier string
	Name       string
	Type       string
}

// StartLogin emails a single-use login token to the user, creating the account
// first when a username is supplied. Only the token's hash is persisted.
func (s *SessionService) StartLogin(email, username string) error {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if username == "" {
			return ErrNotFound
		}
		user = models.User{Email: email, Username: username, Role: models.RoleBasic}
		if err := s.db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
	} else if err != nil {
		return err
	}

	token, err := s.tokens.Issue()
	if err != nil {
		return err
	}
	hash, err := s.tokens.Hash(token)
	if err != nil {
		return err
	}

	expires := time.Now().Add(s.cfg.Auth.LoginTokenTTL)
	err = s.db.Model(&user).Updates(map[string]interface{}{
		"login_token_hash":    hash,
		"login_token_expires": expires,
	}).Error
	if err != nil {
		return err
	}

	if err := s.mailer.SendLoginToken(email, token); err != nil {
		s.log.Error("failed to send login token", zap.String("email", email), zap.Error(err))
		return err
	}
	return nil
}

// CompleteLogin consumes a login token and issues a fresh token pair for the
// device, evicting the least-recently-used session when the device cap is hit.
func (s *SessionService) CompleteLogin(email, presentedToken string, device DeviceInfo, ip string) (*TokenPair, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if user.LoginTokenHash == "" || user.LoginTokenExpires == nil ||
		user.LoginTokenExpires.Before(time.Now()) ||
		!s.tokens.Verify(user.LoginTokenHash, presentedToken) {
		return nil, ErrInvalidToken
	}

	if s.deviceSuspicious(device.Identifier) || s.ipSuspicious(ip) {
		s.log.Warn("blocked session creation",
			zap.String("device", device.Identifier), zap.String("ip", ip))
		return nil, ErrSuspiciousActivity
	}

	pair, access, refresh, err := s.issuePair()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Login token is single use.
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"login_token_hash":    "",
			"login_token_expires": nil,
			"last_login":          now,
		}).Error; err != nil {
			return err
		}

		var session models.Session
		err := tx.Where("user_id = ? AND device_identifier = ?", user.ID, device.Identifier).
			First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			session = models.Session{
				UserID:           user.ID,
				DeviceIdentifier: device.Identifier,
				DeviceName:       device.Name,
				DeviceType:       device.Type,
			}
		} else if err != nil {
			return err
		}

		session.AccessTokenHash = access
		session.AccessExpiresAt = now.Add(s.cfg.Auth.AccessTokenTTL)
		session.RefreshTokenHash = refresh
		session.RefreshExpiresAt = now.Add(s.cfg.Auth.RefreshTokenTTL)
		session.LastUsed = now
		session.LastIP = ip
		session.IsActive = true
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		return s.evictOverCap(tx, user.ID, session.ID)
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// evictOverCap deactivates the least-recently-used active sessions beyond
// MaxDevicesPerUser, never touching keepID.
func (s *SessionService) evictOverCap(tx *gorm.DB, userID, keepID uint) error {
	var sessions []models.Session
	err := tx.Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_used ASC").
		Find(&sessions).Error
	if err != nil {
		return err
	}

	over := len(sessions) - s.cfg.Auth.MaxDevicesPerUser
	for i := 0; i < len(sessions) && over > 0; i++ {
		if sessions[i].ID == keepID {
			continue
		}
		if err := deactivateSession(tx, sessions[i].ID); err != nil {
			return err
		}
		over--
	}
	return nil
}

// Refresh rotates both tokens for the session matching the presented refresh
// token. The old pair is invalidated by being overwritten.
func (s *SessionService) Refresh(email, deviceID, presentedRefresh string) (*TokenPair, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var session models.Session
	err := s.db.Where("user_id = ? AND device_identifier = ? AND is_active = ?", user.ID, deviceID, true).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if session.RefreshExpiresAt.Before(time.Now()) ||
		!s.tokens.Verify(session.RefreshTokenHash, presentedRefresh) {
		return nil, ErrUnauthorized
	}

	pair, access, refresh, err := s.issuePair()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Model(&session).Updates(map[string]interface{}{
		"access_token_hash":  access,
		"access_expires_at":  now.Add(s.cfg.Auth.AccessTokenTTL),
		"refresh_token_hash": refresh,
		"refresh_expires_at": now.Add(s.cfg.Auth.RefreshTokenTTL),
		"last_used":          now,
	}).Error
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *SessionService) issuePair() (*TokenPair, string, string, error) {
	accessToken, err := s.tokens.Issue()
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, err := s.tokens.Issue()
	if err != nil {
		return nil, "", "", err
	}
	accessHash, err := s.tokens.Hash(accessToken)
	if err != nil {
		return nil, "", "", err
	}
	refreshHash, err := s.tokens.Hash(refreshToken)
	if err != nil {
		return nil, "", "", err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, accessHash, refreshHash, nil
}

// Authenticate resolves an active session from a bearer token and device
// identifier. It is the single admission point for protected routes.
func (s *SessionService) Authenticate(presentedToken, deviceID string) (*models.User, *models.Session, error) {
	if presentedToken == "" || deviceID == "" {
		return nil, nil, ErrUnauthorized
	}

	var candidates []models.Session
	err := s.db.Where("device_identifier = ? AND is_active = ?", deviceID, true).
		Find(&candidates).Error
	if err != nil {
		return nil, nil, err
	}

	for i := range candidates {
		if !s.tokens.Verify(candidates[i].AccessTokenHash, presentedToken) {
			continue
		}
		if candidates[i].AccessExpiresAt.Before(time.Now()) {
			return nil, nil, ErrUnauthorized
		}
		var user models.User
		if err := s.db.First(&user, candidates[i].UserID).Error; err != nil {
			return nil, nil, ErrUnauthorized
		}
		return &user, &candidates[i], nil
	}
	return nil, nil, ErrUnauthorized
}

// Touch refreshes the session's activity metadata.
func (s *SessionService) Touch(session *models.Session, ip string) {
	err := s.db.Model(session).Updates(map[string]interface{}{
		"last_used": time.Now(),
		"last_ip":   ip,
	}).Error
	if err != nil {
		s.log.Warn("failed to touch session", zap.Uint("session_id", session.ID), zap.Error(err))
	}
}

// Logout deactivates one session and clears its tokens.
func (s *SessionService) Logout(session *models.Session) error {
	return deactivateSession(s.db, session.ID)
}

// LogoutAllExcept deactivates every session system-wide apart from the given
// one. Admin-only escape hatch.
func (s *SessionService) LogoutAllExcept(exceptSessionID uint) error {
	return s.db.Model(&models.Session{}).Where("id <> ?", exceptSessionID).
		Updates(map[string]interface{}{
			"is_active":          false,
			"access_token_hash":  "",
			"refresh_token_hash": "",
		}).Error
}

// ListSessions returns the user's active sessions, most recently used first.
func (s *SessionService) ListSessions(userID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_used DESC").
		Find(&sessions).Error
	return sessions, err
}

func deactivateSession(tx *gorm.DB, sessionID uint) error {
	return tx.Model(&models.Session{}).Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"is_active":          false,
			"access_token_hash":  "",
			"refresh_token_hash": "",
		}).Error
}

// deviceSuspicious flags unknown or blocklisted devices and devices creating
// sessions faster than the per-day threshold. Suspicion blocks session
// creation outright; there is no allow-list override.
func (s *SessionService) deviceSuspicious(deviceID string) bool {
	if strings.TrimSpace(deviceID) == "" {
		return true
	}
	if slices.Contains(s.cfg.Auth.DeviceBlocklist, deviceID) {
		return true
	}

	var count int64
	err := s.db.Model(&models.Session{}).
		Where("device_identifier = ? AND created_at > ?", deviceID, time.Now().Add(-24*time.Hour)).
		Count(&count).Error
	if err != nil {
		s.log.Warn("device rate lookup failed", zap.Error(err))
		return true
	}
	return count >= int64(s.cfg.Auth.MaxDeviceSessionsPerDay)
}

// ipSuspicious flags unparseable or blocklisted addresses and addresses above
// the per-hour activity threshold. Private and loopback ranges are exempt
// outside production.
func (s *SessionService) ipSuspicious(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return true
	}
	if s.cfg.Development() && (addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified()) {
		return false
	}
	if slices.Contains(s.cfg.Auth.IPBlocklist, ip) {
		return true
	}

	var count int64
	err = s.db.Model(&models.Session{}).
		Where("last_ip = ? AND last_used > ?", ip, time.Now().Add(-time.Hour)).
		Count(&count).Error
	if err != nil {
		s.log.Warn("ip rate lookup failed", zap.Error(err))
		return true
	}
	return count >= int64(s.cfg.Auth.MaxIPRequestsPerHour)
}
