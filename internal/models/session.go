package models

import "time"

// Session is a per-device authenticated binding between a user and a device
// identifier. Tokens are stored only as bcrypt digests.
type Session struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex:idx_user_device" json:"user_id"`
	User             User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	DeviceIdentifier string    `gorm:"size:128;not null;uniqueIndex:idx_user_device" json:"device_identifier"`
	DeviceName       string    `gorm:"size:100" json:"device_name,omitempty"`
	DeviceType       string    `gorm:"size:50" json:"device_type,omitempty"`
	AccessTokenHash  string    `gorm:"size:128" json:"-"`
	AccessExpiresAt  time.Time `json:"-"`
	RefreshTokenHash string    `gorm:"size:128" json:"-"`
	RefreshExpiresAt time.Time `json:"-"`
	LastUsed         time.Time `gorm:"index" json:"last_used"`
	LastIP           string    `gorm:"size:64" json:"last_ip,omitempty"`
	IsActive         bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}
