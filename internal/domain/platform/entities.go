package platform

import (
	"errors"
	"time"
)

var (
	ErrAlreadyInitialized = errors.New("platform already initialized")
	ErrNotInitialized     = errors.New("platform not initialized")
	ErrInvalidFeeBps      = errors.New("fee bps out of range")
)

// Platform is the singleton registry row: fee rate plus the derived
// treasury and reward-issuance identities. Created once by the admin and
// never re-initialized.
type Platform struct {
	ID                uint64    `gorm:"primaryKey;column:id" json:"-"`
	PlatformID        string    `gorm:"column:platform_id;type:char(32);not null;uniqueIndex:ux_platforms_platform_id" json:"platform_id"`
	Authority         string    `gorm:"column:authority;type:char(32);not null" json:"authority"`
	FeeBps            uint16    `gorm:"column:fee_bps;not null" json:"fee_bps"`
	TreasuryID        string    `gorm:"column:treasury_id;type:char(32);not null" json:"treasury_id"`
	RewardAuthorityID string    `gorm:"column:reward_authority_id;type:char(32);not null" json:"reward_authority_id"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Platform) TableName() string { return "platforms" }
