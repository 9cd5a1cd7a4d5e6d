package wallet

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrCollateralNotFound  = errors.New("collateral not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance overflow")
	ErrAccountExists       = errors.New("account already exists")
	ErrCollateralExists    = errors.New("collateral already exists")
)

// Account is the fungible side of the ledger substrate: one balance per
// owner identity. The treasury is an ordinary account addressed by the
// platform's derived treasury id.
type Account struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	OwnerID   string    `gorm:"column:owner_id;type:char(32);not null;uniqueIndex:ux_accounts_owner_id" json:"owner_id"`
	Balance   uint64    `gorm:"column:balance;not null" json:"balance"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Collateral is one non-fungible unit. OwnerID is the current holder,
// a user identity, or a vault id while escrowed. Verified mirrors the
// collection-metadata proof recorded when the unit was registered.
type Collateral struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	CollateralID string    `gorm:"column:collateral_id;type:char(32);not null;uniqueIndex:ux_collaterals_collateral_id" json:"collateral_id"`
	OwnerID      string    `gorm:"column:owner_id;type:char(32);not null;index:idx_collaterals_owner" json:"owner_id"`
	CollectionID string    `gorm:"column:collection_id;type:char(32);not null" json:"collection_id"`
	Verified     bool      `gorm:"column:verified;not null" json:"verified"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Collateral) TableName() string { return "collaterals" }
