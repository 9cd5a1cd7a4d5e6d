package escrow

import (
	"errors"
	"time"

	"credentia/pkg/id"
)

var (
	ErrVaultNotFound  = errors.New("vault not found")
	ErrVaultEmpty     = errors.New("vault holds no collateral")
	ErrVaultOccupied  = errors.New("vault already holds collateral")
	ErrBadAuthority   = errors.New("authority does not match vault's loan")
	ErrWrongDepositor = errors.New("depositor does not own the collateral")
)

// Vault is the escrow custody record for one loan: it holds exactly one
// collateral unit between deposit and release. It is created with the loan
// row and deleted with it.
type Vault struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	VaultID      string    `gorm:"column:vault_id;type:char(32);not null;uniqueIndex:ux_vaults_vault_id" json:"vault_id"`
	LoanID       string    `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_vaults_loan_id" json:"loan_id"`
	CollateralID string    `gorm:"column:collateral_id;type:char(32);not null" json:"collateral_id"`
	Held         bool      `gorm:"column:held;not null" json:"held"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Vault) TableName() string { return "vaults" }

// Authority is the capability that gates every collateral movement. It can
// only be derived from a loan record's own identity; no borrower or lender
// key moves collateral directly, so each movement happens inside one of the
// lifecycle transitions that holds the loan row.
type Authority struct {
	loanID string
	token  string
}

// LoanAuthority derives the custody capability for a loan record.
func LoanAuthority(loanID string) Authority {
	return Authority{loanID: loanID, token: id.DeriveID("loan-authority", loanID)}
}

func (a Authority) LoanID() string { return a.loanID }

// Grants reports whether the capability authorizes movements on the given
// vault.
func (a Authority) Grants(v *Vault) bool {
	if v == nil {
		return false
	}
	return a.loanID == v.LoanID && a.token == id.DeriveID("loan-authority", v.LoanID)
}
