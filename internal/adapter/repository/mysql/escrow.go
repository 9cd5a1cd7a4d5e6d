package mysql

import (
	"context"
	"errors"

	escrowDomain "credentia/internal/domain/escrow"

	"gorm.io/gorm"
)

type VaultRepository struct{ db *gorm.DB }

func NewVaultRepository(db *gorm.DB) *VaultRepository { return &VaultRepository{db: db} }

func (r *VaultRepository) Create(ctx context.Context, v *escrowDomain.Vault) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VaultRepository) Save(ctx context.Context, v *escrowDomain.Vault) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VaultRepository) Delete(ctx context.Context, v *escrowDomain.Vault) error {
	return r.db.WithContext(ctx).Unscoped().Delete(v).Error
}

// GetByLoanID takes no row lock of its own: vault access only happens
// inside a transition that already holds the loan row lock.
func (r *VaultRepository) GetByLoanID(ctx context.Context, loanID string) (*escrowDomain.Vault, error) {
	var out escrowDomain.Vault
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, escrowDomain.ErrVaultNotFound
	}
	return &out, res.Error
}

// GormCustody moves collateral ownership rows between holders and vaults.
// Every call re-checks the capability against the vault it is asked to act
// on; the vault id itself is the escrowed unit's holder while deposited.
type GormCustody struct {
	vaults  *VaultRepository
	wallets *WalletRepository
}

func NewGormCustody(db *gorm.DB) *GormCustody {
	return &GormCustody{vaults: NewVaultRepository(db), wallets: NewWalletRepository(db)}
}

func (c *GormCustody) Deposit(ctx context.Context, auth escrowDomain.Authority, v *escrowDomain.Vault, fromOwner string) error {
	if !auth.Grants(v) {
		return escrowDomain.ErrBadAuthority
	}
	if v.Held {
		return escrowDomain.ErrVaultOccupied
	}
	col, err := c.wallets.GetCollateral(ctx, v.CollateralID)
	if err != nil {
		return err
	}
	if col.OwnerID != fromOwner {
		return escrowDomain.ErrWrongDepositor
	}
	col.OwnerID = v.VaultID
	if err := c.wallets.SaveCollateral(ctx, col); err != nil {
		return err
	}
	v.Held = true
	return c.vaults.Save(ctx, v)
}

func (c *GormCustody) Release(ctx context.Context, auth escrowDomain.Authority, v *escrowDomain.Vault, toOwner string) error {
	if !auth.Grants(v) {
		return escrowDomain.ErrBadAuthority
	}
	if !v.Held {
		return escrowDomain.ErrVaultEmpty
	}
	col, err := c.wallets.GetCollateral(ctx, v.CollateralID)
	if err != nil {
		return err
	}
	col.OwnerID = toOwner
	if err := c.wallets.SaveCollateral(ctx, col); err != nil {
		return err
	}
	v.Held = false
	return c.vaults.Save(ctx, v)
}
