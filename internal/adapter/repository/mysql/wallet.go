package mysql

import (
	"context"
	"errors"
	"math"

	walletDomain "credentia/internal/domain/wallet"

	"gorm.io/gorm"
)

type WalletRepository struct{ db *gorm.DB }

func NewWalletRepository(db *gorm.DB) *WalletRepository { return &WalletRepository{db: db} }

func (r *WalletRepository) CreateAccount(ctx context.Context, a *walletDomain.Account) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return walletDomain.ErrAccountExists
	}
	return err
}

func (r *WalletRepository) GetAccount(ctx context.Context, ownerID string) (*walletDomain.Account, error) {
	var out walletDomain.Account
	res := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, walletDomain.ErrAccountNotFound
	}
	return &out, res.Error
}

func (r *WalletRepository) GetAccountForUpdate(ctx context.Context, ownerID string) (*walletDomain.Account, error) {
	var out walletDomain.Account
	res := forUpdate(r.db.WithContext(ctx)).Where("owner_id = ?", ownerID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, walletDomain.ErrAccountNotFound
	}
	return &out, res.Error
}

// Transfer debits from and credits to inside the caller's transaction. The
// debit carries its balance guard in the statement itself, so a concurrent
// spend can never push the balance negative.
func (r *WalletRepository) Transfer(ctx context.Context, fromOwner, toOwner string, amount uint64) error {
	if amount == 0 || fromOwner == toOwner {
		return nil
	}
	to, err := r.GetAccount(ctx, toOwner)
	if err != nil {
		return err
	}
	if to.Balance > math.MaxUint64-amount {
		return walletDomain.ErrBalanceOverflow
	}

	res := r.db.WithContext(ctx).Model(&walletDomain.Account{}).
		Where("owner_id = ? AND balance >= ?", fromOwner, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetAccount(ctx, fromOwner); err != nil {
			return err
		}
		return walletDomain.ErrInsufficientBalance
	}

	res = r.db.WithContext(ctx).Model(&walletDomain.Account{}).
		Where("owner_id = ?", toOwner).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return walletDomain.ErrAccountNotFound
	}
	return nil
}

func (r *WalletRepository) CreateCollateral(ctx context.Context, c *walletDomain.Collateral) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return walletDomain.ErrCollateralExists
	}
	return err
}

func (r *WalletRepository) GetCollateral(ctx context.Context, collateralID string) (*walletDomain.Collateral, error) {
	var out walletDomain.Collateral
	res := r.db.WithContext(ctx).Where("collateral_id = ?", collateralID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, walletDomain.ErrCollateralNotFound
	}
	return &out, res.Error
}

func (r *WalletRepository) SaveCollateral(ctx context.Context, c *walletDomain.Collateral) error {
	return r.db.WithContext(ctx).Save(c).Error
}
