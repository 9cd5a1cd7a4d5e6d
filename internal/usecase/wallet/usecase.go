package wallet

import (
	"context"

	domain "credentia/internal/domain/wallet"
	"credentia/internal/domain/uow"
	"credentia/pkg/id"
)

// Usecase covers the ledger substrate's own surface: account and collateral
// registration plus reads. Lifecycle transitions never go through here;
// they move balances and collateral inside their own transactions.
type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type CreateAccountInput struct {
	OwnerID string
	Balance uint64
}

type RegisterCollateralInput struct {
	OwnerID      string
	CollectionID string
	Verified     bool
}

func (u *Usecase) CreateAccount(ctx context.Context, in CreateAccountInput) (*domain.Account, error) {
	a := &domain.Account{OwnerID: in.OwnerID, Balance: in.Balance}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Wallets.CreateAccount(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (u *Usecase) GetAccount(ctx context.Context, ownerID string) (*domain.Account, error) {
	var a *domain.Account
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		got, err := r.Wallets.GetAccount(ctx, ownerID)
		if err != nil {
			return err
		}
		a = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// RegisterCollateral mints a collateral unit into the ledger. The Verified
// flag records the metadata collaborator's collection proof.
func (u *Usecase) RegisterCollateral(ctx context.Context, in RegisterCollateralInput) (*domain.Collateral, error) {
	c := &domain.Collateral{
		CollateralID: id.NewID32(),
		OwnerID:      in.OwnerID,
		CollectionID: in.CollectionID,
		Verified:     in.Verified,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Wallets.CreateCollateral(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Usecase) GetCollateral(ctx context.Context, collateralID string) (*domain.Collateral, error) {
	var c *domain.Collateral
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		got, err := r.Wallets.GetCollateral(ctx, collateralID)
		if err != nil {
			return err
		}
		c = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
