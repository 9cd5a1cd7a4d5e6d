package wallet

import "context"

type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, ownerID string) (*Account, error)
	// GetAccountForUpdate locks the account row for the enclosing transaction.
	GetAccountForUpdate(ctx context.Context, ownerID string) (*Account, error)
	// Transfer moves amount between two accounts inside the enclosing
	// transaction. Fails with ErrInsufficientBalance when from cannot cover
	// it; never leaves a partial move behind.
	Transfer(ctx context.Context, fromOwner, toOwner string, amount uint64) error

	CreateCollateral(ctx context.Context, c *Collateral) error
	GetCollateral(ctx context.Context, collateralID string) (*Collateral, error)
	SaveCollateral(ctx context.Context, c *Collateral) error
}
