package escrow

import (
	"context"

	"credentia/internal/domain/wallet"
)

type Repository interface {
	Create(ctx context.Context, v *Vault) error
	GetByLoanID(ctx context.Context, loanID string) (*Vault, error)
	Save(ctx context.Context, v *Vault) error
	Delete(ctx context.Context, v *Vault) error
}

// Custody moves the collateral unit between an owner and a loan vault.
// Both operations demand the loan record's Authority; they cannot be driven
// by an external signer.
type Custody interface {
	// Deposit moves the collateral from fromOwner into the vault.
	Deposit(ctx context.Context, auth Authority, v *Vault, fromOwner string) error
	// Release moves the collateral out of the vault to toOwner.
	Release(ctx context.Context, auth Authority, v *Vault, toOwner string) error
}

// CollectionVerifier proves a collateral unit belongs to an approved
// collection before it may back a loan.
type CollectionVerifier interface {
	Verify(ctx context.Context, c *wallet.Collateral) error
}
