package uow

import (
	"context"

	"credentia/internal/domain/escrow"
	"credentia/internal/domain/loan"
	"credentia/internal/domain/platform"
	"credentia/internal/domain/wallet"
)

type Repos struct {
	Platforms platform.Repository
	Loans     loan.Repository
	Vaults    escrow.Repository
	Custody   escrow.Custody
	Wallets   wallet.Repository
}

// UnitOfWork is the single transactional boundary every lifecycle call runs
// inside: all sub-effects (balance moves, collateral moves, loan row
// mutation or deletion) commit together or roll back together.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
