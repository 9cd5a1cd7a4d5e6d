package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the rest of the enclosing
	// transaction; every lifecycle transition goes through it.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	// Delete removes the row for good; terminal transitions reclaim the
	// loan's storage in the same transaction.
	Delete(ctx context.Context, l *Loan) error
}
