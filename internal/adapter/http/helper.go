package http

import (
	"errors"
	"net/http"

	escrowDomain "credentia/internal/domain/escrow"
	loanDomain "credentia/internal/domain/loan"
	platformDomain "credentia/internal/domain/platform"
	walletDomain "credentia/internal/domain/wallet"
	loanUC "credentia/internal/usecase/loan"
)

// errStatus maps domain errors onto HTTP statuses: validation 400,
// not-found 404, state conflicts 409, identity mismatches 403, resource
// shortfalls 422. Anything unrecognized is a 500.
func errStatus(err error) int {
	switch {
	case errors.Is(err, loanDomain.ErrInvalidAmount),
		errors.Is(err, loanDomain.ErrInvalidDuration),
		errors.Is(err, platformDomain.ErrInvalidFeeBps):
		return http.StatusBadRequest

	case errors.Is(err, loanDomain.ErrLoanNotFound),
		errors.Is(err, walletDomain.ErrAccountNotFound),
		errors.Is(err, walletDomain.ErrCollateralNotFound),
		errors.Is(err, escrowDomain.ErrVaultNotFound):
		return http.StatusNotFound

	case errors.Is(err, loanDomain.ErrLoanExists),
		errors.Is(err, loanDomain.ErrLoanFunded),
		errors.Is(err, loanDomain.ErrLoanNotActive),
		errors.Is(err, loanDomain.ErrLoanAlreadyFunded),
		errors.Is(err, loanDomain.ErrLoanRepaid),
		errors.Is(err, loanDomain.ErrLoanDefaulted),
		errors.Is(err, loanDomain.ErrRepayWindowOpen),
		errors.Is(err, platformDomain.ErrAlreadyInitialized),
		errors.Is(err, platformDomain.ErrNotInitialized),
		errors.Is(err, walletDomain.ErrAccountExists),
		errors.Is(err, walletDomain.ErrCollateralExists):
		return http.StatusConflict

	case errors.Is(err, loanDomain.ErrLenderNotMatched),
		errors.Is(err, loanDomain.ErrBorrowerNotMatched),
		errors.Is(err, loanDomain.ErrSelfFunding),
		errors.Is(err, loanDomain.ErrCollateralNotOwned),
		errors.Is(err, loanDomain.ErrCollateralNotVerified),
		errors.Is(err, escrowDomain.ErrBadAuthority),
		errors.Is(err, escrowDomain.ErrWrongDepositor):
		return http.StatusForbidden

	case errors.Is(err, walletDomain.ErrInsufficientBalance),
		errors.Is(err, walletDomain.ErrBalanceOverflow),
		errors.Is(err, loanUC.ErrAmountOverflow):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
