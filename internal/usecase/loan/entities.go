package loan

import (
	"time"

	domain "credentia/internal/domain/loan"
)

type RequestLoanInput struct {
	BorrowerID      string `json:"borrower_id"`
	CollateralID    string `json:"collateral_id"`
	LoanAmount      uint64 `json:"loan_amount"`
	DurationSecs    uint32 `json:"duration_secs"`
	InterestRateBps uint16 `json:"interest_rate_bps"`
}

type FundLoanInput struct {
	LoanID   string
	LenderID string
}

type ResolveLoanInput struct {
	LoanID     string
	BorrowerID string
	// LenderID binds the settlement to the recorded counterparty; it must
	// match the stored lender exactly.
	LenderID string
}

type DefaultLoanInput struct {
	LoanID   string
	LenderID string
}

type CancelLoanInput struct {
	LoanID     string
	BorrowerID string
}

type LoanDTO struct {
	LoanID          string    `json:"loan_id"`
	BorrowerID      string    `json:"borrower_id"`
	CollateralID    string    `json:"collateral_id"`
	LoanAmount      uint64    `json:"loan_amount"`
	DurationSecs    uint32    `json:"duration_secs"`
	InterestRateBps uint16    `json:"interest_rate_bps"`
	Status          string    `json:"status"`
	LenderID        *string   `json:"lender_id,omitempty"`
	StartTime       *int64    `json:"start_time,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ResolveDTO struct {
	LoanID         string `json:"loan_id"`
	RepaidAmount   uint64 `json:"repaid_amount"`
	FeeForPlatform uint64 `json:"fee_for_platform"`
	CollateralID   string `json:"collateral_id"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		BorrowerID:      l.BorrowerID,
		CollateralID:    l.CollateralID,
		LoanAmount:      l.LoanAmount,
		DurationSecs:    l.DurationSecs,
		InterestRateBps: l.InterestRateBps,
		Status:          string(l.Status),
		LenderID:        l.LenderID,
		StartTime:       l.StartTime,
		CreatedAt:       l.CreatedAt,
	}
}
