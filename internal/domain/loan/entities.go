package loan

import (
	"errors"
	"time"
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusFunded    Status = "funded"
	// Repaid and Defaulted are transient: the loan row is deleted inside
	// the same transaction that produces them, so they are never read back
	// from storage. Only requested and funded are resting states.
	StatusRepaid    Status = "repaid"
	StatusDefaulted Status = "defaulted"
)

var (
	ErrInvalidAmount   = errors.New("invalid loan amount")
	ErrInvalidDuration = errors.New("invalid loan duration")
	ErrLoanNotFound    = errors.New("loan not found")
	ErrLoanExists      = errors.New("active loan already exists for this collateral")

	ErrLoanFunded         = errors.New("loan already funded")
	ErrLoanNotActive      = errors.New("loan is not active")
	ErrSelfFunding        = errors.New("borrower cannot fund own loan")
	ErrLoanDefaulted      = errors.New("loan defaulted")
	ErrLoanRepaid         = errors.New("loan already repaid")
	ErrLenderNotMatched   = errors.New("lender not matched")
	ErrBorrowerNotMatched = errors.New("borrower not matched")
	ErrLoanAlreadyFunded  = errors.New("cannot cancel a funded loan")
	ErrRepayWindowOpen    = errors.New("repay window still open")

	ErrCollateralNotOwned    = errors.New("collateral not owned by borrower")
	ErrCollateralNotVerified = errors.New("collateral collection not verified")
)

// Loan is one loan attempt. LoanID is derived from (collateral id,
// platform id), so the same collateral cannot back two active loans on one
// platform. The row exists only while the loan is requested or funded;
// terminal transitions delete it in the same transaction.
type Loan struct {
	ID              uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	PlatformID      string `gorm:"column:platform_id;type:char(32);not null" json:"platform_id"`
	BorrowerID      string `gorm:"column:borrower_id;type:char(32);not null;index:idx_loans_borrower" json:"borrower_id"`
	CollateralID    string `gorm:"column:collateral_id;type:char(32);not null" json:"collateral_id"`
	LoanAmount      uint64 `gorm:"column:loan_amount;not null" json:"loan_amount"`
	DurationSecs    uint32 `gorm:"column:duration_secs;not null" json:"duration_secs"`
	InterestRateBps uint16 `gorm:"column:interest_rate_bps;not null" json:"interest_rate_bps"`
	Status          Status `gorm:"column:status;type:enum('requested','funded');default:'requested'" json:"status"`

	// LenderID and StartTime are set together by MarkFunded and never
	// individually; read them through Funding().
	LenderID  *string `gorm:"column:lender_id;type:char(32)" json:"lender_id,omitempty"`
	StartTime *int64  `gorm:"column:start_time" json:"start_time,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Funding is the funded-side of the loan's tagged state: either the loan is
// unfunded (ok == false) or it has exactly one lender and a start time.
type Funding struct {
	LenderID  string
	StartTime int64
}

func (l *Loan) Funding() (Funding, bool) {
	if l.LenderID == nil || l.StartTime == nil {
		return Funding{}, false
	}
	return Funding{LenderID: *l.LenderID, StartTime: *l.StartTime}, true
}

// MarkFunded records the single accepted lender. It fails if a lender is
// already attached; the lender field is immutable once set.
func (l *Loan) MarkFunded(lenderID string, startTime int64) error {
	if l.LenderID != nil {
		return ErrLoanFunded
	}
	l.LenderID = &lenderID
	l.StartTime = &startTime
	l.Status = StatusFunded
	return nil
}

// RepayWindowClosed reports whether now is past start_time + duration.
// The window is hard-closed at the deadline: elapsed > duration means closed.
func (l *Loan) RepayWindowClosed(now int64) bool {
	f, ok := l.Funding()
	if !ok {
		return false
	}
	return now-f.StartTime > int64(l.DurationSecs)
}
