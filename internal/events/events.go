package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transition notification types, one per lifecycle transition.
const (
	TypeLoanRequested = "loan.requested"
	TypeLoanFunded    = "loan.funded"
	TypeLoanRepaid    = "loan.repaid"
	TypeNFTClaimed    = "nft.claimed"
	TypeLoanCancelled = "loan.cancelled"
)

// Event is the envelope published to external observers/indexers after a
// transition commits. Publishing is best-effort: a committed transition is
// never rolled back because its notification failed.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NoopPublisher drops every event; the default when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func New(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type LoanRequestedPayload struct {
	LoanID          string `json:"loan_id"`
	BorrowerID      string `json:"borrower_id"`
	CollateralID    string `json:"collateral_id"`
	LoanAmount      uint64 `json:"loan_amount"`
	DurationSecs    uint32 `json:"duration_secs"`
	InterestRateBps uint16 `json:"interest_rate_bps"`
	Timestamp       int64  `json:"timestamp"`
}

type LoanFundedPayload struct {
	LoanID     string `json:"loan_id"`
	LenderID   string `json:"lender_id"`
	LoanAmount uint64 `json:"loan_amount"`
	FundedAt   int64  `json:"funded_at"`
}

type LoanRepaidPayload struct {
	LoanID         string `json:"loan_id"`
	BorrowerID     string `json:"borrower_id"`
	LenderID       string `json:"lender_id"`
	RepaidAmount   uint64 `json:"repaid_amount"`
	FeeForPlatform uint64 `json:"fee_for_platform"`
	Timestamp      int64  `json:"timestamp"`
}

type NFTClaimedPayload struct {
	LoanID       string `json:"loan_id"`
	ClaimedBy    string `json:"claimed_by"`
	CollateralID string `json:"collateral_id"`
	Timestamp    int64  `json:"timestamp"`
}

type LoanCancelledPayload struct {
	LoanID       string `json:"loan_id"`
	BorrowerID   string `json:"borrower_id"`
	CollateralID string `json:"collateral_id"`
	Timestamp    int64  `json:"timestamp"`
}
