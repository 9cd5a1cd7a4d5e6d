package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewFillsEnvelope(t *testing.T) {
	e := New(TypeLoanFunded, LoanFundedPayload{LoanID: "abc", LoanAmount: 100})

	if _, err := uuid.Parse(e.ID); err != nil {
		t.Fatalf("id %q is not a uuid: %v", e.ID, err)
	}
	if e.Type != TypeLoanFunded {
		t.Errorf("type = %s, want %s", e.Type, TypeLoanFunded)
	}
	if e.OccurredAt.Location() != time.UTC {
		t.Errorf("occurred_at not UTC: %v", e.OccurredAt.Location())
	}
	if time.Since(e.OccurredAt) > 2*time.Second {
		t.Errorf("occurred_at too old: %v", e.OccurredAt)
	}

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var round struct {
		Type    string `json:"type"`
		Payload struct {
			LoanID string `json:"loan_id"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(b, &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if round.Payload.LoanID != "abc" {
		t.Errorf("payload loan_id = %q, want abc", round.Payload.LoanID)
	}
}
