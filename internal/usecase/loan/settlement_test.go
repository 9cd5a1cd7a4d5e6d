package loan

import (
	"errors"
	"math"
	"testing"
)

func TestComputeSettlementWorkedExample(t *testing.T) {
	// 1_000_000 at 10% interest, 5% platform fee on interest
	s, err := ComputeSettlement(1_000_000, 1000, 500)
	if err != nil {
		t.Fatalf("ComputeSettlement: %v", err)
	}
	if s.Interest != 100_000 {
		t.Errorf("interest = %d, want 100000", s.Interest)
	}
	if s.PlatformFee != 5_000 {
		t.Errorf("fee = %d, want 5000", s.PlatformFee)
	}
	if s.LenderPayout != 1_095_000 {
		t.Errorf("payout = %d, want 1095000", s.LenderPayout)
	}
	if s.BorrowerOwes() != 1_100_000 {
		t.Errorf("borrower owes %d, want 1100000", s.BorrowerOwes())
	}
}

func TestComputeSettlementIdentity(t *testing.T) {
	// payout + fee == loan + floor(loan*rate/10000) for all valid inputs
	amounts := []uint64{1, 3, 999, 10_000, 123_456_789, 1 << 40}
	rates := []uint16{0, 1, 9, 100, 1000, 9999, 10000, 25000} // incl. >100%
	fees := []uint16{0, 1, 500, 9999, 10000}

	for _, a := range amounts {
		for _, r := range rates {
			for _, f := range fees {
				s, err := ComputeSettlement(a, r, f)
				if err != nil {
					t.Fatalf("ComputeSettlement(%d,%d,%d): %v", a, r, f, err)
				}
				interest := a * uint64(r) / 10_000
				if s.LenderPayout+s.PlatformFee != a+interest {
					t.Fatalf("identity broken for (%d,%d,%d): payout=%d fee=%d",
						a, r, f, s.LenderPayout, s.PlatformFee)
				}
				if s.PlatformFee > s.Interest {
					t.Fatalf("fee %d exceeds interest %d for (%d,%d,%d)", s.PlatformFee, s.Interest, a, r, f)
				}
			}
		}
	}
}

func TestComputeSettlementFloors(t *testing.T) {
	// 999 * 1 bps = 0.0999 → floors to 0
	s, err := ComputeSettlement(999, 1, 10_000)
	if err != nil {
		t.Fatalf("ComputeSettlement: %v", err)
	}
	if s.Interest != 0 || s.PlatformFee != 0 || s.LenderPayout != 999 {
		t.Fatalf("unexpected split: %+v", s)
	}

	// interest 33, fee at 1 bps floors to 0
	s, err = ComputeSettlement(33_000, 10, 1)
	if err != nil {
		t.Fatalf("ComputeSettlement: %v", err)
	}
	if s.Interest != 33 || s.PlatformFee != 0 {
		t.Fatalf("unexpected split: %+v", s)
	}
}

func TestComputeSettlementOverflow(t *testing.T) {
	// multiplication overflow in the interest term
	if _, err := ComputeSettlement(math.MaxUint64, 2, 0); !errors.Is(err, ErrAmountOverflow) {
		t.Fatalf("err = %v, want ErrAmountOverflow", err)
	}
	// addition overflow in loan + interest (1 bps never overflows the mul)
	if _, err := ComputeSettlement(math.MaxUint64, 1, 0); !errors.Is(err, ErrAmountOverflow) {
		t.Fatalf("err = %v, want ErrAmountOverflow", err)
	}
	// zero-rate path never overflows
	if _, err := ComputeSettlement(math.MaxUint64, 0, 10_000); err != nil {
		t.Fatalf("zero rate: %v", err)
	}
}
