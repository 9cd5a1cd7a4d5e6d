package loan

import (
	"errors"
	"math"
)

var ErrAmountOverflow = errors.New("settlement amount overflow")

// Settlement is the monetary split of a repayment. The platform fee is
// carved out of interest only; the principal always goes back to the
// lender in full.
type Settlement struct {
	Interest     uint64
	PlatformFee  uint64
	LenderPayout uint64
}

// BorrowerOwes is the total the borrower must cover at repay time:
// payout + fee, which by construction equals loan_amount + interest.
func (s Settlement) BorrowerOwes() uint64 { return s.LenderPayout + s.PlatformFee }

// ComputeSettlement splits a repayment into interest, platform fee and
// lender payout:
//
//	interest = floor(loan_amount * interest_rate_bps / 10000)
//	fee      = floor(interest * platform_fee_bps / 10000)
//	payout   = loan_amount + interest - fee
//
// All arithmetic is unsigned 64-bit; any overflow fails the call instead of
// wrapping.
func ComputeSettlement(loanAmount uint64, interestRateBps, platformFeeBps uint16) (Settlement, error) {
	interest, err := mulBpsFloor(loanAmount, interestRateBps)
	if err != nil {
		return Settlement{}, err
	}
	fee, err := mulBpsFloor(interest, platformFeeBps)
	if err != nil {
		return Settlement{}, err
	}
	if loanAmount > math.MaxUint64-interest {
		return Settlement{}, ErrAmountOverflow
	}
	// fee <= interest whenever platformFeeBps <= 10000, but rates are not
	// capped at request time, so guard the subtraction too.
	total := loanAmount + interest
	if fee > total {
		return Settlement{}, ErrAmountOverflow
	}
	return Settlement{
		Interest:     interest,
		PlatformFee:  fee,
		LenderPayout: total - fee,
	}, nil
}

// mulBpsFloor computes floor(v * bps / 10000) with an overflow check on the
// multiplication.
func mulBpsFloor(v uint64, bps uint16) (uint64, error) {
	if v == 0 || bps == 0 {
		return 0, nil
	}
	if v > math.MaxUint64/uint64(bps) {
		return 0, ErrAmountOverflow
	}
	return v * uint64(bps) / 10_000, nil
}
