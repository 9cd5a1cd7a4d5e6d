package loan

import (
	"context"
	"errors"
	"log"
	"time"

	domain "credentia/internal/domain/loan"
	"credentia/internal/domain/escrow"
	"credentia/internal/domain/uow"
	"credentia/internal/domain/wallet"
	"credentia/internal/events"
	"credentia/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the loan lifecycle engine. Every transition runs inside one
// unit-of-work transaction with the loan row locked, so a transition either
// applies all of its effects or none of them.
type Usecase struct {
	uow      uow.UnitOfWork
	verifier escrow.CollectionVerifier
	pub      events.Publisher
	nowFn    func() int64
}

func NewUsecase(tx uow.UnitOfWork, verifier escrow.CollectionVerifier, pub events.Publisher) *Usecase {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Usecase{
		uow:      tx,
		verifier: verifier,
		pub:      pub,
		nowFn:    func() int64 { return time.Now().Unix() },
	}
}

// SetNowFunc overrides the time source; tests use it for deterministic
// deadlines.
func (u *Usecase) SetNowFunc(now func() int64) {
	if now == nil {
		u.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	u.nowFn = now
}

func (u *Usecase) publish(ctx context.Context, e events.Event) {
	if err := u.pub.Publish(ctx, e); err != nil {
		// notifications are observer-only; a committed transition stands
		log.Printf("events: publish %s: %v", e.Type, err)
	}
}

// Request escrows the borrower's collateral and creates the loan record in
// requested state, addressed by the id derived from (collateral, platform).
func (u *Usecase) Request(ctx context.Context, in RequestLoanInput) (*LoanDTO, error) {
	if in.LoanAmount == 0 {
		return nil, domain.ErrInvalidAmount
	}
	if in.DurationSecs == 0 {
		return nil, domain.ErrInvalidDuration
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Platforms.Get(ctx)
		if err != nil {
			return err
		}

		col, err := r.Wallets.GetCollateral(ctx, in.CollateralID)
		if err != nil {
			return err
		}
		if col.OwnerID != in.BorrowerID {
			return domain.ErrCollateralNotOwned
		}
		if err := u.verifier.Verify(ctx, col); err != nil {
			return err
		}

		loanID := id.DeriveID(in.CollateralID, p.PlatformID)
		if _, err := r.Loans.GetByLoanID(ctx, loanID); err == nil {
			return domain.ErrLoanExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		l := &domain.Loan{
			LoanID:          loanID,
			PlatformID:      p.PlatformID,
			BorrowerID:      in.BorrowerID,
			CollateralID:    in.CollateralID,
			LoanAmount:      in.LoanAmount,
			DurationSecs:    in.DurationSecs,
			InterestRateBps: in.InterestRateBps,
			Status:          domain.StatusRequested,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		v := &escrow.Vault{
			VaultID:      id.DeriveID("vault", loanID),
			LoanID:       loanID,
			CollateralID: in.CollateralID,
		}
		if err := r.Vaults.Create(ctx, v); err != nil {
			return err
		}
		if err := r.Custody.Deposit(ctx, escrow.LoanAuthority(loanID), v, in.BorrowerID); err != nil {
			return err
		}

		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.publish(ctx, events.New(events.TypeLoanRequested, events.LoanRequestedPayload{
		LoanID:          dto.LoanID,
		BorrowerID:      dto.BorrowerID,
		CollateralID:    dto.CollateralID,
		LoanAmount:      dto.LoanAmount,
		DurationSecs:    dto.DurationSecs,
		InterestRateBps: dto.InterestRateBps,
		Timestamp:       u.nowFn(),
	}))
	return dto, nil
}

// Fund accepts exactly one lender: the principal moves lender → borrower in
// full, then the lender identity and start time are stamped. Irreversible.
func (u *Usecase) Fund(ctx context.Context, in FundLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	now := u.nowFn()

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if _, funded := l.Funding(); funded {
			return domain.ErrLoanFunded
		}
		if l.Status != domain.StatusRequested {
			return domain.ErrLoanNotActive
		}
		if in.LenderID == l.BorrowerID {
			return domain.ErrSelfFunding
		}

		acc, err := r.Wallets.GetAccountForUpdate(ctx, in.LenderID)
		if err != nil {
			return err
		}
		if acc.Balance < l.LoanAmount {
			return wallet.ErrInsufficientBalance
		}
		if err := r.Wallets.Transfer(ctx, in.LenderID, l.BorrowerID, l.LoanAmount); err != nil {
			return err
		}

		if err := l.MarkFunded(in.LenderID, now); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.publish(ctx, events.New(events.TypeLoanFunded, events.LoanFundedPayload{
		LoanID:     dto.LoanID,
		LenderID:   in.LenderID,
		LoanAmount: dto.LoanAmount,
		FundedAt:   now,
	}))
	return dto, nil
}

// Resolve repays the loan before the deadline: fee → treasury, payout →
// lender, collateral back to the borrower, and the loan and vault rows are
// deleted, all inside one transaction.
func (u *Usecase) Resolve(ctx context.Context, in ResolveLoanInput) (*ResolveDTO, error) {
	var dto *ResolveDTO
	now := u.nowFn()

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.BorrowerID != in.BorrowerID {
			return domain.ErrBorrowerNotMatched
		}
		f, funded := l.Funding()
		if !funded {
			// never funded: nothing to repay
			return domain.ErrLoanDefaulted
		}
		if now-f.StartTime > int64(l.DurationSecs) {
			// hard-closed at the deadline, no grace period
			return domain.ErrLoanDefaulted
		}
		switch l.Status {
		case domain.StatusRepaid:
			return domain.ErrLoanRepaid
		case domain.StatusDefaulted:
			return domain.ErrLoanDefaulted
		}
		if f.LenderID != in.LenderID {
			return domain.ErrLenderNotMatched
		}

		p, err := r.Platforms.Get(ctx)
		if err != nil {
			return err
		}
		s, err := ComputeSettlement(l.LoanAmount, l.InterestRateBps, p.FeeBps)
		if err != nil {
			return err
		}

		acc, err := r.Wallets.GetAccountForUpdate(ctx, l.BorrowerID)
		if err != nil {
			return err
		}
		if acc.Balance < s.BorrowerOwes() {
			return wallet.ErrInsufficientBalance
		}
		if err := r.Wallets.Transfer(ctx, l.BorrowerID, p.TreasuryID, s.PlatformFee); err != nil {
			return err
		}
		if err := r.Wallets.Transfer(ctx, l.BorrowerID, f.LenderID, s.LenderPayout); err != nil {
			return err
		}
		l.Status = domain.StatusRepaid

		v, err := r.Vaults.GetByLoanID(ctx, l.LoanID)
		if err != nil {
			return err
		}
		if err := r.Custody.Release(ctx, escrow.LoanAuthority(l.LoanID), v, l.BorrowerID); err != nil {
			return err
		}
		if err := r.Vaults.Delete(ctx, v); err != nil {
			return err
		}
		if err := r.Loans.Delete(ctx, l); err != nil {
			return err
		}

		dto = &ResolveDTO{
			LoanID:         l.LoanID,
			RepaidAmount:   s.LenderPayout,
			FeeForPlatform: s.PlatformFee,
			CollateralID:   l.CollateralID,
		}
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.publish(ctx, events.New(events.TypeLoanRepaid, events.LoanRepaidPayload{
		LoanID:         dto.LoanID,
		BorrowerID:     in.BorrowerID,
		LenderID:       in.LenderID,
		RepaidAmount:   dto.RepaidAmount,
		FeeForPlatform: dto.FeeForPlatform,
		Timestamp:      now,
	}))
	u.publish(ctx, events.New(events.TypeNFTClaimed, events.NFTClaimedPayload{
		LoanID:       dto.LoanID,
		ClaimedBy:    in.BorrowerID,
		CollateralID: dto.CollateralID,
		Timestamp:    now,
	}))
	return dto, nil
}

// Default forfeits the collateral to the lender once the repay window has
// elapsed. The elapsed-time check is re-validated here, independent of
// Resolve.
func (u *Usecase) Default(ctx context.Context, in DefaultLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	now := u.nowFn()

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		f, funded := l.Funding()
		if !funded || l.Status != domain.StatusFunded {
			return domain.ErrLoanNotActive
		}
		if f.LenderID != in.LenderID {
			return domain.ErrLenderNotMatched
		}
		if now-f.StartTime <= int64(l.DurationSecs) {
			return domain.ErrRepayWindowOpen
		}
		l.Status = domain.StatusDefaulted

		v, err := r.Vaults.GetByLoanID(ctx, l.LoanID)
		if err != nil {
			return err
		}
		if err := r.Custody.Release(ctx, escrow.LoanAuthority(l.LoanID), v, in.LenderID); err != nil {
			return err
		}
		if err := r.Vaults.Delete(ctx, v); err != nil {
			return err
		}
		if err := r.Loans.Delete(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.publish(ctx, events.New(events.TypeNFTClaimed, events.NFTClaimedPayload{
		LoanID:       dto.LoanID,
		ClaimedBy:    in.LenderID,
		CollateralID: dto.CollateralID,
		Timestamp:    now,
	}))
	return dto, nil
}

// Cancel returns the collateral to the borrower while the loan is still
// unfunded. No money moves.
func (u *Usecase) Cancel(ctx context.Context, in CancelLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	now := u.nowFn()

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.BorrowerID != in.BorrowerID {
			return domain.ErrBorrowerNotMatched
		}
		if l.Status != domain.StatusRequested {
			return domain.ErrLoanAlreadyFunded
		}

		v, err := r.Vaults.GetByLoanID(ctx, l.LoanID)
		if err != nil {
			return err
		}
		if err := r.Custody.Release(ctx, escrow.LoanAuthority(l.LoanID), v, l.BorrowerID); err != nil {
			return err
		}
		if err := r.Vaults.Delete(ctx, v); err != nil {
			return err
		}
		if err := r.Loans.Delete(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.publish(ctx, events.New(events.TypeLoanCancelled, events.LoanCancelledPayload{
		LoanID:       dto.LoanID,
		BorrowerID:   dto.BorrowerID,
		CollateralID: dto.CollateralID,
		Timestamp:    now,
	}))
	return dto, nil
}

// Get is the read model for a resting loan (requested or funded; terminal
// loans no longer exist).
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// mapNotFound turns the storage layer's record-not-found into the domain's
// address-not-found class error for loans.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrLoanNotFound
	}
	return err
}
