package platform

import (
	"context"
	"errors"
	"time"

	domain "credentia/internal/domain/platform"
	"credentia/internal/domain/uow"
	"credentia/internal/domain/wallet"
	"credentia/pkg/id"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type InitializeInput struct {
	Authority string
	FeeBps    uint16
}

type PlatformDTO struct {
	PlatformID        string    `json:"platform_id"`
	Authority         string    `json:"authority"`
	FeeBps            uint16    `json:"fee_bps"`
	TreasuryID        string    `json:"treasury_id"`
	RewardAuthorityID string    `json:"reward_authority_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// Initialize creates the singleton platform registry. A second call fails
// with ErrAlreadyInitialized. The guard is explicit, not left to a unique
// index.
func (u *Usecase) Initialize(ctx context.Context, in InitializeInput) (*PlatformDTO, error) {
	if in.FeeBps > 10_000 {
		return nil, domain.ErrInvalidFeeBps
	}

	var dto *PlatformDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		_, err := r.Platforms.Get(ctx)
		switch {
		case err == nil:
			return domain.ErrAlreadyInitialized
		case !errors.Is(err, domain.ErrNotInitialized):
			return err
		}

		platformID := id.NewID32()
		p := &domain.Platform{
			PlatformID:        platformID,
			Authority:         in.Authority,
			FeeBps:            in.FeeBps,
			TreasuryID:        id.DeriveID("treasury", platformID),
			RewardAuthorityID: id.DeriveID("reward", platformID),
		}
		if err := r.Platforms.Create(ctx, p); err != nil {
			return err
		}
		// the treasury must be able to receive fees from day one
		if err := r.Wallets.CreateAccount(ctx, &wallet.Account{OwnerID: p.TreasuryID}); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns the singleton registry.
func (u *Usecase) Get(ctx context.Context) (*PlatformDTO, error) {
	var dto *PlatformDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Platforms.Get(ctx)
		if err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toDTO(p *domain.Platform) *PlatformDTO {
	return &PlatformDTO{
		PlatformID:        p.PlatformID,
		Authority:         p.Authority,
		FeeBps:            p.FeeBps,
		TreasuryID:        p.TreasuryID,
		RewardAuthorityID: p.RewardAuthorityID,
		CreatedAt:         p.CreatedAt,
	}
}
