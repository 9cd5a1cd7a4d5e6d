package metadata

import (
	"context"

	"credentia/internal/domain/escrow"
	loandomain "credentia/internal/domain/loan"
	"credentia/internal/domain/wallet"
)

// CollectionChecker is the default collection-verification collaborator:
// the proof was recorded on the collateral row when the unit was
// registered, so checking here amounts to requiring a verified membership
// in a named collection.
type CollectionChecker struct{}

func NewCollectionChecker() *CollectionChecker { return &CollectionChecker{} }

var _ escrow.CollectionVerifier = (*CollectionChecker)(nil)

func (CollectionChecker) Verify(_ context.Context, c *wallet.Collateral) error {
	if c == nil || c.CollectionID == "" || !c.Verified {
		return loandomain.ErrCollateralNotVerified
	}
	return nil
}
