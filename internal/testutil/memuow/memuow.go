package memuow

import (
	"context"
	"math"
	"sync"

	escrowDomain "credentia/internal/domain/escrow"
	loanDomain "credentia/internal/domain/loan"
	platformDomain "credentia/internal/domain/platform"
	"credentia/internal/domain/uow"
	walletDomain "credentia/internal/domain/wallet"

	"gorm.io/gorm"
)

// UoW is an in-memory unit of work for usecase tests. It keeps the same
// error mapping as the mysql adapter (loans surface gorm.ErrRecordNotFound,
// the other stores surface their domain errors) and rolls the whole store
// back when the transaction function fails, so tests can assert that an
// aborted transition left no partial state.
type UoW struct {
	mu sync.Mutex
	st *store
}

type store struct {
	nextID      uint64
	platforms   []*platformDomain.Platform
	loans       map[string]*loanDomain.Loan
	vaults      map[string]*escrowDomain.Vault // by loan id
	accounts    map[string]*walletDomain.Account
	collaterals map[string]*walletDomain.Collateral
}

func New() *UoW {
	return &UoW{st: &store{
		nextID:      1,
		loans:       map[string]*loanDomain.Loan{},
		vaults:      map[string]*escrowDomain.Vault{},
		accounts:    map[string]*walletDomain.Account{},
		collaterals: map[string]*walletDomain.Collateral{},
	}}
}

var _ uow.UnitOfWork = (*UoW)(nil)

func (s *store) clone() *store {
	out := &store{
		nextID:      s.nextID,
		loans:       map[string]*loanDomain.Loan{},
		vaults:      map[string]*escrowDomain.Vault{},
		accounts:    map[string]*walletDomain.Account{},
		collaterals: map[string]*walletDomain.Collateral{},
	}
	for _, p := range s.platforms {
		cp := *p
		out.platforms = append(out.platforms, &cp)
	}
	for k, l := range s.loans {
		cp := *l
		if l.LenderID != nil {
			v := *l.LenderID
			cp.LenderID = &v
		}
		if l.StartTime != nil {
			v := *l.StartTime
			cp.StartTime = &v
		}
		out.loans[k] = &cp
	}
	for k, v := range s.vaults {
		cp := *v
		out.vaults[k] = &cp
	}
	for k, a := range s.accounts {
		cp := *a
		out.accounts[k] = &cp
	}
	for k, c := range s.collaterals {
		cp := *c
		out.collaterals[k] = &cp
	}
	return out
}

func (u *UoW) repos() uow.Repos {
	return uow.Repos{
		Platforms: &platformRepo{st: u.st},
		Loans:     &loanRepo{st: u.st},
		Vaults:    &vaultRepo{st: u.st},
		Custody:   &custody{st: u.st},
		Wallets:   &walletRepo{st: u.st},
	}
}

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	snapshot := u.st.clone()
	if err := fn(u.repos()); err != nil {
		u.st = snapshot
		return err
	}
	return nil
}

func (u *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	snapshot := u.st.clone()
	r := u.repos()
	l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	if err := fn(r, l); err != nil {
		u.st = snapshot
		return err
	}
	return nil
}

// ---- seeding / inspection helpers (no transaction, direct store access) ----

func (u *UoW) SeedPlatform(p *platformDomain.Platform) {
	u.mu.Lock()
	defer u.mu.Unlock()
	p.ID = u.st.nextID
	u.st.nextID++
	u.st.platforms = append(u.st.platforms, p)
}

func (u *UoW) SeedAccount(a *walletDomain.Account) {
	u.mu.Lock()
	defer u.mu.Unlock()
	a.ID = u.st.nextID
	u.st.nextID++
	u.st.accounts[a.OwnerID] = a
}

func (u *UoW) SeedCollateral(c *walletDomain.Collateral) {
	u.mu.Lock()
	defer u.mu.Unlock()
	c.ID = u.st.nextID
	u.st.nextID++
	u.st.collaterals[c.CollateralID] = c
}

func (u *UoW) Loan(loanID string) (*loanDomain.Loan, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	l, ok := u.st.loans[loanID]
	return l, ok
}

func (u *UoW) Vault(loanID string) (*escrowDomain.Vault, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	v, ok := u.st.vaults[loanID]
	return v, ok
}

func (u *UoW) Balance(ownerID string) uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	if a, ok := u.st.accounts[ownerID]; ok {
		return a.Balance
	}
	return 0
}

func (u *UoW) CollateralOwner(collateralID string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if c, ok := u.st.collaterals[collateralID]; ok {
		return c.OwnerID
	}
	return ""
}

// ---- repositories ----

type platformRepo struct{ st *store }

func (r *platformRepo) Create(_ context.Context, p *platformDomain.Platform) error {
	p.ID = r.st.nextID
	r.st.nextID++
	r.st.platforms = append(r.st.platforms, p)
	return nil
}

func (r *platformRepo) Get(context.Context) (*platformDomain.Platform, error) {
	if len(r.st.platforms) == 0 {
		return nil, platformDomain.ErrNotInitialized
	}
	return r.st.platforms[0], nil
}

type loanRepo struct{ st *store }

func (r *loanRepo) Create(_ context.Context, l *loanDomain.Loan) error {
	l.ID = r.st.nextID
	r.st.nextID++
	r.st.loans[l.LoanID] = l
	return nil
}

func (r *loanRepo) GetByLoanID(_ context.Context, loanID string) (*loanDomain.Loan, error) {
	l, ok := r.st.loans[loanID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *loanRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.GetByLoanID(ctx, loanID)
}

func (r *loanRepo) Save(_ context.Context, l *loanDomain.Loan) error {
	r.st.loans[l.LoanID] = l
	return nil
}

func (r *loanRepo) Delete(_ context.Context, l *loanDomain.Loan) error {
	delete(r.st.loans, l.LoanID)
	return nil
}

type vaultRepo struct{ st *store }

func (r *vaultRepo) Create(_ context.Context, v *escrowDomain.Vault) error {
	v.ID = r.st.nextID
	r.st.nextID++
	r.st.vaults[v.LoanID] = v
	return nil
}

func (r *vaultRepo) GetByLoanID(_ context.Context, loanID string) (*escrowDomain.Vault, error) {
	v, ok := r.st.vaults[loanID]
	if !ok {
		return nil, escrowDomain.ErrVaultNotFound
	}
	return v, nil
}

func (r *vaultRepo) Save(_ context.Context, v *escrowDomain.Vault) error {
	r.st.vaults[v.LoanID] = v
	return nil
}

func (r *vaultRepo) Delete(_ context.Context, v *escrowDomain.Vault) error {
	delete(r.st.vaults, v.LoanID)
	return nil
}

type walletRepo struct{ st *store }

func (r *walletRepo) CreateAccount(_ context.Context, a *walletDomain.Account) error {
	if _, ok := r.st.accounts[a.OwnerID]; ok {
		return walletDomain.ErrAccountExists
	}
	a.ID = r.st.nextID
	r.st.nextID++
	r.st.accounts[a.OwnerID] = a
	return nil
}

func (r *walletRepo) GetAccount(_ context.Context, ownerID string) (*walletDomain.Account, error) {
	a, ok := r.st.accounts[ownerID]
	if !ok {
		return nil, walletDomain.ErrAccountNotFound
	}
	return a, nil
}

func (r *walletRepo) GetAccountForUpdate(ctx context.Context, ownerID string) (*walletDomain.Account, error) {
	return r.GetAccount(ctx, ownerID)
}

func (r *walletRepo) Transfer(ctx context.Context, fromOwner, toOwner string, amount uint64) error {
	if amount == 0 || fromOwner == toOwner {
		return nil
	}
	from, err := r.GetAccount(ctx, fromOwner)
	if err != nil {
		return err
	}
	to, err := r.GetAccount(ctx, toOwner)
	if err != nil {
		return err
	}
	if from.Balance < amount {
		return walletDomain.ErrInsufficientBalance
	}
	if to.Balance > math.MaxUint64-amount {
		return walletDomain.ErrBalanceOverflow
	}
	from.Balance -= amount
	to.Balance += amount
	return nil
}

func (r *walletRepo) CreateCollateral(_ context.Context, c *walletDomain.Collateral) error {
	if _, ok := r.st.collaterals[c.CollateralID]; ok {
		return walletDomain.ErrCollateralExists
	}
	c.ID = r.st.nextID
	r.st.nextID++
	r.st.collaterals[c.CollateralID] = c
	return nil
}

func (r *walletRepo) GetCollateral(_ context.Context, collateralID string) (*walletDomain.Collateral, error) {
	c, ok := r.st.collaterals[collateralID]
	if !ok {
		return nil, walletDomain.ErrCollateralNotFound
	}
	return c, nil
}

func (r *walletRepo) SaveCollateral(_ context.Context, c *walletDomain.Collateral) error {
	r.st.collaterals[c.CollateralID] = c
	return nil
}

type custody struct{ st *store }

func (c *custody) Deposit(ctx context.Context, auth escrowDomain.Authority, v *escrowDomain.Vault, fromOwner string) error {
	if !auth.Grants(v) {
		return escrowDomain.ErrBadAuthority
	}
	if v.Held {
		return escrowDomain.ErrVaultOccupied
	}
	w := &walletRepo{st: c.st}
	col, err := w.GetCollateral(ctx, v.CollateralID)
	if err != nil {
		return err
	}
	if col.OwnerID != fromOwner {
		return escrowDomain.ErrWrongDepositor
	}
	col.OwnerID = v.VaultID
	v.Held = true
	return nil
}

func (c *custody) Release(ctx context.Context, auth escrowDomain.Authority, v *escrowDomain.Vault, toOwner string) error {
	if !auth.Grants(v) {
		return escrowDomain.ErrBadAuthority
	}
	if !v.Held {
		return escrowDomain.ErrVaultEmpty
	}
	w := &walletRepo{st: c.st}
	col, err := w.GetCollateral(ctx, v.CollateralID)
	if err != nil {
		return err
	}
	col.OwnerID = toOwner
	v.Held = false
	return nil
}
