package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "credentia/internal/domain/loan"
	"credentia/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type loanSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	LoanID          string    `gorm:"size:32;column:loan_id;uniqueIndex"`
	PlatformID      string    `gorm:"size:32;column:platform_id"`
	BorrowerID      string    `gorm:"size:32;column:borrower_id"`
	CollateralID    string    `gorm:"size:32;column:collateral_id"`
	LoanAmount      uint64    `gorm:"column:loan_amount"`
	DurationSecs    uint32    `gorm:"column:duration_secs"`
	InterestRateBps uint16    `gorm:"column:interest_rate_bps"`
	Status          string    `gorm:"type:text;column:status"` // ← no enum
	LenderID        *string   `gorm:"size:32;column:lender_id"`
	StartTime       *int64    `gorm:"column:start_time"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas. TranslateError keeps the duplicate-key mapping the
// production config relies on.
func openTestDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, borrowerID string) *domain.Loan {
	return &domain.Loan{
		LoanID:          loanID,
		PlatformID:      id.NewID32(),
		BorrowerID:      borrowerID,
		CollateralID:    id.NewID32(),
		LoanAmount:      1_000_000,
		DurationSecs:    3600,
		InterestRateBps: 1000,
		Status:          domain.StatusRequested,
	}
}

func TestLoanCreateAndGetByLoanID(t *testing.T) {
	db := openTestDB(t, &loanSQLite{})
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	borrower := id.NewID32()

	l := makeLoan(loanID, borrower)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.BorrowerID != borrower {
		t.Errorf("unexpected loan: %+v", got)
	}
	if got.LenderID != nil || got.StartTime != nil {
		t.Errorf("fresh loan must be unfunded: %+v", got)
	}
}

func TestLoanSavePersistsFunding(t *testing.T) {
	db := openTestDB(t, &loanSQLite{})
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, id.NewID32())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	lender := id.NewID32()
	if err := l.MarkFunded(lender, 1_700_000_000); err != nil {
		t.Fatalf("MarkFunded: %v", err)
	}
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	f, funded := got.Funding()
	if !funded || f.LenderID != lender || f.StartTime != 1_700_000_000 {
		t.Errorf("funding not persisted: %+v", got)
	}
	if got.Status != domain.StatusFunded {
		t.Errorf("status = %s, want funded", got.Status)
	}
}

func TestLoanDeleteRemovesRow(t *testing.T) {
	db := openTestDB(t, &loanSQLite{})
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, id.NewID32())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, l); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByLoanID(ctx, loanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err after delete = %v, want record not found", err)
	}
}

func TestLoanGetByLoanID_NotFound(t *testing.T) {
	db := openTestDB(t, &loanSQLite{})
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanID(context.Background(), id.NewID32())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want record not found", err)
	}
}

func TestLoanGetForUpdateOnSQLite(t *testing.T) {
	db := openTestDB(t, &loanSQLite{})
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	if err := repo.Create(ctx, makeLoan(loanID, id.NewID32())); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// sqlite has no FOR UPDATE; the locking clause must be skipped
	got, err := repo.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanIDForUpdate: %v", err)
	}
	if got.LoanID != loanID {
		t.Errorf("unexpected loan: %+v", got)
	}
}
