package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/card-banking-system/internal/commons"
	"github.com/api-sage/card-banking-system/internal/domain"
)

func TestCardRepositoryCreateAndGet(t *testing.T) {
	repo := NewCardRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Card{
		AccountID: "000000042",
		Number:    "4000000000000425",
		PINHash:   "hash",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Balance != 0 {
		t.Errorf("new card balance = %d, want 0", created.Balance)
	}

	got, err := repo.GetByAccountID(ctx, "000000042")
	if err != nil {
		t.Fatalf("GetByAccountID returned error: %v", err)
	}
	if got.Number != created.Number {
		t.Errorf("Number = %q, want %q", got.Number, created.Number)
	}
}

func TestCardRepositoryCreateRejectsDuplicateID(t *testing.T) {
	repo := NewCardRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, domain.Card{AccountID: "000000042"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := repo.Create(ctx, domain.Card{AccountID: "000000042"}); !errors.Is(err, commons.ErrDuplicateAccountID) {
		t.Fatalf("Create duplicate error = %v, want ErrDuplicateAccountID", err)
	}
}

func TestCardRepositoryDeleteRemovesID(t *testing.T) {
	repo := NewCardRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, domain.Card{AccountID: "000000042"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := repo.Delete(ctx, "000000042"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := repo.GetByAccountID(ctx, "000000042"); !errors.Is(err, commons.ErrRecordNotFound) {
		t.Errorf("GetByAccountID after delete = %v, want ErrRecordNotFound", err)
	}

	ids, err := repo.ListAccountIDs(ctx)
	if err != nil {
		t.Fatalf("ListAccountIDs returned error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ListAccountIDs after delete = %v, want empty", ids)
	}

	if err := repo.Delete(ctx, "000000042"); !errors.Is(err, commons.ErrRecordNotFound) {
		t.Errorf("second Delete = %v, want ErrRecordNotFound", err)
	}
}

func TestTransferRepositoryPostTransfer(t *testing.T) {
	cards := NewCardRepository()
	transfers := NewTransferRepository(cards)
	ctx := context.Background()

	mustCreate(t, cards, "000000001", 100)
	mustCreate(t, cards, "000000002", 50)

	if err := transfers.PostTransfer(ctx, "000000001", "000000002", 30); err != nil {
		t.Fatalf("PostTransfer returned error: %v", err)
	}

	assertBalance(t, cards, "000000001", 70)
	assertBalance(t, cards, "000000002", 80)
}

func TestTransferRepositoryPostTransferInsufficient(t *testing.T) {
	cards := NewCardRepository()
	transfers := NewTransferRepository(cards)
	ctx := context.Background()

	mustCreate(t, cards, "000000001", 10)
	mustCreate(t, cards, "000000002", 0)

	err := transfers.PostTransfer(ctx, "000000001", "000000002", 20)
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("PostTransfer error = %v, want ErrInsufficientBalance", err)
	}

	assertBalance(t, cards, "000000001", 10)
	assertBalance(t, cards, "000000002", 0)
}

func TestTransferRepositoryPostTransferSelf(t *testing.T) {
	cards := NewCardRepository()
	transfers := NewTransferRepository(cards)
	ctx := context.Background()

	mustCreate(t, cards, "000000001", 100)

	if err := transfers.PostTransfer(ctx, "000000001", "000000001", 40); err != nil {
		t.Fatalf("PostTransfer returned error: %v", err)
	}
	assertBalance(t, cards, "000000001", 100)
}

func TestTransferRepositoryLedger(t *testing.T) {
	cards := NewCardRepository()
	transfers := NewTransferRepository(cards)
	ctx := context.Background()

	created, err := transfers.Create(ctx, domain.Transfer{
		ID:              "11111111-1111-1111-1111-111111111111",
		Reference:       "TRF-1",
		DebitAccountID:  "000000001",
		CreditAccountID: "000000002",
		Amount:          30,
		Status:          domain.TransferStatusSuccess,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ProcessedAt == nil {
		t.Error("Create left ProcessedAt nil")
	}

	got, err := transfers.GetByReference(ctx, "TRF-1")
	if err != nil {
		t.Fatalf("GetByReference returned error: %v", err)
	}
	if got.Amount != 30 || got.Status != domain.TransferStatusSuccess {
		t.Errorf("ledger row = %+v, want amount 30 status SUCCESS", got)
	}

	if _, err := transfers.GetByReference(ctx, "TRF-missing"); !errors.Is(err, commons.ErrRecordNotFound) {
		t.Errorf("GetByReference missing = %v, want ErrRecordNotFound", err)
	}
}

func mustCreate(t *testing.T, repo *CardRepository, accountID string, balance int64) {
	t.Helper()
	if _, err := repo.Create(context.Background(), domain.Card{AccountID: accountID, Balance: balance}); err != nil {
		t.Fatalf("create card %s: %v", accountID, err)
	}
}

func assertBalance(t *testing.T, repo *CardRepository, accountID string, want int64) {
	t.Helper()
	c, err := repo.GetByAccountID(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get card %s: %v", accountID, err)
	}
	if c.Balance != want {
		t.Errorf("balance of %s = %d, want %d", accountID, c.Balance, want)
	}
}
