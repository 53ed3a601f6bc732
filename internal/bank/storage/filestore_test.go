package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"securebank/internal/bank/domain"
	"securebank/internal/common/logger"

	"github.com/shopspring/decimal"
)

func newFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank_data.json")
	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return NewFileStore(path, 5*time.Second, log), path
}

func TestFileStore_LoadMissingFileCreatesEmptyStore(t *testing.T) {
	fileStore, path := newFileStore(t)

	store, err := fileStore.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(store.Accounts) != 0 {
		t.Errorf("expected empty store, got %d accounts", len(store.Accounts))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected backing file to exist after load: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected {} on disk, got %s", data)
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	fileStore, path := newFileStore(t)

	store := domain.NewStore()
	store.Accounts["alice"] = &domain.Account{
		Username:     "alice",
		PasswordHash: "hash",
		Balance:      domain.NewAmount(decimal.RequireFromString("60.00")),
		Transactions: []domain.Transaction{
			{
				Kind:   domain.KindDeposit,
				Amount: domain.NewAmount(decimal.RequireFromString("60.00")),
				Time:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local),
			},
		},
	}

	if err := fileStore.Save(context.Background(), store); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// The atomic replace must not leave its scratch files behind.
	leftovers, err := filepath.Glob(path + ".tmp*")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind after save: %v", leftovers)
	}

	loaded, err := fileStore.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	acct := loaded.Accounts["alice"]
	if acct == nil {
		t.Fatal("account alice missing after round trip")
	}
	if !acct.Balance.Equal(store.Accounts["alice"].Balance) {
		t.Errorf("balance %s after round trip, want %s", acct.Balance, store.Accounts["alice"].Balance)
	}
	if len(acct.Transactions) != 1 || acct.Transactions[0].Kind != domain.KindDeposit {
		t.Errorf("transactions did not survive round trip: %+v", acct.Transactions)
	}
}

func TestFileStore_SaveOverwritesPreviousDocument(t *testing.T) {
	fileStore, _ := newFileStore(t)

	store := domain.NewStore()
	store.Accounts["alice"] = &domain.Account{
		Username:     "alice",
		PasswordHash: "hash",
		Transactions: []domain.Transaction{},
	}
	if err := fileStore.Save(context.Background(), store); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	store.Accounts["bob"] = &domain.Account{
		Username:     "bob",
		PasswordHash: "hash2",
		Transactions: []domain.Transaction{},
	}
	if err := fileStore.Save(context.Background(), store); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := fileStore.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(loaded.Accounts))
	}
}

func TestFileStore_LoadCorruptFileDegradesToEmpty(t *testing.T) {
	fileStore, path := newFileStore(t)

	garbage := []byte(`{"alice": {"password":`)
	if err := os.WriteFile(path, garbage, 0o600); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	store, err := fileStore.Load()
	if err != nil {
		t.Fatalf("load of corrupt file must degrade, not fail: %v", err)
	}
	if len(store.Accounts) != 0 {
		t.Errorf("expected empty store after corruption, got %d accounts", len(store.Accounts))
	}

	preserved, err := os.ReadFile(path + ".corrupt")
	if err != nil {
		t.Fatalf("expected corrupt bytes preserved at %s.corrupt: %v", path, err)
	}
	if string(preserved) != string(garbage) {
		t.Error("quarantined copy does not match the original bytes")
	}
}

func TestFileStore_TimedOutSaveNeverLands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")
	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	seeded := domain.NewStore()
	seeded.Accounts["alice"] = &domain.Account{
		Username:     "alice",
		PasswordHash: "hash",
		Transactions: []domain.Transaction{},
	}
	if err := NewFileStore(path, 5*time.Second, log).Save(context.Background(), seeded); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	mutated := domain.NewStore()
	mutated.Accounts["alice"] = seeded.Accounts["alice"]
	mutated.Accounts["bob"] = &domain.Account{
		Username:     "bob",
		PasswordHash: "hash2",
		Transactions: []domain.Transaction{},
	}

	strict := NewFileStore(path, time.Nanosecond, log)
	err = strict.Save(context.Background(), mutated)
	if err == nil {
		// The write beat the deadline; the save committed and there is
		// nothing abandoned to verify.
		return
	}
	if !errors.Is(err, ErrSaveTimeout) {
		t.Fatalf("expected ErrSaveTimeout, got %v", err)
	}

	// Give the abandoned writer time to run; its rename must never
	// replace the canonical file after the save was reported failed.
	time.Sleep(200 * time.Millisecond)

	loaded, err := NewFileStore(path, 5*time.Second, log).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, ok := loaded.Accounts["bob"]; ok {
		t.Fatal("timed-out save landed on disk")
	}
	if _, ok := loaded.Accounts["alice"]; !ok {
		t.Fatal("canonical file lost the seeded account")
	}

	leftovers, err := filepath.Glob(path + ".tmp*")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("abandoned save left tmp files behind: %v", leftovers)
	}
}

func TestFileStore_LoadReadErrorFails(t *testing.T) {
	dir := t.TempDir()
	log, _ := logger.New("", "test", "error")

	// The path is a directory: not missing, not readable as a file.
	fileStore := NewFileStore(dir, 5*time.Second, log)
	if _, err := fileStore.Load(); err == nil {
		t.Fatal("expected load to fail when the path is unreadable")
	}
}
