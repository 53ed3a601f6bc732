package codec

import (
	"errors"
	"strings"
	"testing"
	"time"

	"securebank/internal/bank/domain"
)

func amount(t *testing.T, s string) domain.Amount {
	t.Helper()
	a, err := domain.ParseAmount(s)
	if err != nil {
		t.Fatalf("failed to parse amount %q: %v", s, err)
	}
	return a
}

func sampleStore(t *testing.T) *domain.Store {
	t.Helper()
	store := domain.NewStore()
	store.Accounts["alice"] = &domain.Account{
		Username:     "alice",
		PasswordHash: "$2a$12$abcdefghijklmnopqrstuv",
		Balance:      amount(t, "60.00"),
		Transactions: []domain.Transaction{
			{Kind: domain.KindDeposit, Amount: amount(t, "100.00"), Time: time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)},
			{Kind: domain.KindWithdraw, Amount: amount(t, "40.00"), Time: time.Date(2024, 1, 1, 12, 5, 30, 0, time.Local)},
		},
	}
	store.Accounts["bob"] = &domain.Account{
		Username:     "bob",
		PasswordHash: "$2a$12$vutsrqponmlkjihgfedcba",
		Balance:      domain.Amount{},
		Transactions: []domain.Transaction{},
	}
	return store
}

func assertStoresEqual(t *testing.T, got, want *domain.Store) {
	t.Helper()

	if len(got.Accounts) != len(want.Accounts) {
		t.Fatalf("account count mismatch: got %d, want %d", len(got.Accounts), len(want.Accounts))
	}

	for username, wantAcct := range want.Accounts {
		gotAcct, ok := got.Accounts[username]
		if !ok {
			t.Fatalf("missing account %q", username)
		}
		if gotAcct.PasswordHash != wantAcct.PasswordHash {
			t.Errorf("%s: password hash mismatch", username)
		}
		if !gotAcct.Balance.Equal(wantAcct.Balance) {
			t.Errorf("%s: balance %s, want %s", username, gotAcct.Balance, wantAcct.Balance)
		}
		if len(gotAcct.Transactions) != len(wantAcct.Transactions) {
			t.Fatalf("%s: transaction count %d, want %d", username, len(gotAcct.Transactions), len(wantAcct.Transactions))
		}
		for i := range wantAcct.Transactions {
			gotTxn, wantTxn := gotAcct.Transactions[i], wantAcct.Transactions[i]
			if gotTxn.Kind != wantTxn.Kind {
				t.Errorf("%s[%d]: kind %q, want %q", username, i, gotTxn.Kind, wantTxn.Kind)
			}
			if !gotTxn.Amount.Equal(wantTxn.Amount) {
				t.Errorf("%s[%d]: amount %s, want %s", username, i, gotTxn.Amount, wantTxn.Amount)
			}
			if !gotTxn.Time.Equal(wantTxn.Time) {
				t.Errorf("%s[%d]: time %v, want %v", username, i, gotTxn.Time, wantTxn.Time)
			}
		}
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	want := sampleStore(t)

	data, err := Encode(want)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	assertStoresEqual(t, got, want)
}

func TestCodec_RoundTripEmpty(t *testing.T) {
	data, err := Encode(domain.NewStore())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("empty store should encode as {}, got %s", data)
	}

	store, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(store.Accounts) != 0 {
		t.Errorf("expected empty store, got %d accounts", len(store.Accounts))
	}
}

func TestCodec_EncodeLayout(t *testing.T) {
	data, err := Encode(sampleStore(t))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	doc := string(data)
	for _, fragment := range []string{
		`"alice"`,
		`"bob"`,
		`"password"`,
		`"balance": 60.00`,
		`"type": "Deposit"`,
		`"type": "Withdraw"`,
		`"amount": 100.00`,
		`"time": "2024-01-01 12:00:00"`,
	} {
		if !strings.Contains(doc, fragment) {
			t.Errorf("document missing %s:\n%s", fragment, doc)
		}
	}

	// Keys are sorted, so the document is byte-stable across saves.
	again, err := Encode(sampleStore(t))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if doc != string(again) {
		t.Error("encoding the same store twice produced different documents")
	}
}

func TestCodec_DecodeEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		store, err := Decode([]byte(input))
		if err != nil {
			t.Fatalf("decode of %q failed: %v", input, err)
		}
		if len(store.Accounts) != 0 {
			t.Errorf("decode of %q: expected empty store", input)
		}
	}
}

func TestCodec_DecodeLegacyDocument(t *testing.T) {
	// Documents written before fixed-point amounts carry floats like 100.0
	// and unpadded decimals; those still load.
	doc := `{
    "alice": {
        "password": "hash",
        "balance": 60.5,
        "transactions": [
            {"type": "Deposit", "amount": 100.0, "time": "2024-01-01 12:00:00"},
            {"type": "Withdraw", "amount": 39.5, "time": "2024-01-02 09:30:15"}
        ]
    }
}`

	store, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	acct := store.Accounts["alice"]
	if acct == nil {
		t.Fatal("missing account alice")
	}
	if !acct.Balance.Equal(amount(t, "60.50")) {
		t.Errorf("balance %s, want 60.50", acct.Balance)
	}
	if len(acct.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(acct.Transactions))
	}
	if !acct.Transactions[1].Amount.Equal(amount(t, "39.50")) {
		t.Errorf("second amount %s, want 39.50", acct.Transactions[1].Amount)
	}
}

func TestCodec_DecodeCorrupt(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"not json", `{"alice": `},
		{"wrong top-level shape", `["alice"]`},
		{"empty username key", `{"": {"password": "h", "balance": 0, "transactions": []}}`},
		{"negative balance", `{"alice": {"password": "h", "balance": -5.00, "transactions": []}}`},
		{
			"unknown transaction type",
			`{"alice": {"password": "h", "balance": 10.00, "transactions": [{"type": "Transfer", "amount": 10.00, "time": "2024-01-01 12:00:00"}]}}`,
		},
		{
			"zero transaction amount",
			`{"alice": {"password": "h", "balance": 10.00, "transactions": [{"type": "Deposit", "amount": 0, "time": "2024-01-01 12:00:00"}]}}`,
		},
		{
			"bad timestamp",
			`{"alice": {"password": "h", "balance": 10.00, "transactions": [{"type": "Deposit", "amount": 10.00, "time": "yesterday"}]}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc))
			if !errors.Is(err, ErrCorruptStore) {
				t.Fatalf("expected ErrCorruptStore, got %v", err)
			}
		})
	}
}
