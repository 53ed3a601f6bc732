// Package codec converts the account store to and from its durable JSON
// document. The layout is fixed for backward compatibility: top-level keys
// are usernames, each value an object with "password", "balance" and
// "transactions" [{type, amount, time}], time formatted as
// "2006-01-02 15:04:05".
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"securebank/internal/bank/domain"
)

const TimeLayout = "2006-01-02 15:04:05"

var ErrCorruptStore = errors.New("corrupt store document")

type persistTransaction struct {
	Type   string        `json:"type"`
	Amount domain.Amount `json:"amount"`
	Time   string        `json:"time"`
}

type persistAccount struct {
	Password     string               `json:"password"`
	Balance      domain.Amount        `json:"balance"`
	Transactions []persistTransaction `json:"transactions"`
}

// Encode produces a deterministic document: encoding/json sorts the
// username keys, and amounts always render with two decimal places.
func Encode(store *domain.Store) ([]byte, error) {
	doc := make(map[string]persistAccount, len(store.Accounts))

	for username, acct := range store.Accounts {
		txns := make([]persistTransaction, len(acct.Transactions))
		for i, txn := range acct.Transactions {
			txns[i] = persistTransaction{
				Type:   string(txn.Kind),
				Amount: txn.Amount,
				Time:   txn.Time.Format(TimeLayout),
			}
		}
		doc[username] = persistAccount{
			Password:     acct.PasswordHash,
			Balance:      acct.Balance,
			Transactions: txns,
		}
	}

	return json.MarshalIndent(doc, "", "    ")
}

// Decode parses a persisted document back into a store. Empty input yields
// an empty store; anything unparsable or violating the store invariants
// fails with ErrCorruptStore.
func Decode(data []byte) (*domain.Store, error) {
	store := domain.NewStore()

	if len(bytes.TrimSpace(data)) == 0 {
		return store, nil
	}

	var doc map[string]persistAccount
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	for username, pa := range doc {
		if username == "" {
			return nil, fmt.Errorf("%w: empty username key", ErrCorruptStore)
		}
		if pa.Balance.IsNegative() {
			return nil, fmt.Errorf("%w: negative balance for %q", ErrCorruptStore, username)
		}

		acct := &domain.Account{
			Username:     username,
			PasswordHash: pa.Password,
			Balance:      pa.Balance,
			Transactions: make([]domain.Transaction, 0, len(pa.Transactions)),
		}

		for i, pt := range pa.Transactions {
			kind := domain.TransactionKind(pt.Type)
			if kind != domain.KindDeposit && kind != domain.KindWithdraw {
				return nil, fmt.Errorf("%w: unknown transaction type %q for %q", ErrCorruptStore, pt.Type, username)
			}
			if !pt.Amount.IsPositive() {
				return nil, fmt.Errorf("%w: non-positive transaction amount at index %d for %q", ErrCorruptStore, i, username)
			}
			ts, err := time.ParseInLocation(TimeLayout, pt.Time, time.Local)
			if err != nil {
				return nil, fmt.Errorf("%w: bad timestamp %q for %q: %v", ErrCorruptStore, pt.Time, username, err)
			}
			acct.Transactions = append(acct.Transactions, domain.Transaction{
				Kind:   kind,
				Amount: pt.Amount,
				Time:   ts,
			})
		}

		store.Accounts[username] = acct
	}

	return store, nil
}
