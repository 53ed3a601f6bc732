package domain

import "time"

type TransactionKind string

const (
	KindDeposit  TransactionKind = "Deposit"
	KindWithdraw TransactionKind = "Withdraw"
)

// Transaction is one entry of an account's append-only ledger. Time is
// recorded with second granularity at the moment the mutation commits.
type Transaction struct {
	Kind   TransactionKind
	Amount Amount
	Time   time.Time
}

// Account holds a user's credential and balance record. Username is the
// store key and immutable after registration; PasswordHash never holds
// plaintext.
type Account struct {
	Username     string
	PasswordHash string
	Balance      Amount
	Transactions []Transaction
}

func (a *Account) Clone() *Account {
	cp := *a
	cp.Transactions = make([]Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return &cp
}

// Store is the full collection of accounts, the unit of persistence.
type Store struct {
	Accounts map[string]*Account
}

func NewStore() *Store {
	return &Store{Accounts: make(map[string]*Account)}
}
