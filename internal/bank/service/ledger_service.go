package service

import (
	"context"
	"sync"
	"time"

	"securebank/internal/bank/domain"
	"securebank/internal/common/clock"
	commoncrypto "securebank/internal/common/crypto"
	commonerrors "securebank/internal/common/errors"
	"securebank/internal/common/logger"
	"securebank/internal/observability/metrics"
)

// Persister flushes the full store to durable storage.
type Persister interface {
	Save(ctx context.Context, store *domain.Store) error
}

// LedgerService is the transactional core: every account-mutating
// operation funnels through here. A single RWMutex over the whole store
// serializes read-modify-write-persist as one atomic unit, so two
// concurrent withdrawals can never both observe a stale balance.
type LedgerService struct {
	mu        sync.RWMutex
	store     *domain.Store
	persister Persister
	hasher    commoncrypto.PasswordHasher
	sessions  *SessionManager
	clock     clock.Clock
	log       *logger.Logger
}

type LedgerServiceDeps struct {
	Store     *domain.Store
	Persister Persister
	Hasher    commoncrypto.PasswordHasher
	Sessions  *SessionManager
	Clock     clock.Clock
	Log       *logger.Logger
}

func NewLedgerService(deps LedgerServiceDeps) *LedgerService {
	store := deps.Store
	if store == nil {
		store = domain.NewStore()
	}
	return &LedgerService{
		store:     store,
		persister: deps.Persister,
		hasher:    deps.Hasher,
		sessions:  deps.Sessions,
		clock:     deps.Clock,
		log:       deps.Log,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

// Register creates an account with a zero balance and an empty ledger.
// The updated store is persisted before success is reported; if the save
// fails the account is rolled back in memory, so callers are never told of
// an account that did not durably land.
func (s *LedgerService) Register(ctx context.Context, input RegisterInput) error {
	username, password, err := normalizeCredentials(input.Username, input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return commonerrors.ErrInternalError.WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.store.Accounts[username]; exists {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_user_exists",
		}).Warn("register failed: already exists")
		return ErrUserExists
	}

	s.store.Accounts[username] = &domain.Account{
		Username:     username,
		PasswordHash: hash,
		Transactions: []domain.Transaction{},
	}

	if err := s.persist(ctx); err != nil {
		delete(s.store.Accounts, username)
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_persist_failed",
		}).Errorf("register rolled back: %v", err)
		return ErrPersistenceFailed.WithCause(err)
	}

	incrementRegistrations()
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "register_success",
	}).Info("register success")

	return nil
}

// Login verifies credentials and opens a session. Read-only: nothing is
// persisted.
func (s *LedgerService) Login(ctx context.Context, input LoginInput) (Session, error) {
	username, password, err := normalizeCredentials(input.Username, input.Password)
	if err != nil {
		return Session{}, err
	}

	s.mu.RLock()
	acct, ok := s.store.Accounts[username]
	var hash string
	if ok {
		hash = acct.PasswordHash
	}
	s.mu.RUnlock()

	if !ok {
		incrementLogins("unknown_user")
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_user_not_found",
		}).Warn("login failed: not found")
		return Session{}, ErrUnknownUser
	}

	if !s.hasher.Verify(hash, password) {
		incrementLogins("bad_credentials")
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		return Session{}, ErrBadCredentials
	}

	sess, err := s.sessions.Create(username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_session_failed",
		}).Errorf("login failed: session error: %v", err)
		return Session{}, commonerrors.ErrInternalError.WithCause(err)
	}

	incrementLogins("success")
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "login_success",
	}).Info("login success")

	return sess, nil
}

// Logout closes the session. Pure in-memory and idempotent.
func (s *LedgerService) Logout(ctx context.Context, sessionID string) {
	if s.sessions.Remove(sessionID) {
		incrementLogouts()
		s.log.WithFields(ctx, logger.Fields{
			"action": "logout_success",
		}).Info("logout success")
	}
}

// Deposit adds amount to the session's account, appends a ledger entry and
// persists. All-or-nothing: a deposit that is not durable is rolled back
// and never visible to subsequent reads.
func (s *LedgerService) Deposit(ctx context.Context, sessionID string, amount domain.Amount) (domain.Amount, error) {
	sess, ok := s.sessions.Resolve(sessionID)
	if !ok {
		return domain.Amount{}, ErrInvalidSession
	}

	if err := checkAmount(amount); err != nil {
		return domain.Amount{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.store.Accounts[sess.Username]
	if !ok {
		return domain.Amount{}, ErrUnknownUser
	}

	prevBalance := acct.Balance
	acct.Balance = acct.Balance.Add(amount)
	acct.Transactions = append(acct.Transactions, domain.Transaction{
		Kind:   domain.KindDeposit,
		Amount: amount,
		Time:   s.clock.Now().Truncate(time.Second),
	})

	if err := s.persist(ctx); err != nil {
		acct.Balance = prevBalance
		acct.Transactions = acct.Transactions[:len(acct.Transactions)-1]
		s.log.WithFields(ctx, logger.Fields{
			"username": sess.Username,
			"action":   "deposit_persist_failed",
		}).Errorf("deposit rolled back: %v", err)
		return domain.Amount{}, ErrPersistenceFailed.WithCause(err)
	}

	incrementDeposits()
	s.log.WithFields(ctx, logger.Fields{
		"username": sess.Username,
		"amount":   amount,
		"action":   "deposit_success",
	}).Info("deposit success")

	return acct.Balance, nil
}

// Withdraw removes amount from the session's account. The balance check
// happens before any mutation, so a failed withdrawal leaves no trace.
func (s *LedgerService) Withdraw(ctx context.Context, sessionID string, amount domain.Amount) (domain.Amount, error) {
	sess, ok := s.sessions.Resolve(sessionID)
	if !ok {
		return domain.Amount{}, ErrInvalidSession
	}

	if err := checkAmount(amount); err != nil {
		return domain.Amount{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.store.Accounts[sess.Username]
	if !ok {
		return domain.Amount{}, ErrUnknownUser
	}

	if amount.GreaterThan(acct.Balance) {
		incrementInsufficientFunds()
		s.log.WithFields(ctx, logger.Fields{
			"username": sess.Username,
			"amount":   amount,
			"action":   "withdraw_insufficient_funds",
		}).Warn("withdraw failed: insufficient funds")
		return domain.Amount{}, ErrInsufficientFunds
	}

	prevBalance := acct.Balance
	acct.Balance = acct.Balance.Sub(amount)
	acct.Transactions = append(acct.Transactions, domain.Transaction{
		Kind:   domain.KindWithdraw,
		Amount: amount,
		Time:   s.clock.Now().Truncate(time.Second),
	})

	if err := s.persist(ctx); err != nil {
		acct.Balance = prevBalance
		acct.Transactions = acct.Transactions[:len(acct.Transactions)-1]
		s.log.WithFields(ctx, logger.Fields{
			"username": sess.Username,
			"action":   "withdraw_persist_failed",
		}).Errorf("withdraw rolled back: %v", err)
		return domain.Amount{}, ErrPersistenceFailed.WithCause(err)
	}

	incrementWithdrawals()
	s.log.WithFields(ctx, logger.Fields{
		"username": sess.Username,
		"amount":   amount,
		"action":   "withdraw_success",
	}).Info("withdraw success")

	return acct.Balance, nil
}

// Balance returns the current balance. Pure read.
func (s *LedgerService) Balance(ctx context.Context, sessionID string) (domain.Amount, error) {
	sess, ok := s.sessions.Resolve(sessionID)
	if !ok {
		return domain.Amount{}, ErrInvalidSession
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.store.Accounts[sess.Username]
	if !ok {
		return domain.Amount{}, ErrUnknownUser
	}
	return acct.Balance, nil
}

// Transactions returns the account's ledger in insertion order as a
// snapshot copy, so in-flight mutations are never partially visible.
func (s *LedgerService) Transactions(ctx context.Context, sessionID string) ([]domain.Transaction, error) {
	sess, ok := s.sessions.Resolve(sessionID)
	if !ok {
		return nil, ErrInvalidSession
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.store.Accounts[sess.Username]
	if !ok {
		return nil, ErrUnknownUser
	}

	out := make([]domain.Transaction, len(acct.Transactions))
	copy(out, acct.Transactions)
	return out, nil
}

func (s *LedgerService) persist(ctx context.Context) error {
	start := time.Now()
	err := s.persister.Save(ctx, s.store)
	metrics.StoreSaveDurationSeconds.Observe(time.Since(start).Seconds())
	return err
}

func checkAmount(amount domain.Amount) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.FitsPrecision() {
		return ErrInvalidAmount
	}
	return nil
}
