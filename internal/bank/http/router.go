package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"securebank/internal/bank/codec"
	"securebank/internal/bank/domain"
	"securebank/internal/bank/service"
	"securebank/internal/common/config"
	commonhttp "securebank/internal/common/http"
	"securebank/internal/common/jwtverify"
	"securebank/internal/common/logger"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type amountRequest struct {
	Amount json.Number `json:"amount"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type balanceResponse struct {
	Balance domain.Amount `json:"balance"`
}

type transactionResponse struct {
	Type   string        `json:"type"`
	Amount domain.Amount `json:"amount"`
	Time   string        `json:"time"`
}

type transactionsResponse struct {
	Transactions []transactionResponse `json:"transactions"`
}

type Handler struct {
	ledger         *service.LedgerService
	errors         *commonhttp.ErrorHandler
	validate       *validator.Validate
	jwtSecret      []byte
	requestTimeout time.Duration
	log            *logger.Logger
}

func NewHandler(ledger *service.LedgerService, cfg config.BankConfig, log *logger.Logger) http.Handler {
	h := &Handler{
		ledger:         ledger,
		errors:         commonhttp.NewErrorHandler(log),
		validate:       validator.New(),
		jwtSecret:      []byte(cfg.JWTSecret),
		requestTimeout: cfg.RequestTimeout,
		log:            log,
	}

	authed := jwtverify.Middleware(cfg.JWTSecret, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/api/bank/register", h.register)
	mux.HandleFunc("/api/bank/login", h.login)
	mux.Handle("/api/bank/logout", authed(http.HandlerFunc(h.logout)))
	mux.Handle("/api/bank/deposit", authed(http.HandlerFunc(h.deposit)))
	mux.Handle("/api/bank/withdraw", authed(http.HandlerFunc(h.withdraw)))
	mux.Handle("/api/bank/balance", authed(http.HandlerFunc(h.balance)))
	mux.Handle("/api/bank/transactions", authed(http.HandlerFunc(h.transactions)))
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.errors.HandleError(w, r, service.ErrInvalidInput)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if err := h.ledger.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	}); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.errors.HandleError(w, r, service.ErrInvalidInput)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	sess, err := h.ledger.Login(ctx, service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	token, err := jwtverify.IssueToken(sess.ID, sess.Username, time.Now(), sess.ExpiresAt, h.jwtSecret)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, service.ErrInvalidSession)
		return
	}

	h.ledger.Logout(r.Context(), claims.SessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	h.mutateBalance(w, r, h.ledger.Deposit)
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	h.mutateBalance(w, r, h.ledger.Withdraw)
}

func (h *Handler) mutateBalance(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, sessionID string, amount domain.Amount) (domain.Amount, error),
) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, service.ErrInvalidSession)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleError(w, r, service.ErrInvalidAmount)
		return
	}

	amount, err := domain.ParseAmount(req.Amount.String())
	if err != nil {
		h.errors.HandleError(w, r, service.ErrInvalidAmount)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	balance, err := op(ctx, claims.SessionID, amount)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, service.ErrInvalidSession)
		return
	}

	balance, err := h.ledger.Balance(r.Context(), claims.SessionID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, service.ErrInvalidSession)
		return
	}

	txns, err := h.ledger.Transactions(r.Context(), claims.SessionID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	out := transactionsResponse{Transactions: make([]transactionResponse, len(txns))}
	for i, txn := range txns {
		out.Transactions[i] = transactionResponse{
			Type:   string(txn.Kind),
			Amount: txn.Amount,
			Time:   txn.Time.Format(codec.TimeLayout),
		}
	}

	commonhttp.WriteJSON(w, http.StatusOK, out)
}
