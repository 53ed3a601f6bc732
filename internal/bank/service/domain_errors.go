package service

import (
	"net/http"

	commonerrors "securebank/internal/common/errors"
)

var (
	ErrInvalidInput = commonerrors.NewDomainError(
		"INVALID_INPUT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username and password must not be empty",
	)

	ErrUserExists = commonerrors.NewDomainError(
		"USER_EXISTS",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"user already exists",
	)

	ErrUnknownUser = commonerrors.NewDomainError(
		"UNKNOWN_USER",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"user does not exist",
	)

	ErrBadCredentials = commonerrors.NewDomainError(
		"BAD_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"incorrect password",
	)

	ErrInvalidAmount = commonerrors.NewDomainError(
		"INVALID_AMOUNT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"amount must be positive with at most two decimal places",
	)

	ErrInsufficientFunds = commonerrors.NewDomainError(
		"INSUFFICIENT_FUNDS",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"insufficient funds",
	)

	ErrInvalidSession = commonerrors.NewDomainError(
		"INVALID_SESSION",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"session is invalid or expired",
	)

	ErrPersistenceFailed = commonerrors.NewDomainError(
		"PERSISTENCE_FAILED",
		commonerrors.CategoryStorage,
		http.StatusInternalServerError,
		"failed to persist store, last operation is not durable",
	)
)
