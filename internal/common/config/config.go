package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"securebank/internal/common/constants"
	commonerrors "securebank/internal/common/errors"
)

type BankConfig struct {
	HTTPPort       string
	DataFile       string
	JWTSecret      string
	BcryptCost     int
	SessionTTL     time.Duration
	SaveTimeout    time.Duration
	RequestTimeout time.Duration
}

func LoadBankConfig() (BankConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return BankConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return BankConfig{}, err
	}

	return BankConfig{
		HTTPPort:       getEnv("BANK_HTTP_PORT", constants.DefaultBankHTTPPort),
		DataFile:       getEnv("BANK_DATA_FILE", constants.DefaultDataFile),
		JWTSecret:      jwtSecret,
		BcryptCost:     getIntEnv("BANK_BCRYPT_COST", constants.DefaultBcryptCost),
		SessionTTL:     getDurationEnv("BANK_SESSION_TTL", constants.DefaultSessionTTL),
		SaveTimeout:    getDurationEnv("BANK_SAVE_TIMEOUT", constants.DefaultSaveTimeout),
		RequestTimeout: getDurationEnv("BANK_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return commonerrors.ErrInvalidJWTSecret.WithCause(
			fmt.Errorf("got %d bytes", len(secret)))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
