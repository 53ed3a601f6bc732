package constants

import "time"

const (
	UsernameMaxLength  = 64
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32

	DefaultBcryptCost = 12

	DefaultDataFile = "bank_data.json"

	DefaultSessionTTL      = 30 * time.Minute
	SessionCleanupInterval = 1 * time.Minute

	DefaultSaveTimeout    = 10 * time.Second
	DefaultRequestTimeout = 5 * time.Second

	DefaultMaxRequestSize = 1 << 20

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultBankHTTPPort = "8080"

	RateLimitLoginRequestsPerSecond    = 1
	RateLimitLoginBurst                = 5
	RateLimitRegisterRequestsPerSecond = 0.5
	RateLimitRegisterBurst             = 3
	RateLimitGeneralRequestsPerSecond  = 10
	RateLimitGeneralBurst              = 20
	RateLimitCleanupInterval           = 5 * time.Minute

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
