package service

import (
	"fmt"
	"strings"

	"securebank/internal/common/constants"
)

// normalizeCredentials trims surrounding whitespace from both values and
// rejects empties. Length caps guard the store key and bcrypt's 72-byte
// input limit.
func normalizeCredentials(username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return "", "", ErrInvalidInput
	}

	if len(username) > constants.UsernameMaxLength {
		return "", "", ErrInvalidInput.WithCause(
			fmt.Errorf("username exceeds %d bytes", constants.UsernameMaxLength))
	}

	if len(password) > constants.PasswordMaxLength {
		return "", "", ErrInvalidInput.WithCause(
			fmt.Errorf("password exceeds %d bytes", constants.PasswordMaxLength))
	}

	return username, password, nil
}
