package service

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeCredentials(t *testing.T) {
	testCases := []struct {
		name         string
		username     string
		password     string
		wantUsername string
		wantPassword string
		wantErr      bool
	}{
		{"plain", "alice", "pw1", "alice", "pw1", false},
		{"trims whitespace", "  alice ", "\tpw1\n", "alice", "pw1", false},
		{"empty username", "", "pw1", "", "", true},
		{"whitespace-only username", "   ", "pw1", "", "", true},
		{"empty password", "alice", "", "", "", true},
		{"whitespace-only password", "alice", " \t ", "", "", true},
		{"username too long", strings.Repeat("a", 65), "pw1", "", "", true},
		{"username at cap", strings.Repeat("a", 64), "pw1", strings.Repeat("a", 64), "pw1", false},
		{"password too long", "alice", strings.Repeat("p", 73), "", "", true},
		{"password at cap", "alice", strings.Repeat("p", 72), "alice", strings.Repeat("p", 72), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			username, password, err := normalizeCredentials(tc.username, tc.password)

			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if username != tc.wantUsername || password != tc.wantPassword {
				t.Errorf("got (%q, %q), want (%q, %q)", username, password, tc.wantUsername, tc.wantPassword)
			}
		})
	}
}
