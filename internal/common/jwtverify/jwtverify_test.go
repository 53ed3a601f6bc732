package jwtverify

import (
	"testing"
	"time"
)

var testSecret = []byte("unit-test-secret-0123456789abcdef")

func TestIssueAndParseToken(t *testing.T) {
	now := time.Now()

	token, err := IssueToken("session-1", "alice", now, now.Add(time.Hour), testSecret)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("session ID %q, want session-1", claims.SessionID)
	}
	if claims.Username != "alice" {
		t.Errorf("username %q, want alice", claims.Username)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	now := time.Now()

	token, err := IssueToken("session-1", "alice", now, now.Add(time.Hour), testSecret)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := ParseToken(token, []byte("another-secret-0123456789abcdef01")); err == nil {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)

	token, err := IssueToken("session-1", "alice", issued, issued.Add(time.Hour), testSecret)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := ParseToken(token, testSecret); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	for _, token := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := ParseToken(token, testSecret); err == nil {
			t.Errorf("expected parse of %q to fail", token)
		}
	}
}
