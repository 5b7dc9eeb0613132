package utils

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret", time.Minute)

	token, err := GenerateJWTToken("user-123", "a@b.com")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("ParseJWTToken failed: %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "a@b.com" {
		t.Errorf("claims round trip mismatch: %+v", claims)
	}

	userID, err := GetUserIDFromToken(token)
	if err != nil || userID != "user-123" {
		t.Errorf("GetUserIDFromToken = %q, %v", userID, err)
	}
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret", time.Minute)

	if _, err := ParseJWTToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestExtractNameFromEmail(t *testing.T) {
	if got := ExtractNameFromEmail("jamie@example.com"); got != "jamie" {
		t.Errorf("expected jamie, got %q", got)
	}
	if got := ExtractNameFromEmail("noatsign"); got != "noatsign" {
		t.Errorf("expected passthrough, got %q", got)
	}
}
