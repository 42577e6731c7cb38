// internal/auth/session_test.go
package auth

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	if err := Init(time.Hour); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	token, err := CreateJWT("user-123", "premium")
	if err != nil {
		t.Fatalf("CreateJWT failed: %v", err)
	}

	claims, err := AuthenticateJWT(token)
	if err != nil {
		t.Fatalf("AuthenticateJWT failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("sub = %q, want user-123", claims.UserID)
	}
	if claims.Role != "premium" {
		t.Errorf("role = %q, want premium", claims.Role)
	}
}

func TestJWTTampered(t *testing.T) {
	if err := Init(time.Hour); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	token, _ := CreateJWT("user-123", "user")
	if _, err := AuthenticateJWT(token + "x"); err == nil {
		t.Fatal("tampered token must not verify")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := CreateHash("s3cret", Params)
	if err != nil {
		t.Fatalf("CreateHash failed: %v", err)
	}

	ok, err := ComparePasswordAndHash("s3cret", hash)
	if err != nil || !ok {
		t.Fatalf("correct password rejected: ok=%v err=%v", ok, err)
	}

	ok, err = ComparePasswordAndHash("wrong", hash)
	if err != nil {
		t.Fatalf("compare returned error: %v", err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}
}
