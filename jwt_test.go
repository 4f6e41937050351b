package main

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestSignAndParseRoundtrip(t *testing.T) {
	tok, err := signToken(testSecret, "u-123", "a@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}

	claims, err := parseToken(testSecret, tok)
	if err != nil {
		t.Fatalf("parseToken: %v", err)
	}
	if claims.UserID != "u-123" || claims.Email != "a@example.com" || claims.Role != RoleAdmin {
		t.Errorf("claims mismatch: %+v", claims)
	}

	// 7-day expiry, give or take a minute
	exp := claims.ExpiresAt.Time
	want := time.Now().Add(sessionTTL)
	if exp.Before(want.Add(-time.Minute)) || exp.After(want.Add(time.Minute)) {
		t.Errorf("expiry = %v, want ~%v", exp, want)
	}
}

func TestParseTokenTamperedSignature(t *testing.T) {
	tok, err := signToken(testSecret, "u-123", "a@example.com", RoleUser)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	last := tok[len(tok)-1]
	flip := "A"
	if last == 'A' {
		flip = "B"
	}
	tampered := tok[:len(tok)-1] + flip

	if _, err := parseToken(testSecret, tampered); err == nil {
		t.Error("tampered token verified")
	}
}

func TestParseTokenExpired(t *testing.T) {
	claims := &Claims{
		UserID: "u-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := parseToken(testSecret, tok); err == nil {
		t.Error("expired token verified")
	}
}

func TestParseTokenMalformed(t *testing.T) {
	for _, in := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 500)} {
		if _, err := parseToken(testSecret, in); err == nil {
			t.Errorf("parseToken(%q) verified", in)
		}
	}
}

func TestParseTokenWrongKey(t *testing.T) {
	tok, err := signToken([]byte("other-secret"), "u-123", "a@example.com", RoleUser)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	if _, err := parseToken(testSecret, tok); err == nil {
		t.Error("token signed with a different key verified")
	}
}

func TestParseTokenRejectsNoneAlg(t *testing.T) {
	claims := &Claims{UserID: "u-123"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := parseToken(testSecret, tok); err == nil {
		t.Error("alg=none token verified")
	}
}
