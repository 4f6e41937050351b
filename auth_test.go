package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cfg.CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSetSessionCookieAttributes(t *testing.T) {
	cfg = testConfig()

	rec := httptest.NewRecorder()
	setSessionCookie(rec, "tok-value")
	c := sessionCookieFrom(t, rec)

	if c.Value != "tok-value" {
		t.Errorf("value = %q", c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if c.Path != "/" {
		t.Errorf("path = %q, want /", c.Path)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("samesite = %v, want Lax", c.SameSite)
	}
	if want := int(sessionTTL.Seconds()); c.MaxAge != want {
		t.Errorf("max-age = %d, want %d", c.MaxAge, want)
	}
}

func TestClearSessionCookieExpires(t *testing.T) {
	cfg = testConfig()

	rec := httptest.NewRecorder()
	clearSessionCookie(rec)
	c := sessionCookieFrom(t, rec)

	if c.Value != "" {
		t.Errorf("value = %q, want empty", c.Value)
	}
	if c.MaxAge >= 0 {
		t.Errorf("max-age = %d, want negative", c.MaxAge)
	}
}

func TestSecureCookieFollowsConfig(t *testing.T) {
	cfg = testConfig()
	cfg.CookieSecure = true

	rec := httptest.NewRecorder()
	setSessionCookie(rec, "tok")
	if c := sessionCookieFrom(t, rec); !c.Secure {
		t.Error("cookie should be Secure when configured")
	}
}
