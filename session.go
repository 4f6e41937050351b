package main

import "net/http"

// CurrentUser is the authenticated context handed to handlers: the live user
// row, not the token payload.
type CurrentUser struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
	Name  *string `json:"name"`
}

// currentUser resolves the session cookie to a fresh user record.
// The re-fetch means role changes and deletions take effect on the next
// request even though the token itself can't be revoked before expiry.
// Returns nil for any failure: no cookie, bad token, or vanished user.
func currentUser(r *http.Request) *CurrentUser {
	c, err := r.Cookie(cfg.CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	claims, err := parseToken(cfg.AuthSecret, c.Value)
	if err != nil {
		return nil
	}

	var u CurrentUser
	err = DB.Model(&User{}).
		Select("id", "email", "role", "name").
		Where("id = ?", claims.UserID).
		First(&u).Error
	if err != nil {
		return nil
	}
	return &u
}

// requireUser resolves the caller or writes a 401. Every protected API
// handler goes through here; the page guard is only an early redirect, never
// the sole enforcement point.
func requireUser(w http.ResponseWriter, r *http.Request) *CurrentUser {
	u := currentUser(r)
	if u == nil {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
	}
	return u
}

// requireAdmin resolves the caller and enforces the ADMIN role.
func requireAdmin(w http.ResponseWriter, r *http.Request) *CurrentUser {
	u := currentUser(r)
	if u == nil {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return nil
	}
	if u.Role != RoleAdmin {
		errorJSON(w, http.StatusForbidden, "admin access required")
		return nil
	}
	return u
}
