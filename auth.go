package main

import (
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

/* --------- Helpers (cookie) --------- */

func setSessionCookie(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		HttpOnly: true,
		SameSite: cfg.CookieSameSite,
		Secure:   cfg.CookieSecure,
		MaxAge:   int(sessionTTL.Seconds()),
	}
	http.SetCookie(w, c)
}

func clearSessionCookie(w http.ResponseWriter) {
	c := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.CookieDomain,
		HttpOnly: true,
		SameSite: cfg.CookieSameSite,
		Secure:   cfg.CookieSecure,
		MaxAge:   -1,
	}
	http.SetCookie(w, c)
}

/* --------- DTOs --------- */

type authReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"` // optional, register only
}

/* --------- Handlers --------- */

// POST /api/auth/register
// The first user ever registered becomes ADMIN; everyone after is USER.
func handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	var in authReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		errorJSON(w, http.StatusBadRequest, "email and password required")
		return
	}

	var count int64
	if err := DB.Model(&User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if count > 0 {
		errorJSON(w, http.StatusBadRequest, "email already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "hash error")
		return
	}

	// Count-then-create: two simultaneous first registrations could both see
	// zero rows and both get ADMIN. Accepted; registration volume is tiny.
	var total int64
	if err := DB.Model(&User{}).Count(&total).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	role := RoleUser
	if total == 0 {
		role = RoleAdmin
	}

	u := User{
		ID:           newID(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = &name
	}
	if err := DB.Create(&u).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	log.Printf("[auth] registered %s role=%s", u.Email, u.Role)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "registration successful"})
}

// POST /api/auth/login
func handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var in authReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		errorJSON(w, http.StatusBadRequest, "email and password required")
		return
	}

	var u User
	err := DB.Where("email = ?", in.Email).First(&u).Error
	if err != nil {
		// Same message for unknown email and wrong password.
		errorJSON(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		errorJSON(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	tok, err := signToken(cfg.AuthSecret, u.ID, u.Email, u.Role)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "token error")
		return
	}
	setSessionCookie(w, tok)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    map[string]any{"id": u.ID, "email": u.Email, "role": u.Role},
	})
}

// POST /api/auth/logout
func handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// GET /api/auth/me
func handleAuthMe(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if u == nil {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
