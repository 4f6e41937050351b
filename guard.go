package main

import (
	"net/http"
	"net/url"
	"strings"
)

type pathClass int

const (
	pathOther pathClass = iota
	pathPublic
	pathUser
	pathAdmin
	pathSkipped // static assets and /api routes; API handlers check themselves
)

// classifyPath mirrors the page-route matrix: public (/, /login, /register),
// user-protected (/app*), admin-protected (/admin*). Dotted paths are static
// assets.
func classifyPath(p string) pathClass {
	if strings.HasPrefix(p, "/api") || strings.Contains(p, ".") {
		return pathSkipped
	}
	switch p {
	case "/", "/login", "/register":
		return pathPublic
	}
	if p == "/app" || strings.HasPrefix(p, "/app/") {
		return pathUser
	}
	if p == "/admin" || strings.HasPrefix(p, "/admin/") {
		return pathAdmin
	}
	return pathOther
}

// pageGuard redirects unauthenticated or under-privileged page requests.
// It trusts the token's role claim only for choosing a redirect target; API
// handlers re-resolve the session against the database on every call.
func pageGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		class := classifyPath(r.URL.Path)
		if class == pathSkipped || class == pathOther {
			next.ServeHTTP(w, r)
			return
		}

		var claims *Claims
		if c, err := r.Cookie(cfg.CookieName); err == nil && c.Value != "" {
			claims, _ = parseToken(cfg.AuthSecret, c.Value)
		}

		switch class {
		case pathUser, pathAdmin:
			if claims == nil {
				redirectToLogin(w, r)
				return
			}
			if class == pathAdmin && claims.Role != RoleAdmin {
				http.Redirect(w, r, "/app", http.StatusFound)
				return
			}
		case pathPublic:
			// A signed-in user landing on /login or /register goes straight
			// to their dashboard instead of looping through the form.
			if claims != nil && r.URL.Path != "/" {
				target := "/app"
				if claims.Role == RoleAdmin {
					target = "/admin"
				}
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("redirect", r.URL.Path)
	http.Redirect(w, r, "/login?"+q.Encode(), http.StatusFound)
}
