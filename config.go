package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, loaded once in main and never
// read from the environment at call time.
type Config struct {
	Port        string
	DatabaseURL string
	AuthSecret  []byte

	CookieName     string
	CookieSecure   bool
	CookieDomain   string
	CookieSameSite http.SameSite

	CORSOrigin string

	// Outbound workflow webhooks. The four N8N URLs are env defaults; the
	// Settings store can override them (see webhookURL in settings.go).
	EtsyScraperWebhookURL string // inbound /api/webhook forwards here, env only
	EtsyWebhookURL        string
	DesignWebhookURL      string
	MockupWebhookURL      string
	SeoWebhookURL         string
}

// cfg is set once by main before the server starts; tests assign it directly.
var cfg Config

func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			log.Println("[env] loaded", p)
			return
		}
	}
}

// loadConfig reads the environment into a Config. A missing AUTH_SECRET is a
// startup misconfiguration, not something to paper over with a fallback key.
func loadConfig() Config {
	secret := strings.TrimSpace(os.Getenv("AUTH_SECRET"))
	if secret == "" {
		log.Fatal("[config] AUTH_SECRET is not set. Refusing to start.")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("[config] DATABASE_URL is not set. Refusing to start.")
	}

	return Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: dsn,
		AuthSecret:  []byte(secret),

		CookieName:     getenv("COOKIE_NAME", "mespod_session"),
		CookieSecure:   os.Getenv("COOKIE_SECURE") != "false",
		CookieDomain:   os.Getenv("COOKIE_DOMAIN"),
		CookieSameSite: sameSiteFromEnv(os.Getenv("COOKIE_SAMESITE")),

		CORSOrigin: getenv("CORS_ORIGIN", "http://localhost:3000"),

		EtsyScraperWebhookURL: os.Getenv("ETSY_SCRAPER_WEBHOOK_URL"),
		EtsyWebhookURL:        os.Getenv(settingEtsyWebhook),
		DesignWebhookURL:      os.Getenv(settingDesignWebhook),
		MockupWebhookURL:      os.Getenv(settingMockupWebhook),
		SeoWebhookURL:         os.Getenv(settingSeoWebhook),
	}
}

// "none" | "lax" | "strict" (default: lax)
func sameSiteFromEnv(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
