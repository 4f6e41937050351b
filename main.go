package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"gorm.io/gorm/logger"
)

func main() {
	loadDotenv()
	cfg = loadConfig()

	// Quieter GORM logger
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold: 1500 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	var err error
	DB, _, err = openGormIPv4(cfg.DatabaseURL, gLogger)
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	log.Println("[DB] connected")

	if err := autoMigrate(DB); err != nil {
		log.Fatalf("[DB] migrate failed: %v", err)
	}
	log.Println("[DB] migrated")

	r := newRouter()

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Println("API listening on", addr, "CORS_ORIGIN:", cfg.CORSOrigin)
	log.Fatal(srv.ListenAndServe())
}

// newRouter wires middleware and the full route table. Split out of main so
// handler tests can mount the same tree.
func newRouter() *chi.Mux {
	r := chi.NewRouter()

	// allow comma-separated list of origins
	var origins []string
	for _, p := range strings.Split(cfg.CORSOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Set-Cookie", placeholderHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Finish bare OPTIONS quickly
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Use(pageGuard)

	// ---- Routes
	// Auth
	r.Post("/api/auth/register", handleAuthRegister)
	r.Post("/api/auth/login", handleAuthLogin)
	r.Post("/api/auth/logout", handleAuthLogout)
	r.Get("/api/auth/me", handleAuthMe)

	// Admin
	r.Get("/api/admin/settings", handleGetSettings)
	r.Put("/api/admin/settings", handlePutSettings)
	r.Get("/api/admin/users", handleAdminListUsers)
	r.Post("/api/admin/users", handleAdminCreateUser)
	r.Put("/api/admin/users/{id}", handleAdminUpdateUser)
	r.Delete("/api/admin/users/{id}", handleAdminDeleteUser)

	// Projects & designs
	r.Get("/api/projects", handleListProjects)
	r.Post("/api/projects", handleCreateProject)
	r.Get("/api/projects/{id}", handleGetProject)
	r.Put("/api/projects/{id}", handleUpdateProject)
	r.Delete("/api/projects/{id}", handleDeleteProject)
	r.Post("/api/projects/{id}/designs", handleCreateDesign)

	// Workflow proxies
	r.Post("/api/mespod/etsy", handleMespodEtsy)
	r.Post("/api/mespod/design", handleMespodDesign)
	r.Post("/api/mespod/mockup", handleMespodMockup)
	r.Post("/api/mespod/seo", handleMespodSeo)

	// External scraper callback
	r.Post("/api/webhook", handleInboundWebhook)

	// Page shells (guard handles the redirect logic)
	r.Get("/", servePage("MesPOD"))
	r.Get("/login", servePage("Login"))
	r.Get("/register", servePage("Register"))
	r.Get("/app", servePage("Dashboard"))
	r.Get("/app/*", servePage("Dashboard"))
	r.Get("/admin", servePage("Admin"))
	r.Get("/admin/*", servePage("Admin"))

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return r
}
