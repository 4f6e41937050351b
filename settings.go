package main

import (
	"net/http"

	"gorm.io/gorm/clause"
)

// Settings keys the admin screen reads and writes. The webhook keys double as
// the environment variable names they override.
const (
	settingSiteName        = "siteName"
	settingSiteLogo        = "siteLogo"
	settingSiteDescription = "siteDescription"

	settingEtsyWebhook   = "N8N_ETSY_SCRAPER_WEBHOOK_URL"
	settingDesignWebhook = "N8N_DESIGN_GENERATE_WEBHOOK_URL"
	settingMockupWebhook = "N8N_MOCKUP_APPLY_WEBHOOK_URL"
	settingSeoWebhook    = "N8N_SEO_GENERATE_WEBHOOK_URL"
)

// webhookURL resolves an outbound webhook endpoint: the Settings store wins
// over the environment default, so the admin screen takes effect without a
// restart. Empty means unconfigured.
func webhookURL(key, envDefault string) string {
	var s Setting
	if err := DB.Where("key = ?", key).First(&s).Error; err == nil && s.Value != "" {
		return s.Value
	}
	return envDefault
}

// GET /api/admin/settings
func handleGetSettings(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var rows []Setting
	if err := DB.Find(&rows).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	writeJSON(w, http.StatusOK, out)
}

// PUT /api/admin/settings
// Partial writes: only the supplied keys are upserted, everything else keeps
// its prior value.
func handlePutSettings(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var in map[string]string
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	for k, v := range in {
		s := Setting{Key: k, Value: v}
		err := DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&s).Error
		if err != nil {
			errorJSON(w, http.StatusInternalServerError, "db error")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
