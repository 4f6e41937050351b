package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type inboundWebhookReq struct {
	DirectURLs []string `json:"direct_urls"`
}

// POST /api/webhook
// External callback for the Etsy scraper flow: forward the requested URLs to
// the scraper webhook, then upsert a Project keyed on the source URL with the
// scraped fields. New projects get assigned to an admin user since the caller
// carries no session.
func handleInboundWebhook(w http.ResponseWriter, r *http.Request) {
	var in inboundWebhookReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	if cfg.EtsyScraperWebhookURL == "" {
		errorJSON(w, http.StatusInternalServerError, "webhook url not configured")
		return
	}
	if len(in.DirectURLs) == 0 {
		errorJSON(w, http.StatusBadRequest, "direct_urls array is required")
		return
	}

	var scraperData map[string]any
	if err := postToWebhook(webhookClient, cfg.EtsyScraperWebhookURL, in, &scraperData); err != nil {
		log.Printf("[webhook] scraper call: %v", err)
		errorJSON(w, http.StatusInternalServerError, "webhook processing failed")
		return
	}

	etsyURL := in.DirectURLs[0]
	updates := scrapedProjectFields(scraperData)
	updates["etsy_url"] = etsyURL
	updates["status"] = StatusCompleted

	// Match on the source URL so repeated callbacks update in place instead
	// of piling up duplicates.
	var project Project
	err := DB.Where("etsy_url = ?", etsyURL).First(&project).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		var admin User
		if err := DB.Where("role = ?", RoleAdmin).Order("created_at ASC").First(&admin).Error; err != nil {
			errorJSON(w, http.StatusInternalServerError, "no admin user found to assign project")
			return
		}
		project = Project{ID: newID(), UserID: admin.ID, EtsyURL: etsyURL, Status: StatusCompleted}
		if err := DB.Create(&project).Error; err != nil {
			errorJSON(w, http.StatusInternalServerError, "db error")
			return
		}
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := DB.Model(&Project{}).Where("id = ?", project.ID).Updates(updates).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if err := DB.Preload("Designs").First(&project, "id = ?", project.ID).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"project":     project,
		"scraperData": scraperData,
	})
}

/* ---------- Scraper payload mapping ---------- */

// scrapedProjectFields maps the scraper's loosely-typed snake_case payload to
// project columns. Absent or mistyped fields are simply skipped; the scraper
// is an external system and its output varies per listing.
func scrapedProjectFields(data map[string]any) map[string]any {
	out := map[string]any{}

	if v := asStr(data["title"]); v != nil {
		out["etsy_title"] = *v
	}
	// description arrives as an array of paragraphs; the first doubles as the
	// short description.
	desc := asStrSlice(data["description"])
	if len(desc) > 0 {
		out["etsy_desc"] = desc[0]
		out["description"] = pq.StringArray(desc)
	}

	strCols := map[string]string{
		"product_id":            "product_id",
		"shop_id":               "shop_id",
		"shop_url":              "shop_url",
		"shop_name":             "shop_name",
		"image":                 "image",
		"category":              "category",
		"currency":              "currency",
		"country_shipping_from": "country_shipping_from",
		"more_like_url":         "more_like_url",
	}
	for key, col := range strCols {
		if v := asStr(data[key]); v != nil {
			out[col] = *v
		}
	}

	intCols := map[string]string{
		"shop_sales":        "shop_sales",
		"search_position":   "search_position",
		"max_quantity":      "max_quantity",
		"delivery_days_min": "delivery_days_min",
		"delivery_days_max": "delivery_days_max",
		"shop_reviews":      "shop_reviews",
		"reviews":           "reviews",
		"years_on_etsy":     "years_on_etsy",
	}
	for key, col := range intCols {
		if v := asInt(data[key]); v != nil {
			out[col] = *v
		}
	}

	floatCols := map[string]string{
		"star":       "star",
		"price":      "price",
		"low_price":  "low_price",
		"high_price": "high_price",
		"old_price":  "old_price",
	}
	for key, col := range floatCols {
		if v := asFloat(data[key]); v != nil {
			out[col] = *v
		}
	}

	boolCols := map[string]string{
		"has_ratings_badge":  "has_ratings_badge",
		"has_convos_badge":   "has_convos_badge",
		"has_shipping_badge": "has_shipping_badge",
	}
	for key, col := range boolCols {
		if v, ok := data[key].(bool); ok {
			out[col] = v
		}
	}

	if tags := asStrSlice(data["images"]); len(tags) > 0 {
		out["images"] = pq.StringArray(tags)
	}
	if tags := asStrSlice(data["highlights_tags"]); len(tags) > 0 {
		out["highlights_tags"] = pq.StringArray(tags)
	}

	jsonCols := map[string]string{
		"variants":       "variants",
		"reviews_tags":   "reviews_tags",
		"reviews_scores": "reviews_scores",
	}
	for key, col := range jsonCols {
		if data[key] == nil {
			continue
		}
		if b, err := json.Marshal(data[key]); err == nil {
			out[col] = datatypes.JSON(b)
		}
	}

	return out
}

/* ---------- loose-type coercion ---------- */

func asStr(v any) *string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return &t
	case float64:
		// numeric ids arrive as JSON numbers
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	}
	return nil
}

func asInt(v any) *int {
	if f, ok := v.(float64); ok {
		n := int(f)
		return &n
	}
	return nil
}

func asFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return &f
		}
	}
	return nil
}

func asStrSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
