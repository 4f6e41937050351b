package main

import (
	"log"
	"net/http"
	"strings"
)

// The four workflow proxy endpoints. Each forwards a fixed-shape payload to
// its configured n8n webhook and returns the upstream JSON as-is. When no URL
// is configured the development placeholder is returned instead, marked with
// this header so callers can tell the difference.
const placeholderHeader = "X-Mespod-Placeholder"

func writePlaceholder(w http.ResponseWriter, tag string, v any) {
	log.Printf("[mespod] %s webhook not configured, returning placeholder data", tag)
	w.Header().Set(placeholderHeader, "true")
	writeJSON(w, http.StatusOK, v)
}

// POST /api/mespod/etsy
func handleMespodEtsy(w http.ResponseWriter, r *http.Request) {
	if requireUser(w, r) == nil {
		return
	}
	var in etsyRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(in.URL) == "" {
		errorJSON(w, http.StatusBadRequest, "product url required")
		return
	}

	url := webhookURL(settingEtsyWebhook, cfg.EtsyWebhookURL)
	if url == "" {
		writePlaceholder(w, "etsy", placeholderEtsy())
		return
	}

	var out etsyResponse
	if err := postToWebhook(webhookClient, url, in, &out); err != nil {
		log.Printf("[mespod] etsy webhook: %v", err)
		errorJSON(w, http.StatusInternalServerError, "failed to fetch product data")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/mespod/design
func handleMespodDesign(w http.ResponseWriter, r *http.Request) {
	if requireUser(w, r) == nil {
		return
	}
	var in designRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(in.BaseImageURL) == "" {
		errorJSON(w, http.StatusBadRequest, "base image url required")
		return
	}

	url := webhookURL(settingDesignWebhook, cfg.DesignWebhookURL)
	if url == "" {
		writePlaceholder(w, "design", placeholderDesign())
		return
	}

	var out designResponse
	if err := postToWebhook(webhookClient, url, in, &out); err != nil {
		log.Printf("[mespod] design webhook: %v", err)
		errorJSON(w, http.StatusInternalServerError, "failed to generate design variants")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/mespod/mockup
func handleMespodMockup(w http.ResponseWriter, r *http.Request) {
	if requireUser(w, r) == nil {
		return
	}
	var in mockupRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(in.DesignImageURL) == "" || strings.TrimSpace(in.MockupTemplateID) == "" {
		errorJSON(w, http.StatusBadRequest, "design image url and mockup template id required")
		return
	}

	url := webhookURL(settingMockupWebhook, cfg.MockupWebhookURL)
	if url == "" {
		writePlaceholder(w, "mockup", placeholderMockup(in.MockupTemplateID))
		return
	}

	var out mockupResponse
	if err := postToWebhook(webhookClient, url, in, &out); err != nil {
		log.Printf("[mespod] mockup webhook: %v", err)
		errorJSON(w, http.StatusInternalServerError, "failed to generate mockup")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/mespod/seo
func handleMespodSeo(w http.ResponseWriter, r *http.Request) {
	if requireUser(w, r) == nil {
		return
	}
	var in seoRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.BaseTitle == "" || in.BaseDescription == "" || len(in.BaseTags) == 0 {
		errorJSON(w, http.StatusBadRequest, "base title, description and tags required")
		return
	}

	url := webhookURL(settingSeoWebhook, cfg.SeoWebhookURL)
	if url == "" {
		writePlaceholder(w, "seo", placeholderSeo())
		return
	}

	var out seoResponse
	if err := postToWebhook(webhookClient, url, in, &out); err != nil {
		log.Printf("[mespod] seo webhook: %v", err)
		errorJSON(w, http.StatusInternalServerError, "failed to generate seo content")
		return
	}
	writeJSON(w, http.StatusOK, out)
}
