package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// webhookClient is shared by all outbound workflow calls. n8n flows can take
// a while (scraping + image generation), hence the generous timeout.
var webhookClient = &http.Client{Timeout: 120 * time.Second}

// postToWebhook POSTs a JSON payload to an n8n webhook and decodes the JSON
// response into out. Transport failures and non-2xx statuses are plain
// errors; there is no retry.
func postToWebhook(client *http.Client, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	slurp, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		snip := strings.TrimSpace(string(slurp))
		if len(snip) > 240 {
			snip = snip[:240]
		}
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, snip)
	}
	if err := json.Unmarshal(slurp, out); err != nil {
		return fmt.Errorf("webhook response decode: %w", err)
	}
	return nil
}

/* ---------- Workflow payload shapes ---------- */

type etsyRequest struct {
	URL string `json:"url"`
}

type etsyResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ImageURLs   []string `json:"imageUrls"`
}

type designRequest struct {
	BaseImageURL string `json:"baseImageUrl"`
	StylePrompt  string `json:"stylePrompt,omitempty"`
}

type designVariant struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Prompt   string `json:"prompt"`
}

type designResponse struct {
	Variants []designVariant `json:"variants"`
}

type mockupRequest struct {
	DesignImageURL   string `json:"designImageUrl"`
	MockupTemplateID string `json:"mockupTemplateId"`
}

type mockupResponse struct {
	MockupImageURL string `json:"mockupImageUrl"`
}

type seoRequest struct {
	BaseTitle       string   `json:"baseTitle"`
	BaseDescription string   `json:"baseDescription"`
	BaseTags        []string `json:"baseTags"`
	MockupImageURL  string   `json:"mockupImageUrl"`
}

type seoResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

/* ---------- Development placeholders ---------- */
// Returned when the matching webhook URL is unconfigured. Handlers flag the
// response with X-Mespod-Placeholder so callers can tell fabricated data from
// a real upstream answer.

func placeholderEtsy() etsyResponse {
	return etsyResponse{
		Title:       "Funny Cat T-Shirt - Cute Kitten Design",
		Description: "Adorable cat design perfect for cat lovers. High quality print on comfortable cotton.",
		Tags:        []string{"cat", "funny", "tshirt", "cute", "kitten", "animal", "pet", "gift"},
		ImageURLs:   []string{"https://via.placeholder.com/800x800/FF6B6B/FFFFFF?text=Cat+Design"},
	}
}

func placeholderDesign() designResponse {
	prompts := []string{
		"Minimalist cat silhouette with geometric shapes",
		"Watercolor style cat with floral elements",
		"Retro vintage cat poster design",
		"Modern abstract cat with bold colors",
	}
	colors := []string{"4ECDC4", "FF6B6B", "95E1D3", "F38181"}
	out := designResponse{Variants: make([]designVariant, 0, len(prompts))}
	for i, p := range prompts {
		out.Variants = append(out.Variants, designVariant{
			ID:       uuid.NewString(),
			ImageURL: fmt.Sprintf("https://via.placeholder.com/800x800/%s/FFFFFF?text=Variant+%d", colors[i], i+1),
			Prompt:   p,
		})
	}
	return out
}

func placeholderMockup(templateID string) mockupResponse {
	return mockupResponse{
		MockupImageURL: "https://via.placeholder.com/1200x1400/667eea/FFFFFF?text=Mockup+" + templateID,
	}
}

func placeholderSeo() seoResponse {
	return seoResponse{
		Title:       "Funny Cat T-Shirt | Cute Kitten Tee | Cat Lover Gift | Unisex Cotton Shirt",
		Description: "Perfect gift for cat lovers! This adorable cat design t-shirt features a unique, eye-catching print on premium quality cotton. Comfortable, durable, and stylish - ideal for everyday wear.",
		Tags: []string{
			"cat tshirt", "funny cat", "cat lover gift", "kitten shirt", "cute cat",
			"animal tee", "pet lover", "cat mom", "cat dad", "unisex shirt",
			"cotton tshirt", "graphic tee", "cat design",
		},
	}
}
