package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPostToWebhookRoundtrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var in etsyRequest
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &in); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if in.URL != "https://www.etsy.com/listing/123" {
			t.Errorf("url = %q", in.URL)
		}
		writeJSON(w, http.StatusOK, etsyResponse{Title: "Cat Shirt", Tags: []string{"cat"}})
	}))
	defer srv.Close()

	var out etsyResponse
	err := postToWebhook(srv.Client(), srv.URL, etsyRequest{URL: "https://www.etsy.com/listing/123"}, &out)
	if err != nil {
		t.Fatalf("postToWebhook: %v", err)
	}
	if out.Title != "Cat Shirt" || len(out.Tags) != 1 {
		t.Errorf("response = %+v", out)
	}
}

func TestPostToWebhookNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	var out map[string]any
	err := postToWebhook(srv.Client(), srv.URL, map[string]string{}, &out)
	if err == nil {
		t.Fatal("want error for 502 response")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "workflow exploded") {
		t.Errorf("error = %v, want status and body snippet", err)
	}
}

func TestPostToWebhookBodySnippetTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("x", 2000), http.StatusInternalServerError)
	}))
	defer srv.Close()

	var out map[string]any
	err := postToWebhook(srv.Client(), srv.URL, map[string]string{}, &out)
	if err == nil {
		t.Fatal("want error")
	}
	if len(err.Error()) > 300 {
		t.Errorf("error length = %d, body snippet not truncated", len(err.Error()))
	}
}

func TestPostToWebhookBadResponseJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	var out map[string]any
	if err := postToWebhook(srv.Client(), srv.URL, map[string]string{}, &out); err == nil {
		t.Fatal("want decode error for non-JSON body")
	}
}

func TestPostToWebhookUnreachable(t *testing.T) {
	var out map[string]any
	err := postToWebhook(webhookClient, "http://127.0.0.1:1/webhook", map[string]string{}, &out)
	if err == nil {
		t.Fatal("want transport error")
	}
}

func TestPlaceholderDesignVariants(t *testing.T) {
	out := placeholderDesign()
	if len(out.Variants) != 4 {
		t.Fatalf("variants = %d, want 4", len(out.Variants))
	}
	seen := map[string]bool{}
	for _, v := range out.Variants {
		if v.ID == "" || v.ImageURL == "" || v.Prompt == "" {
			t.Errorf("incomplete variant: %+v", v)
		}
		if seen[v.ID] {
			t.Errorf("duplicate variant id %s", v.ID)
		}
		seen[v.ID] = true
	}
}

func TestPlaceholderMockupCarriesTemplateID(t *testing.T) {
	out := placeholderMockup("tshirt-front")
	if !strings.Contains(out.MockupImageURL, "tshirt-front") {
		t.Errorf("mockup url %q does not mention the template", out.MockupImageURL)
	}
}

func TestWritePlaceholderMarksResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	writePlaceholder(rec, "etsy", placeholderEtsy())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(placeholderHeader) != "true" {
		t.Errorf("%s header = %q, want true", placeholderHeader, rec.Header().Get(placeholderHeader))
	}
	var out etsyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Title == "" || len(out.Tags) == 0 {
		t.Errorf("placeholder body = %+v", out)
	}
}
