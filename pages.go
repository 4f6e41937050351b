package main

import (
	"fmt"
	"net/http"
)

// Minimal page shells. The real UI is a separate frontend; these exist so the
// page guard has concrete targets for its redirects and so the server answers
// page paths sensibly when hit directly.
func servePage(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteName := "MesPOD"
		var s Setting
		if err := DB.Where("key = ?", settingSiteName).First(&s).Error; err == nil && s.Value != "" {
			siteName = s.Value
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!doctype html><title>%s · %s</title><h1>%s</h1>\n", title, siteName, title)
	}
}
