package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type createDesignReq struct {
	ImageURL       string   `json:"imageUrl"`
	Prompt         *string  `json:"prompt"`
	MockupTemplate *string  `json:"mockupTemplate"`
	MockupURL      *string  `json:"mockupUrl"`
	SeoTitle       *string  `json:"seoTitle"`
	SeoDescription *string  `json:"seoDescription"`
	SeoTags        []string `json:"seoTags"`
}

// POST /api/projects/{id}/designs
// Appends one generated artifact to a project the caller owns.
func handleCreateDesign(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	projectID := chi.URLParam(r, "id")

	// Ownership check first; a foreign project id reads as not-found.
	var p Project
	err := DB.Select("id").
		Where("id = ? AND user_id = ?", projectID, user.ID).
		First(&p).Error
	if err == gorm.ErrRecordNotFound {
		errorJSON(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	var in createDesignReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		errorJSON(w, http.StatusBadRequest, "image url required")
		return
	}

	d := Design{
		ID:             newID(),
		ProjectID:      projectID,
		ImageURL:       in.ImageURL,
		Prompt:         in.Prompt,
		MockupTemplate: in.MockupTemplate,
		MockupURL:      in.MockupURL,
		SeoTitle:       in.SeoTitle,
		SeoDescription: in.SeoDescription,
		SeoTags:        pq.StringArray(in.SeoTags),
	}
	if err := DB.Create(&d).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
