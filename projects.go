package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* ===================== HTTP: list/create ====================== */

// GET /api/projects
// Only the caller's own rows, newest first, designs included.
func handleListProjects(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var projects []Project
	err := DB.Where("user_id = ?", user.ID).
		Preload("Designs").
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type createProjectReq struct {
	EtsyURL   string   `json:"etsyUrl"`
	EtsyTitle *string  `json:"etsyTitle"`
	EtsyDesc  *string  `json:"etsyDesc"`
	EtsyTags  []string `json:"etsyTags"`
}

// POST /api/projects
func handleCreateProject(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var in createProjectReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(in.EtsyURL) == "" {
		errorJSON(w, http.StatusBadRequest, "etsy url required")
		return
	}

	p := Project{
		ID:        newID(),
		UserID:    user.ID,
		EtsyURL:   strings.TrimSpace(in.EtsyURL),
		EtsyTitle: in.EtsyTitle,
		EtsyDesc:  in.EtsyDesc,
		EtsyTags:  pq.StringArray(in.EtsyTags),
		Status:    StatusProcessing,
		Designs:   []Design{},
	}
	if err := DB.Create(&p).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

/* ===================== HTTP: single project ====================== */

// GET /api/projects/{id}
// A miss because the id belongs to someone else looks exactly like a miss
// because the id doesn't exist.
func handleGetProject(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	id := chi.URLParam(r, "id")

	var p Project
	err := DB.Where("id = ? AND user_id = ?", id, user.ID).
		Preload("Designs", func(db *gorm.DB) *gorm.DB {
			return db.Order("designs.created_at DESC")
		}).
		First(&p).Error
	if err == gorm.ErrRecordNotFound {
		errorJSON(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type updateProjectReq struct {
	Status    *string   `json:"status"`
	EtsyTitle *string   `json:"etsyTitle"`
	EtsyDesc  *string   `json:"etsyDesc"`
	EtsyTags  *[]string `json:"etsyTags"`
}

// PUT /api/projects/{id}
// Only the supplied fields change.
func handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	id := chi.URLParam(r, "id")

	var in updateProjectReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	updates := map[string]any{}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.EtsyTitle != nil {
		updates["etsy_title"] = *in.EtsyTitle
	}
	if in.EtsyDesc != nil {
		updates["etsy_desc"] = *in.EtsyDesc
	}
	if in.EtsyTags != nil {
		updates["etsy_tags"] = pq.StringArray(*in.EtsyTags)
	}
	if len(updates) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}

	res := DB.Model(&Project{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Updates(updates)
	if res.Error != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if res.RowsAffected == 0 {
		errorJSON(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DELETE /api/projects/{id}
// The FK cascade removes the project's designs with it.
func handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	id := chi.URLParam(r, "id")

	res := DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&Project{})
	if res.Error != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if res.RowsAffected == 0 {
		errorJSON(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
