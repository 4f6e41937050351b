package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

/* ===================== HTTP: list/create ====================== */

type adminUserRow struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	ProjectCount int       `json:"projectCount"`
}

// GET /api/admin/users
func handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var rows []adminUserRow
	err := DB.Model(&User{}).
		Select("users.id, users.email, users.name, users.role, users.created_at, COUNT(projects.id) AS project_count").
		Joins("LEFT JOIN projects ON projects.user_id = users.id").
		Group("users.id").
		Order("users.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type adminCreateUserReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// POST /api/admin/users
func handleAdminCreateUser(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var in adminCreateUserReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		errorJSON(w, http.StatusBadRequest, "email and password required")
		return
	}

	var count int64
	if err := DB.Model(&User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if count > 0 {
		errorJSON(w, http.StatusBadRequest, "user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "hash error")
		return
	}

	role := RoleUser
	if in.Role == RoleAdmin {
		role = RoleAdmin
	}
	u := User{
		ID:           newID(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = &name
	}
	if err := DB.Create(&u).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

/* ===================== HTTP: update/delete ====================== */

type adminUpdateUserReq struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Password *string `json:"password"` // re-hashed only when supplied
}

// PUT /api/admin/users/{id}
func handleAdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}
	id := chi.URLParam(r, "id")

	var in adminUpdateUserReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	var u User
	err := DB.Where("id = ?", id).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		errorJSON(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" {
			errorJSON(w, http.StatusBadRequest, "email cannot be empty")
			return
		}
		if email != u.Email {
			var count int64
			if err := DB.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
				errorJSON(w, http.StatusInternalServerError, "db error")
				return
			}
			if count > 0 {
				errorJSON(w, http.StatusBadRequest, "email already in use")
				return
			}
		}
		u.Email = email
	}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			u.Name = &name
		} else {
			u.Name = nil
		}
	}
	if in.Role != nil {
		if *in.Role != RoleUser && *in.Role != RoleAdmin {
			errorJSON(w, http.StatusBadRequest, "invalid role")
			return
		}
		u.Role = *in.Role
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			errorJSON(w, http.StatusInternalServerError, "hash error")
			return
		}
		u.PasswordHash = string(hash)
	}

	if err := DB.Save(&u).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// DELETE /api/admin/users/{id}
// Deleting an unknown id reads as not-found; the FK cascade removes the
// user's projects and their designs.
func handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}
	id := chi.URLParam(r, "id")

	res := DB.Where("id = ?", id).Delete(&User{})
	if res.Error != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if res.RowsAffected == 0 {
		errorJSON(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
