package main

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Project lifecycle states.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// User is the persisted auth user record.
// auth.go and admin_users.go convert this to a lightweight DTO for the client.
type User struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Email        string    `gorm:"uniqueIndex;size:320;not null"`
	Name         *string   `gorm:"size:120"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"type:text;not null;default:USER"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Projects []Project `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }

// Project holds the source product URL plus whatever scraped metadata the
// external workflows have filled in so far. Everything but the URL is
// nullable: the columns are populated asynchronously by webhook responses.
type Project struct {
	ID     string `gorm:"primaryKey;type:text" json:"id"`
	UserID string `gorm:"index;type:text;not null" json:"userId"`

	EtsyURL   string         `gorm:"index;type:text;not null" json:"etsyUrl"`
	EtsyTitle *string        `gorm:"type:text" json:"etsyTitle"`
	EtsyDesc  *string        `gorm:"type:text" json:"etsyDesc"`
	EtsyTags  pq.StringArray `gorm:"type:text[]" json:"etsyTags"`

	Status string `gorm:"type:text;not null;default:processing" json:"status"`

	// Etsy scraper payload (see webhook.go).
	ProductID           *string        `gorm:"type:text" json:"productId"`
	ShopID              *string        `gorm:"type:text" json:"shopId"`
	ShopURL             *string        `gorm:"type:text" json:"shopUrl"`
	ShopName            *string        `gorm:"type:text" json:"shopName"`
	ShopSales           *int           `json:"shopSales"`
	SearchPosition      *int           `json:"searchPosition"`
	Image               *string        `gorm:"type:text" json:"image"`
	Images              pq.StringArray `gorm:"type:text[]" json:"images"`
	MaxQuantity         *int           `json:"maxQuantity"`
	Variants            datatypes.JSON `gorm:"type:jsonb" json:"variants,omitempty"`
	Description         pq.StringArray `gorm:"type:text[]" json:"description"`
	DeliveryDaysMin     *int           `json:"deliveryDaysMin"`
	DeliveryDaysMax     *int           `json:"deliveryDaysMax"`
	ShopReviews         *int           `json:"shopReviews"`
	Reviews             *int           `json:"reviews"`
	Star                *float64       `json:"star"`
	HighlightsTags      pq.StringArray `gorm:"type:text[]" json:"highlightsTags"`
	ReviewsTags         datatypes.JSON `gorm:"type:jsonb" json:"reviewsTags,omitempty"`
	ReviewsScores       datatypes.JSON `gorm:"type:jsonb" json:"reviewsScores,omitempty"`
	YearsOnEtsy         *int           `json:"yearsOnEtsy"`
	HasRatingsBadge     *bool          `json:"hasRatingsBadge"`
	HasConvosBadge      *bool          `json:"hasConvosBadge"`
	HasShippingBadge    *bool          `json:"hasShippingBadge"`
	Category            *string        `gorm:"type:text" json:"category"`
	Price               *float64       `json:"price"`
	LowPrice            *float64       `json:"lowPrice"`
	HighPrice           *float64       `json:"highPrice"`
	OldPrice            *float64       `json:"oldPrice"`
	Currency            *string        `gorm:"type:text" json:"currency"`
	CountryShippingFrom *string        `gorm:"type:text" json:"countryShippingFrom"`
	MoreLikeURL         *string        `gorm:"type:text" json:"moreLikeUrl"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Designs []Design `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"designs"`
}

func (Project) TableName() string { return "projects" }

// Design is one generated artifact attached to a project. Rows are created
// once per artifact and only ever removed via the project cascade.
type Design struct {
	ID        string `gorm:"primaryKey;type:text" json:"id"`
	ProjectID string `gorm:"index;type:text;not null" json:"projectId"`

	ImageURL       string         `gorm:"type:text;not null" json:"imageUrl"`
	Prompt         *string        `gorm:"type:text" json:"prompt"`
	MockupTemplate *string        `gorm:"type:text" json:"mockupTemplate"`
	MockupURL      *string        `gorm:"type:text" json:"mockupUrl"`
	SeoTitle       *string        `gorm:"type:text" json:"seoTitle"`
	SeoDescription *string        `gorm:"type:text" json:"seoDescription"`
	SeoTags        pq.StringArray `gorm:"type:text[]" json:"seoTags"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Design) TableName() string { return "designs" }

// Setting is one row of the flat admin-editable key-value store (site
// branding plus the N8N webhook URLs).
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"uniqueIndex;type:text;not null"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Setting) TableName() string { return "settings" }

/* ===================== Public DTOs ====================== */

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserDTO(u User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt}
}
