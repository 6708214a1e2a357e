package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // needed for pq.StringArray
	"gorm.io/gorm"
)

// Category classifies the subject domain of a grievance.
type Category string

const (
	CategoryPensions Category = "pensions"
	CategoryRoad     Category = "road"
	CategoryHealth   Category = "health"
	CategoryWater    Category = "water"
	CategoryPower    Category = "power"
	CategoryRation   Category = "ration"
)

// Status is the lifecycle state of a grievance after submission.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

// Priority of a grievance, assigned at creation by the priority policy.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Categories lists every recognized category in display order.
var Categories = []Category{
	CategoryPensions,
	CategoryRoad,
	CategoryHealth,
	CategoryWater,
	CategoryPower,
	CategoryRation,
}

// IsValid reports whether c is one of the recognized categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPensions, CategoryRoad, CategoryHealth, CategoryWater, CategoryPower, CategoryRation:
		return true
	}
	return false
}

// IsValid reports whether s is one of the three lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Grievance represents a citizen-submitted complaint record.
// The ID is assigned by the store on insert; the client never supplies it.
type Grievance struct {
	ID string `gorm:"primaryKey" json:"id"`

	// Category is immutable after creation.
	Category Category `gorm:"type:text;not null;index" json:"category"`
	// Description is the free-text narrative; may be empty.
	Description string `gorm:"type:text" json:"description"`
	// Location is free text or a "lat, lon" pair.
	Location string `gorm:"type:text" json:"location"`

	Status   Status   `gorm:"type:text;not null;index" json:"status"`
	Priority Priority `gorm:"type:text;not null" json:"priority"`

	// Images holds up to three locator URLs in the external object store.
	Images pq.StringArray `gorm:"type:text[]" json:"images"`
	// AudioURL and VideoURL hold at most one locator each.
	AudioURL string `gorm:"type:text" json:"audioUrl"`
	VideoURL string `gorm:"type:text" json:"videoUrl"`

	// Details carries the category-specific sub-fields as JSON text.
	Details string `gorm:"type:text" json:"details"`

	// UserID is the submitter; set at creation, never altered.
	UserID string `gorm:"type:text;not null;index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates the grievance ID if it has not been set yet.
func (g *Grievance) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return
}
