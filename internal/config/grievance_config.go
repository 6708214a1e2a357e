package config

import (
	"time"

	"samadhan/backend/internal/models"
)

const (
	// Media
	MaxImages        = 3
	LocationSentinel = "Location not specified"

	// Submission defaults
	DefaultPriority = models.PriorityMedium
	InitialStatus   = models.StatusPending

	// Wizard
	DraftTTL = 24 * time.Hour

	// Listing snapshot cache
	SnapshotKey = "grievances:all"
	SnapshotTTL = 5 * time.Minute

	// Auth
	TokenTTL = 72 * time.Hour

	// Export
	ExportFilePrefix       = "grievances"
	ExportEmptyDescription = "No description provided"
)

// CategoryLabels maps internal category keys to the human-readable labels
// used across listing, filtering and export. Every code path that shows a
// category to a human must go through this table.
var CategoryLabels = map[models.Category]string{
	models.CategoryPensions: "Pensions",
	models.CategoryRoad:     "Roads",
	models.CategoryHealth:   "Health",
	models.CategoryWater:    "Water Supply",
	models.CategoryPower:    "Electricity",
	models.CategoryRation:   "Ration & PDS",
}

// CategoryLabel returns the display label for a category, falling back to
// the raw key for values outside the table.
func CategoryLabel(c models.Category) string {
	if label, ok := CategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// CategoryFromLabel is the inverse lookup; ok is false for unknown labels.
func CategoryFromLabel(label string) (models.Category, bool) {
	for c, l := range CategoryLabels {
		if l == label {
			return c, true
		}
	}
	return "", false
}
