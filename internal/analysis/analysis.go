// Package analysis holds the priority assignment policy applied to new
// submissions. The observed production behavior always assigns medium;
// the derived policy promotes health emergencies. Which one runs is chosen
// at boot via PRIORITY_POLICY.
package analysis

import (
	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"
)

// Policy names accepted by FromName.
const (
	PolicyFixed   = "fixed"
	PolicyDerived = "derived"
)

// PriorityPolicy maps a submission's category and health-urgency sub-field
// to the priority stored on the grievance.
type PriorityPolicy func(category models.Category, urgency models.Urgency) models.Priority

// FixedMedium always assigns the default priority, matching the
// observed behavior.
func FixedMedium(models.Category, models.Urgency) models.Priority {
	return config.DefaultPriority
}

// Derived assigns the default priority except for health grievances
// flagged as an emergency, which become high.
func Derived(category models.Category, urgency models.Urgency) models.Priority {
	if category == models.CategoryHealth && urgency == models.UrgencyEmergency {
		return models.PriorityHigh
	}
	return config.DefaultPriority
}

// FromName resolves a policy by its configured name, defaulting to the
// fixed policy for unknown or empty names.
func FromName(name string) PriorityPolicy {
	if name == PolicyDerived {
		return Derived
	}
	return FixedMedium
}
