package models

import (
	"encoding/json"
	"fmt"
)

// DamageType enumerates the road damage kinds collected for road grievances.
type DamageType string

const (
	DamagePothole  DamageType = "pothole"
	DamageBroken   DamageType = "broken"
	DamageDrainage DamageType = "drainage"
)

// Urgency enumerates the urgency levels collected for health grievances.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// PensionDetails are the sub-fields collected for the pensions category.
type PensionDetails struct {
	AadhaarNumber string `json:"aadhaarNumber"`
	PensionType   string `json:"pensionType"`
}

// RoadDetails are the sub-fields collected for the road category.
type RoadDetails struct {
	RoadName   string     `json:"roadName"`
	DamageType DamageType `json:"damageType"`
}

// HealthDetails are the sub-fields collected for the health category.
type HealthDetails struct {
	HospitalName string  `json:"hospitalName"`
	Urgency      Urgency `json:"urgency"`
}

// ValidateDetails checks the category-specific sub-fields encoded in raw
// against the schema of the given category. Categories without sub-fields
// (water, power, ration) accept only an empty payload or an empty object.
// The sub-fields themselves are optional; only enum values are checked.
func ValidateDetails(category Category, raw string) error {
	if raw == "" {
		return nil
	}
	switch category {
	case CategoryPensions:
		var d PensionDetails
		return json.Unmarshal([]byte(raw), &d)
	case CategoryRoad:
		var d RoadDetails
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return err
		}
		if d.DamageType != "" {
			switch d.DamageType {
			case DamagePothole, DamageBroken, DamageDrainage:
			default:
				return fmt.Errorf("unknown damage type %q", d.DamageType)
			}
		}
		return nil
	case CategoryHealth:
		var d HealthDetails
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return err
		}
		if d.Urgency != "" {
			switch d.Urgency {
			case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
			default:
				return fmt.Errorf("unknown urgency %q", d.Urgency)
			}
		}
		return nil
	default:
		// Remaining categories collect no sub-fields.
		var d map[string]any
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return err
		}
		if len(d) > 0 {
			return fmt.Errorf("category %q collects no sub-fields", category)
		}
		return nil
	}
}

// HealthUrgency extracts the urgency sub-field from a health grievance's
// details. Returns "" when the category has no urgency or it was left unset.
func HealthUrgency(category Category, raw string) Urgency {
	if category != CategoryHealth || raw == "" {
		return ""
	}
	var d HealthDetails
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return ""
	}
	return d.Urgency
}
