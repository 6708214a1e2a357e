// Package projection derives read-only views over the grievance
// collection: ownership and admin filters, and the tabular exports.
// Everything here is pure; the source slice is never mutated and its
// order (creation time descending) is preserved.
package projection

import "samadhan/backend/internal/models"

// All is the unrestricted value for either filter predicate.
const All = "all"

// Filter is the pair of independent admin predicates, combined with AND.
// Zero values mean "all".
type Filter struct {
	Status   string
	Category string
}

func (f Filter) matches(g models.Grievance) bool {
	if f.Status != "" && f.Status != All && string(g.Status) != f.Status {
		return false
	}
	if f.Category != "" && f.Category != All && string(g.Category) != f.Category {
		return false
	}
	return true
}

// Apply returns the subset of grievances passing both predicates, in the
// collection's existing order.
func Apply(all []models.Grievance, f Filter) []models.Grievance {
	out := make([]models.Grievance, 0, len(all))
	for _, g := range all {
		if f.matches(g) {
			out = append(out, g)
		}
	}
	return out
}

// OwnedBy returns exactly the grievances submitted by userID.
func OwnedBy(all []models.Grievance, userID string) []models.Grievance {
	out := make([]models.Grievance, 0)
	for _, g := range all {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out
}
