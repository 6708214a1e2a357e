package analysis_test

import (
	"testing"

	"samadhan/backend/internal/analysis"
	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFixedMedium(t *testing.T) {
	assert.Equal(t, models.PriorityMedium, config.DefaultPriority,
		"the configured default is the observed fixed value")
	for _, c := range models.Categories {
		assert.Equal(t, config.DefaultPriority, analysis.FixedMedium(c, models.UrgencyEmergency),
			"the fixed policy ignores category and urgency")
	}
}

func TestDerived(t *testing.T) {
	assert.Equal(t, models.PriorityHigh,
		analysis.Derived(models.CategoryHealth, models.UrgencyEmergency))
	assert.Equal(t, models.PriorityMedium,
		analysis.Derived(models.CategoryHealth, models.UrgencyHigh))
	assert.Equal(t, models.PriorityMedium,
		analysis.Derived(models.CategoryRoad, models.UrgencyEmergency),
		"only health grievances carry an urgency")
}

func TestFromName(t *testing.T) {
	assert.Equal(t, models.PriorityHigh,
		analysis.FromName(analysis.PolicyDerived)(models.CategoryHealth, models.UrgencyEmergency))
	assert.Equal(t, models.PriorityMedium,
		analysis.FromName("")(models.CategoryHealth, models.UrgencyEmergency))
	assert.Equal(t, models.PriorityMedium,
		analysis.FromName("bogus")(models.CategoryHealth, models.UrgencyEmergency))
}
