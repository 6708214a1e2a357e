// Package wizard drives the four-step grievance submission flow:
// SelectCategory, ProvideDetails, AddMedia, Review. The draft accumulates
// in Redis between requests and nothing reaches PostgreSQL until Submit.
package wizard

import (
	"errors"
	"strconv"

	"samadhan/backend/internal/analysis"
	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"
)

var (
	// ErrCategoryRequired blocks advancing past SelectCategory without a
	// recognized category.
	ErrCategoryRequired = errors.New("select a category before continuing")
	// ErrUnknownCategory rejects category values outside the fixed set.
	ErrUnknownCategory = errors.New("unrecognized category")
	// ErrImageLimit rejects a fourth image; the stored set stays at three.
	ErrImageLimit = errors.New("image limit reached: at most 3 images per grievance")
	// ErrNotAtReview rejects Submit from any step before Review.
	ErrNotAtReview = errors.New("submission is only allowed from the review step")
)

// Service runs the submission state machine for all users.
type Service struct {
	Storage  storage.Storage
	Priority analysis.PriorityPolicy
}

// NewService creates a new wizard service.
func NewService(s storage.Storage, policy analysis.PriorityPolicy) *Service {
	if policy == nil {
		policy = analysis.FixedMedium
	}
	return &Service{Storage: s, Priority: policy}
}

// StartOrResume returns the user's in-progress draft, creating a fresh one
// at SelectCategory if none exists.
func (s *Service) StartOrResume(userID string) (*models.Draft, error) {
	draft, err := s.Storage.GetDraft(userID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return draft, nil
	}
	draft = &models.Draft{
		UserID: userID,
		Step:   models.StepSelectCategory,
		Images: []string{},
	}
	if err := s.Storage.SaveDraft(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Discard abandons the draft without writing anything to the store.
func (s *Service) Discard(userID string) error {
	return s.Storage.DeleteDraft(userID)
}

// CanAdvance reports whether the current step's gate is satisfied. The
// handler uses it to render the Next control disabled, not merely to
// reject the action.
func (s *Service) CanAdvance(draft *models.Draft) bool {
	switch draft.Step {
	case models.StepSelectCategory:
		return draft.Category.IsValid()
	case models.StepProvideDetails, models.StepAddMedia:
		// Deliberately lenient: description and media are optional.
		return true
	default:
		return false
	}
}

// Next advances to the following step when the gate allows it. A blocked
// gate is a no-op: the draft stays on its current step.
func (s *Service) Next(draft *models.Draft) (advanced bool, err error) {
	if !s.CanAdvance(draft) {
		return false, nil
	}
	draft.Step++
	if err := s.Storage.SaveDraft(draft); err != nil {
		draft.Step--
		return false, err
	}
	return true, nil
}

// Back moves one step backward. Always permitted, never re-validated.
func (s *Service) Back(draft *models.Draft) error {
	if draft.Step <= models.StepSelectCategory {
		return nil
	}
	draft.Step--
	return s.Storage.SaveDraft(draft)
}

// SetCategory records the chosen category. Switching categories clears any
// sub-fields collected for the previous one.
func (s *Service) SetCategory(draft *models.Draft, category models.Category) error {
	if !category.IsValid() {
		return ErrUnknownCategory
	}
	if draft.Category != category {
		draft.Details = ""
	}
	draft.Category = category
	return s.Storage.SaveDraft(draft)
}

// SetDescription records the free-text narrative.
func (s *Service) SetDescription(draft *models.Draft, description string) error {
	draft.Description = description
	return s.Storage.SaveDraft(draft)
}

// SetDetails records the category-specific sub-fields after validating
// them against the schema for the draft's category.
func (s *Service) SetDetails(draft *models.Draft, raw string) error {
	if err := models.ValidateDetails(draft.Category, raw); err != nil {
		return err
	}
	draft.Details = raw
	return s.Storage.SaveDraft(draft)
}

// SetLocation stores a captured geolocation as a "lat, lon" string.
func (s *Service) SetLocation(draft *models.Draft, lat, lon float64) error {
	draft.Location = strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lon, 'f', -1, 64)
	return s.Storage.SaveDraft(draft)
}

// SetManualLocation stores a typed location, the fallback when geolocation
// is denied or unavailable.
func (s *Service) SetManualLocation(draft *models.Draft, location string) error {
	draft.Location = location
	return s.Storage.SaveDraft(draft)
}

// AttachImage appends one image locator, capped at three.
func (s *Service) AttachImage(draft *models.Draft, url string) error {
	if len(draft.Images) >= config.MaxImages {
		return ErrImageLimit
	}
	draft.Images = append(draft.Images, url)
	return s.Storage.SaveDraft(draft)
}

// AttachAudio records the audio locator, replacing any previous one.
func (s *Service) AttachAudio(draft *models.Draft, url string) error {
	draft.AudioURL = url
	return s.Storage.SaveDraft(draft)
}

// AttachVideo records the video locator, replacing any previous one.
func (s *Service) AttachVideo(draft *models.Draft, url string) error {
	draft.VideoURL = url
	return s.Storage.SaveDraft(draft)
}

// Submit turns the accumulated draft into a persisted grievance. Only
// valid from Review. Status is forced to pending and priority comes from
// the policy regardless of anything collected in the earlier steps. The
// draft is discarded only after the insert succeeds, so a failed insert
// leaves everything in place for a retry.
func (s *Service) Submit(draft *models.Draft) (*models.Grievance, error) {
	if draft.Step != models.StepReview {
		return nil, ErrNotAtReview
	}
	if !draft.Category.IsValid() {
		return nil, ErrUnknownCategory
	}

	location := draft.Location
	if location == "" {
		location = config.LocationSentinel
	}

	g := &models.Grievance{
		Category:    draft.Category,
		Description: draft.Description,
		Location:    location,
		Status:      config.InitialStatus,
		Priority:    s.Priority(draft.Category, models.HealthUrgency(draft.Category, draft.Details)),
		Images:      draft.Images,
		AudioURL:    draft.AudioURL,
		VideoURL:    draft.VideoURL,
		Details:     draft.Details,
		UserID:      draft.UserID,
	}

	if err := s.Storage.InsertGrievance(g); err != nil {
		return nil, err
	}

	// Draft cleanup is best-effort; the grievance is already durable.
	_ = s.Storage.DeleteDraft(draft.UserID)
	return g, nil
}
