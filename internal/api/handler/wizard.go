package handler

import (
	"errors"
	"net/http"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// draftView is the wizard state returned to the client after every
// mutation. CanAdvance drives the enabled state of the Next control.
type draftView struct {
	Draft      *models.Draft `json:"draft"`
	CanAdvance bool          `json:"canAdvance"`
}

func (h *Handler) draftResponse(c *gin.Context, draft *models.Draft) {
	c.JSON(http.StatusOK, draftView{Draft: draft, CanAdvance: h.Wizard.CanAdvance(draft)})
}

// loadDraft resumes the caller's draft, creating one if needed.
func (h *Handler) loadDraft(c *gin.Context) (*models.Draft, bool) {
	draft, err := h.Wizard.StartOrResume(mustUser(c).ID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load your draft, please retry"})
		return nil, false
	}
	return draft, true
}

// GetDraft returns the current wizard state.
func (h *Handler) GetDraft(c *gin.Context) {
	if draft, ok := h.loadDraft(c); ok {
		h.draftResponse(c, draft)
	}
}

// DiscardDraft abandons the draft; nothing was persisted to the store.
func (h *Handler) DiscardDraft(c *gin.Context) {
	if err := h.Wizard.Discard(mustUser(c).ID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not discard the draft, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"discarded": true})
}

// SetCategory records the step-1 category choice.
func (h *Handler) SetCategory(c *gin.Context) {
	var in struct {
		Category models.Category `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, ok := h.loadDraft(c)
	if !ok {
		return
	}
	if err := h.Wizard.SetCategory(draft, in.Category); err != nil {
		if errors.Is(err, wizard.ErrUnknownCategory) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "field": "category"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not save the draft, please retry"})
		return
	}
	h.draftResponse(c, draft)
}

// SetDescription records the step-2 narrative.
func (h *Handler) SetDescription(c *gin.Context) {
	var in struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, ok := h.loadDraft(c)
	if !ok {
		return
	}
	if err := h.Wizard.SetDescription(draft, in.Description); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not save the draft, please retry"})
		return
	}
	h.draftResponse(c, draft)
}

// SetDetails records the category-specific sub-fields.
func (h *Handler) SetDetails(c *gin.Context) {
	var in struct {
		Details string `json:"details"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, ok := h.loadDraft(c)
	if !ok {
		return
	}
	if err := h.Wizard.SetDetails(draft, in.Details); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "field": "details"})
		return
	}
	h.draftResponse(c, draft)
}

// SetLocation records a captured geolocation or a typed fallback.
func (h *Handler) SetLocation(c *gin.Context) {
	var in struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Manual    string   `json:"manual"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, ok := h.loadDraft(c)
	if !ok {
		return
	}

	var err error
	switch {
	case in.Latitude != nil && in.Longitude != nil:
		err = h.Wizard.SetLocation(draft, *in.Latitude, *in.Longitude)
	case in.Manual != "":
		err = h.Wizard.SetManualLocation(draft, in.Manual)
	default:
		// Geolocation denied or unavailable: leave the field untouched
		// and point the user at manual entry.
		c.JSON(http.StatusOK, gin.H{
			"draft":   draft,
			"message": "Location unavailable. You can type it in manually.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not save the draft, please retry"})
		return
	}
	h.draftResponse(c, draft)
}

// AttachMedia uploads one file to the object store and records its
// locator in the slot named by the :kind parameter.
func (h *Handler) AttachMedia(c *gin.Context) {
	kind := c.Param("kind")
	if kind != "image" && kind != "audio" && kind != "video" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown media kind"})
		return
	}
	if h.Media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
		return
	}

	draft, ok := h.loadDraft(c)
	if !ok {
		return
	}
	// The image cap is enforced before the upload so a rejected fourth
	// image never costs a round trip to the object store.
	if kind == "image" && len(draft.Images) >= config.MaxImages {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": wizard.ErrImageLimit.Error()})
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file field is required"})
		return
	}
	defer file.Close()

	uploadKind := kind
	if kind == "audio" {
		// The hosted media API stores audio through its video pipeline.
		uploadKind = "video"
	}
	locator, err := h.Media.Upload(uploadKind, file, uuid.New().String())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upload failed, please retry"})
		return
	}

	switch kind {
	case "image":
		err = h.Wizard.AttachImage(draft, locator)
	case "audio":
		err = h.Wizard.AttachAudio(draft, locator)
	case "video":
		err = h.Wizard.AttachVideo(draft, locator)
	}
	if errors.Is(err, wizard.ErrImageLimit) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not save the draft, please retry"})
		return
	}
	h.draftResponse(c, draft)
}

// NextStep advances the wizard when the current gate allows it.
func (h *Handler) NextStep(c *gin.Context) {
	draft, ok := h.loadDraft(c)
	if !ok {
		return
	}
	advanced, err := h.Wizard.Next(draft)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not save the draft, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft":      draft,
		"advanced":   advanced,
		"canAdvance": h.Wizard.CanAdvance(draft),
	})
}

// PrevStep moves backward; always allowed.
func (h *Handler) PrevStep(c *gin.Context) {
	draft, ok := h.loadDraft(c)
	if !ok {
		return
	}
	if err := h.Wizard.Back(draft); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not save the draft, please retry"})
		return
	}
	h.draftResponse(c, draft)
}

// SubmitDraft persists the grievance. On failure the draft survives so
// the user can retry without re-entering anything.
func (h *Handler) SubmitDraft(c *gin.Context) {
	draft, ok := h.loadDraft(c)
	if !ok {
		return
	}
	g, err := h.Wizard.Submit(draft)
	if errors.Is(err, wizard.ErrNotAtReview) || errors.Is(err, wizard.ErrUnknownCategory) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Submission failed, your entries are saved. Please retry."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"grievance": g})
}
