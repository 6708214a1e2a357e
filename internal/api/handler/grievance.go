package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/lifecycle"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/projection"
	"samadhan/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// MyGrievances returns the authenticated citizen's own submissions,
// newest first.
func (h *Handler) MyGrievances(c *gin.Context) {
	all, err := h.Storage.ListGrievancesByUser(mustUser(c).ID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load your grievances, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"grievances": all, "count": len(all)})
}

// adminFilter reads the status/category query predicates, both defaulting
// to "all".
func adminFilter(c *gin.Context) projection.Filter {
	return projection.Filter{
		Status:   c.DefaultQuery("status", projection.All),
		Category: c.DefaultQuery("category", projection.All),
	}
}

// fetchFiltered loads the full collection and applies the admin filter.
func (h *Handler) fetchFiltered(c *gin.Context) ([]models.Grievance, bool) {
	all, err := h.Storage.ListAllGrievances()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load grievances, please retry"})
		return nil, false
	}
	return projection.Apply(all, adminFilter(c)), true
}

// AdminListGrievances returns the filtered triage view.
func (h *Handler) AdminListGrievances(c *gin.Context) {
	filtered, ok := h.fetchFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"grievances": filtered, "count": len(filtered)})
}

// UpdateStatus applies a lifecycle transition to one grievance.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status models.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := h.Lifecycle.Transition(c.Param("id"), in.Status, mustUser(c))
	switch {
	case errors.Is(err, lifecycle.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrInvalidStatus), errors.Is(err, lifecycle.ErrTransitionDenied):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		// Distinct from transport failure: the listing is stale, refresh
		// it instead of retrying the write.
		c.JSON(http.StatusNotFound, gin.H{"error": "Grievance no longer exists, refresh the list"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not update the status, please retry"})
	default:
		c.JSON(http.StatusOK, gin.H{"grievance": g})
	}
}

// ExportCSV streams the currently filtered subset as a delimited file.
func (h *Handler) ExportCSV(c *gin.Context) {
	filtered, ok := h.fetchFiltered(c)
	if !ok {
		return
	}
	rows := projection.Rows(filtered)

	var buf bytes.Buffer
	if err := projection.WriteCSV(&buf, rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed, please retry"})
		return
	}

	filename := projection.CSVFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportPrintable renders the filtered subset as a printable HTML page.
func (h *Handler) ExportPrintable(c *gin.Context) {
	filtered, ok := h.fetchFiltered(c)
	if !ok {
		return
	}
	rows := projection.Rows(filtered)

	var buf bytes.Buffer
	if err := projection.WritePrintable(&buf, rows, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed, please retry"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Categories exposes the category keys with their display labels so
// clients never hardcode the mapping.
func (h *Handler) Categories(c *gin.Context) {
	type entry struct {
		Key   models.Category `json:"key"`
		Label string          `json:"label"`
	}
	out := make([]entry, 0, len(models.Categories))
	for _, cat := range models.Categories {
		out = append(out, entry{Key: cat, Label: config.CategoryLabel(cat)})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}
