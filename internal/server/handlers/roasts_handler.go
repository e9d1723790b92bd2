package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/apierror"
	"github.com/mcharron/roastlog/internal/domain/models"
	"github.com/mcharron/roastlog/internal/parse"
	"github.com/mcharron/roastlog/internal/repository/mongodb"
)

// RoastHandler serves the roast mutation endpoints.
type RoastHandler struct {
	repo   mongodb.RoastRepository
	logger *zap.Logger
}

// NewRoastHandler constructs the HTTP handler adapter for roasts.
func NewRoastHandler(repo mongodb.RoastRepository, logger *zap.Logger) *RoastHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoastHandler{repo: repo, logger: logger}
}

// Create inserts a new draft roast and returns its id for the live view.
func (h *RoastHandler) Create(c *gin.Context) {
	id, err := h.repo.CreateDraft(c.Request.Context())
	if err != nil {
		h.logger.Error("failed creating draft roast", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierror.New("failed to create roast"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"new_roast_id": id.Hex()})
}

// Start stamps the start time and optionally binds bean and charge
// weight. An empty body is valid: the timer simply starts.
func (h *RoastHandler) Start(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	var in models.StartInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, apierror.New("invalid payload"))
		return
	}

	h.respondMutation(c, "start roast", h.repo.Start(c.Request.Context(), id, in))
}

// End stamps the end time.
func (h *RoastHandler) End(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	h.respondMutation(c, "end roast", h.repo.End(c.Request.Context(), id))
}

// UpdateTitle renames the roast.
func (h *RoastHandler) UpdateTitle(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	var in models.TitleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid payload"))
		return
	}

	h.respondMutation(c, "update roast title", h.repo.UpdateTitle(c.Request.Context(), id, in.Title))
}

// AddTiming appends a key-timing milestone.
func (h *RoastHandler) AddTiming(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	var in models.TimingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid payload"))
		return
	}

	h.respondMutation(c, "add timing", h.repo.AddTiming(c.Request.Context(), id, in))
}

// AddCurvePoint appends a temperature-curve sample.
func (h *RoastHandler) AddCurvePoint(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	var in models.CurveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid payload"))
		return
	}

	h.respondMutation(c, "add curve point", h.repo.AddCurvePoint(c.Request.Context(), id, in))
}

// Update applies the edit form, then returns to the detail view.
func (h *RoastHandler) Update(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	in := models.RoastInput{
		Title:                 c.PostForm("title"),
		RoastDate:             c.PostForm("roast_date"),
		BeanID:                c.PostForm("bean_id"),
		OriginalWeightGrams:   c.PostForm("original_weight_grams"),
		RoastedWeightGrams:    c.PostForm("roasted_weight_grams"),
		TempMeasurementMethod: c.PostForm("temp_measurement_method"),
		GeneralNotes:          c.PostForm("general_notes"),
	}

	if err := h.repo.Update(c.Request.Context(), id, in); err != nil {
		h.respondError(c, "update roast", err)
		return
	}

	c.Redirect(http.StatusFound, "/roast/detail/"+id.Hex())
}

// Archive soft-deletes the roast and restores the bean stock it consumed.
func (h *RoastHandler) Archive(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Archive(c.Request.Context(), id); err != nil {
		h.respondError(c, "archive roast", err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// AddReview appends a review, accepting either a JSON or a form body.
func (h *RoastHandler) AddReview(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	reviewID, err := h.repo.AddReview(c.Request.Context(), id, reviewInput(c))
	if err != nil {
		h.respondError(c, "add review", err)
		return
	}

	if isJSONRequest(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "review_id": reviewID.Hex()})
		return
	}
	c.Redirect(http.StatusFound, "/roast/detail/"+id.Hex())
}

// UpdateReview edits one review matched by its id.
func (h *RoastHandler) UpdateReview(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}
	reviewID, ok := bindObjectID(c, "review_id")
	if !ok {
		return
	}

	if err := h.repo.UpdateReview(c.Request.Context(), id, reviewID, reviewInput(c)); err != nil {
		h.respondError(c, "update review", err)
		return
	}

	if isJSONRequest(c) {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.Redirect(http.StatusFound, "/roast/detail/"+id.Hex())
}

// DeleteReview removes one review matched by its id.
func (h *RoastHandler) DeleteReview(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}
	reviewID, ok := bindObjectID(c, "review_id")
	if !ok {
		return
	}

	if err := h.repo.DeleteReview(c.Request.Context(), id, reviewID); err != nil {
		h.respondError(c, "delete review", err)
		return
	}

	if isJSONRequest(c) {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.Redirect(http.StatusFound, "/roast/detail/"+id.Hex())
}

func (h *RoastHandler) respondMutation(c *gin.Context, op string, err error) {
	if err != nil {
		h.respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RoastHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, apierror.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.ErrInvalidReference.Error()))
	case errors.Is(err, apierror.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(apierror.ErrInvalidTransition.Error()))
	default:
		h.logger.Error("failed to "+op, zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierror.New("failed to "+op))
	}
}

func reviewInput(c *gin.Context) models.ReviewInput {
	if isJSONRequest(c) {
		var in models.ReviewInput
		if err := c.ShouldBindJSON(&in); err != nil {
			return models.ReviewInput{}
		}
		return in
	}

	in := models.ReviewInput{
		ExtractionMethod: c.PostForm("extraction_method"),
		Notes:            c.PostForm("notes"),
	}
	if raw := c.PostForm("overall_score"); raw != "" {
		if score, defaulted := parse.Int(raw); !defaulted {
			in.OverallScore = &score
		}
	}
	return in
}
