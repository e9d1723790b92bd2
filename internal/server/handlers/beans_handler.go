package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/apierror"
	"github.com/mcharron/roastlog/internal/domain/models"
	"github.com/mcharron/roastlog/internal/repository/mongodb"
)

// BeanHandler serves the bean mutation endpoints.
type BeanHandler struct {
	repo   mongodb.BeanRepository
	logger *zap.Logger
}

// NewBeanHandler constructs the HTTP handler adapter for beans.
func NewBeanHandler(repo mongodb.BeanRepository, logger *zap.Logger) *BeanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BeanHandler{repo: repo, logger: logger}
}

// Create adds a new bean from the submitted form and returns to the list.
func (h *BeanHandler) Create(c *gin.Context) {
	if _, err := h.repo.Create(c.Request.Context(), beanInputFromForm(c)); err != nil {
		h.logger.Error("failed creating bean", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierror.New("failed to save bean"))
		return
	}

	c.Redirect(http.StatusFound, "/beans")
}

// Update edits an existing bean from the submitted form.
func (h *BeanHandler) Update(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, beanInputFromForm(c)); err != nil {
		h.logger.Error("failed updating bean", zap.String("bean_id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierror.New("failed to save bean"))
		return
	}

	c.Redirect(http.StatusFound, "/beans")
}

// Archive soft-deletes a bean. Stock and referencing roasts stay untouched.
func (h *BeanHandler) Archive(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Archive(c.Request.Context(), id); err != nil {
		h.logger.Error("failed archiving bean", zap.String("bean_id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierror.New("failed to archive bean"))
		return
	}

	c.Redirect(http.StatusFound, "/beans")
}

func beanInputFromForm(c *gin.Context) models.BeanInput {
	return models.BeanInput{
		Name:                c.PostForm("name"),
		Origin:              c.PostForm("origin"),
		Process:             c.PostForm("process"),
		Supplier:            c.PostForm("supplier"),
		Notes:               c.PostForm("notes"),
		Color:               c.PostForm("color"),
		PurchaseDate:        c.PostForm("purchase_date"),
		PurchasePriceTotal:  c.PostForm("purchase_price_total"),
		PurchaseWeightGrams: c.PostForm("purchase_weight_grams"),
		StockGrams:          c.PostForm("stock_grams"),
	}
}
