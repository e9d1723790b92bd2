package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/apierror"
	"github.com/mcharron/roastlog/internal/repository/mongodb"
	"github.com/mcharron/roastlog/internal/service/dashboard"
)

// ViewHandler serves the rendered HTML pages.
type ViewHandler struct {
	beans  mongodb.BeanRepository
	roasts mongodb.RoastRepository
	dash   *dashboard.Service
	logger *zap.Logger
}

// NewViewHandler constructs the HTML view adapter.
func NewViewHandler(beans mongodb.BeanRepository, roasts mongodb.RoastRepository, dash *dashboard.Service, logger *zap.Logger) *ViewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewHandler{beans: beans, roasts: roasts, dash: dash, logger: logger}
}

// Index renders the dashboard: all non-archived roasts, newest first.
func (h *ViewHandler) Index(c *gin.Context) {
	roasts, err := h.dash.ListRoasts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading dashboard", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load roasts")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{"roasts": roasts})
}

// BeansList renders the bean inventory.
func (h *ViewHandler) BeansList(c *gin.Context) {
	beans, err := h.beans.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing beans", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load beans")
		return
	}

	c.HTML(http.StatusOK, "beans_list.html", gin.H{"beans": beans})
}

// BeanAddForm renders the empty bean form.
func (h *ViewHandler) BeanAddForm(c *gin.Context) {
	c.HTML(http.StatusOK, "beans_form.html", gin.H{"bean": nil, "is_edit": false})
}

// BeanEditForm renders the bean form pre-filled with an existing bean.
func (h *ViewHandler) BeanEditForm(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	bean, err := h.beans.FindActiveByID(c.Request.Context(), id)
	if errors.Is(err, apierror.ErrNotFound) {
		c.String(http.StatusNotFound, "Bean not found")
		return
	}
	if err != nil {
		h.logger.Error("failed loading bean", zap.String("bean_id", id.Hex()), zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load bean")
		return
	}

	c.HTML(http.StatusOK, "beans_form.html", gin.H{"bean": bean, "is_edit": true})
}

// RoastNew creates a draft roast and jumps straight into the live view.
func (h *ViewHandler) RoastNew(c *gin.Context) {
	id, err := h.roasts.CreateDraft(c.Request.Context())
	if err != nil {
		h.logger.Error("failed creating draft roast", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to create roast")
		return
	}

	c.Redirect(http.StatusFound, "/roast/live/"+id.Hex())
}

// RoastLive renders the live roasting interface.
func (h *ViewHandler) RoastLive(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	roast, err := h.roasts.FindActiveByID(c.Request.Context(), id)
	if errors.Is(err, apierror.ErrNotFound) {
		c.String(http.StatusNotFound, "Roast not found")
		return
	}
	if err != nil {
		h.logger.Error("failed loading roast", zap.String("roast_id", id.Hex()), zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load roast")
		return
	}

	beans, err := h.beans.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing beans", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load beans")
		return
	}

	c.HTML(http.StatusOK, "roast_live.html", gin.H{"roast": roast, "beans": beans})
}

// RoastDetail renders a finished roast with resolved bean and durations.
func (h *ViewHandler) RoastDetail(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	roast, err := h.dash.RoastDetail(c.Request.Context(), id)
	if errors.Is(err, apierror.ErrNotFound) {
		c.String(http.StatusNotFound, "Roast not found")
		return
	}
	if err != nil {
		h.logger.Error("failed loading roast detail", zap.String("roast_id", id.Hex()), zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load roast")
		return
	}

	c.HTML(http.StatusOK, "roast_detail.html", gin.H{"roast": roast})
}

// RoastEdit renders the full edit form.
func (h *ViewHandler) RoastEdit(c *gin.Context) {
	id, ok := bindObjectID(c, "id")
	if !ok {
		return
	}

	roast, err := h.roasts.FindActiveByID(c.Request.Context(), id)
	if errors.Is(err, apierror.ErrNotFound) {
		c.String(http.StatusNotFound, "Roast not found")
		return
	}
	if err != nil {
		h.logger.Error("failed loading roast", zap.String("roast_id", id.Hex()), zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load roast")
		return
	}

	beans, err := h.beans.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing beans", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load beans")
		return
	}

	c.HTML(http.StatusOK, "roast_edit.html", gin.H{"roast": roast, "beans": beans})
}
