package router

import (
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/server/handlers"
)

// New wires the Gin engine with templates, routes and middlewares.
func New(views *handlers.ViewHandler, beans *handlers.BeanHandler, roasts *handlers.RoastHandler, templatesGlob, staticDir string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.SetFuncMap(template.FuncMap{
		"formatDate":    formatDate,
		"formatSeconds": formatSeconds,
	})
	r.LoadHTMLGlob(templatesGlob)
	r.Static("/static", staticDir)

	// Rendered views
	r.GET("/", views.Index)
	r.GET("/beans", views.BeansList)
	r.GET("/beans/add", views.BeanAddForm)
	r.GET("/beans/edit/:id", views.BeanEditForm)
	r.GET("/roast/new", views.RoastNew)
	r.GET("/roast/live/:id", views.RoastLive)
	r.GET("/roast/detail/:id", views.RoastDetail)
	r.GET("/roast/edit/:id", views.RoastEdit)

	// Bean mutations
	r.POST("/api/beans/add", beans.Create)
	r.POST("/api/beans/edit/:id", beans.Update)
	r.POST("/api/beans/delete/:id", beans.Archive)

	// Roast mutations
	r.POST("/api/roast/create", roasts.Create)
	r.POST("/api/roast/start/:id", roasts.Start)
	r.POST("/api/roast/end/:id", roasts.End)
	r.POST("/api/roast/update_title/:id", roasts.UpdateTitle)
	r.POST("/api/roast/add_timing/:id", roasts.AddTiming)
	r.POST("/api/roast/add_event/:id", roasts.AddCurvePoint)
	r.POST("/api/roast/update/:id", roasts.Update)
	r.POST("/api/roast/delete/:id", roasts.Archive)
	r.POST("/api/roast/add_review/:id", roasts.AddReview)
	r.POST("/api/roast/update_review/:id/:review_id", roasts.UpdateReview)
	r.POST("/api/roast/delete_review/:id/:review_id", roasts.DeleteReview)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

// formatDate renders a timestamp as "YYYY-MM-DD HH:MM"; nil and zero
// values render as an empty string.
func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	default:
		return ""
	}
}

// formatSeconds renders an elapsed-seconds value as MM:SS.
func formatSeconds(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
