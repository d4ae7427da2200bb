package handler

import (
	"customerwizard/wizard/internal/service"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// RouterConfig holds the HTTP-facing settings
type RouterConfig struct {
	CookieName           string
	CookieSecure         bool
	CookieMaxAge         int // seconds
	MaxRequestsPerSecond int // 0 disables pacing
}

func NewRouter(wizard *service.Wizard, cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), LoggerMiddleware())
	if cfg.MaxRequestsPerSecond > 0 {
		r.Use(RateLimitMiddleware(cfg.MaxRequestsPerSecond))
	}
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(static))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pages := NewWizardHandler(wizard)
	api := NewAPIHandler(wizard)

	api.RegisterCatalogRoutes(r.Group("/api"))

	session := r.Group("/")
	session.Use(SessionMiddleware(cfg.CookieName, cfg.CookieMaxAge, cfg.CookieSecure))
	{
		session.GET("/", pages.Index)
		session.POST("/", pages.SubmitName)
		session.GET("/select_type", pages.SelectType)
		session.POST("/select_type", pages.SubmitType)
		session.GET("/select_options", pages.SelectOptions)
		session.POST("/select_options", pages.SubmitOptions)
		session.GET("/result", pages.Result)
		session.GET("/new_customer", pages.NewCustomer)

		session.GET("/api/result", api.Result)
	}

	return r, nil
}
