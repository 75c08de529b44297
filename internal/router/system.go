package router

import (
	"net/http"

	"github.com/deppfellow/persona-api/internal/handler"
	"github.com/deppfellow/persona-api/internal/server"
	"github.com/deppfellow/persona-api/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers /status and, outside production, the
// API docs.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.HEAD("/status", h.Health.CheckHealth)

	if s.Config.Primary.Env == "production" {
		return
	}

	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/docs")
	})
}
