package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/persona-api/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API documentation UI. The page loads
// openapi.json from /static.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

func NewOpenAPIHandler(s *server.Server, assets fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  assets,
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	page, err := fs.ReadFile(h.assets, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}
	return nil
}
