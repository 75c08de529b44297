package router

import (
	"net/http"

	"github.com/deppfellow/persona-api/internal/handler"
	"github.com/deppfellow/persona-api/internal/model/persona"
	"github.com/labstack/echo/v4"
)

func registerPersonaRoutes(r *echo.Echo, h *handler.Handlers) {
	ph := h.Persona
	g := r.Group("/personas")

	g.GET("", handler.Handle(ph.Handler, ph.ListPersonas, http.StatusOK, &persona.ListPersonasPayload{}))

	g.GET("/buscar", handler.Handle(ph.Handler, ph.SearchPersonas, http.StatusOK, &persona.SearchPersonasPayload{}))

	g.GET("/:id", handler.Handle(ph.Handler, ph.GetPersona, http.StatusOK, &persona.GetPersonaPayload{})).
		Name = handler.PersonaGetRoute

	g.POST("", handler.Handle(ph.Handler, ph.CreatePersona, http.StatusCreated, &persona.CreatePersonaPayload{}))
	g.PUT("/:id", handler.HandleNoContent(ph.Handler, ph.UpdatePersona, http.StatusNoContent, &persona.UpdatePersonaPayload{}))
	g.DELETE("/:id", handler.HandleNoContent(ph.Handler, ph.DeletePersona, http.StatusNoContent, &persona.DeletePersonaPayload{}))
}
