package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/persona-api/internal/config"
	"github.com/deppfellow/persona-api/internal/handler"
	"github.com/deppfellow/persona-api/internal/model/persona"
	"github.com/deppfellow/persona-api/internal/repository"
	"github.com/deppfellow/persona-api/internal/server"
	"github.com/deppfellow/persona-api/internal/service"
	"github.com/deppfellow/persona-api/internal/service/mocks"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const angularOrigin = "http://localhost:4200"

type RouterSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *mocks.MockPersonaRepository
	cfg      *config.Config
	router   *echo.Echo
}

func (s *RouterSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = mocks.NewMockPersonaRepository(s.ctrl)
	s.cfg = &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{angularOrigin},
		},
		Observability: config.DefaultObservabilityConfig(),
	}
	s.buildRouter()
}

func (s *RouterSuite) buildRouter() {
	logger := zerolog.Nop()
	srv := &server.Server{Config: s.cfg, Logger: &logger}
	services := &service.Services{Persona: service.NewPersonaService(srv, s.mockRepo)}
	s.router = NewRouter(srv, handler.NewHandlers(srv, services))
}

func (s *RouterSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func stored(id int) *persona.Persona {
	birth, _ := persona.ParseDate("1990-05-01")
	return &persona.Persona{
		ID:              id,
		Nombre:          "Ana",
		Apellido:        "Ruiz",
		FechaNacimiento: birth,
		Email:           "ana@x.com",
		FechaRegistro:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

const anaBody = `{"nombre":"Ana","apellido":"Ruiz","fecha_nacimiento":"1990-05-01","email":"ana@x.com"}`

func (s *RouterSuite) TestCreateGetDeleteFlow() {
	gomock.InOrder(
		s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(stored(1), nil),
		s.mockRepo.EXPECT().GetByID(gomock.Any(), 1).Return(stored(1), nil),
		s.mockRepo.EXPECT().Delete(gomock.Any(), 1).Return(nil),
		s.mockRepo.EXPECT().GetByID(gomock.Any(), 1).Return(nil, repository.ErrPersonaNotFound),
	)

	rec := s.do(http.MethodPost, "/personas", anaBody)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Equal("/personas/1", rec.Header().Get(echo.HeaderLocation))
	created := s.decode(rec)
	s.EqualValues(1, created["id"])
	s.Equal("1990-05-01", created["fecha_nacimiento"])

	rec = s.do(http.MethodGet, "/personas/1", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(created, s.decode(rec))

	rec = s.do(http.MethodDelete, "/personas/1", "")
	s.Equal(http.StatusNoContent, rec.Code)
	s.Empty(rec.Body.String())

	rec = s.do(http.MethodGet, "/personas/1", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("No se encontró ninguna persona con el ID: 1", s.decode(rec)["message"])
}

func (s *RouterSuite) TestCreate_DropsClientRegistrationDate() {
	s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, candidate *persona.Persona) (*persona.Persona, error) {
			s.True(candidate.FechaRegistro.IsZero())
			return stored(2), nil
		})

	body := `{"id":99,"nombre":"Ana","apellido":"Ruiz","fecha_nacimiento":"1990-05-01T00:00:00Z",` +
		`"email":"ana@x.com","fecha_registro":"2001-01-01T00:00:00Z"}`
	rec := s.do(http.MethodPost, "/personas", body)

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("/personas/2", rec.Header().Get(echo.HeaderLocation))
}

func (s *RouterSuite) TestCreate_ValidationErrors() {
	rec := s.do(http.MethodPost, "/personas", `{"nombre":" ","apellido":"Ruiz","email":"nope"}`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	fields := []string{}
	for _, e := range body["errors"].([]any) {
		fields = append(fields, e.(map[string]any)["field"].(string))
	}
	s.ElementsMatch([]string{"nombre", "fecha_nacimiento", "email"}, fields)
}

func (s *RouterSuite) TestCreate_MalformedBody() {
	rec := s.do(http.MethodPost, "/personas", `{"nombre":`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestCreate_BadDate() {
	rec := s.do(http.MethodPost, "/personas", strings.Replace(anaBody, "1990-05-01", "01/05/1990", 1))

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestList() {
	s.mockRepo.EXPECT().List(gomock.Any()).Return([]persona.Persona{*stored(1), *stored(2)}, nil)

	rec := s.do(http.MethodGet, "/personas", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var list []map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Len(list, 2)
}

func (s *RouterSuite) TestGet_NonNumericID() {
	rec := s.do(http.MethodGet, "/personas/abc", "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestNonPositiveIDsReachTheStore() {
	s.mockRepo.EXPECT().GetByID(gomock.Any(), 0).Return(nil, repository.ErrPersonaNotFound)
	s.mockRepo.EXPECT().Delete(gomock.Any(), -4).Return(repository.ErrPersonaNotFound)

	rec := s.do(http.MethodGet, "/personas/0", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("No se encontró ninguna persona con el ID: 0", s.decode(rec)["message"])

	rec = s.do(http.MethodDelete, "/personas/-4", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("No se encontró ninguna persona con el ID: -4", s.decode(rec)["message"])
}

func (s *RouterSuite) TestSearch() {
	s.mockRepo.EXPECT().
		Search(gomock.Any(), persona.SearchFilter{Nombre: "ana"}).
		Return([]persona.Persona{*stored(1)}, nil)

	rec := s.do(http.MethodGet, "/personas/buscar?nombre=ana", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestSearch_NoCriteria() {
	rec := s.do(http.MethodGet, "/personas/buscar?nombre=%20&email=", "")

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Debe proporcionar al menos un criterio de búsqueda (nombre, apellido o email)", s.decode(rec)["message"])
}

func (s *RouterSuite) TestUpdate() {
	s.mockRepo.EXPECT().Update(gomock.Any(), 5, gomock.Any()).Return(stored(5), nil)

	rec := s.do(http.MethodPut, "/personas/5", `{"id":5,`+anaBody[1:])

	s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
}

func (s *RouterSuite) TestUpdate_IDMismatch() {
	rec := s.do(http.MethodPut, "/personas/5", `{"id":7,`+anaBody[1:])

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Equal("El ID proporcionado en la URL no coincide con el ID del objeto", s.decode(rec)["message"])
}

func (s *RouterSuite) TestUpdate_NotFound() {
	s.mockRepo.EXPECT().Update(gomock.Any(), 5, gomock.Any()).Return(nil, repository.ErrPersonaNotFound)

	rec := s.do(http.MethodPut, "/personas/5", `{"id":5,`+anaBody[1:])

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestUpdate_ConcurrencyConflict() {
	s.mockRepo.EXPECT().Update(gomock.Any(), 5, gomock.Any()).Return(nil, repository.ErrConcurrencyConflict)

	rec := s.do(http.MethodPut, "/personas/5", `{"id":5,`+anaBody[1:])

	s.Require().Equal(http.StatusInternalServerError, rec.Code)
	body := s.decode(rec)
	s.Equal("Error de concurrencia al actualizar", body["message"])
	s.NotEmpty(body["error"])
}

func (s *RouterSuite) TestDelete_StorageFailure() {
	s.mockRepo.EXPECT().Delete(gomock.Any(), 3).Return(errors.New("permission denied"))

	rec := s.do(http.MethodDelete, "/personas/3", "")

	s.Require().Equal(http.StatusInternalServerError, rec.Code)
	body := s.decode(rec)
	s.Equal("Error al eliminar la persona", body["message"])
	s.Equal("permission denied", body["error"])
}

func (s *RouterSuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/nope", "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Ruta no encontrada", s.decode(rec)["message"])
}

func (s *RouterSuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Equal("abc-123", rec.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/personas", nil)
	req.Header.Set(echo.HeaderOrigin, angularOrigin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal(angularOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	s.Equal("true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}

func (s *RouterSuite) TestStatus_DatabaseUnavailable() {
	rec := s.do(http.MethodGet, "/status", "")

	s.Require().Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("unhealthy", s.decode(rec)["status"])
}

func (s *RouterSuite) TestStatus_ChecksDisabled() {
	s.cfg.Observability.HealthChecks.Enabled = false
	s.buildRouter()

	rec := s.do(http.MethodGet, "/status", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestDocs() {
	rec := s.do(http.MethodGet, "/docs", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "/static/openapi.json")

	rec = s.do(http.MethodGet, "/static/openapi.json", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestDocs_HiddenInProduction() {
	s.cfg.Primary.Env = "production"
	s.buildRouter()

	rec := s.do(http.MethodGet, "/docs", "")

	s.Equal(http.StatusNotFound, rec.Code)
}
