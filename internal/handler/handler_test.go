package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/registry/internal/config"
	"github.com/deppfellow/registry/internal/errs"
	"github.com/deppfellow/registry/internal/middleware"
	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/server"
	"github.com/deppfellow/registry/internal/service"
	"github.com/deppfellow/registry/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type athleteRepo struct {
	service.AthleteRepository

	mu         sync.Mutex
	lastPatch  model.AthletePatch
	lastSearch model.AthleteSearch
	lastPage   model.Pagination
}

func (r *athleteRepo) CreateAthlete(_ context.Context, p *model.CreateAthleteRequest) (*model.Athlete, error) {
	a := &model.Athlete{Name: *p.Name, Age: p.Age}
	a.ID = 1
	return a, nil
}

func (r *athleteRepo) GetAthlete(_ context.Context, id int64) (*model.Athlete, error) {
	if id != 1 {
		return nil, sqlerr.WrapNoRows("athletes", pgx.ErrNoRows)
	}
	a := &model.Athlete{Name: "Li Ming"}
	a.ID = id
	return a, nil
}

func (r *athleteRepo) ListAthletes(_ context.Context, page model.Pagination) ([]model.Athlete, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPage = page
	return []model.Athlete{}, nil
}

func (r *athleteRepo) UpdateAthlete(_ context.Context, id int64, patch model.AthletePatch) (*model.Athlete, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPatch = patch
	a := &model.Athlete{Name: "Li Ming"}
	a.ID = id
	return a, nil
}

func (r *athleteRepo) SearchAthletes(_ context.Context, c model.AthleteSearch, page model.Pagination) ([]model.Athlete, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSearch = c
	r.lastPage = page
	return []model.Athlete{}, nil
}

func testServer(t *testing.T) *server.Server {
	t.Helper()

	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{StaticDir: t.TempDir()},
			Observability: config.DefaultObservabilityConfig(),
			Assistant: config.AssistantConfig{
				Provider: "openai",
				Model:    "test-model",
				BaseURL:  "http://127.0.0.1:1/v1",
				APIKey:   "test",
				ToolsURL: "http://127.0.0.1:1/mcp",
				MaxSteps: 3,
			},
		},
		Logger: &log,
	}
}

func newTestEcho(s *server.Server, repo *athleteRepo) *echo.Echo {
	services := &service.Services{
		Athlete:   service.NewAthleteService(repo),
		Assistant: service.NewAssistantService(s.Config.Assistant, nil),
	}
	h := NewHandlers(s, services)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler

	g := e.Group("/athletes")
	g.POST("", Handle(h.Athlete.Handler, h.Athlete.CreateAthlete, http.StatusCreated))
	g.GET("", Handle(h.Athlete.Handler, h.Athlete.ListAthletes, http.StatusOK))
	g.POST("/search", Handle(h.Athlete.Handler, h.Athlete.SearchAthletes, http.StatusOK))
	g.GET("/:id", Handle(h.Athlete.Handler, h.Athlete.GetAthlete, http.StatusOK))
	g.PUT("/:id", Handle(h.Athlete.Handler, h.Athlete.UpdateAthlete, http.StatusOK))

	e.GET("/chat", Handle(h.Chat.Handler, h.Chat.Chat, http.StatusOK))
	e.GET("/", h.Static.ServeIndex)
	e.GET("/favicon.ico", h.Static.Favicon)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateAthlete(t *testing.T) {
	e := newTestEcho(testServer(t), &athleteRepo{})

	rec := do(e, http.MethodPost, "/athletes", `{"name":"Li Ming","age":24}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Athlete
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Li Ming", got.Name)
	require.NotNil(t, got.Age)
	assert.Equal(t, int32(24), *got.Age)
}

func TestCreateAthlete_Errors(t *testing.T) {
	e := newTestEcho(testServer(t), &athleteRepo{})

	rec := do(e, http.MethodPost, "/athletes", `{"age":24}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := errorBody(t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "name", body.Errors[0].Field)

	rec = do(e, http.MethodPost, "/athletes", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/athletes", `{"name":"A","age":"old"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAthlete(t *testing.T) {
	e := newTestEcho(testServer(t), &athleteRepo{})

	rec := do(e, http.MethodGet, "/athletes/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/athletes/5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Athlete not found", errorBody(t, rec).Message)

	rec = do(e, http.MethodGet, "/athletes/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAthletes_Pagination(t *testing.T) {
	repo := &athleteRepo{}
	e := newTestEcho(testServer(t), repo)

	rec := do(e, http.MethodGet, "/athletes?skip=20&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	assert.Equal(t, 20, repo.lastPage.Offset())
	assert.Equal(t, 5, repo.lastPage.Size())

	rec = do(e, http.MethodGet, "/athletes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, repo.lastPage.Offset())
	assert.Equal(t, model.DefaultLimit, repo.lastPage.Size())

	for _, q := range []string{"skip=-1", "limit=-1", "limit=1001"} {
		rec = do(e, http.MethodGet, "/athletes?"+q, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, q)
	}
}

func TestUpdateAthlete_Presence(t *testing.T) {
	repo := &athleteRepo{}
	e := newTestEcho(testServer(t), repo)

	rec := do(e, http.MethodPut, "/athletes/1", `{"hometown":"Shanghai","remarks":null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.False(t, repo.lastPatch.Name.Set)
	assert.True(t, repo.lastPatch.Hometown.Set)
	assert.Equal(t, "Shanghai", repo.lastPatch.Hometown.Value)
	assert.True(t, repo.lastPatch.Remarks.Null)

	rec = do(e, http.MethodPut, "/athletes/1", `{"name":null}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSearchAthletes(t *testing.T) {
	repo := &athleteRepo{}
	e := newTestEcho(testServer(t), repo)

	rec := do(e, http.MethodPost, "/athletes/search?skip=1&limit=2", `{"sport_event":"swim","min_age":20}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, repo.lastSearch.SportEvent)
	assert.Equal(t, "swim", *repo.lastSearch.SportEvent)
	require.NotNil(t, repo.lastSearch.MinAge)
	assert.Equal(t, int32(20), *repo.lastSearch.MinAge)
	assert.Nil(t, repo.lastSearch.Name)
	assert.Equal(t, 1, repo.lastPage.Offset())
	assert.Equal(t, 2, repo.lastPage.Size())
}

func TestHandle_PayloadPerRequest(t *testing.T) {
	e := newTestEcho(testServer(t), &athleteRepo{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			name := fmt.Sprintf("athlete-%d", i)
			rec := do(e, http.MethodPost, "/athletes", fmt.Sprintf(`{"name":%q}`, name))

			var got model.Athlete
			if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got)) {
				assert.Equal(t, name, got.Name)
			}
		}(i)
	}
	wg.Wait()
}

func TestChat(t *testing.T) {
	e := newTestEcho(testServer(t), &athleteRepo{})

	rec := do(e, http.MethodGet, "/chat", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(e, http.MethodGet, "/chat?message=hello", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "BAD_GATEWAY", errorBody(t, rec).Code)
}

func TestStatic(t *testing.T) {
	s := testServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Config.Server.StaticDir, "index.html"), []byte("<h1>registry</h1>"), 0o644))
	e := newTestEcho(s, &athleteRepo{})

	rec := do(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>registry</h1>", rec.Body.String())
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	rec = do(e, http.MethodGet, "/favicon.ico", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCheckHealth(t *testing.T) {
	s := testServer(t)
	h := NewHealthHandler(s)
	h.checks = map[string]pinger{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return nil },
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "test", body.Environment)
	assert.Len(t, body.Checks, 2)

	h.checks["redis"] = func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	h.timeout = 10 * time.Millisecond

	rec = httptest.NewRecorder()
	c = echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body = healthResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"].Status)
	assert.Equal(t, "unhealthy", body.Checks["redis"].Status)
}

func TestNewHealthHandler_Disabled(t *testing.T) {
	s := testServer(t)
	s.Config.Observability.HealthChecks.Enabled = false

	h := NewHealthHandler(s)
	assert.Empty(t, h.checks)
	assert.Equal(t, 5*time.Second, h.timeout)
}
