package handler

import (
	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/server"
	"github.com/deppfellow/registry/internal/service"
	"github.com/labstack/echo/v4"
)

type AthleteHandler struct {
	Handler
	athletes *service.AthleteService
}

func NewAthleteHandler(s *server.Server, athletes *service.AthleteService) *AthleteHandler {
	return &AthleteHandler{
		Handler:  NewHandler(s),
		athletes: athletes,
	}
}

func (h *AthleteHandler) CreateAthlete(c echo.Context, req *model.CreateAthleteRequest) (*model.Athlete, error) {
	return h.athletes.CreateAthlete(c.Request().Context(), req)
}

func (h *AthleteHandler) ListAthletes(c echo.Context, req *model.ListRequest) ([]model.Athlete, error) {
	return h.athletes.ListAthletes(c.Request().Context(), req.Pagination)
}

func (h *AthleteHandler) GetAthlete(c echo.Context, req *model.IDRequest) (*model.Athlete, error) {
	return h.athletes.GetAthlete(c.Request().Context(), req.ID)
}

func (h *AthleteHandler) UpdateAthlete(c echo.Context, req *model.UpdateAthleteRequest) (*model.Athlete, error) {
	return h.athletes.UpdateAthlete(c.Request().Context(), req)
}

func (h *AthleteHandler) DeleteAthlete(c echo.Context, req *model.IDRequest) (*model.Athlete, error) {
	return h.athletes.DeleteAthlete(c.Request().Context(), req.ID)
}

func (h *AthleteHandler) SearchAthletes(c echo.Context, req *model.SearchAthletesRequest) ([]model.Athlete, error) {
	return h.athletes.SearchAthletes(c.Request().Context(), req)
}
