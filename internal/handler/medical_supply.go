package handler

import (
	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/server"
	"github.com/deppfellow/registry/internal/service"
	"github.com/labstack/echo/v4"
)

type MedicalSupplyHandler struct {
	Handler
	supplies *service.MedicalSupplyService
}

func NewMedicalSupplyHandler(s *server.Server, supplies *service.MedicalSupplyService) *MedicalSupplyHandler {
	return &MedicalSupplyHandler{
		Handler:  NewHandler(s),
		supplies: supplies,
	}
}

func (h *MedicalSupplyHandler) CreateMedicalSupply(c echo.Context, req *model.CreateMedicalSupplyRequest) (*model.MedicalSupply, error) {
	return h.supplies.CreateMedicalSupply(c.Request().Context(), req)
}

func (h *MedicalSupplyHandler) ListMedicalSupplies(c echo.Context, req *model.ListRequest) ([]model.MedicalSupply, error) {
	return h.supplies.ListMedicalSupplies(c.Request().Context(), req.Pagination)
}

func (h *MedicalSupplyHandler) GetMedicalSupply(c echo.Context, req *model.IDRequest) (*model.MedicalSupply, error) {
	return h.supplies.GetMedicalSupply(c.Request().Context(), req.ID)
}

func (h *MedicalSupplyHandler) UpdateMedicalSupply(c echo.Context, req *model.UpdateMedicalSupplyRequest) (*model.MedicalSupply, error) {
	return h.supplies.UpdateMedicalSupply(c.Request().Context(), req)
}

func (h *MedicalSupplyHandler) DeleteMedicalSupply(c echo.Context, req *model.IDRequest) (*model.MedicalSupply, error) {
	return h.supplies.DeleteMedicalSupply(c.Request().Context(), req.ID)
}

func (h *MedicalSupplyHandler) SearchMedicalSupplies(c echo.Context, req *model.SearchMedicalSuppliesRequest) ([]model.MedicalSupply, error) {
	return h.supplies.SearchMedicalSupplies(c.Request().Context(), req)
}
