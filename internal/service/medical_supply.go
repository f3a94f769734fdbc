package service

import (
	"context"
	"time"

	"github.com/deppfellow/registry/internal/model"
)

// MedicalSupplyRepository is the storage contract of MedicalSupplyService.
type MedicalSupplyRepository interface {
	CreateMedicalSupply(ctx context.Context, payload *model.CreateMedicalSupplyRequest) (*model.MedicalSupply, error)
	GetMedicalSupply(ctx context.Context, id int64) (*model.MedicalSupply, error)
	ListMedicalSupplies(ctx context.Context, page model.Pagination) ([]model.MedicalSupply, error)
	UpdateMedicalSupply(ctx context.Context, id int64, patch model.MedicalSupplyPatch) (*model.MedicalSupply, error)
	DeleteMedicalSupply(ctx context.Context, id int64) (*model.MedicalSupply, error)
	SearchMedicalSupplies(ctx context.Context, criteria model.MedicalSupplySearch, page model.Pagination) ([]model.MedicalSupply, error)
}

// LowStockNotifier schedules a low-stock alert for a supply.
type LowStockNotifier interface {
	EnqueueLowStockAlert(ctx context.Context, supply *model.MedicalSupply) error
}

// DefaultAlertTimeout bounds how long a write waits on the job queue when
// enqueueing a low-stock alert.
const DefaultAlertTimeout = 2 * time.Second

type MedicalSupplyService struct {
	repo         MedicalSupplyRepository
	alerts       LowStockNotifier
	alertTimeout time.Duration
}

// NewMedicalSupplyService builds the service. alerts may be nil, which
// disables low-stock alerts.
func NewMedicalSupplyService(repo MedicalSupplyRepository, alerts LowStockNotifier) *MedicalSupplyService {
	return &MedicalSupplyService{repo: repo, alerts: alerts, alertTimeout: DefaultAlertTimeout}
}

// CreateMedicalSupply stores a new supply. A duplicate live code is
// rejected by the database's partial unique index, not checked here.
func (s *MedicalSupplyService) CreateMedicalSupply(ctx context.Context, payload *model.CreateMedicalSupplyRequest) (*model.MedicalSupply, error) {
	supply, err := s.repo.CreateMedicalSupply(ctx, payload)
	if err != nil {
		return nil, err
	}

	logFor(ctx).Info().
		Str("event", "medical_supply_created").
		Int64("supply_id", supply.ID).
		Str("code", supply.Code).
		Msg("medical supply created")

	s.checkStock(ctx, supply)
	return supply, nil
}

func (s *MedicalSupplyService) GetMedicalSupply(ctx context.Context, id int64) (*model.MedicalSupply, error) {
	return s.repo.GetMedicalSupply(ctx, id)
}

func (s *MedicalSupplyService) ListMedicalSupplies(ctx context.Context, page model.Pagination) ([]model.MedicalSupply, error) {
	return s.repo.ListMedicalSupplies(ctx, page)
}

func (s *MedicalSupplyService) UpdateMedicalSupply(ctx context.Context, payload *model.UpdateMedicalSupplyRequest) (*model.MedicalSupply, error) {
	supply, err := s.repo.UpdateMedicalSupply(ctx, payload.ID, payload.MedicalSupplyPatch)
	if err != nil {
		return nil, err
	}

	s.checkStock(ctx, supply)
	return supply, nil
}

func (s *MedicalSupplyService) DeleteMedicalSupply(ctx context.Context, id int64) (*model.MedicalSupply, error) {
	supply, err := s.repo.DeleteMedicalSupply(ctx, id)
	if err != nil {
		return nil, err
	}

	logFor(ctx).Info().
		Str("event", "medical_supply_deleted").
		Int64("supply_id", id).
		Msg("medical supply deleted")

	return supply, nil
}

func (s *MedicalSupplyService) SearchMedicalSupplies(ctx context.Context, payload *model.SearchMedicalSuppliesRequest) ([]model.MedicalSupply, error) {
	return s.repo.SearchMedicalSupplies(ctx, payload.MedicalSupplySearch, payload.Pagination)
}

// checkStock enqueues a low-stock alert when the stored supply is at or
// below its minimum level. Alerts are best effort: a failure is logged and
// never fails the write that triggered it.
func (s *MedicalSupplyService) checkStock(ctx context.Context, supply *model.MedicalSupply) {
	if s.alerts == nil || !supply.IsLowStock() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.alertTimeout)
	defer cancel()

	if err := s.alerts.EnqueueLowStockAlert(ctx, supply); err != nil {
		logFor(ctx).Warn().
			Err(err).
			Int64("supply_id", supply.ID).
			Msg("failed to enqueue low stock alert")
	}
}
