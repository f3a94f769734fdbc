package service

import (
	"context"

	"github.com/deppfellow/registry/internal/model"
)

type mockAthleteRepository struct {
	CreateFn func(ctx context.Context, payload *model.CreateAthleteRequest) (*model.Athlete, error)
	GetFn    func(ctx context.Context, id int64) (*model.Athlete, error)
	ListFn   func(ctx context.Context, page model.Pagination) ([]model.Athlete, error)
	UpdateFn func(ctx context.Context, id int64, patch model.AthletePatch) (*model.Athlete, error)
	DeleteFn func(ctx context.Context, id int64) (*model.Athlete, error)
	SearchFn func(ctx context.Context, criteria model.AthleteSearch, page model.Pagination) ([]model.Athlete, error)
}

func (m *mockAthleteRepository) CreateAthlete(ctx context.Context, payload *model.CreateAthleteRequest) (*model.Athlete, error) {
	return m.CreateFn(ctx, payload)
}

func (m *mockAthleteRepository) GetAthlete(ctx context.Context, id int64) (*model.Athlete, error) {
	return m.GetFn(ctx, id)
}

func (m *mockAthleteRepository) ListAthletes(ctx context.Context, page model.Pagination) ([]model.Athlete, error) {
	return m.ListFn(ctx, page)
}

func (m *mockAthleteRepository) UpdateAthlete(ctx context.Context, id int64, patch model.AthletePatch) (*model.Athlete, error) {
	return m.UpdateFn(ctx, id, patch)
}

func (m *mockAthleteRepository) DeleteAthlete(ctx context.Context, id int64) (*model.Athlete, error) {
	return m.DeleteFn(ctx, id)
}

func (m *mockAthleteRepository) SearchAthletes(ctx context.Context, criteria model.AthleteSearch, page model.Pagination) ([]model.Athlete, error) {
	return m.SearchFn(ctx, criteria, page)
}

type mockMedicalSupplyRepository struct {
	CreateFn func(ctx context.Context, payload *model.CreateMedicalSupplyRequest) (*model.MedicalSupply, error)
	GetFn    func(ctx context.Context, id int64) (*model.MedicalSupply, error)
	ListFn   func(ctx context.Context, page model.Pagination) ([]model.MedicalSupply, error)
	UpdateFn func(ctx context.Context, id int64, patch model.MedicalSupplyPatch) (*model.MedicalSupply, error)
	DeleteFn func(ctx context.Context, id int64) (*model.MedicalSupply, error)
	SearchFn func(ctx context.Context, criteria model.MedicalSupplySearch, page model.Pagination) ([]model.MedicalSupply, error)
}

func (m *mockMedicalSupplyRepository) CreateMedicalSupply(ctx context.Context, payload *model.CreateMedicalSupplyRequest) (*model.MedicalSupply, error) {
	return m.CreateFn(ctx, payload)
}

func (m *mockMedicalSupplyRepository) GetMedicalSupply(ctx context.Context, id int64) (*model.MedicalSupply, error) {
	return m.GetFn(ctx, id)
}

func (m *mockMedicalSupplyRepository) ListMedicalSupplies(ctx context.Context, page model.Pagination) ([]model.MedicalSupply, error) {
	return m.ListFn(ctx, page)
}

func (m *mockMedicalSupplyRepository) UpdateMedicalSupply(ctx context.Context, id int64, patch model.MedicalSupplyPatch) (*model.MedicalSupply, error) {
	return m.UpdateFn(ctx, id, patch)
}

func (m *mockMedicalSupplyRepository) DeleteMedicalSupply(ctx context.Context, id int64) (*model.MedicalSupply, error) {
	return m.DeleteFn(ctx, id)
}

func (m *mockMedicalSupplyRepository) SearchMedicalSupplies(ctx context.Context, criteria model.MedicalSupplySearch, page model.Pagination) ([]model.MedicalSupply, error) {
	return m.SearchFn(ctx, criteria, page)
}

type mockNotifier struct {
	err      error
	supplies []int64
	// block makes the enqueue wait until its context is done.
	block bool
}

func (m *mockNotifier) EnqueueLowStockAlert(ctx context.Context, supply *model.MedicalSupply) error {
	m.supplies = append(m.supplies, supply.ID)
	if m.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return m.err
}
