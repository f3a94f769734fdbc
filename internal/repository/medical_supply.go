package repository

import (
	"context"

	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/search"
)

const medicalSupplyColumns = "id, name, code, category, specification, manufacturer, unit, unit_price, " +
	"stock_quantity, min_stock_level, expiry_date, batch_number, storage_location, description, remarks, " +
	"created_at, updated_at, deleted_at, is_deleted"

type MedicalSupplyRepository struct {
	table table[model.MedicalSupply]
}

func NewMedicalSupplyRepository(db DBTX) *MedicalSupplyRepository {
	return &MedicalSupplyRepository{
		table: table[model.MedicalSupply]{db: db, name: "medical_supplies", columns: medicalSupplyColumns},
	}
}

func (r *MedicalSupplyRepository) CreateMedicalSupply(ctx context.Context, payload *model.CreateMedicalSupplyRequest) (*model.MedicalSupply, error) {
	return r.table.insert(ctx, payload.Assignments())
}

func (r *MedicalSupplyRepository) GetMedicalSupply(ctx context.Context, id int64) (*model.MedicalSupply, error) {
	return r.table.get(ctx, id)
}

func (r *MedicalSupplyRepository) ListMedicalSupplies(ctx context.Context, page model.Pagination) ([]model.MedicalSupply, error) {
	return r.table.list(ctx, page.Offset(), page.Size())
}

func (r *MedicalSupplyRepository) UpdateMedicalSupply(ctx context.Context, id int64, patch model.MedicalSupplyPatch) (*model.MedicalSupply, error) {
	return r.table.update(ctx, id, patch.Assignments())
}

func (r *MedicalSupplyRepository) DeleteMedicalSupply(ctx context.Context, id int64) (*model.MedicalSupply, error) {
	return r.table.softDelete(ctx, id)
}

func (r *MedicalSupplyRepository) SearchMedicalSupplies(ctx context.Context, criteria model.MedicalSupplySearch, page model.Pagination) ([]model.MedicalSupply, error) {
	return r.table.search(ctx, medicalSupplyPredicate(criteria), page.Offset(), page.Size())
}

// Zero bounds are real bounds here: a max_stock of 0 finds the supplies
// that ran out.
func medicalSupplyPredicate(c model.MedicalSupplySearch) *search.Builder {
	b := search.New().
		Contains("name", c.Name).
		Contains("code", c.Code).
		Contains("category", c.Category).
		Contains("specification", c.Specification).
		Contains("manufacturer", c.Manufacturer).
		Contains("storage_location", c.StorageLocation).
		Contains("batch_number", c.BatchNumber).
		Contains("description", c.Description).
		Contains("remarks", c.Remarks)

	search.Range(b, "unit_price", c.MinPrice, c.MaxPrice)
	search.Range(b, "stock_quantity", c.MinStock, c.MaxStock)
	search.Range(b, "expiry_date", c.MinExpiryDate, c.MaxExpiryDate)
	return b
}
