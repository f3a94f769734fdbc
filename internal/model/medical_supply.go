package model

import "github.com/deppfellow/registry/internal/validation"

// MedicalSupply is an item of the medical-supply inventory. Code is unique
// among supplies that have not been deleted.
type MedicalSupply struct {
	Base
	Name            string   `json:"name" db:"name"`
	Code            string   `json:"code" db:"code"`
	Category        *string  `json:"category" db:"category"`
	Specification   *string  `json:"specification" db:"specification"`
	Manufacturer    *string  `json:"manufacturer" db:"manufacturer"`
	Unit            *string  `json:"unit" db:"unit"`
	UnitPrice       *float64 `json:"unit_price" db:"unit_price"`
	StockQuantity   *int32   `json:"stock_quantity" db:"stock_quantity"`
	MinStockLevel   *int32   `json:"min_stock_level" db:"min_stock_level"`
	ExpiryDate      *Date    `json:"expiry_date" db:"expiry_date"`
	BatchNumber     *string  `json:"batch_number" db:"batch_number"`
	StorageLocation *string  `json:"storage_location" db:"storage_location"`
	Description     *string  `json:"description" db:"description"`
	Remarks         *string  `json:"remarks" db:"remarks"`
}

// IsLowStock reports whether the stock has fallen to or below the minimum
// level. Supplies missing either value are never low.
func (m *MedicalSupply) IsLowStock() bool {
	if m.StockQuantity == nil || m.MinStockLevel == nil {
		return false
	}
	return *m.StockQuantity <= *m.MinStockLevel
}

// CreateMedicalSupplyRequest carries the fields of a new supply. Name and
// code are mandatory.
type CreateMedicalSupplyRequest struct {
	Name            *string  `json:"name" validate:"required"`
	Code            *string  `json:"code" validate:"required,min=1"`
	Category        *string  `json:"category"`
	Specification   *string  `json:"specification"`
	Manufacturer    *string  `json:"manufacturer"`
	Unit            *string  `json:"unit"`
	UnitPrice       *float64 `json:"unit_price"`
	StockQuantity   *int32   `json:"stock_quantity"`
	MinStockLevel   *int32   `json:"min_stock_level"`
	ExpiryDate      *Date    `json:"expiry_date"`
	BatchNumber     *string  `json:"batch_number"`
	StorageLocation *string  `json:"storage_location"`
	Description     *string  `json:"description"`
	Remarks         *string  `json:"remarks"`
}

func (r *CreateMedicalSupplyRequest) Validate() error {
	return validate.Struct(r)
}

// Assignments returns every column of the new row; unset fields are NULL.
func (r *CreateMedicalSupplyRequest) Assignments() []Assignment {
	return []Assignment{
		{Column: "name", Value: r.Name},
		{Column: "code", Value: r.Code},
		{Column: "category", Value: r.Category},
		{Column: "specification", Value: r.Specification},
		{Column: "manufacturer", Value: r.Manufacturer},
		{Column: "unit", Value: r.Unit},
		{Column: "unit_price", Value: r.UnitPrice},
		{Column: "stock_quantity", Value: r.StockQuantity},
		{Column: "min_stock_level", Value: r.MinStockLevel},
		{Column: "expiry_date", Value: r.ExpiryDate},
		{Column: "batch_number", Value: r.BatchNumber},
		{Column: "storage_location", Value: r.StorageLocation},
		{Column: "description", Value: r.Description},
		{Column: "remarks", Value: r.Remarks},
	}
}

// MedicalSupplyPatch lists the supply fields a partial update may touch.
type MedicalSupplyPatch struct {
	Name            Field[string]  `json:"name"`
	Code            Field[string]  `json:"code"`
	Category        Field[string]  `json:"category"`
	Specification   Field[string]  `json:"specification"`
	Manufacturer    Field[string]  `json:"manufacturer"`
	Unit            Field[string]  `json:"unit"`
	UnitPrice       Field[float64] `json:"unit_price"`
	StockQuantity   Field[int32]   `json:"stock_quantity"`
	MinStockLevel   Field[int32]   `json:"min_stock_level"`
	ExpiryDate      Field[Date]    `json:"expiry_date"`
	BatchNumber     Field[string]  `json:"batch_number"`
	StorageLocation Field[string]  `json:"storage_location"`
	Description     Field[string]  `json:"description"`
	Remarks         Field[string]  `json:"remarks"`
}

// Assignments returns the column updates for every field present in the
// patch, in column order.
func (p MedicalSupplyPatch) Assignments() []Assignment {
	var a []Assignment
	a = appendField(a, "name", p.Name)
	a = appendField(a, "code", p.Code)
	a = appendField(a, "category", p.Category)
	a = appendField(a, "specification", p.Specification)
	a = appendField(a, "manufacturer", p.Manufacturer)
	a = appendField(a, "unit", p.Unit)
	a = appendField(a, "unit_price", p.UnitPrice)
	a = appendField(a, "stock_quantity", p.StockQuantity)
	a = appendField(a, "min_stock_level", p.MinStockLevel)
	a = appendField(a, "expiry_date", p.ExpiryDate)
	a = appendField(a, "batch_number", p.BatchNumber)
	a = appendField(a, "storage_location", p.StorageLocation)
	a = appendField(a, "description", p.Description)
	a = appendField(a, "remarks", p.Remarks)
	return a
}

// UpdateMedicalSupplyRequest is a partial update of the supply at {id}.
type UpdateMedicalSupplyRequest struct {
	ID int64 `param:"id" json:"-"`
	MedicalSupplyPatch
}

func (r *UpdateMedicalSupplyRequest) Validate() error {
	var errs validation.CustomValidationErrors
	if r.Name.Null {
		errs = append(errs, validation.CustomValidationError{Field: "name", Message: "must not be null"})
	}
	if r.Code.Null {
		errs = append(errs, validation.CustomValidationError{Field: "code", Message: "must not be null"})
	} else if r.Code.Set && r.Code.Value == "" {
		errs = append(errs, validation.CustomValidationError{Field: "code", Message: "must not be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MedicalSupplySearch is the set of supply filters. Every field is optional
// and the populated ones are combined with AND. Range bounds are inclusive.
type MedicalSupplySearch struct {
	Name            *string `json:"name"`
	Code            *string `json:"code"`
	Category        *string `json:"category"`
	Specification   *string `json:"specification"`
	Manufacturer    *string `json:"manufacturer"`
	StorageLocation *string `json:"storage_location"`
	BatchNumber     *string `json:"batch_number"`
	Description     *string `json:"description"`
	Remarks         *string `json:"remarks"`

	MinPrice      *float64 `json:"min_price"`
	MaxPrice      *float64 `json:"max_price"`
	MinStock      *int32   `json:"min_stock"`
	MaxStock      *int32   `json:"max_stock"`
	MinExpiryDate *Date    `json:"min_expiry_date"`
	MaxExpiryDate *Date    `json:"max_expiry_date"`
}

// SearchMedicalSuppliesRequest combines the body filters with the
// query-string pagination window.
type SearchMedicalSuppliesRequest struct {
	MedicalSupplySearch
	Pagination
}

func (r *SearchMedicalSuppliesRequest) Validate() error {
	return validate.Struct(r)
}
