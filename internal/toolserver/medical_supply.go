package toolserver

import (
	"context"

	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/validation"
	"github.com/mark3labs/mcp-go/mcp"
)

var medicalSupplyFields = []field{
	{"name", "string", "Supply name"},
	{"code", "string", "Unique supply code"},
	{"category", "string", "Category"},
	{"specification", "string", "Specification, e.g. size or strength"},
	{"manufacturer", "string", "Manufacturer"},
	{"unit", "string", "Unit of measure"},
	{"unit_price", "number", "Price per unit"},
	{"stock_quantity", "number", "Units in stock"},
	{"min_stock_level", "number", "Stock level that triggers a low-stock alert"},
	{"expiry_date", "string", "Expiry date, YYYY-MM-DD"},
	{"batch_number", "string", "Batch number"},
	{"storage_location", "string", "Storage location"},
	{"description", "string", "Free-form description"},
	{"remarks", "string", "Remarks"},
}

var medicalSupplyFilters = []field{
	{"name", "string", "Name contains (case-insensitive)"},
	{"code", "string", "Code contains"},
	{"category", "string", "Category contains"},
	{"specification", "string", "Specification contains"},
	{"manufacturer", "string", "Manufacturer contains"},
	{"storage_location", "string", "Storage location contains"},
	{"batch_number", "string", "Batch number contains"},
	{"description", "string", "Description contains"},
	{"remarks", "string", "Remarks contains"},
	{"min_price", "number", "Minimum unit price, inclusive"},
	{"max_price", "number", "Maximum unit price, inclusive"},
	{"min_stock", "number", "Minimum stock quantity, inclusive"},
	{"max_stock", "number", "Maximum stock quantity, inclusive"},
	{"min_expiry_date", "string", "Earliest expiry date, YYYY-MM-DD, inclusive"},
	{"max_expiry_date", "string", "Latest expiry date, YYYY-MM-DD, inclusive"},
}

func (t *ToolServer) registerMedicalSupplyTools() {
	supplies := t.services.MedicalSupply

	t.add(mcp.NewTool("create_medical_supply",
		toolOptions("Create a medical supply. The code must not already be in use.", medicalSupplyFields, "name", "code")...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		var payload model.CreateMedicalSupplyRequest
		if err := decode(req, &payload); err != nil {
			return nil, err
		}
		if err := validation.Validate(&payload); err != nil {
			return nil, err
		}
		return supplies.CreateMedicalSupply(ctx, &payload)
	})

	t.add(mcp.NewTool("list_medical_supplies",
		toolOptions("List medical supplies ordered by id.", pageFields)...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		p, err := page(req)
		if err != nil {
			return nil, err
		}
		payload := model.ListRequest{Pagination: p}
		if err := validation.Validate(&payload); err != nil {
			return nil, err
		}
		return supplies.ListMedicalSupplies(ctx, payload.Pagination)
	})

	t.add(mcp.NewTool("get_medical_supply",
		toolOptions("Get one medical supply by id.", []field{idField}, "id")...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		id, err := recordID(req)
		if err != nil {
			return nil, err
		}
		return supplies.GetMedicalSupply(ctx, id)
	})

	t.add(mcp.NewTool("update_medical_supply",
		toolOptions("Update a medical supply. Only the supplied fields change; null clears a field.",
			join([]field{idField}, medicalSupplyFields), "id")...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		id, err := recordID(req)
		if err != nil {
			return nil, err
		}
		var payload model.UpdateMedicalSupplyRequest
		if err := decode(req, &payload); err != nil {
			return nil, err
		}
		payload.ID = id
		if err := validation.Validate(&payload); err != nil {
			return nil, err
		}
		return supplies.UpdateMedicalSupply(ctx, &payload)
	})

	t.add(mcp.NewTool("delete_medical_supply",
		toolOptions("Delete a medical supply. Returns the deleted record.", []field{idField}, "id")...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		id, err := recordID(req)
		if err != nil {
			return nil, err
		}
		return supplies.DeleteMedicalSupply(ctx, id)
	})

	t.add(mcp.NewTool("search_medical_supplies",
		toolOptions("Search medical supplies. Text filters match substrings, range filters are inclusive, and all supplied filters must hold.",
			join(medicalSupplyFilters, pageFields))...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		var payload model.SearchMedicalSuppliesRequest
		if err := decode(req, &payload); err != nil {
			return nil, err
		}
		p, err := page(req)
		if err != nil {
			return nil, err
		}
		payload.Pagination = p
		if err := validation.Validate(&payload); err != nil {
			return nil, err
		}
		return supplies.SearchMedicalSupplies(ctx, &payload)
	})
}
