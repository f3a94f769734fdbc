package toolserver

import (
	"context"

	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/validation"
	"github.com/mark3labs/mcp-go/mcp"
)

var athleteFields = []field{
	{"name", "string", "Full name"},
	{"height", "number", "Height in metres"},
	{"weight", "number", "Weight in kilograms"},
	{"description", "string", "Free-form description"},
	{"sport_event", "string", "Sport or event the athlete competes in"},
	{"age", "number", "Age in years"},
	{"hometown", "string", "Hometown"},
	{"remarks", "string", "Remarks"},
}

var athleteFilters = []field{
	{"name", "string", "Name contains (case-insensitive)"},
	{"sport_event", "string", "Sport event contains"},
	{"hometown", "string", "Hometown contains"},
	{"description", "string", "Description contains"},
	{"remarks", "string", "Remarks contains"},
	{"min_age", "number", "Minimum age, inclusive"},
	{"max_age", "number", "Maximum age, inclusive"},
	{"min_height", "number", "Minimum height, inclusive"},
	{"max_height", "number", "Maximum height, inclusive"},
	{"min_weight", "number", "Minimum weight, inclusive"},
	{"max_weight", "number", "Maximum weight, inclusive"},
}

func (t *ToolServer) registerAthleteTools() {
	athletes := t.services.Athlete

	t.add(mcp.NewTool("create_athlete",
		toolOptions("Create an athlete. Returns the stored record.", athleteFields, "name")...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		var payload model.CreateAthleteRequest
		if err := decode(req, &payload); err != nil {
			return nil, err
		}
		if err := validation.Validate(&payload); err != nil {
			return nil, err
		}
		return athletes.CreateAthlete(ctx, &payload)
	})

	t.add(mcp.NewTool("list_athletes",
		toolOptions("List athletes ordered by id.", pageFields)...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		p, err := page(req)
		if err != nil {
			return nil, err
		}
		payload := model.ListRequest{Pagination: p}
		if err := validation.Validate(&payload); err != nil {
			return nil, err
		}
		return athletes.ListAthletes(ctx, payload.Pagination)
	})

	t.add(mcp.NewTool("get_athlete",
		toolOptions("Get one athlete by id.", []field{idField}, "id")...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		id, err := recordID(req)
		if err != nil {
			return nil, err
		}
		return athletes.GetAthlete(ctx, id)
	})

	t.add(mcp.NewTool("update_athlete",
		toolOptions("Update an athlete. Only the supplied fields change; null clears a field.",
			join([]field{idField}, athleteFields), "id")...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		id, err := recordID(req)
		if err != nil {
			return nil, err
		}
		var payload model.UpdateAthleteRequest
		if err := decode(req, &payload); err != nil {
			return nil, err
		}
		payload.ID = id
		if err := validation.Validate(&payload); err != nil {
			return nil, err
		}
		return athletes.UpdateAthlete(ctx, &payload)
	})

	t.add(mcp.NewTool("delete_athlete",
		toolOptions("Delete an athlete. Returns the deleted record.", []field{idField}, "id")...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		id, err := recordID(req)
		if err != nil {
			return nil, err
		}
		return athletes.DeleteAthlete(ctx, id)
	})

	t.add(mcp.NewTool("search_athletes",
		toolOptions("Search athletes. Text filters match substrings, range filters are inclusive, and all supplied filters must hold.",
			join(athleteFilters, pageFields))...,
	), func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
		var payload model.SearchAthletesRequest
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
		return athletes.SearchAthletes(ctx, &payload)
	})
}
