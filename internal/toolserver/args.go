package toolserver

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/deppfellow/registry/internal/errs"
	"github.com/deppfellow/registry/internal/model"
	"github.com/mark3labs/mcp-go/mcp"
)

// field describes one tool parameter.
type field struct {
	name        string
	kind        string // "string" or "number"
	description string
}

func (f field) option(required bool) mcp.ToolOption {
	var opts []mcp.PropertyOption
	opts = append(opts, mcp.Description(f.description))
	if required {
		opts = append(opts, mcp.Required())
	}

	if f.kind == "number" {
		return mcp.WithNumber(f.name, opts...)
	}
	return mcp.WithString(f.name, opts...)
}

func toolOptions(description string, fields []field, required ...string) []mcp.ToolOption {
	isRequired := make(map[string]bool, len(required))
	for _, r := range required {
		isRequired[r] = true
	}

	opts := []mcp.ToolOption{mcp.WithDescription(description)}
	for _, f := range fields {
		opts = append(opts, f.option(isRequired[f.name]))
	}
	return opts
}

var (
	idField    = field{"id", "number", "Record identifier"}
	pageFields = []field{
		{"skip", "number", "Number of records to skip (default 0)"},
		{"limit", "number", "Maximum number of records to return (default 10, at most 1000)"},
	}
)

// join concatenates field groups into a new slice.
func join(groups ...[]field) []field {
	var out []field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// decode re-encodes the tool arguments and decodes them into dst, so the
// JSON tags and Field presence tracking of the request types apply.
func decode(req mcp.CallToolRequest, dst any) error {
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return errs.NewBadRequestError("Invalid arguments", false, nil, nil, nil)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewBadRequestError(fmt.Sprintf("Invalid arguments: %v", err), false, nil, nil, nil)
	}
	return nil
}

// recordID reads the mandatory integer id argument.
func recordID(req mcp.CallToolRequest) (int64, error) {
	raw, ok := req.GetArguments()["id"]
	if !ok {
		return 0, errs.NewUnprocessableEntityError("Validation failed", []errs.FieldError{{Field: "id", Error: "is required"}})
	}

	id, ok := integer(raw)
	if !ok {
		return 0, errs.NewUnprocessableEntityError("Validation failed", []errs.FieldError{{Field: "id", Error: "must be an integer"}})
	}
	return id, nil
}

// page reads the optional skip and limit arguments; bounds are checked by
// the request's Validate.
func page(req mcp.CallToolRequest) (model.Pagination, error) {
	skip, err := optionalInt(req, "skip")
	if err != nil {
		return model.Pagination{}, err
	}
	limit, err := optionalInt(req, "limit")
	if err != nil {
		return model.Pagination{}, err
	}
	return model.Pagination{Skip: skip, Limit: limit}, nil
}

func optionalInt(req mcp.CallToolRequest, name string) (*int, error) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}

	n, ok := integer(raw)
	if !ok {
		return nil, errs.NewUnprocessableEntityError("Validation failed", []errs.FieldError{{Field: name, Error: "must be an integer"}})
	}
	v := int(n)
	return &v, nil
}

func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
