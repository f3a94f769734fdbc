package model

const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

// Pagination is the skip/limit window applied to list and search results.
// Both halves come from the query string; omitted values fall back to
// skip=0 and limit=DefaultLimit.
type Pagination struct {
	Skip  *int `query:"skip" json:"-" validate:"omitempty,min=0"`
	Limit *int `query:"limit" json:"-" validate:"omitempty,min=0,max=1000"`
}

// Offset returns the number of records to skip.
func (p Pagination) Offset() int {
	if p.Skip == nil {
		return 0
	}
	return *p.Skip
}

// Size returns the maximum number of records to return.
func (p Pagination) Size() int {
	if p.Limit == nil {
		return DefaultLimit
	}
	return *p.Limit
}

// Page builds a Pagination from plain values.
func Page(skip, limit int) Pagination {
	return Pagination{Skip: &skip, Limit: &limit}
}

// ListRequest is the payload of the list operations.
type ListRequest struct {
	Pagination
}

func (r *ListRequest) Validate() error {
	return validate.Struct(r)
}

// IDRequest addresses a single record through the {id} path segment.
type IDRequest struct {
	ID int64 `param:"id" json:"id"`
}

func (r *IDRequest) Validate() error {
	return nil
}
