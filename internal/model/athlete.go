package model

import "github.com/deppfellow/registry/internal/validation"

// Athlete is a person in the athlete registry.
type Athlete struct {
	Base
	Name        string   `json:"name" db:"name"`
	Height      *float64 `json:"height" db:"height"`
	Weight      *float64 `json:"weight" db:"weight"`
	Description *string  `json:"description" db:"description"`
	SportEvent  *string  `json:"sport_event" db:"sport_event"`
	Age         *int32   `json:"age" db:"age"`
	Hometown    *string  `json:"hometown" db:"hometown"`
	Remarks     *string  `json:"remarks" db:"remarks"`
}

// CreateAthleteRequest carries the fields of a new athlete. Only the name
// is mandatory.
type CreateAthleteRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Height      *float64 `json:"height"`
	Weight      *float64 `json:"weight"`
	Description *string  `json:"description"`
	SportEvent  *string  `json:"sport_event"`
	Age         *int32   `json:"age"`
	Hometown    *string  `json:"hometown"`
	Remarks     *string  `json:"remarks"`
}

func (r *CreateAthleteRequest) Validate() error {
	return validate.Struct(r)
}

// Assignments returns every column of the new row; unset fields are NULL.
func (r *CreateAthleteRequest) Assignments() []Assignment {
	return []Assignment{
		{Column: "name", Value: r.Name},
		{Column: "height", Value: r.Height},
		{Column: "weight", Value: r.Weight},
		{Column: "description", Value: r.Description},
		{Column: "sport_event", Value: r.SportEvent},
		{Column: "age", Value: r.Age},
		{Column: "hometown", Value: r.Hometown},
		{Column: "remarks", Value: r.Remarks},
	}
}

// AthletePatch lists the athlete fields a partial update may touch.
type AthletePatch struct {
	Name        Field[string]  `json:"name"`
	Height      Field[float64] `json:"height"`
	Weight      Field[float64] `json:"weight"`
	Description Field[string]  `json:"description"`
	SportEvent  Field[string]  `json:"sport_event"`
	Age         Field[int32]   `json:"age"`
	Hometown    Field[string]  `json:"hometown"`
	Remarks     Field[string]  `json:"remarks"`
}

// Assignments returns the column updates for every field present in the
// patch, in column order.
func (p AthletePatch) Assignments() []Assignment {
	var a []Assignment
	a = appendField(a, "name", p.Name)
	a = appendField(a, "height", p.Height)
	a = appendField(a, "weight", p.Weight)
	a = appendField(a, "description", p.Description)
	a = appendField(a, "sport_event", p.SportEvent)
	a = appendField(a, "age", p.Age)
	a = appendField(a, "hometown", p.Hometown)
	a = appendField(a, "remarks", p.Remarks)
	return a
}

// UpdateAthleteRequest is a partial update of the athlete at {id}.
type UpdateAthleteRequest struct {
	ID int64 `param:"id" json:"-"`
	AthletePatch
}

func (r *UpdateAthleteRequest) Validate() error {
	var errs validation.CustomValidationErrors
	if r.Name.Null {
		errs = append(errs, validation.CustomValidationError{Field: "name", Message: "must not be null"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AthleteSearch is the set of athlete filters. Every field is optional and
// the populated ones are combined with AND.
type AthleteSearch struct {
	Name        *string `json:"name"`
	SportEvent  *string `json:"sport_event"`
	Hometown    *string `json:"hometown"`
	Description *string `json:"description"`
	Remarks     *string `json:"remarks"`

	MinAge    *int32   `json:"min_age"`
	MaxAge    *int32   `json:"max_age"`
	MinHeight *float64 `json:"min_height"`
	MaxHeight *float64 `json:"max_height"`
	MinWeight *float64 `json:"min_weight"`
	MaxWeight *float64 `json:"max_weight"`
}

// SearchAthletesRequest combines the body filters with the query-string
// pagination window.
type SearchAthletesRequest struct {
	AthleteSearch
	Pagination
}

func (r *SearchAthletesRequest) Validate() error {
	return validate.Struct(r)
}
