// Package model defines the registry's records and the request payloads
// used to create, update and search them.
package model

import (
	"time"

	"github.com/deppfellow/registry/internal/validation"
)

var validate = validation.NewValidator()

// Base holds the identity and audit columns shared by every record kind.
//
// Records are never physically removed: deletion sets IsDeleted and
// DeletedAt, after which the row is invisible to every read path.
type Base struct {
	ID        int64      `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" db:"deleted_at"`
	IsDeleted bool       `json:"is_deleted" db:"is_deleted"`
}
