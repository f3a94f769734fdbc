// Package repository is the data-access layer. Each record kind has a
// repository that issues one SQL statement per operation through pgx.
package repository

import (
	"context"

	"github.com/deppfellow/registry/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories groups every repository so they can be wired in one place.
type Repositories struct {
	Athlete       *AthleteRepository
	MedicalSupply *MedicalSupplyRepository
}

// NewRepositories builds the repositories on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Athlete:       NewAthleteRepository(s.DB.Pool, s.Config.Search.AthleteZeroBoundAbsent),
		MedicalSupply: NewMedicalSupplyRepository(s.DB.Pool),
	}
}
