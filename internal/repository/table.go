package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/search"
	"github.com/deppfellow/registry/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// table implements the statements both record kinds share. T is the row
// type; its db tags must match columns.
type table[T any] struct {
	db      DBTX
	name    string
	columns string
}

func (t table[T]) collectOne(rows pgx.Rows, err error, op string) (*T, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s %s query: %w", op, t.name, err)
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, sqlerr.WrapNoRows(t.name, err)
	}
	return &record, nil
}

func (t table[T]) collectMany(rows pgx.Rows, err error, op string) ([]T, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s %s query: %w", op, t.name, err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s rows: %w", t.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (t table[T]) get(ctx context.Context, id int64) (*T, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE id = @id AND is_deleted = false", t.columns, t.name)
	rows, err := t.db.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	return t.collectOne(rows, err, "get")
}

func (t table[T]) list(ctx context.Context, skip, limit int) ([]T, error) {
	return t.search(ctx, search.New(), skip, limit)
}

func (t table[T]) search(ctx context.Context, b *search.Builder, skip, limit int) ([]T, error) {
	stmt, args := b.Query(t.name, t.columns, skip, limit)
	rows, err := t.db.Query(ctx, stmt, args)
	return t.collectMany(rows, err, "search")
}

func (t table[T]) insert(ctx context.Context, assignments []model.Assignment) (*T, error) {
	stmt, args := buildInsert(t.name, t.columns, assignments)
	rows, err := t.db.Query(ctx, stmt, args)
	return t.collectOne(rows, err, "insert")
}

func (t table[T]) update(ctx context.Context, id int64, assignments []model.Assignment) (*T, error) {
	stmt, args := buildUpdate(t.name, t.columns, id, assignments)
	rows, err := t.db.Query(ctx, stmt, args)
	return t.collectOne(rows, err, "update")
}

func (t table[T]) softDelete(ctx context.Context, id int64) (*T, error) {
	stmt := fmt.Sprintf(
		"UPDATE %s SET is_deleted = true, deleted_at = now(), updated_at = now() WHERE id = @id AND is_deleted = false RETURNING %s",
		t.name, t.columns,
	)
	rows, err := t.db.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	return t.collectOne(rows, err, "delete")
}

// buildInsert renders an INSERT of every assignment returning columns.
func buildInsert(tableName, columns string, assignments []model.Assignment) (string, pgx.NamedArgs) {
	names := make([]string, 0, len(assignments))
	placeholders := make([]string, 0, len(assignments))
	args := pgx.NamedArgs{}

	for _, a := range assignments {
		names = append(names, a.Column)
		placeholders = append(placeholders, "@"+a.Column)
		args[a.Column] = a.Value
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		tableName, strings.Join(names, ", "), strings.Join(placeholders, ", "), columns,
	), args
}

// buildUpdate renders an UPDATE of the live row id that writes only the
// given assignments and always bumps updated_at.
func buildUpdate(tableName, columns string, id int64, assignments []model.Assignment) (string, pgx.NamedArgs) {
	sets := make([]string, 0, len(assignments)+1)
	args := pgx.NamedArgs{"id": id}

	for _, a := range assignments {
		sets = append(sets, fmt.Sprintf("%s = @%s", a.Column, a.Column))
		args[a.Column] = a.Value
	}
	sets = append(sets, "updated_at = now()")

	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = @id AND is_deleted = false RETURNING %s",
		tableName, strings.Join(sets, ", "), columns,
	), args
}
