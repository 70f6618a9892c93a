package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tmorrow/schoolmock/internal/app/models"
	"github.com/tmorrow/schoolmock/internal/db"
	"github.com/tmorrow/schoolmock/internal/pkg/apperrors"
	"github.com/tmorrow/schoolmock/internal/pkg/dberrors"
	"github.com/tmorrow/schoolmock/internal/pkg/helpers"
)

// Repository is the PostgreSQL-backed store for one entity kind. The
// descriptor supplies the table, sortable columns and relational edges, so a
// single implementation serves every entity. Each operation runs in its own
// transaction; nothing is held across requests.
type Repository[T any, PT models.RecordOf[T]] struct {
	db   *db.PostgresDB
	desc models.Descriptor
}

// NewRepository creates a store for the entity described by desc.
func NewRepository[T any, PT models.RecordOf[T]](database *db.PostgresDB, desc models.Descriptor) *Repository[T, PT] {
	return &Repository[T, PT]{
		db:   database,
		desc: desc,
	}
}

// columns returns the full select list: identity, timestamps, then the
// business columns in Fields order.
func (r *Repository[T, PT]) columns() []string {
	var zero T
	names, _ := PT(&zero).Fields()
	return append([]string{"id", "created_at", "updated_at"}, names...)
}

// List returns one page of the collection plus the total row count matching
// the filters. An unrecognized sort column is silently ignored and the rows
// come back in id order, the store's natural order.
func (r *Repository[T, PT]) List(ctx context.Context, p helpers.ListParams) ([]PT, int64, error) {
	where := ""
	args := []any{}
	if p.UpdatedAfter != nil {
		where = " WHERE updated_at > $1"
		args = append(args, *p.UpdatedAfter)
	}

	var total int64
	countQuery := "SELECT count(*) FROM " + r.desc.Table + where
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting %s rows: %w", r.desc.Name, err)
	}

	query := "SELECT " + strings.Join(r.columns(), ", ") + " FROM " + r.desc.Table + where +
		r.orderBy(p) + fmt.Sprintf(" LIMIT %d OFFSET %d", p.Limit, p.Offset)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing %s rows: %w", r.desc.Name, err)
	}
	recs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, 0, fmt.Errorf("error scanning %s rows: %w", r.desc.Name, err)
	}

	now := time.Now().UTC()
	items := make([]PT, 0, len(recs))
	for _, rec := range recs {
		pt := PT(rec)
		pt.Meta().RefreshFlags(now)
		items = append(items, pt)
	}
	return items, total, nil
}

// GetByID retrieves one record by id.
func (r *Repository[T, PT]) GetByID(ctx context.Context, id int64) (PT, error) {
	query := "SELECT " + strings.Join(r.columns(), ", ") + " FROM " + r.desc.Table + " WHERE id = $1"

	rows, err := r.db.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving %s: %w", r.desc.Name, err)
	}
	rec, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(r.desc.Name + " not found")
		}
		return nil, fmt.Errorf("error retrieving %s: %w", r.desc.Name, err)
	}

	pt := PT(rec)
	pt.Meta().RefreshFlags(time.Now().UTC())
	return pt, nil
}

// Create validates foreign keys, assigns an id and stamps both timestamps.
// The record is mutated in place with the server-assigned fields.
func (r *Repository[T, PT]) Create(ctx context.Context, rec PT) error {
	names, values := rec.Fields()

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.checkRefs(ctx, tx, names, values); err != nil {
			return err
		}

		now := time.Now().UTC()
		rec.Meta().Stamp(now)

		cols := append(append([]string{}, names...), "created_at", "updated_at")
		args := append(append([]any{}, values...), now, now)
		query := "INSERT INTO " + r.desc.Table + " (" + strings.Join(cols, ", ") + ")" +
			" VALUES (" + placeholders(len(args)) + ") RETURNING id"

		if err := tx.QueryRow(ctx, query, args...).Scan(&rec.Meta().ID); err != nil {
			return r.mapWriteError(err)
		}
		rec.Meta().RefreshFlags(now)
		return nil
	})
}

// Update replaces every business field of the record identified by
// rec.Meta().ID and refreshes updated_at. id and created_at are untouched.
func (r *Repository[T, PT]) Update(ctx context.Context, rec PT) error {
	names, values := rec.Fields()

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.checkRefs(ctx, tx, names, values); err != nil {
			return err
		}

		now := time.Now().UTC()
		assignments := make([]string, 0, len(names)+1)
		for i, name := range names {
			assignments = append(assignments, fmt.Sprintf("%s = $%d", name, i+1))
		}
		assignments = append(assignments, fmt.Sprintf("updated_at = $%d", len(names)+1))

		args := append(append([]any{}, values...), now, rec.Meta().ID)
		query := "UPDATE " + r.desc.Table + " SET " + strings.Join(assignments, ", ") +
			fmt.Sprintf(" WHERE id = $%d RETURNING created_at", len(args))

		if err := tx.QueryRow(ctx, query, args...).Scan(&rec.Meta().CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewResourceNotFoundError(r.desc.Name + " not found")
			}
			return r.mapWriteError(err)
		}
		rec.Meta().Touch(now)
		rec.Meta().RefreshFlags(now)
		return nil
	})
}

// Delete removes a record and returns it. Deletes are guarded: while
// dependent rows reference the record the delete is rejected with a
// conflict, so no orphaned foreign keys can appear.
func (r *Repository[T, PT]) Delete(ctx context.Context, id int64) (PT, error) {
	var deleted PT

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := "SELECT " + strings.Join(r.columns(), ", ") + " FROM " + r.desc.Table + " WHERE id = $1"
		rows, err := tx.Query(ctx, query, id)
		if err != nil {
			return fmt.Errorf("error retrieving %s: %w", r.desc.Name, err)
		}
		rec, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewResourceNotFoundError(r.desc.Name + " not found")
			}
			return fmt.Errorf("error retrieving %s: %w", r.desc.Name, err)
		}

		for _, dep := range r.desc.Dependents {
			var exists bool
			depQuery := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", dep.Table, dep.Column)
			if err := tx.QueryRow(ctx, depQuery, id).Scan(&exists); err != nil {
				return fmt.Errorf("error checking dependent rows: %w", err)
			}
			if exists {
				return apperrors.NewConflictError(
					fmt.Sprintf("%s is referenced by rows in %s and cannot be deleted", r.desc.Name, dep.Table))
			}
		}

		if _, err := tx.Exec(ctx, "DELETE FROM "+r.desc.Table+" WHERE id = $1", id); err != nil {
			return r.mapWriteError(err)
		}

		deleted = PT(rec)
		deleted.Meta().RefreshFlags(time.Now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// orderBy resolves the ORDER BY clause for a listing. Sorted listings carry
// id as a tiebreaker: without it rows sharing a sort key have no stable
// order across the independent page queries, and walking next links could
// duplicate or drop rows.
func (r *Repository[T, PT]) orderBy(p helpers.ListParams) string {
	col, ok := r.desc.SortColumn(p.Sort)
	if !ok {
		return " ORDER BY id"
	}
	clause := " ORDER BY " + col
	if p.Descending() {
		clause += " DESC"
	}
	return clause + ", id"
}

// checkRefs verifies every declared foreign key resolves to an existing
// parent row before a write is attempted.
func (r *Repository[T, PT]) checkRefs(ctx context.Context, tx pgx.Tx, names []string, values []any) error {
	for _, ref := range r.desc.Refs {
		id, ok := refValue(ref.Column, names, values)
		if !ok || id == 0 {
			continue
		}
		var exists bool
		query := "SELECT EXISTS(SELECT 1 FROM " + ref.Table + " WHERE id = $1)"
		if err := tx.QueryRow(ctx, query, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking %s reference: %w", ref.Column, err)
		}
		if !exists {
			return apperrors.NewValidationError(
				fmt.Sprintf("%s does not reference an existing %s", ref.Column, ref.Entity))
		}
	}
	return nil
}

// mapWriteError converts constraint failures the database reports into the
// application's error kinds.
func (r *Repository[T, PT]) mapWriteError(err error) error {
	switch {
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewResourceAlreadyExistsError(r.desc.Name + " already exists")
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewConflictError(r.desc.Name + " write violates a foreign-key constraint")
	case dberrors.IsCheckViolation(err):
		return apperrors.NewValidationError(r.desc.Name + " has a field outside its allowed values")
	default:
		return apperrors.NewStoreError(fmt.Sprintf("error writing %s: %v", r.desc.Name, err))
	}
}

// refValue looks up a foreign-key column's value among the business fields.
func refValue(column string, names []string, values []any) (int64, bool) {
	for i, name := range names {
		if name == column {
			if id, ok := values[i].(int64); ok {
				return id, true
			}
			return 0, false
		}
	}
	return 0, false
}

// placeholders renders "$1, $2, ..., $n".
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}
