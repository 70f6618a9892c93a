package repositories

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/tmorrow/schoolmock/internal/app/models"
	"github.com/tmorrow/schoolmock/internal/pkg/apperrors"
	"github.com/tmorrow/schoolmock/internal/pkg/helpers"
)

// MemoryDB is the embedded storage backend selected with
// database.driver "memory". It keeps every table in process memory and
// mirrors the semantics of the PostgreSQL stores (assigned ids, guarded
// deletes, resolved foreign keys), which also makes it the backend the
// handler tests run against.
type MemoryDB struct {
	mu     sync.RWMutex
	tables map[string]*memTable
}

type memTable struct {
	rows   map[int64]models.Record
	order  []int64
	nextID int64
}

// NewMemoryDB creates an empty in-memory backend.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{tables: make(map[string]*memTable)}
}

// Reset drops every table, leaving the backend as if freshly created.
func (m *MemoryDB) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = make(map[string]*memTable)
	return nil
}

func (m *MemoryDB) table(name string) *memTable {
	t, ok := m.tables[name]
	if !ok {
		t = &memTable{rows: make(map[int64]models.Record)}
		m.tables[name] = t
	}
	return t
}

// Insert stores a record keeping its pre-set timestamps and returns the
// assigned id. The seed loader uses it to preserve generated created_at
// values; API writes go through MemoryStore instead.
func (m *MemoryDB) Insert(tableName string, rec models.Record) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(tableName, rec)
}

func (m *MemoryDB) insertLocked(tableName string, rec models.Record) int64 {
	t := m.table(tableName)
	t.nextID++
	rec.Meta().ID = t.nextID
	t.rows[t.nextID] = rec
	t.order = append(t.order, t.nextID)
	return t.nextID
}

func (m *MemoryDB) existsLocked(tableName string, id int64) bool {
	t, ok := m.tables[tableName]
	if !ok {
		return false
	}
	_, ok = t.rows[id]
	return ok
}

func (m *MemoryDB) hasDependentsLocked(dep models.Dependent, id int64) bool {
	t, ok := m.tables[dep.Table]
	if !ok {
		return false
	}
	for _, row := range t.rows {
		if v, ok := fieldByColumn(row, dep.Column); ok {
			if fk, ok := v.(int64); ok && fk == id {
				return true
			}
		}
	}
	return false
}

// MemoryStore adapts MemoryDB to the per-entity store contract.
type MemoryStore[T any, PT models.RecordOf[T]] struct {
	db   *MemoryDB
	desc models.Descriptor
}

// NewMemoryStore creates an in-memory store for the entity described by desc.
func NewMemoryStore[T any, PT models.RecordOf[T]](database *MemoryDB, desc models.Descriptor) *MemoryStore[T, PT] {
	return &MemoryStore[T, PT]{
		db:   database,
		desc: desc,
	}
}

// List mirrors the SQL store: filter by updated_after, sort on a
// whitelisted column (insertion order otherwise), then slice offset/limit.
// Total counts the filtered rows before pagination.
func (s *MemoryStore[T, PT]) List(ctx context.Context, p helpers.ListParams) ([]PT, int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	filtered := make([]PT, 0)
	if t, ok := s.db.tables[s.desc.Table]; ok {
		for _, id := range t.order {
			rec, ok := t.rows[id]
			if !ok {
				continue
			}
			if p.UpdatedAfter != nil && !rec.Meta().UpdatedAt.After(*p.UpdatedAfter) {
				continue
			}
			filtered = append(filtered, s.clone(rec))
		}
	}

	if col, ok := s.desc.SortColumn(p.Sort); ok {
		desc := p.Descending()
		sort.SliceStable(filtered, func(i, j int) bool {
			a, _ := fieldByColumn(filtered[i], col)
			b, _ := fieldByColumn(filtered[j], col)
			if desc {
				return lessValue(b, a)
			}
			return lessValue(a, b)
		})
	}

	total := int64(len(filtered))

	start := p.Offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + p.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	now := time.Now().UTC()
	items := make([]PT, 0, end-start)
	for _, rec := range filtered[start:end] {
		rec.Meta().RefreshFlags(now)
		items = append(items, rec)
	}
	return items, total, nil
}

// GetByID retrieves one record by id.
func (s *MemoryStore[T, PT]) GetByID(ctx context.Context, id int64) (PT, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	rec, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}
	cp := s.clone(rec)
	cp.Meta().RefreshFlags(time.Now().UTC())
	return cp, nil
}

// Create validates foreign keys, assigns an id and stamps both timestamps.
func (s *MemoryStore[T, PT]) Create(ctx context.Context, rec PT) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	names, values := rec.Fields()
	if err := s.checkRefsLocked(names, values); err != nil {
		return err
	}

	now := time.Now().UTC()
	rec.Meta().Stamp(now)
	rec.Meta().RefreshFlags(now)
	rec.Meta().ID = s.db.insertLocked(s.desc.Table, s.clone(rec))
	return nil
}

// Update replaces the business fields of an existing record, keeping id and
// created_at and refreshing updated_at.
func (s *MemoryStore[T, PT]) Update(ctx context.Context, rec PT) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, err := s.getLocked(rec.Meta().ID)
	if err != nil {
		return err
	}

	names, values := rec.Fields()
	if err := s.checkRefsLocked(names, values); err != nil {
		return err
	}

	now := time.Now().UTC()
	rec.Meta().CreatedAt = stored.Meta().CreatedAt
	rec.Meta().Touch(now)
	rec.Meta().RefreshFlags(now)
	s.db.table(s.desc.Table).rows[rec.Meta().ID] = s.clone(rec)
	return nil
}

// Delete removes a record and returns it, rejecting the delete with a
// conflict while dependent rows still reference it.
func (s *MemoryStore[T, PT]) Delete(ctx context.Context, id int64) (PT, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}

	for _, dep := range s.desc.Dependents {
		if s.db.hasDependentsLocked(dep, id) {
			return nil, apperrors.NewConflictError(
				fmt.Sprintf("%s is referenced by rows in %s and cannot be deleted", s.desc.Name, dep.Table))
		}
	}

	t := s.db.table(s.desc.Table)
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	cp := s.clone(stored)
	cp.Meta().RefreshFlags(time.Now().UTC())
	return cp, nil
}

func (s *MemoryStore[T, PT]) getLocked(id int64) (PT, error) {
	t, ok := s.db.tables[s.desc.Table]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(s.desc.Name + " not found")
	}
	rec, ok := t.rows[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(s.desc.Name + " not found")
	}
	return rec.(PT), nil
}

func (s *MemoryStore[T, PT]) checkRefsLocked(names []string, values []any) error {
	for _, ref := range s.desc.Refs {
		id, ok := refValue(ref.Column, names, values)
		if !ok || id == 0 {
			continue
		}
		if !s.db.existsLocked(ref.Table, id) {
			return apperrors.NewValidationError(
				fmt.Sprintf("%s does not reference an existing %s", ref.Column, ref.Entity))
		}
	}
	return nil
}

// clone copies a record so callers never share memory with stored rows.
func (s *MemoryStore[T, PT]) clone(rec models.Record) PT {
	cp := *(*T)(rec.(PT))
	return PT(&cp)
}

// fieldByColumn resolves a struct field by its db tag, walking embedded
// structs, so sorting and dependent checks work off column names.
func fieldByColumn(rec any, column string) (any, bool) {
	v := reflect.ValueOf(rec)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return structFieldByTag(v, column)
}

func structFieldByTag(v reflect.Value, column string) (any, bool) {
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			if val, ok := structFieldByTag(v.Field(i), column); ok {
				return val, ok
			}
			continue
		}
		if field.Tag.Get("db") == column {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// lessValue orders the field types the entities use for sorting.
func lessValue(a, b any) bool {
	switch av := a.(type) {
	case int64:
		bv, _ := b.(int64)
		return av < bv
	case int:
		bv, _ := b.(int)
		return av < bv
	case string:
		bv, _ := b.(string)
		return av < bv
	case bool:
		bv, _ := b.(bool)
		return !av && bv
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Before(bv)
	case models.Date:
		bv, _ := b.(models.Date)
		return av.Before(bv.Time)
	case *models.Date:
		bv, _ := b.(*models.Date)
		if av == nil {
			return bv != nil
		}
		if bv == nil {
			return false
		}
		return av.Before(bv.Time)
	default:
		return false
	}
}
