package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"gitlab.com/forgefit/gymcore/internal/infrastructure/metrics"
)

// ErrNoRows reports that a Get matched nothing. Callers translate it into
// their own not-found sentinel.
var ErrNoRows = errors.New("record not found")

// SQLAdapter builds and runs squirrel queries for the simple CRUD tables.
// Queries use the Postgres $n placeholder format.
type SQLAdapter struct {
	DB *sqlx.DB
}

func NewSQLAdapter(db *sqlx.DB) *SQLAdapter {
	return &SQLAdapter{DB: db}
}

// Condition narrows a query to rows matching all column/value pairs.
type Condition struct {
	Equal sq.Eq
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Create inserts the entity's non-zero db-tagged fields into tableName.
func (a *SQLAdapter) Create(ctx context.Context, entity interface{}, tableName string) error {
	data := toMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no data to insert")
	}

	query, args, err := psql.Insert(tableName).SetMap(data).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	start := time.Now()
	_, err = a.DB.ExecContext(ctx, query, args...)
	metrics.ObserveDBRequest("insert:"+tableName, time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

// Update overwrites the entity's non-zero db-tagged fields on rows matching
// the condition.
func (a *SQLAdapter) Update(ctx context.Context, entity interface{}, tableName string, condition Condition) error {
	data := toMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no data to update")
	}

	query, args, err := psql.Update(tableName).
		SetMap(data).
		Where(condition.Equal).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	start := time.Now()
	_, err = a.DB.ExecContext(ctx, query, args...)
	metrics.ObserveDBRequest("update:"+tableName, time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	return nil
}

// Delete permanently removes rows matching the condition. Returns the number
// of rows removed so callers can detect a miss.
func (a *SQLAdapter) Delete(ctx context.Context, tableName string, condition Condition) (int64, error) {
	query, args, err := psql.Delete(tableName).
		Where(condition.Equal).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	start := time.Now()
	res, err := a.DB.ExecContext(ctx, query, args...)
	metrics.ObserveDBRequest("delete:"+tableName, time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("failed to delete record: %w", err)
	}

	return res.RowsAffected()
}

// List selects all rows matching the condition into dest, ordered by the
// given columns.
func (a *SQLAdapter) List(ctx context.Context, dest interface{}, tableName string, condition Condition, orderBy ...string) error {
	builder := psql.Select("*").
		From(tableName)
	if len(condition.Equal) > 0 {
		builder = builder.Where(condition.Equal)
	}
	if len(orderBy) > 0 {
		builder = builder.OrderBy(orderBy...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build select query: %w", err)
	}

	start := time.Now()
	err = a.DB.SelectContext(ctx, dest, query, args...)
	metrics.ObserveDBRequest("select:"+tableName, time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to select records: %w", err)
	}

	return nil
}

// Get selects a single row matching the condition into dest.
func (a *SQLAdapter) Get(ctx context.Context, dest interface{}, tableName string, condition Condition) error {
	query, args, err := psql.Select("*").
		From(tableName).
		Where(condition.Equal).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build select query: %w", err)
	}

	start := time.Now()
	err = a.DB.GetContext(ctx, dest, query, args...)
	metrics.ObserveDBRequest("get:"+tableName, time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRows
		}
		return fmt.Errorf("failed to get record: %w", err)
	}

	return nil
}

// toMap flattens an entity into column/value pairs using db tags. Zero
// values are skipped so defaults and generated columns stay untouched.
func toMap(entity interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	val := reflect.ValueOf(entity)

	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return result
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() {
			continue
		}

		tag := typ.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		if commaIdx := strings.Index(tag, ","); commaIdx != -1 {
			tag = tag[:commaIdx]
		}

		if !field.IsZero() {
			result[tag] = field.Interface()
		}
	}
	return result
}
