// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/mendersoftware/go-lib-micro/log"

	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
)

// sqlite keeps timestamps as text; this layout sorts and compares the
// same way the date range bounds do.
const sqliteTimeLayout = "2006-01-02 15:04:05"

type DataStoreSQLConfig struct {
	Driver store.Driver
	// DSN is handed to the driver as-is: a postgres:// URL for
	// PostgreSQL or a file path for SQLite.
	DSN string

	Schema *model.Schema
}

type DataStoreSQL struct {
	db          *sql.DB
	driver      store.Driver
	dsn         string
	schema      *model.Schema
	automigrate bool
}

func driverName(d store.Driver) (string, error) {
	switch d {
	case store.DriverPostgres:
		return "pgx", nil
	case store.DriverSQLite:
		return "sqlite3", nil
	}
	return "", errors.Errorf("driver %q is not an SQL driver", d)
}

func NewDataStoreSQL(ctx context.Context, config DataStoreSQLConfig) (*DataStoreSQL, error) {
	name, err := driverName(config.Driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(name, config.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if config.Driver == store.DriverSQLite {
		// one writer at a time, avoids SQLITE_BUSY under load
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to reach database")
	}
	schema := config.Schema
	if schema == nil {
		schema = model.Catalog
	}
	return &DataStoreSQL{
		db:     db,
		driver: config.Driver,
		dsn:    config.DSN,
		schema: schema,
	}, nil
}

// WithAutomigrate enables automatic migration and returns a new datastore
// based on the current one.
func (ds *DataStoreSQL) WithAutomigrate() *DataStoreSQL {
	return &DataStoreSQL{
		db:          ds.db,
		driver:      ds.driver,
		dsn:         ds.dsn,
		schema:      ds.schema,
		automigrate: true,
	}
}

func (ds *DataStoreSQL) Ping(ctx context.Context) error {
	return ds.db.PingContext(ctx)
}

func (ds *DataStoreSQL) Close(ctx context.Context) error {
	return ds.db.Close()
}

func (ds *DataStoreSQL) NewQuery(resource string) (*store.Query, error) {
	return store.NewQuery(ds.schema, resource, ds.driver)
}

func (ds *DataStoreSQL) Count(ctx context.Context, q *store.Query) (int, error) {
	stmt, args, err := newCompiler(ds.driver).Count(q)
	if err != nil {
		return 0, err
	}
	log.FromContext(ctx).Debugf("count: %s %v", stmt, args)

	var count int
	if err := ds.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count records")
	}
	return count, nil
}

func (ds *DataStoreSQL) Find(ctx context.Context, q *store.Query) ([]model.Record, error) {
	stmt, args, err := newCompiler(ds.driver).Select(q)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debugf("find: %s %v", stmt, args)

	rows, err := ds.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query records")
	}
	defer rows.Close()

	return scanRecords(rows, q.Resource())
}

func (ds *DataStoreSQL) Get(
	ctx context.Context,
	resource, externalID string,
	withTrashed bool,
) (model.Record, error) {
	q, err := ds.NewQuery(resource)
	if err != nil {
		return nil, err
	}
	q.Where(model.FieldExternalID, store.Eq, externalID).Limit(1)
	if withTrashed {
		q.WithTrashed()
	}
	recs, err := ds.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, store.ErrNotFound
	}
	return recs[0], nil
}

func (ds *DataStoreSQL) Insert(
	ctx context.Context,
	resource string,
	rec model.Record,
) (model.Record, error) {
	res, ok := ds.schema.Resource(resource)
	if !ok {
		return nil, errors.Wrap(store.ErrUnknownResource, resource)
	}
	values, err := ds.storageValues(res, rec)
	if err != nil {
		return nil, err
	}
	now := ds.timeValue(time.Now())
	externalID := uuid.NewString()
	values[model.FieldExternalID] = externalID
	values[model.FieldCreatedAt] = now
	values[model.FieldUpdatedAt] = now

	c := newCompiler(ds.driver)
	columns := sortedKeys(values)
	binds := make([]string, len(columns))
	for i, col := range columns {
		binds[i] = c.bind(values[col])
		columns[i] = quoteIdent(col)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(res.Table),
		strings.Join(columns, ", "),
		strings.Join(binds, ", "))

	if _, err := ds.db.ExecContext(ctx, stmt, c.args...); err != nil {
		return nil, errors.Wrap(err, "failed to insert record")
	}
	return ds.Get(ctx, resource, externalID, false)
}

func (ds *DataStoreSQL) Update(
	ctx context.Context,
	resource, externalID string,
	rec model.Record,
) (model.Record, error) {
	res, ok := ds.schema.Resource(resource)
	if !ok {
		return nil, errors.Wrap(store.ErrUnknownResource, resource)
	}
	values, err := ds.storageValues(res, rec)
	if err != nil {
		return nil, err
	}
	values[model.FieldUpdatedAt] = ds.timeValue(time.Now())

	c := newCompiler(ds.driver)
	columns := sortedKeys(values)
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = quoteIdent(col) + " = " + c.bind(values[col])
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		quoteIdent(res.Table),
		strings.Join(sets, ", "),
		quoteIdent(model.FieldExternalID),
		c.bind(externalID))
	if res.SoftDeletes {
		stmt += " AND " + quoteIdent(model.FieldDeletedAt) + " IS NULL"
	}

	if err := ds.exec(ctx, stmt, c.args); err != nil {
		return nil, errors.Wrap(err, "failed to update record")
	}
	return ds.Get(ctx, resource, externalID, false)
}

func (ds *DataStoreSQL) Delete(ctx context.Context, resource, externalID string) error {
	res, ok := ds.schema.Resource(resource)
	if !ok {
		return errors.Wrap(store.ErrUnknownResource, resource)
	}

	c := newCompiler(ds.driver)
	var stmt string
	if res.SoftDeletes {
		stmt = fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s = %s AND %s IS NULL",
			quoteIdent(res.Table),
			quoteIdent(model.FieldDeletedAt),
			c.bind(ds.timeValue(time.Now())),
			quoteIdent(model.FieldExternalID),
			c.bind(externalID),
			quoteIdent(model.FieldDeletedAt))
	} else {
		stmt = fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
			quoteIdent(res.Table),
			quoteIdent(model.FieldExternalID),
			c.bind(externalID))
	}
	return errors.Wrap(ds.exec(ctx, stmt, c.args), "failed to delete record")
}

func (ds *DataStoreSQL) Restore(
	ctx context.Context,
	resource, externalID string,
) (model.Record, error) {
	res, ok := ds.schema.Resource(resource)
	if !ok {
		return nil, errors.Wrap(store.ErrUnknownResource, resource)
	}
	if !res.SoftDeletes {
		return nil, store.ErrNotSoftDeletable
	}

	c := newCompiler(ds.driver)
	stmt := fmt.Sprintf("UPDATE %s SET %s = NULL, %s = %s WHERE %s = %s AND %s IS NOT NULL",
		quoteIdent(res.Table),
		quoteIdent(model.FieldDeletedAt),
		quoteIdent(model.FieldUpdatedAt),
		c.bind(ds.timeValue(time.Now())),
		quoteIdent(model.FieldExternalID),
		c.bind(externalID),
		quoteIdent(model.FieldDeletedAt))
	if err := ds.exec(ctx, stmt, c.args); err != nil {
		return nil, errors.Wrap(err, "failed to restore record")
	}
	return ds.Get(ctx, resource, externalID, false)
}

// exec runs a statement expected to touch exactly one row.
func (ds *DataStoreSQL) exec(ctx context.Context, stmt string, args []interface{}) error {
	log.FromContext(ctx).Debugf("exec: %s %v", stmt, args)
	result, err := ds.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (ds *DataStoreSQL) timeValue(t time.Time) interface{} {
	t = t.UTC()
	if ds.driver == store.DriverSQLite {
		return t.Format(sqliteTimeLayout)
	}
	return t
}

// storageValues keeps the writable fields of rec converted to what the
// driver accepts for their column types.
func (ds *DataStoreSQL) storageValues(res *model.Resource, rec model.Record) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(rec)+3)
	for k, v := range res.Sanitize(rec) {
		f, _ := res.Field(k)
		if v == nil {
			values[k] = nil
			continue
		}
		switch f.Type {
		case model.TypeJSON:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to encode field %s", k)
			}
			values[k] = string(b)
		case model.TypeTime:
			s, _ := v.(string)
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse field %s", k)
			}
			values[k] = ds.timeValue(t)
		case model.TypeInt:
			if n, ok := v.(float64); ok {
				v = int64(n)
			}
			values[k] = v
		default:
			values[k] = v
		}
	}
	return values, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scanRecords(rows *sql.Rows, res *model.Resource) ([]model.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read columns")
	}

	var recs []model.Record
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, "failed to scan record")
		}
		rec := make(model.Record, len(columns))
		for i, col := range columns {
			rec[col] = decodeValue(res, col, values[i])
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read records")
	}
	return recs, nil
}

func decodeValue(res *model.Resource, column string, value interface{}) interface{} {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return value
	}
	if f, ok := res.Field(column); ok && f.Type == model.TypeJSON {
		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err == nil {
			return decoded
		}
	}
	return string(raw)
}
