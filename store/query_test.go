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

package store

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendersoftware/scaffold/model"
)

func TestParseDriver(t *testing.T) {
	testCases := map[string]struct {
		name     string
		expected Driver
		err      string
	}{
		"postgres":   {name: "postgres", expected: DriverPostgres},
		"pgx":        {name: "pgx", expected: DriverPostgres},
		"sqlite":     {name: "sqlite", expected: DriverSQLite},
		"mongodb":    {name: "mongodb", expected: DriverMongo},
		"error, foo": {name: "foo", err: `unsupported database driver: "foo"`},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			d, err := ParseDriver(tc.name)
			if tc.err != "" {
				assert.EqualError(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, d)
		})
	}
	assert.True(t, DriverPostgres.IsPostgres())
	assert.False(t, DriverSQLite.IsPostgres())
}

func TestNewQueryUnknownResource(t *testing.T) {
	_, err := NewQuery(model.Catalog, "widgets", DriverSQLite)
	assert.True(t, errors.Is(err, ErrUnknownResource))
	assert.EqualError(t, err, "widgets: unknown resource")
}

func TestQueryWhereHas(t *testing.T) {
	q, err := NewQuery(model.Catalog, model.ResourceProducts, DriverPostgres)
	require.NoError(t, err)

	err = q.WhereHas("category", func(sub *Query) error {
		assert.Equal(t, model.ResourceCategories, sub.Resource().Name)
		assert.Equal(t, DriverPostgres, sub.Driver())
		sub.Where(model.FieldExternalID, Eq, "abc")
		return nil
	})
	require.NoError(t, err)
	require.Len(t, q.Clauses, 1)

	exists, ok := q.Clauses[0].(ExistsClause)
	require.True(t, ok)
	assert.Equal(t, "category_id", exists.Relation.LocalKey)
	assert.Equal(t, []Clause{
		CompareClause{Column: model.FieldExternalID, Op: Eq, Value: "abc"},
	}, exists.Clauses)

	err = q.WhereHas("maker", func(*Query) error { return nil })
	assert.True(t, errors.Is(err, ErrUnknownRelation))
	assert.EqualError(t, err, "products.maker: unknown relation")
	assert.Len(t, q.Clauses, 1)

	boom := errors.New("boom")
	err = q.WhereHas("vendor", func(*Query) error { return boom })
	assert.Equal(t, boom, err)
	assert.Len(t, q.Clauses, 1)
}

func TestQueryGroups(t *testing.T) {
	q, err := NewQuery(model.Catalog, model.ResourceProducts, DriverSQLite)
	require.NoError(t, err)

	q.WhereNullOr("stock", Gt, "3")
	q.WhereAny(func(sub *Query) {
		sub.WhereJSONContains("tags", "color", "red")
		sub.WhereJSONContains("tags", "color", "blue")
	})
	q.WhereAny(func(*Query) {})

	assert.Equal(t, []Clause{
		OrClause{Clauses: []Clause{
			NullClause{Column: "stock"},
			CompareClause{Column: "stock", Op: Gt, Value: "3"},
		}},
		OrClause{Clauses: []Clause{
			JSONContainsClause{Column: "tags", Path: "color", Value: "red"},
			JSONContainsClause{Column: "tags", Path: "color", Value: "blue"},
		}},
	}, q.Clauses)
}

func TestQueryScratchCloneAndPaging(t *testing.T) {
	q, err := NewQuery(model.Catalog, model.ResourceVendors, DriverSQLite)
	require.NoError(t, err)
	q.Where("name", Eq, "Acme").OrderBy("name", false).OnlyTrashed()

	scratch := q.Scratch()
	scratch.WhereNotNull("country")
	assert.Len(t, q.Clauses, 1)
	q.Merge(scratch)
	assert.Len(t, q.Clauses, 2)

	page := q.Clone().ForPage(3, 40)
	assert.Equal(t, 80, page.RowOffset)
	assert.Equal(t, 40, page.RowLimit)
	assert.Equal(t, OnlyTrashed, page.Trashed)
	assert.Equal(t, 0, q.RowLimit)

	page.Where("country", Eq, "NO")
	assert.Len(t, q.Clauses, 2)

	assert.Equal(t, 0, q.Clone().ForPage(0, 10).RowOffset)
	assert.Equal(t, WithTrashed, q.WithTrashed().Trashed)
	assert.Equal(t, 5, q.Limit(5).RowLimit)
}
