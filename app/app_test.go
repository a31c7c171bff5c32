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

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
	mstore "github.com/mendersoftware/scaffold/store/mocks"
)

func newQuery(t *testing.T, resource string) *store.Query {
	q, err := store.NewQuery(model.Catalog, resource, store.DriverPostgres)
	require.NoError(t, err)
	return q
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		Name           string
		DataStoreError error
	}{{
		Name: "ok",
	}, {
		Name:           "error, error reaching the database",
		DataStoreError: errors.New("connection refused"),
	}}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			ctx := context.TODO()
			db := &mstore.DataStore{}
			defer db.AssertExpectations(t)
			db.On("Ping", ctx).Return(tc.DataStoreError)

			err := NewApp(db, Config{}).HealthCheck(ctx)
			if tc.DataStoreError != nil {
				assert.EqualError(t, err,
					"error reaching the database: "+tc.DataStoreError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		params model.ListParams

		countQuery func(q *store.Query) bool
		count      int
		err        func(t *testing.T, err error)
	}{
		"ok, filtered and sorted": {
			params: model.ListParams{
				Filters: model.FilterExpression{
					{Column: "name", Param: model.Scalar("Hammer")},
				},
				Sort:    "-stock",
				Page:    2,
				PerPage: 10,
				Trashed: model.TrashedOnly,
			},
			countQuery: func(q *store.Query) bool {
				return len(q.Clauses) == 1 &&
					len(q.Orders) == 1 &&
					q.Trashed == store.OnlyTrashed
			},
			count: 12,
		},
		"error, bad operator": {
			params: model.ListParams{
				Filters: model.FilterExpression{
					{Column: "name", Param: model.Operators{{Code: "sounds", Value: "x"}}},
				},
			},
			err: func(t *testing.T, err error) {
				var decodeErr *model.DecodeError
				assert.True(t, errors.As(err, &decodeErr))
			},
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			db := &mstore.DataStore{}
			defer db.AssertExpectations(t)

			db.On("NewQuery", model.ResourceProducts).
				Return(newQuery(t, model.ResourceProducts), nil)
			if tc.countQuery != nil {
				db.On("Count", ctx, mock.MatchedBy(tc.countQuery)).Return(tc.count, nil)
				db.On("Find", ctx, mock.MatchedBy(func(q *store.Query) bool {
					return q.RowOffset == 10 && q.RowLimit == 10
				})).Return([]model.Record{{"name": "Hammer"}, {"name": "Hammer"}}, nil)
			}

			res, err := NewApp(db, Config{}).List(ctx, model.ResourceProducts, tc.params)
			if tc.err != nil {
				tc.err(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, res.Rows, 2)
			assert.Equal(t, &model.PaginationMeta{
				Current: 2, PerPage: 10, PagesCount: 2, Count: 12,
			}, res.Meta)
		})
	}
}

func TestExportLimit(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		limit    int
		expected int
	}{
		"no limit uses the cap": {limit: 0, expected: 50},
		"small limit":           {limit: 5, expected: 5},
		"limit above the cap":   {limit: 500, expected: 50},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			db := &mstore.DataStore{}
			defer db.AssertExpectations(t)

			db.On("NewQuery", model.ResourceVendors).
				Return(newQuery(t, model.ResourceVendors), nil)
			db.On("Find", ctx, mock.MatchedBy(func(q *store.Query) bool {
				return q.RowLimit == tc.expected
			})).Return([]model.Record{{"name": "Acme"}}, nil)

			tbl, err := NewApp(db, Config{ExportLimit: 50}).
				Export(ctx, model.ResourceVendors, model.ListParams{Limit: tc.limit})
			assert.NoError(t, err)
			assert.Len(t, tbl.Rows, 1)
		})
	}
}

func TestOptions(t *testing.T) {
	ctx := context.Background()
	db := &mstore.DataStore{}
	defer db.AssertExpectations(t)

	db.On("NewQuery", model.ResourceCategories).
		Return(newQuery(t, model.ResourceCategories), nil).Once()
	db.On("NewQuery", model.ResourceCategories).
		Return(newQuery(t, model.ResourceCategories), nil).Once()
	db.On("Find", ctx, mock.MatchedBy(func(q *store.Query) bool {
		return q.RowLimit == DefaultOptionsLimit &&
			assert.ObjectsAreEqual([]store.Order{{Column: "name"}}, q.Orders)
	})).Return([]model.Record{
		{"external_id": "a", "name": "Tools", "id": int64(1)},
		{"external_id": "b", "name": "Toys", "id": int64(2)},
	}, nil)

	options, err := NewApp(db, Config{}).Options(ctx, model.ResourceCategories, model.ListParams{})
	assert.NoError(t, err)
	assert.Equal(t, []model.Option{
		{Value: "a", Label: "Tools"},
		{Value: "b", Label: "Toys"},
	}, options)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		rec model.Record

		dbErr error
		err   func(t *testing.T, err error)
	}{
		"ok": {
			rec: model.Record{"name": "Acme"},
		},
		"error, validation": {
			rec: model.Record{"country": "NOR"},
			err: func(t *testing.T, err error) {
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
			},
		},
		"error, datastore": {
			rec:   model.Record{"name": "Acme"},
			dbErr: errors.New("connection refused"),
			err: func(t *testing.T, err error) {
				assert.EqualError(t, err, "failed to create vendors: connection refused")
			},
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			db := &mstore.DataStore{}
			defer db.AssertExpectations(t)

			db.On("NewQuery", model.ResourceVendors).
				Return(newQuery(t, model.ResourceVendors), nil)
			if tc.err == nil || tc.dbErr != nil {
				var out model.Record
				if tc.dbErr == nil {
					out = model.Record{"external_id": "x", "name": "Acme"}
				}
				db.On("Insert", ctx, model.ResourceVendors, tc.rec).Return(out, tc.dbErr)
			}

			rec, err := NewApp(db, Config{}).Create(ctx, model.ResourceVendors, tc.rec)
			if tc.err != nil {
				tc.err(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "x", rec["external_id"])
		})
	}
}

func TestUpdateDeleteRestore(t *testing.T) {
	ctx := context.Background()
	db := &mstore.DataStore{}
	defer db.AssertExpectations(t)

	db.On("NewQuery", model.ResourceVendors).
		Return(newQuery(t, model.ResourceVendors), nil)
	db.On("Update", ctx, model.ResourceVendors, "x", model.Record{"country": "SE"}).
		Return(nil, store.ErrNotFound)
	db.On("Delete", ctx, model.ResourceVendors, "x").Return(nil)
	db.On("Restore", ctx, model.ResourceVendors, "x").
		Return(model.Record{"external_id": "x"}, nil)

	a := NewApp(db, Config{})

	_, err := a.Update(ctx, model.ResourceVendors, "x", model.Record{"country": "SE"})
	assert.True(t, errors.Is(err, store.ErrNotFound))

	_, err = a.Update(ctx, model.ResourceVendors, "x", model.Record{"name": 1})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	assert.NoError(t, a.Delete(ctx, model.ResourceVendors, "x"))

	rec, err := a.Restore(ctx, model.ResourceVendors, "x")
	assert.NoError(t, err)
	assert.Equal(t, "x", rec["external_id"])
}

func TestUnknownResource(t *testing.T) {
	ctx := context.Background()
	db := &mstore.DataStore{}
	defer db.AssertExpectations(t)

	_, qerr := store.NewQuery(model.Catalog, "widgets", store.DriverPostgres)
	db.On("NewQuery", "widgets").Return(nil, qerr)

	a := NewApp(db, Config{})
	_, err := a.List(ctx, "widgets", model.ListParams{})
	assert.True(t, errors.Is(err, store.ErrUnknownResource))
	assert.True(t, errors.Is(a.Delete(ctx, "widgets", "x"), store.ErrUnknownResource))
	_, err = a.Get(ctx, "widgets", "x")
	assert.True(t, errors.Is(err, store.ErrUnknownResource))
}

func TestExportTable(t *testing.T) {
	ctx := context.Background()
	db := &mstore.DataStore{}
	defer db.AssertExpectations(t)

	db.On("NewQuery", model.ResourceVendors).
		Return(newQuery(t, model.ResourceVendors), nil)
	db.On("Find", ctx, mock.AnythingOfType("*store.Query")).
		Return([]model.Record{
			{"id": int64(7), "external_id": "a", "name": "Acme", "country": "NO"},
			{"id": int64(8), "external_id": "b", "name": "Bolt"},
		}, nil)

	tbl, err := NewApp(db, Config{}).Export(ctx, model.ResourceVendors, model.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, &model.Table{
		Columns: []string{"external_id", "name", "country"},
		Rows: [][]interface{}{
			{"a", "Acme", "NO"},
			{"b", "Bolt", nil},
		},
	}, tbl)
}

func TestGetTimeFormat(t *testing.T) {
	ctx := context.Background()
	released := time.Date(2024, 2, 29, 13, 0, 0, 0, time.FixedZone("CET", 3600))

	testCases := map[string]struct {
		stored model.Record
		want   model.Record
	}{
		"sqlite text": {
			stored: model.Record{
				"external_id": "p1",
				"name":        "Hammer",
				"released_at": "2024-02-29 12:00:00",
				"created_at":  "2024-03-01 08:30:00",
				"deleted_at":  nil,
			},
			want: model.Record{
				"external_id": "p1",
				"name":        "Hammer",
				"released_at": "2024-02-29T12:00:00Z",
				"created_at":  "2024-03-01T08:30:00Z",
				"deleted_at":  nil,
			},
		},
		"driver time": {
			stored: model.Record{
				"external_id": "p1",
				"released_at": released,
			},
			want: model.Record{
				"external_id": "p1",
				"released_at": "2024-02-29T12:00:00Z",
			},
		},
		"non time string is kept": {
			stored: model.Record{
				"name":        "2024-02-29 12:00:00",
				"released_at": "soon",
			},
			want: model.Record{
				"name":        "2024-02-29 12:00:00",
				"released_at": "soon",
			},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			db := &mstore.DataStore{}
			defer db.AssertExpectations(t)

			db.On("NewQuery", model.ResourceProducts).
				Return(newQuery(t, model.ResourceProducts), nil)
			db.On("Get", ctx, model.ResourceProducts, "p1", false).
				Return(tc.stored, nil)

			rec, err := NewApp(db, Config{}).Get(ctx, model.ResourceProducts, "p1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, rec)
		})
	}
}

func TestListSerializesRows(t *testing.T) {
	ctx := context.Background()
	db := &mstore.DataStore{}
	defer db.AssertExpectations(t)

	db.On("NewQuery", model.ResourceVendors).
		Return(newQuery(t, model.ResourceVendors), nil)
	db.On("Find", ctx, mock.AnythingOfType("*store.Query")).
		Return([]model.Record{
			{"external_id": "a", "updated_at": "2024-01-31 23:59:59"},
		}, nil)

	res, err := NewApp(db, Config{}).List(ctx, model.ResourceVendors,
		model.ListParams{SkipPagination: true})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{
		model.Record{"external_id": "a", "updated_at": "2024-01-31T23:59:59Z"},
	}, res.Rows)
	assert.Nil(t, res.Meta)
}
