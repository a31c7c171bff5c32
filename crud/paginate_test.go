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

package crud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
	mstore "github.com/mendersoftware/scaffold/store/mocks"
)

func records(n int) []model.Record {
	out := make([]model.Record, n)
	for i := range out {
		out[i] = model.Record{"n": i}
	}
	return out
}

func pageOf(offset, limit int) interface{} {
	return mock.MatchedBy(func(q *store.Query) bool {
		return q.RowOffset == offset && q.RowLimit == limit
	})
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		params PageParams

		count      int
		countErr   error
		findMatch  interface{}
		findResult []model.Record
		findErr    error

		rows int
		meta *model.PaginationMeta
		err  string
	}{
		"ok, last page": {
			params:     PageParams{Page: 3, PerPage: 40},
			count:      85,
			findMatch:  pageOf(80, 40),
			findResult: records(5),
			rows:       5,
			meta:       &model.PaginationMeta{Current: 3, PerPage: 40, PagesCount: 3, Count: 85},
		},
		"ok, defaults": {
			count:      12,
			findMatch:  pageOf(0, DefaultPerPage),
			findResult: records(12),
			rows:       12,
			meta:       &model.PaginationMeta{Current: 1, PerPage: 40, PagesCount: 1, Count: 12},
		},
		"ok, nothing matches": {
			params:    PageParams{Page: 1, PerPage: 10},
			findMatch: pageOf(0, 10),
			meta:      &model.PaginationMeta{Current: 1, PerPage: 10},
		},
		"ok, skip pagination": {
			params:     PageParams{Page: 2, PerPage: 10, SkipPagination: true},
			findMatch:  pageOf(0, 0),
			findResult: records(31),
			rows:       31,
		},
		"error, count": {
			params:   PageParams{Page: 1, PerPage: 10},
			countErr: errors.New("connection refused"),
			err:      "failed to count records: connection refused",
		},
		"error, find": {
			params:    PageParams{Page: 1, PerPage: 10},
			count:     3,
			findMatch: pageOf(0, 10),
			findErr:   errors.New("connection refused"),
			err:       "failed to fetch records: connection refused",
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			q := newQuery(t, model.ResourceProducts, store.DriverPostgres)

			db := &mstore.DataStore{}
			defer db.AssertExpectations(t)
			if !tc.params.SkipPagination {
				db.On("Count", ctx, q).Return(tc.count, tc.countErr)
			}
			if tc.findMatch != nil {
				db.On("Find", ctx, tc.findMatch).Return(tc.findResult, tc.findErr)
			}

			res, err := Paginate(ctx, db, q, tc.params, nil)
			if tc.err != "" {
				assert.EqualError(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, res.Rows, tc.rows)
			assert.Equal(t, tc.meta, res.Meta)
		})
	}
}

func TestPaginateSerializer(t *testing.T) {
	ctx := context.Background()
	q := newQuery(t, model.ResourceVendors, store.DriverSQLite)

	db := &mstore.DataStore{}
	defer db.AssertExpectations(t)
	db.On("Find", ctx, q).Return([]model.Record{{"name": "acme"}}, nil)

	res, err := Paginate(ctx, db, q, PageParams{SkipPagination: true},
		func(r model.Record) interface{} {
			return r["name"]
		})
	assert.NoError(t, err)
	assert.Equal(t, []interface{}{"acme"}, res.Rows)
	assert.Nil(t, res.Meta)

	b, err := res.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"data":["acme"],"meta":{}}`, string(b))
}
