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

package http

import (
	"net/http"
	"testing"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendersoftware/scaffold/model"
)

func makeRestRequest(t *testing.T, url string) *rest.Request {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	return &rest.Request{Request: req, Env: map[string]interface{}{}}
}

func TestParseListParams(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		query string

		params model.ListParams
		err    string
	}{
		"defaults": {
			params: model.ListParams{Page: 1, PerPage: 40},
		},
		"scalar and operators keep request order": {
			query: "filter[stock][gte]=3&filter[category.id]=abc&filter[stock][lt]=10",
			params: model.ListParams{
				Filters: model.FilterExpression{{
					Column: "stock",
					Param: model.Operators{
						{Code: "gte", Value: "3"},
						{Code: "lt", Value: "10"},
					},
				}, {
					Column: "category.id",
					Param:  model.Scalar("abc"),
				}},
				Page:    1,
				PerPage: 40,
			},
		},
		"json sub-mapping": {
			query: "filter%5Btags%5D%5Bjson%5D%5Bcolor%5D=red%2Cblue&filter[tags][json][size]=xl",
			params: model.ListParams{
				Filters: model.FilterExpression{{
					Column: "tags",
					Param: model.Operators{{
						Code:   "json",
						Object: map[string]string{"color": "red,blue", "size": "xl"},
					}},
				}},
				Page:    1,
				PerPage: 40,
			},
		},
		"nn without value": {
			query: "filter[releasedAt][nn]",
			params: model.ListParams{
				Filters: model.FilterExpression{{
					Column: "releasedAt",
					Param:  model.Operators{{Code: "nn"}},
				}},
				Page:    1,
				PerPage: 40,
			},
		},
		"unknown operator is kept for the interpreter": {
			query: "filter[name][bogus]=x",
			params: model.ListParams{
				Filters: model.FilterExpression{{
					Column: "name",
					Param:  model.Operators{{Code: "bogus", Value: "x"}},
				}},
				Page:    1,
				PerPage: 40,
			},
		},
		"sort, paging, limit and trash": {
			query: "sort=name,-price&page=3&perPage=15&limit=7&trashed=only",
			params: model.ListParams{
				Sort:    "name,-price",
				Page:    3,
				PerPage: 15,
				Limit:   7,
				Trashed: model.TrashedOnly,
			},
		},
		"skip pagination ignores paging": {
			query: "skipPagination=1&page=abc",
			params: model.ListParams{
				SkipPagination: true,
			},
		},
		"bare skip pagination flag": {
			query:  "skipPagination",
			params: model.ListParams{SkipPagination: true},
		},
		"error, value then operator": {
			query: "filter[name]=x&filter[name][like]=y",
			err:   `"filter[name][like]": malformed filter parameter`,
		},
		"error, too deep": {
			query: "filter[a][b][c][d]=x",
			err:   `"filter[a][b][c][d]": malformed filter parameter`,
		},
		"error, sub key on plain operator": {
			query: "filter[a][eq][b]=x",
			err:   `"filter[a][eq][b]": malformed filter parameter`,
		},
		"error, backslash in json key": {
			query: "filter[tags][json][a%5Cb]=x",
			err:   `"filter[tags][json][a\\b]": malformed filter parameter`,
		},
		"error, quote in json key": {
			query: "filter[tags][json][a%22b]=x",
			err:   `"filter[tags][json][a\"b]": malformed filter parameter`,
		},
		"error, empty column": {
			query: "filter[]=x",
			err:   `"filter[]": malformed filter parameter`,
		},
		"error, invalid column": {
			query: "filter[name;drop]=x",
			err:   `invalid filter "name;drop": column: must be in a valid format.`,
		},
		"error, bad trashed": {
			query: "trashed=all",
			err:   "Param trashed must be one of [with only]",
		},
		"error, bad limit": {
			query: "limit=ten",
			err:   "Can't parse param limit",
		},
		"error, bad page": {
			query: "page=0",
			err:   "Param page is out of bounds",
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			params, err := parseListParams(makeRestRequest(t, "http://1.2.3.4/api/v1/products?"+tc.query))
			if tc.err != "" {
				assert.EqualError(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.params, params)
		})
	}
}
