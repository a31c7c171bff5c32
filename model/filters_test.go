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

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperator(t *testing.T) {
	t.Parallel()

	for _, op := range SearchOperators {
		parsed, err := ParseOperator(op.String())
		assert.NoError(t, err)
		assert.Equal(t, op, parsed)
	}
	assert.Len(t, SearchOperators, 14)

	_, err := ParseOperator("regex")
	var decodeErr *DecodeError
	if assert.True(t, errors.As(err, &decodeErr)) {
		assert.Equal(t, "regex", decodeErr.Code)
		assert.EqualError(t, err, `invalid filter operator: "regex"`)
	}
}

func TestOperatorValueIsEmpty(t *testing.T) {
	assert.True(t, OperatorValue{Code: "eq"}.IsEmpty())
	assert.False(t, OperatorValue{Code: "eq", Value: "0"}.IsEmpty())
	assert.True(t, OperatorValue{Code: "json", Object: map[string]string{}}.IsEmpty())
	assert.False(t, OperatorValue{Code: "json", Object: map[string]string{"a": ""}}.IsEmpty())
}

func TestListParamsValidate(t *testing.T) {
	testCases := map[string]struct {
		params ListParams
		err    string
	}{
		"ok, empty": {},
		"ok, full": {
			params: ListParams{
				Filters: FilterExpression{
					{Column: "category.group.name", Param: Scalar("x")},
					{Column: "stock", Param: Operators{{Code: "gt", Value: "1"}}},
				},
				Sort:    "-name",
				Page:    2,
				PerPage: 500,
				Trashed: TrashedOnly,
			},
		},
		"error, column": {
			params: ListParams{
				Filters: FilterExpression{
					{Column: "name; drop", Param: Scalar("x")},
				},
			},
			err: `invalid filter "name; drop": column: must be in a valid format.`,
		},
		"error, missing param": {
			params: ListParams{
				Filters: FilterExpression{{Column: "name"}},
			},
			err: `invalid filter "name": param: is required.`,
		},
		"error, per page": {
			params: ListParams{PerPage: 501},
			err:    "per_page: must be no greater than 500.",
		},
		"error, trashed": {
			params: ListParams{Trashed: "all"},
			err:    "trashed: must be a valid value.",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := tc.params.Validate()
			if tc.err != "" {
				assert.EqualError(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaginationResultJSON(t *testing.T) {
	b, err := PaginationResult{}.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"meta":{}}`, string(b))

	b, err = PaginationResult{
		Rows: []interface{}{Record{"id": "a"}},
		Meta: &PaginationMeta{Current: 2, PerPage: 40, PagesCount: 3, Count: 85},
	}.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t,
		`{"data":[{"id":"a"}],"meta":{"current":2,"perPage":40,"pagesCount":3,"count":85}}`,
		string(b))
}
