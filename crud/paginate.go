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

	"github.com/pkg/errors"

	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
)

const DefaultPerPage = 40

// PageParams selects the page to fetch. SkipPagination returns every row
// and no metadata.
type PageParams struct {
	Page           int
	PerPage        int
	SkipPagination bool
}

// Serializer turns a stored record into its response representation.
type Serializer func(model.Record) interface{}

// Paginate executes q either in full or for one page. In paginated mode
// the total is counted by a separate query before the page is fetched.
// PerPage is not validated beyond defaulting zero to DefaultPerPage.
func Paginate(
	ctx context.Context,
	exec store.Executor,
	q *store.Query,
	params PageParams,
	serialize Serializer,
) (*model.PaginationResult, error) {
	if serialize == nil {
		serialize = func(r model.Record) interface{} { return r }
	}

	if params.SkipPagination {
		records, err := exec.Find(ctx, q)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch records")
		}
		return &model.PaginationResult{Rows: serializeAll(records, serialize)}, nil
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage == 0 {
		perPage = DefaultPerPage
	}

	count, err := exec.Count(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count records")
	}

	records, err := exec.Find(ctx, q.Clone().ForPage(page, perPage))
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch records")
	}

	pagesCount := 0
	if perPage > 0 {
		pagesCount = (count + perPage - 1) / perPage
	}

	return &model.PaginationResult{
		Rows: serializeAll(records, serialize),
		Meta: &model.PaginationMeta{
			Current:    page,
			PerPage:    perPage,
			PagesCount: pagesCount,
			Count:      count,
		},
	}, nil
}

func serializeAll(records []model.Record, serialize Serializer) []interface{} {
	rows := make([]interface{}, len(records))
	for i, r := range records {
		rows[i] = serialize(r)
	}
	return rows
}
