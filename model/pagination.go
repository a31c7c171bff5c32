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
	"encoding/json"
)

// Record is a single serialized row.
type Record map[string]interface{}

// PaginationMeta describes the page a PaginationResult holds.
type PaginationMeta struct {
	Current    int `json:"current"`
	PerPage    int `json:"perPage"`
	PagesCount int `json:"pagesCount"`
	Count      int `json:"count"`
}

// PaginationResult is built per request and discarded after
// serialization. A nil Meta (skip-pagination mode) is rendered as {}.
type PaginationResult struct {
	Rows []interface{}   `json:"data"`
	Meta *PaginationMeta `json:"meta"`
}

func (pr PaginationResult) MarshalJSON() ([]byte, error) {
	rows := pr.Rows
	if rows == nil {
		rows = []interface{}{}
	}
	var meta interface{} = struct{}{}
	if pr.Meta != nil {
		meta = pr.Meta
	}
	return json.Marshal(struct {
		Rows []interface{} `json:"data"`
		Meta interface{}   `json:"meta"`
	}{Rows: rows, Meta: meta})
}

// Option is one entry of a select list: the record's external id and
// its label column.
type Option struct {
	Value interface{} `json:"value"`
	Label interface{} `json:"label"`
}

// Table is a column-ordered rendering of records, used by exports.
type Table struct {
	Columns []string
	Rows    [][]interface{}
}
