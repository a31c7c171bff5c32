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
	"github.com/mendersoftware/scaffold/model"
)

// table projects records onto the export columns of res, in order.
func table(res *model.Resource, recs []model.Record) *model.Table {
	t := &model.Table{
		Columns: append([]string(nil), res.ExportFields...),
		Rows:    make([][]interface{}, len(recs)),
	}
	for i, r := range recs {
		row := make([]interface{}, len(res.ExportFields))
		for j, f := range res.ExportFields {
			row[j] = r[f]
		}
		t.Rows[i] = row
	}
	return t
}
