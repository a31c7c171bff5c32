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
	"strings"

	"github.com/mendersoftware/scaffold/store"
	"github.com/mendersoftware/scaffold/utils"
)

const descendingPrefix = "-"

// ApplySort orders q by a comma separated column list, left to right. A
// leading '-' sorts that column descending.
func ApplySort(q *store.Query, spec string) {
	if spec == "" {
		return
	}
	for _, token := range strings.Split(spec, listSeparator) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		descending := strings.HasPrefix(token, descendingPrefix)
		if descending {
			token = strings.TrimPrefix(token, descendingPrefix)
			if token == "" {
				continue
			}
		}
		q.OrderBy(utils.ToSnake(token), descending)
	}
}
