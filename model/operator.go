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
	"fmt"
)

// SearchOperator is the closed set of comparison codes accepted in
// `filter[<col>][<op>]` query parameters.
type SearchOperator int

const (
	OpEq SearchOperator = iota
	OpNeq
	OpIn
	OpNin
	OpLike
	OpLt
	OpLte
	OpGt
	OpGte
	OpGtn
	OpLtn
	OpBtw
	OpJSON
	OpNn
)

var searchOperatorCodes = [...]string{
	OpEq:   "eq",
	OpNeq:  "neq",
	OpIn:   "in",
	OpNin:  "nin",
	OpLike: "like",
	OpLt:   "lt",
	OpLte:  "lte",
	OpGt:   "gt",
	OpGte:  "gte",
	OpGtn:  "gtn",
	OpLtn:  "ltn",
	OpBtw:  "btw",
	OpJSON: "json",
	OpNn:   "nn",
}

// SearchOperators lists every operator in declaration order.
var SearchOperators = []SearchOperator{
	OpEq, OpNeq, OpIn, OpNin, OpLike,
	OpLt, OpLte, OpGt, OpGte, OpGtn, OpLtn,
	OpBtw, OpJSON, OpNn,
}

func (op SearchOperator) String() string {
	if op < 0 || int(op) >= len(searchOperatorCodes) {
		return fmt.Sprintf("SearchOperator(%d)", int(op))
	}
	return searchOperatorCodes[op]
}

// ParseOperator resolves an operator code; unknown codes yield a
// *DecodeError.
func ParseOperator(code string) (SearchOperator, error) {
	for _, op := range SearchOperators {
		if searchOperatorCodes[op] == code {
			return op, nil
		}
	}
	return 0, &DecodeError{Code: code}
}
