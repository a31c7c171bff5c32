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
	"net/url"
	"strings"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/pkg/errors"

	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/utils"
)

const (
	queryParamFilter         = "filter"
	queryParamSort           = "sort"
	queryParamSkipPagination = "skipPagination"
	queryParamLimit          = "limit"
	queryParamTrashed        = "trashed"
	queryParamFormat         = "format"

	jsonOperator = "json"

	// json keys end up inside a quoted path label
	jsonKeyReserved = `"\`
)

var errMalformedFilter = errors.New("malformed filter parameter")

// parseListParams reads the list grammar off the query string:
//
//	filter[<col>]=<value>
//	filter[<col>][<op>]=<value>
//	filter[<col>][json][<key>]=<value>
//	sort=<col1>,-<col2>
//	page=<n>&perPage=<n>&skipPagination&limit=<n>&trashed=with|only
//
// Filters keep the order they appear in the request.
func parseListParams(r *rest.Request) (model.ListParams, error) {
	var params model.ListParams

	filters, err := parseFilters(r.URL.RawQuery)
	if err != nil {
		return params, err
	}
	params.Filters = filters

	params.Sort, err = utils.ParseQueryParmStr(r, queryParamSort, false, nil)
	if err != nil {
		return params, err
	}

	params.SkipPagination, err = utils.ParseQueryParmFlag(r, queryParamSkipPagination)
	if err != nil {
		return params, err
	}
	if !params.SkipPagination {
		page, perPage, err := utils.ParsePagination(r)
		if err != nil {
			return params, err
		}
		params.Page, params.PerPage = int(page), int(perPage)
	}

	params.Limit, err = utils.ParseQueryParmInt(r, queryParamLimit, 0)
	if err != nil {
		return params, err
	}

	trashed, err := utils.ParseQueryParmStr(r, queryParamTrashed, false,
		[]string{string(model.TrashedWith), string(model.TrashedOnly)})
	if err != nil {
		return params, err
	}
	params.Trashed = model.Trashed(trashed)

	return params, params.Validate()
}

func parseFilters(rawQuery string) (model.FilterExpression, error) {
	var filters model.FilterExpression
	index := map[string]int{}

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid query string")
		}
		if !strings.HasPrefix(key, queryParamFilter+"[") {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, errors.Wrap(err, "invalid query string")
		}
		segments, err := splitBrackets(key[len(queryParamFilter):])
		if err != nil {
			return nil, errors.Wrapf(err, "%q", key)
		}

		column := segments[0]
		i, seen := index[column]
		if !seen {
			i = len(filters)
			index[column] = i
			filters = append(filters, model.Filter{Column: column})
		}
		filters[i].Param, err = mergeParam(filters[i].Param, segments[1:], value)
		if err != nil {
			return nil, errors.Wrapf(err, "%q", key)
		}
	}
	return filters, nil
}

// splitBrackets turns "[a][b][c]" into [a b c].
func splitBrackets(s string) ([]string, error) {
	var segments []string
	for s != "" {
		if s[0] != '[' {
			return nil, errMalformedFilter
		}
		end := strings.IndexByte(s, ']')
		if end <= 1 {
			return nil, errMalformedFilter
		}
		segments = append(segments, s[1:end])
		s = s[end+1:]
	}
	if len(segments) == 0 || len(segments) > 3 {
		return nil, errMalformedFilter
	}
	return segments, nil
}

func mergeParam(param model.Param, segments []string, value string) (model.Param, error) {
	if len(segments) == 0 {
		if param != nil {
			return nil, errMalformedFilter
		}
		return model.Scalar(value), nil
	}

	var ops model.Operators
	switch p := param.(type) {
	case nil:
	case model.Operators:
		ops = p
	default:
		return nil, errMalformedFilter
	}

	code := segments[0]
	if len(segments) == 1 {
		return append(ops, model.OperatorValue{Code: code, Value: value}), nil
	}
	if code != jsonOperator || strings.ContainsAny(segments[1], jsonKeyReserved) {
		return nil, errMalformedFilter
	}
	for i := range ops {
		if ops[i].Code == jsonOperator {
			if ops[i].Object == nil {
				ops[i].Object = map[string]string{}
			}
			ops[i].Object[segments[1]] = value
			return ops, nil
		}
	}
	return append(ops, model.OperatorValue{
		Code:   jsonOperator,
		Object: map[string]string{segments[1]: value},
	}), nil
}
