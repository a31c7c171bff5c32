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

package utils

import (
	"fmt"
	"strconv"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/pkg/errors"
)

const (
	PageName       = "page"
	PerPageName    = "perPage"
	PageDefault    = 1
	PerPageDefault = 40
	PerPageMax     = 500

	LinkHdr   = "Link"
	LinkTmpl  = "<%s?%s>; rel=\"%s\""
	LinkPrev  = "prev"
	LinkNext  = "next"
	LinkFirst = "first"
	LinkLast  = "last"
)

func MsgQueryParmInvalid(name string) string {
	return fmt.Sprintf("Can't parse param %s", name)
}

func MsgQueryParmMissing(name string) string {
	return fmt.Sprintf("Missing required param %s", name)
}

func MsgQueryParmLimit(name string) string {
	return fmt.Sprintf("Param %s is out of bounds", name)
}

func MsgQueryParmOneOf(name string, vals []string) string {
	return fmt.Sprintf("Param %s must be one of %v", name, vals)
}

// ParseQueryParmUInt parses an unsigned integer parameter, enforcing the
// [min, max] bounds; 'def' is returned when the parameter is absent.
func ParseQueryParmUInt(r *rest.Request, name string, required bool, min, max, def uint64) (uint64, error) {
	strVal := r.URL.Query().Get(name)

	if strVal == "" {
		if required {
			return 0, errors.New(MsgQueryParmMissing(name))
		}
		return def, nil
	}

	uintVal, err := strconv.ParseUint(strVal, 10, 64)
	if err != nil {
		return 0, errors.New(MsgQueryParmInvalid(name))
	}

	if uintVal < min || uintVal > max {
		return 0, errors.New(MsgQueryParmLimit(name))
	}

	return uintVal, nil
}

// ParseQueryParmInt parses a signed integer parameter; absent parameters
// yield 'def'. No bounds are enforced.
func ParseQueryParmInt(r *rest.Request, name string, def int) (int, error) {
	strVal := r.URL.Query().Get(name)
	if strVal == "" {
		return def, nil
	}
	intVal, err := strconv.Atoi(strVal)
	if err != nil {
		return 0, errors.New(MsgQueryParmInvalid(name))
	}
	return intVal, nil
}

func ParseQueryParmStr(r *rest.Request, name string, required bool, allowed []string) (string, error) {
	val := r.URL.Query().Get(name)

	if val == "" {
		if required {
			return "", errors.New(MsgQueryParmMissing(name))
		}
	} else {
		if allowed != nil && !ContainsString(val, allowed) {
			return "", errors.New(MsgQueryParmOneOf(name, allowed))
		}
	}

	return val, nil
}

// ParseQueryParmFlag reports whether a boolean switch is set. A present
// parameter with no value (`?flag`) counts as set.
func ParseQueryParmFlag(r *rest.Request, name string) (bool, error) {
	q := r.URL.Query()
	vals, ok := q[name]
	if !ok {
		return false, nil
	}
	if len(vals) == 0 || vals[0] == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(vals[0])
	if err != nil {
		return false, errors.New(MsgQueryParmInvalid(name))
	}
	return b, nil
}

func ParsePagination(r *rest.Request) (uint64, uint64, error) {
	page, err := ParseQueryParmUInt(r, PageName, false, 1, uint64(^uint(0)>>1), PageDefault)
	if err != nil {
		return 0, 0, err
	}
	perPage, err := ParseQueryParmUInt(r, PerPageName, false, 1, PerPageMax, PerPageDefault)
	if err != nil {
		return 0, 0, err
	}

	return page, perPage, nil
}

func MakeLink(link string, r *rest.Request, page, perPage uint64) string {
	q := r.URL.Query()
	q.Set(PageName, strconv.FormatUint(page, 10))
	q.Set(PerPageName, strconv.FormatUint(perPage, 10))

	return fmt.Sprintf(LinkTmpl, r.URL.Path, q.Encode(), link)
}

// MakePageLinkHdrs returns the RFC 5988 links for the page, given the
// total number of pages.
func MakePageLinkHdrs(r *rest.Request, page, perPage, pagesCount uint64) []string {
	var links []string

	if page > 1 {
		links = append(links, MakeLink(LinkPrev, r, page-1, perPage))
	}

	if page < pagesCount {
		links = append(links, MakeLink(LinkNext, r, page+1, perPage))
	}

	links = append(links, MakeLink(LinkFirst, r, 1, perPage))
	if pagesCount > 0 {
		links = append(links, MakeLink(LinkLast, r, pagesCount, perPage))
	}
	return links
}
