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
	"time"

	"github.com/mendersoftware/scaffold/model"
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"

	dayStart = " 00:00:00"
	dayEnd   = " 23:59:59"
)

// NormalizeDateRange expands a `btw` operand into inclusive bounds.
// "YYYY-MM[,YYYY-MM]" spans from the first day of the first month to the
// last day of the second; "YYYY-MM-DD[,YYYY-MM-DD]" spans whole days. A
// missing second token repeats the first one.
func NormalizeDateRange(value string) ([2]string, error) {
	tokens := strings.Split(value, listSeparator)
	from := tokens[0]
	to := from
	if len(tokens) > 1 {
		to = tokens[1]
	}

	if len(from) == len(monthLayout) {
		start, err := parseDate(monthLayout, from)
		if err != nil {
			return [2]string{}, err
		}
		end, err := parseDate(monthLayout, to)
		if err != nil {
			return [2]string{}, err
		}
		last := end.AddDate(0, 1, -1)
		return [2]string{
			start.Format(dayLayout) + dayStart,
			last.Format(dayLayout) + dayEnd,
		}, nil
	}

	start, err := parseDate(dayLayout, from)
	if err != nil {
		return [2]string{}, err
	}
	end, err := parseDate(dayLayout, to)
	if err != nil {
		return [2]string{}, err
	}
	return [2]string{
		start.Format(dayLayout) + dayStart,
		end.Format(dayLayout) + dayEnd,
	}, nil
}

func parseDate(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, &model.DateParseError{Value: value, Err: err}
	}
	return t, nil
}
