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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mendersoftware/scaffold/model"
)

func TestNormalizeDateRange(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		Name  string
		Value string

		Bounds [2]string
		Error  bool
	}{{
		Name:   "single month",
		Value:  "2023-04",
		Bounds: [2]string{"2023-04-01 00:00:00", "2023-04-30 23:59:59"},
	}, {
		Name:   "leap february",
		Value:  "2024-02",
		Bounds: [2]string{"2024-02-01 00:00:00", "2024-02-29 23:59:59"},
	}, {
		Name:   "common february",
		Value:  "2023-02",
		Bounds: [2]string{"2023-02-01 00:00:00", "2023-02-28 23:59:59"},
	}, {
		Name:   "january",
		Value:  "2024-01",
		Bounds: [2]string{"2024-01-01 00:00:00", "2024-01-31 23:59:59"},
	}, {
		Name:   "month span across years",
		Value:  "2023-11,2024-01",
		Bounds: [2]string{"2023-11-01 00:00:00", "2024-01-31 23:59:59"},
	}, {
		Name:   "single day",
		Value:  "2024-03-15",
		Bounds: [2]string{"2024-03-15 00:00:00", "2024-03-15 23:59:59"},
	}, {
		Name:   "day span",
		Value:  "2024-03-15,2024-04-01",
		Bounds: [2]string{"2024-03-15 00:00:00", "2024-04-01 23:59:59"},
	}, {
		Name:  "garbage",
		Value: "yesterday",
		Error: true,
	}, {
		Name:  "second month is not a month",
		Value: "2024-01,2024-1",
		Error: true,
	}, {
		Name:  "padded tokens are not trimmed",
		Value: "2024-01-01, 2024-01-02",
		Error: true,
	}}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			bounds, err := NormalizeDateRange(tc.Value)
			if tc.Error {
				var dateErr *model.DateParseError
				assert.True(t, errors.As(err, &dateErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Bounds, bounds)
		})
	}
}
