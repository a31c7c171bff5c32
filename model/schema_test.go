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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceValidate(t *testing.T) {
	t.Parallel()

	products, ok := Catalog.Resource(ResourceProducts)
	require.True(t, ok)

	testCases := map[string]struct {
		rec     Record
		partial bool
		err     string
	}{
		"ok": {
			rec: Record{
				"name":        "Hammer",
				"sku":         "H-1",
				"price":       12.5,
				"stock":       float64(3),
				"active":      true,
				"released_at": "2024-01-02T15:04:05Z",
				"tags":        map[string]interface{}{"color": "red"},
				"extra":       "ignored",
			},
		},
		"ok, partial": {
			rec:     Record{"stock": nil},
			partial: true,
		},
		"error, required": {
			rec: Record{"name": "Hammer"},
			err: "sku: required key is missing.",
		},
		"error, types": {
			rec: Record{
				"name":        "Hammer",
				"sku":         "H-1",
				"stock":       1.5,
				"active":      "yes",
				"released_at": "yesterday",
			},
			err: "active: must be a boolean; released_at: must be a RFC3339 timestamp; stock: must be an integer.",
		},
		"error, length": {
			rec:     Record{"sku": "0123456789012345678901234567890123456789012345678901234567890123456789"},
			partial: true,
			err:     "sku: the length must be no more than 64.",
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := products.Validate(tc.rec, tc.partial)
			if tc.err != "" {
				assert.EqualError(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResourceSanitize(t *testing.T) {
	vendors, ok := Catalog.Resource(ResourceVendors)
	require.True(t, ok)
	assert.Equal(t,
		Record{"name": "Acme"},
		vendors.Sanitize(Record{"name": "Acme", "id": 1, "external_id": "x"}),
	)
}

func TestCatalog(t *testing.T) {
	names := []string{}
	for _, r := range Catalog.Resources() {
		names = append(names, r.Name)
		for _, rel := range r.Relations {
			_, ok := Catalog.Resource(rel.Resource)
			assert.True(t, ok, "%s.%s points to a missing resource", r.Name, rel.Name)
		}
		assert.NotEmpty(t, r.LabelField)
	}
	assert.Equal(t, []string{
		ResourceCategories,
		ResourceCategoryGroups,
		ResourceProducts,
		ResourceVendors,
	}, names)
}
