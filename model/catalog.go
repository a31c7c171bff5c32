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

const (
	ResourceProducts       = "products"
	ResourceCategories     = "categories"
	ResourceCategoryGroups = "category_groups"
	ResourceVendors        = "vendors"
)

// Catalog is the schema served by the scaffold binary: products filed
// under categories (which belong to category groups) and sold by vendors.
var Catalog = NewSchema(
	&Resource{
		Name:  ResourceProducts,
		Table: "products",
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true, MaxLen: 255},
			{Name: "sku", Type: TypeString, Required: true, MaxLen: 64},
			{Name: "price", Type: TypeFloat},
			{Name: "stock", Type: TypeInt},
			{Name: "active", Type: TypeBool},
			{Name: "released_at", Type: TypeTime},
			{Name: "tags", Type: TypeJSON},
			{Name: "category_id", Type: TypeInt},
			{Name: "vendor_id", Type: TypeInt},
		},
		Relations: []Relation{
			{Name: "category", Resource: ResourceCategories, LocalKey: "category_id", ForeignKey: FieldID},
			{Name: "vendor", Resource: ResourceVendors, LocalKey: "vendor_id", ForeignKey: FieldID},
		},
		LabelField:   "name",
		ExportFields: []string{FieldExternalID, "name", "sku", "price", "stock", "active", "released_at"},
		SoftDeletes:  true,
	},
	&Resource{
		Name:  ResourceCategories,
		Table: "categories",
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true, MaxLen: 255},
			{Name: "group_id", Type: TypeInt},
		},
		Relations: []Relation{
			{Name: "group", Resource: ResourceCategoryGroups, LocalKey: "group_id", ForeignKey: FieldID},
			{Name: "products", Resource: ResourceProducts, LocalKey: FieldID, ForeignKey: "category_id"},
		},
		LabelField:   "name",
		ExportFields: []string{FieldExternalID, "name"},
	},
	&Resource{
		Name:  ResourceCategoryGroups,
		Table: "category_groups",
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true, MaxLen: 255},
		},
		Relations: []Relation{
			{Name: "categories", Resource: ResourceCategories, LocalKey: FieldID, ForeignKey: "group_id"},
		},
		LabelField:   "name",
		ExportFields: []string{FieldExternalID, "name"},
	},
	&Resource{
		Name:  ResourceVendors,
		Table: "vendors",
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true, MaxLen: 255},
			{Name: "country", Type: TypeString, MaxLen: 2},
		},
		Relations: []Relation{
			{Name: "products", Resource: ResourceProducts, LocalKey: FieldID, ForeignKey: "vendor_id"},
		},
		LabelField:   "name",
		ExportFields: []string{FieldExternalID, "name", "country"},
		SoftDeletes:  true,
	},
)
