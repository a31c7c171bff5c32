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
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	FieldID         = "id"
	FieldExternalID = "external_id"
	FieldCreatedAt  = "created_at"
	FieldUpdatedAt  = "updated_at"
	FieldDeletedAt  = "deleted_at"
)

type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeJSON
)

// Field is a writable column of a resource.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	MaxLen   int
}

// Relation links a resource to another one. The owning resource holds
// LocalKey, the related one ForeignKey; a belongs-to relation therefore
// reads {LocalKey: "category_id", ForeignKey: "id"}.
type Relation struct {
	Name       string
	Resource   string
	LocalKey   string
	ForeignKey string
}

// Resource describes a CRUD resource: where it is stored, which fields
// it accepts and how it relates to other resources.
type Resource struct {
	Name         string
	Table        string
	Fields       []Field
	Relations    []Relation
	LabelField   string
	ExportFields []string
	SoftDeletes  bool
}

// Relation looks up a relation by its caller-facing (camelCase) name.
func (r *Resource) Relation(name string) (*Relation, bool) {
	for i := range r.Relations {
		if r.Relations[i].Name == name {
			return &r.Relations[i], true
		}
	}
	return nil, false
}

func (r *Resource) Field(name string) (*Field, bool) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i], true
		}
	}
	return nil, false
}

// Sanitize drops every key that is not a writable field.
func (r *Resource) Sanitize(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		if _, ok := r.Field(k); ok {
			out[k] = v
		}
	}
	return out
}

// Validate checks a payload against the field rules. A partial payload
// (update) does not need to carry required fields.
func (r *Resource) Validate(rec Record, partial bool) error {
	keys := make([]*validation.KeyRules, 0, len(r.Fields))
	for _, f := range r.Fields {
		rules := []validation.Rule{validation.By(typeRule(f.Type))}
		if f.Required {
			rules = append(rules, validation.Required)
		}
		if f.MaxLen > 0 {
			rules = append(rules, validation.Length(0, f.MaxLen))
		}
		key := validation.Key(f.Name, rules...)
		if partial || !f.Required {
			key = key.Optional()
		}
		keys = append(keys, key)
	}
	return validation.Validate(map[string]interface{}(rec),
		validation.Map(keys...).AllowExtraKeys(),
	)
}

var (
	errNotString  = validation.NewError("validation_not_string", "must be a string")
	errNotInteger = validation.NewError("validation_not_integer", "must be an integer")
	errNotNumber  = validation.NewError("validation_not_number", "must be a number")
	errNotBool    = validation.NewError("validation_not_bool", "must be a boolean")
	errNotTime    = validation.NewError("validation_not_time", "must be a RFC3339 timestamp")
)

func typeRule(t FieldType) validation.RuleFunc {
	return func(value interface{}) error {
		if value == nil {
			return nil
		}
		switch t {
		case TypeString:
			if _, ok := value.(string); !ok {
				return errNotString
			}
		case TypeInt:
			switch v := value.(type) {
			case int, int32, int64:
			case float64:
				if v != float64(int64(v)) {
					return errNotInteger
				}
			default:
				return errNotInteger
			}
		case TypeFloat:
			switch value.(type) {
			case int, int32, int64, float32, float64:
			default:
				return errNotNumber
			}
		case TypeBool:
			if _, ok := value.(bool); !ok {
				return errNotBool
			}
		case TypeTime:
			s, ok := value.(string)
			if !ok {
				return errNotTime
			}
			if _, err := time.Parse(time.RFC3339, s); err != nil {
				return errNotTime
			}
		case TypeJSON:
		}
		return nil
	}
}

// Schema is the set of resources a service exposes.
type Schema struct {
	resources map[string]*Resource
}

func NewSchema(resources ...*Resource) *Schema {
	s := &Schema{resources: make(map[string]*Resource, len(resources))}
	for _, r := range resources {
		s.resources[r.Name] = r
	}
	return s
}

func (s *Schema) Resource(name string) (*Resource, bool) {
	r, ok := s.resources[name]
	return r, ok
}

// Resources returns the resources sorted by name.
func (s *Schema) Resources() []*Resource {
	out := make([]*Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
