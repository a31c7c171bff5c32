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
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

const perPageMax = 500

var validColumnRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Param is the right hand side of a filter entry: a Scalar (implicit
// equality), Operators (explicit operator map) or a Literal.
type Param interface {
	isParam()
}

// Scalar is a plain `filter[<col>]=<value>` entry.
type Scalar string

// Literal carries a non-string value (bool, number) compared for equality
// as-is.
type Literal struct {
	Value interface{}
}

// OperatorValue is a single `filter[<col>][<op>]` entry. Object holds the
// `filter[<col>][json][<key>]=<value>` sub-mapping.
type OperatorValue struct {
	Code   string            `json:"code"`
	Value  string            `json:"value,omitempty"`
	Object map[string]string `json:"object,omitempty"`
}

// Operators keeps operator entries in request order.
type Operators []OperatorValue

func (Scalar) isParam()    {}
func (Literal) isParam()   {}
func (Operators) isParam() {}

// IsEmpty reports whether the operand carries no value at all.
func (v OperatorValue) IsEmpty() bool {
	if v.Object != nil {
		return len(v.Object) == 0
	}
	return v.Value == ""
}

// Filter is one top-level entry of a filter expression.
type Filter struct {
	Column string `json:"column"`
	Param  Param  `json:"param"`
}

// FilterExpression is the parsed `filter[...]` family of query parameters.
type FilterExpression []Filter

func (f Filter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Column, validation.Required, validation.Match(validColumnRegex)),
		validation.Field(&f.Param, validation.NotNil),
	)
}

// Trashed selects how soft deleted records take part in a listing.
type Trashed string

const (
	TrashedExclude Trashed = ""
	TrashedWith    Trashed = "with"
	TrashedOnly    Trashed = "only"
)

// ListParams collects everything a list request may carry.
type ListParams struct {
	Filters        FilterExpression `json:"filters"`
	Sort           string           `json:"sort"`
	Page           int              `json:"page"`
	PerPage        int              `json:"per_page"`
	SkipPagination bool             `json:"skip_pagination"`
	Limit          int              `json:"limit"`
	Trashed        Trashed          `json:"trashed"`
}

func (lp ListParams) Validate() error {
	for _, f := range lp.Filters {
		if err := f.Validate(); err != nil {
			return errors.Wrapf(err, "invalid filter %q", f.Column)
		}
	}
	return validation.ValidateStruct(&lp,
		validation.Field(&lp.Sort, validation.Length(0, 1024)),
		validation.Field(&lp.Page, validation.Min(0)),
		validation.Field(&lp.PerPage, validation.Max(perPageMax)),
		validation.Field(&lp.Trashed, validation.In(TrashedWith, TrashedOnly)),
	)
}
