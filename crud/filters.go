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

// Package crud turns parsed list parameters into query predicates,
// ordering and row bounds.
//
// Filter keys use the caller-facing camelCase naming and may traverse up
// to two relations with dots (`category.group.name`). Deeper paths are
// dropped with a warning; `nin` never traverses relations.
package crud

import (
	"context"
	"sort"
	"strings"

	"github.com/mendersoftware/go-lib-micro/log"

	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
	"github.com/mendersoftware/scaffold/utils"
)

const (
	relationSeparator = "."
	listSeparator     = ","
	likeWildcard      = "%"
	maxRelationHops   = 2
)

// ApplyFilters adds the predicates described by filters to q. Nothing is
// added unless every filter could be applied.
func ApplyFilters(ctx context.Context, q *store.Query, filters model.FilterExpression) error {
	scratch := q.Scratch()
	for _, f := range filters {
		if err := applyFilter(ctx, scratch, f); err != nil {
			return err
		}
	}
	q.Merge(scratch)
	return nil
}

func applyFilter(ctx context.Context, q *store.Query, f model.Filter) error {
	column := utils.ToSnake(f.Column)
	hasRelation := strings.Contains(column, relationSeparator)

	switch param := f.Param.(type) {
	case model.Operators:
		for _, ov := range param {
			op, err := model.ParseOperator(ov.Code)
			if err != nil {
				return err
			}
			if op == model.OpNn {
				q.WhereNotNull(column)
				continue
			}
			if ov.IsEmpty() {
				continue
			}
			value := ov.Value
			if ov.Object == nil {
				value = strings.TrimSpace(value)
			}
			err = applyOperator(ctx, q, op, column, value, ov.Object, hasRelation)
			if err != nil {
				return err
			}
		}

	case model.Scalar:
		if param == "" {
			return nil
		}
		return whereEquals(ctx, q, column, string(param), hasRelation)

	case model.Literal:
		if param.Value != nil {
			q.Where(column, store.Eq, param.Value)
		}
	}
	return nil
}

func applyOperator(
	ctx context.Context,
	q *store.Query,
	op model.SearchOperator,
	column, value string,
	object map[string]string,
	hasRelation bool,
) error {
	switch op {
	case model.OpEq:
		return whereEquals(ctx, q, column, value, hasRelation)
	case model.OpNeq:
		q.Where(column, store.Ne, value)
	case model.OpLt:
		q.Where(column, store.Lt, value)
	case model.OpLte:
		q.Where(column, store.Lte, value)
	case model.OpGt:
		q.Where(column, store.Gt, value)
	case model.OpGte:
		q.Where(column, store.Gte, value)
	case model.OpGtn:
		q.WhereNullOr(column, store.Gt, value)
	case model.OpLtn:
		q.WhereNullOr(column, store.Lt, value)
	case model.OpIn:
		values := strings.Split(value, listSeparator)
		return whereRelated(ctx, q, column, func(sub *store.Query, field string) {
			sub.WhereIn(field, values)
		})
	case model.OpNin:
		q.WhereNotIn(column, strings.Split(value, listSeparator))
	case model.OpLike:
		pattern := likeWildcard + value + likeWildcard
		insensitive := q.Driver().IsPostgres()
		return whereRelated(ctx, q, column, func(sub *store.Query, field string) {
			sub.WhereLike(field, pattern, insensitive)
		})
	case model.OpBtw:
		bounds, err := NormalizeDateRange(value)
		if err != nil {
			return err
		}
		return whereRelated(ctx, q, column, func(sub *store.Query, field string) {
			sub.WhereBetween(field, bounds[0], bounds[1])
		})
	case model.OpJSON:
		whereJSONContains(q, column, object)
	case model.OpNn:
		q.WhereNotNull(column)
	}
	return nil
}

// whereEquals is the equality shorthand: relation paths become existence
// checks and a relation's `id` is looked up by its external id.
func whereEquals(ctx context.Context, q *store.Query, column, value string, hasRelation bool) error {
	if !hasRelation {
		q.Where(column, store.Eq, value)
		return nil
	}
	segments := strings.Split(column, relationSeparator)
	return whereRelated(ctx, q, column, func(sub *store.Query, field string) {
		if len(segments) == 2 && field == model.FieldID {
			field = model.FieldExternalID
		}
		sub.Where(field, store.Eq, value)
	})
}

// whereRelated calls apply on q for plain columns, or on the query scoped
// to the last relation of a one or two hop path.
func whereRelated(
	ctx context.Context,
	q *store.Query,
	column string,
	apply func(sub *store.Query, field string),
) error {
	segments := strings.Split(column, relationSeparator)
	switch len(segments) {
	case 1:
		apply(q, column)
		return nil
	case 2:
		return q.WhereHas(utils.ToCamel(segments[0]), func(sub *store.Query) error {
			apply(sub, segments[1])
			return nil
		})
	case 3:
		return q.WhereHas(utils.ToCamel(segments[0]), func(sub *store.Query) error {
			return sub.WhereHas(utils.ToCamel(segments[1]), func(inner *store.Query) error {
				apply(inner, segments[2])
				return nil
			})
		})
	}
	log.FromContext(ctx).Warnf(
		"ignoring filter on %q: relation paths deeper than %d hops are not supported",
		column, maxRelationHops,
	)
	return nil
}

// whereJSONContains matches each key of object inside the JSON column;
// comma separated values match any of the alternates.
func whereJSONContains(q *store.Query, column string, object map[string]string) {
	keys := make([]string, 0, len(object))
	for k := range object {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := object[key]
		if !strings.Contains(value, listSeparator) {
			q.WhereJSONContains(column, key, value)
			continue
		}
		alternates := strings.Split(value, listSeparator)
		q.WhereAny(func(sub *store.Query) {
			for _, alt := range alternates {
				sub.WhereJSONContains(column, key, alt)
			}
		})
	}
}
