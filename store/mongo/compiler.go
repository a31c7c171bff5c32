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

package mongo

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
)

const fieldSep = "."

var mongoComparison = map[store.Comparison]string{
	store.Ne:  "$ne",
	store.Lt:  "$lt",
	store.Lte: "$lte",
	store.Gt:  "$gt",
	store.Gte: "$gte",
}

// timeLayouts are tried in order when a filter value is compared against
// a time field.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// compileFilter renders the clauses of q as a find filter. Relations are
// embedded documents: belongs-to relations are matched through dotted
// paths, has-many ones through $elemMatch.
func compileFilter(q *store.Query) (bson.D, error) {
	res := q.Resource()
	conds := make(bson.A, 0, len(q.Clauses)+1)
	if res.SoftDeletes {
		switch q.Trashed {
		case store.ExcludeTrashed:
			conds = append(conds, bson.D{{Key: model.FieldDeletedAt, Value: nil}})
		case store.OnlyTrashed:
			conds = append(conds, bson.D{{
				Key: model.FieldDeletedAt, Value: bson.D{{Key: "$ne", Value: nil}},
			}})
		case store.WithTrashed:
		}
	}
	for _, cl := range q.Clauses {
		cond, err := compileClause(res, "", cl)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return and(conds), nil
}

func and(conds bson.A) bson.D {
	switch len(conds) {
	case 0:
		return bson.D{}
	case 1:
		return conds[0].(bson.D)
	}
	return bson.D{{Key: "$and", Value: conds}}
}

func compileClause(res *model.Resource, prefix string, cl store.Clause) (bson.D, error) {
	switch cl := cl.(type) {
	case store.CompareClause:
		value := coerce(res, cl.Column, cl.Value)
		if cl.Op == store.Eq {
			return bson.D{{Key: prefix + cl.Column, Value: value}}, nil
		}
		op, ok := mongoComparison[cl.Op]
		if !ok {
			return nil, errors.Errorf("unsupported comparison %q", cl.Op)
		}
		return bson.D{{Key: prefix + cl.Column, Value: bson.D{{Key: op, Value: value}}}}, nil

	case store.NullClause:
		if cl.Not {
			return bson.D{{Key: prefix + cl.Column, Value: bson.D{{Key: "$ne", Value: nil}}}}, nil
		}
		return bson.D{{Key: prefix + cl.Column, Value: nil}}, nil

	case store.InClause:
		values := make(bson.A, len(cl.Values))
		for i, v := range cl.Values {
			values[i] = coerce(res, cl.Column, v)
		}
		op := "$in"
		if cl.Not {
			op = "$nin"
		}
		return bson.D{{Key: prefix + cl.Column, Value: bson.D{{Key: op, Value: values}}}}, nil

	case store.LikeClause:
		return bson.D{{Key: prefix + cl.Column, Value: primitive.Regex{
			Pattern: likeToRegex(cl.Pattern),
			Options: "i",
		}}}, nil

	case store.BetweenClause:
		return bson.D{{Key: prefix + cl.Column, Value: bson.D{
			{Key: "$gte", Value: coerce(res, cl.Column, cl.From)},
			{Key: "$lte", Value: coerce(res, cl.Column, cl.To)},
		}}}, nil

	case store.JSONContainsClause:
		// equality on a path also matches array members
		return bson.D{{Key: prefix + cl.Column + fieldSep + cl.Path, Value: cl.Value}}, nil

	case store.OrClause:
		alts := make(bson.A, 0, len(cl.Clauses))
		for _, sub := range cl.Clauses {
			cond, err := compileClause(res, prefix, sub)
			if err != nil {
				return nil, err
			}
			alts = append(alts, cond)
		}
		return bson.D{{Key: "$or", Value: alts}}, nil

	case store.ExistsClause:
		return compileExists(prefix, cl)
	}
	return nil, errors.Errorf("unsupported clause type %T", cl)
}

func compileExists(prefix string, cl store.ExistsClause) (bson.D, error) {
	path := prefix + cl.Relation.Name
	if cl.Relation.LocalKey == model.FieldID {
		conds := make(bson.A, 0, len(cl.Clauses))
		for _, sub := range cl.Clauses {
			cond, err := compileClause(cl.Resource, "", sub)
			if err != nil {
				return nil, err
			}
			conds = append(conds, cond)
		}
		if len(conds) == 0 {
			return bson.D{{Key: path + fieldSep + "0", Value: bson.D{{Key: "$exists", Value: true}}}}, nil
		}
		return bson.D{{Key: path, Value: bson.D{{Key: "$elemMatch", Value: and(conds)}}}}, nil
	}

	conds := bson.A{bson.D{{Key: path, Value: bson.D{{Key: "$ne", Value: nil}}}}}
	for _, sub := range cl.Clauses {
		cond, err := compileClause(cl.Resource, path+fieldSep, sub)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return and(conds), nil
}

func compileSort(q *store.Query) bson.D {
	sort := make(bson.D, 0, len(q.Orders)+1)
	for _, o := range q.Orders {
		dir := 1
		if o.Descending {
			dir = -1
		}
		sort = append(sort, bson.E{Key: o.Column, Value: dir})
	}
	return append(sort, bson.E{Key: "_id", Value: 1})
}

// likeToRegex translates a SQL LIKE pattern into an anchored regular
// expression.
func likeToRegex(pattern string) string {
	var sb strings.Builder
	sb.WriteString("^")
	literal := strings.Builder{}
	flush := func() {
		sb.WriteString(regexp.QuoteMeta(literal.String()))
		literal.Reset()
	}
	for _, r := range pattern {
		switch r {
		case '%':
			flush()
			sb.WriteString(".*")
		case '_':
			flush()
			sb.WriteString(".")
		default:
			literal.WriteRune(r)
		}
	}
	flush()
	sb.WriteString("$")
	return sb.String()
}

// coerce converts string filter values to the stored type of column.
// Values that do not parse are compared as given.
func coerce(res *model.Resource, column string, value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	f, ok := res.Field(column)
	if !ok {
		return value
	}
	switch f.Type {
	case model.TypeInt:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case model.TypeFloat:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
	case model.TypeBool:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	case model.TypeTime:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	case model.TypeString, model.TypeJSON:
	}
	return value
}
