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

package store

import (
	"github.com/pkg/errors"

	"github.com/mendersoftware/scaffold/model"
)

// Driver names the database engine a query is compiled for.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite3"
	DriverMongo    Driver = "mongo"
)

func ParseDriver(name string) (Driver, error) {
	switch name {
	case "postgres", "postgresql", "pgx":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "mongo", "mongodb":
		return DriverMongo, nil
	}
	return "", errors.Errorf("unsupported database driver: %q", name)
}

// IsPostgres reports whether the engine belongs to the PostgreSQL family.
func (d Driver) IsPostgres() bool {
	return d == DriverPostgres
}

type Comparison string

const (
	Eq  Comparison = "="
	Ne  Comparison = "!="
	Lt  Comparison = "<"
	Lte Comparison = "<="
	Gt  Comparison = ">"
	Gte Comparison = ">="
)

// Clause is a node of the predicate tree held by a Query. The set of
// implementations is closed; backends switch over all of them.
type Clause interface {
	clause()
}

type CompareClause struct {
	Column string
	Op     Comparison
	Value  interface{}
}

type NullClause struct {
	Column string
	Not    bool
}

type InClause struct {
	Column string
	Values []string
	Not    bool
}

type LikeClause struct {
	Column          string
	Pattern         string
	CaseInsensitive bool
}

type BetweenClause struct {
	Column string
	From   interface{}
	To     interface{}
}

// JSONContainsClause matches rows whose JSON column holds Value under the
// top-level key Path (either equal to it or, for arrays, containing it).
type JSONContainsClause struct {
	Column string
	Path   string
	Value  interface{}
}

// OrClause is a parenthesised disjunction of its members.
type OrClause struct {
	Clauses []Clause
}

// ExistsClause restricts rows to those having at least one related row
// matching Clauses.
type ExistsClause struct {
	Relation model.Relation
	Resource *model.Resource
	Clauses  []Clause
}

func (CompareClause) clause()      {}
func (NullClause) clause()         {}
func (InClause) clause()           {}
func (LikeClause) clause()         {}
func (BetweenClause) clause()      {}
func (JSONContainsClause) clause() {}
func (OrClause) clause()           {}
func (ExistsClause) clause()       {}

type Order struct {
	Column     string
	Descending bool
}

type TrashedMode int

const (
	ExcludeTrashed TrashedMode = iota
	WithTrashed
	OnlyTrashed
)

// Query accumulates predicates, ordering and row bounds against one
// resource. It is owned by a single request; nothing in it is safe for
// concurrent use.
type Query struct {
	schema   *model.Schema
	resource *model.Resource
	driver   Driver

	Clauses   []Clause
	Orders    []Order
	RowLimit  int
	RowOffset int
	Trashed   TrashedMode
}

func NewQuery(schema *model.Schema, resource string, driver Driver) (*Query, error) {
	r, ok := schema.Resource(resource)
	if !ok {
		return nil, errors.Wrap(ErrUnknownResource, resource)
	}
	return &Query{schema: schema, resource: r, driver: driver}, nil
}

func (q *Query) Resource() *model.Resource {
	return q.resource
}

func (q *Query) Driver() Driver {
	return q.driver
}

func (q *Query) Where(column string, op Comparison, value interface{}) *Query {
	q.Clauses = append(q.Clauses, CompareClause{Column: column, Op: op, Value: value})
	return q
}

func (q *Query) WhereNull(column string) *Query {
	q.Clauses = append(q.Clauses, NullClause{Column: column})
	return q
}

func (q *Query) WhereNotNull(column string) *Query {
	q.Clauses = append(q.Clauses, NullClause{Column: column, Not: true})
	return q
}

func (q *Query) WhereIn(column string, values []string) *Query {
	q.Clauses = append(q.Clauses, InClause{Column: column, Values: values})
	return q
}

func (q *Query) WhereNotIn(column string, values []string) *Query {
	q.Clauses = append(q.Clauses, InClause{Column: column, Values: values, Not: true})
	return q
}

func (q *Query) WhereLike(column, pattern string, caseInsensitive bool) *Query {
	q.Clauses = append(q.Clauses, LikeClause{
		Column:          column,
		Pattern:         pattern,
		CaseInsensitive: caseInsensitive,
	})
	return q
}

func (q *Query) WhereBetween(column string, from, to interface{}) *Query {
	q.Clauses = append(q.Clauses, BetweenClause{Column: column, From: from, To: to})
	return q
}

func (q *Query) WhereJSONContains(column, path string, value interface{}) *Query {
	q.Clauses = append(q.Clauses, JSONContainsClause{Column: column, Path: path, Value: value})
	return q
}

// WhereNullOr adds `(column IS NULL OR column <op> value)` as one group.
func (q *Query) WhereNullOr(column string, op Comparison, value interface{}) *Query {
	q.Clauses = append(q.Clauses, OrClause{Clauses: []Clause{
		NullClause{Column: column},
		CompareClause{Column: column, Op: op, Value: value},
	}})
	return q
}

// WhereAny collects the clauses added by fn into one OR group.
func (q *Query) WhereAny(fn func(*Query)) *Query {
	sub := q.scoped(q.resource)
	fn(sub)
	if len(sub.Clauses) > 0 {
		q.Clauses = append(q.Clauses, OrClause{Clauses: sub.Clauses})
	}
	return q
}

// WhereHas scopes the clauses added by fn to the related resource named
// relation (camelCase) and requires at least one related row to match.
func (q *Query) WhereHas(relation string, fn func(*Query) error) error {
	rel, ok := q.resource.Relation(relation)
	if !ok {
		return errors.Wrapf(ErrUnknownRelation, "%s.%s", q.resource.Name, relation)
	}
	target, ok := q.schema.Resource(rel.Resource)
	if !ok {
		return errors.Wrap(ErrUnknownResource, rel.Resource)
	}
	sub := q.scoped(target)
	if err := fn(sub); err != nil {
		return err
	}
	q.Clauses = append(q.Clauses, ExistsClause{
		Relation: *rel,
		Resource: target,
		Clauses:  sub.Clauses,
	})
	return nil
}

func (q *Query) OrderBy(column string, descending bool) *Query {
	q.Orders = append(q.Orders, Order{Column: column, Descending: descending})
	return q
}

func (q *Query) Limit(n int) *Query {
	q.RowLimit = n
	return q
}

// ForPage bounds the query to the 1-based page of perPage rows.
func (q *Query) ForPage(page, perPage int) *Query {
	if page < 1 {
		page = 1
	}
	q.RowOffset = (page - 1) * perPage
	q.RowLimit = perPage
	return q
}

func (q *Query) WithTrashed() *Query {
	q.Trashed = WithTrashed
	return q
}

func (q *Query) OnlyTrashed() *Query {
	q.Trashed = OnlyTrashed
	return q
}

// Scratch returns an empty query against the same resource; its clauses
// can be folded back with Merge.
func (q *Query) Scratch() *Query {
	return q.scoped(q.resource)
}

func (q *Query) Merge(other *Query) *Query {
	q.Clauses = append(q.Clauses, other.Clauses...)
	return q
}

func (q *Query) Clone() *Query {
	c := *q
	c.Clauses = append([]Clause(nil), q.Clauses...)
	c.Orders = append([]Order(nil), q.Orders...)
	return &c
}

func (q *Query) scoped(r *model.Resource) *Query {
	return &Query{schema: q.schema, resource: r, driver: q.driver}
}
