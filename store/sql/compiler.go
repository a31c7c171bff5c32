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

package sql

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
)

const (
	identQuote = `"`
	pathSep    = "."
)

// compiler renders a store.Query as SQL text for one dialect. A compiler
// is used for a single statement: it accumulates bind arguments and
// relation aliases as it goes.
type compiler struct {
	driver  store.Driver
	args    []interface{}
	aliases int
}

func newCompiler(driver store.Driver) *compiler {
	return &compiler{driver: driver}
}

func quoteIdent(name string) string {
	segments := strings.Split(name, pathSep)
	for i, s := range segments {
		segments[i] = identQuote +
			strings.ReplaceAll(s, identQuote, identQuote+identQuote) +
			identQuote
	}
	return strings.Join(segments, pathSep)
}

func (c *compiler) bind(v interface{}) string {
	c.args = append(c.args, v)
	if c.driver.IsPostgres() {
		return "$" + strconv.Itoa(len(c.args))
	}
	return "?"
}

// column qualifies a plain column with the table alias; dotted names are
// taken as already qualified.
func (c *compiler) column(qualifier, name string) string {
	if strings.Contains(name, pathSep) {
		return quoteIdent(name)
	}
	return qualifier + pathSep + quoteIdent(name)
}

func (c *compiler) Select(q *store.Query) (string, []interface{}, error) {
	res := q.Resource()
	table := quoteIdent(res.Table)

	var sb strings.Builder
	sb.WriteString("SELECT " + table + ".* FROM " + table)
	where, err := c.where(res, table, q.Clauses, q.Trashed)
	if err != nil {
		return "", nil, err
	}
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}

	sb.WriteString(" ORDER BY ")
	for _, o := range q.Orders {
		sb.WriteString(c.column(table, o.Column))
		if o.Descending {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
		sb.WriteString(", ")
	}
	// stable pages need a total order
	sb.WriteString(c.column(table, model.FieldID) + " ASC")

	if q.RowLimit > 0 {
		sb.WriteString(" LIMIT " + c.bind(q.RowLimit))
	} else if q.RowOffset > 0 && !c.driver.IsPostgres() {
		sb.WriteString(" LIMIT -1")
	}
	if q.RowOffset > 0 {
		sb.WriteString(" OFFSET " + c.bind(q.RowOffset))
	}
	return sb.String(), c.args, nil
}

// Count ignores ordering and row bounds.
func (c *compiler) Count(q *store.Query) (string, []interface{}, error) {
	res := q.Resource()
	table := quoteIdent(res.Table)

	stmt := "SELECT COUNT(*) FROM " + table
	where, err := c.where(res, table, q.Clauses, q.Trashed)
	if err != nil {
		return "", nil, err
	}
	if where != "" {
		stmt += " WHERE " + where
	}
	return stmt, c.args, nil
}

func (c *compiler) where(
	res *model.Resource,
	qualifier string,
	clauses []store.Clause,
	trashed store.TrashedMode,
) (string, error) {
	parts := make([]string, 0, len(clauses)+1)
	if res.SoftDeletes {
		switch trashed {
		case store.ExcludeTrashed:
			parts = append(parts, c.column(qualifier, model.FieldDeletedAt)+" IS NULL")
		case store.OnlyTrashed:
			parts = append(parts, c.column(qualifier, model.FieldDeletedAt)+" IS NOT NULL")
		case store.WithTrashed:
		}
	}
	for _, cl := range clauses {
		s, err := c.clause(res, qualifier, cl)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " AND "), nil
}

func (c *compiler) clause(res *model.Resource, qualifier string, cl store.Clause) (string, error) {
	switch cl := cl.(type) {
	case store.CompareClause:
		return fmt.Sprintf("%s %s %s",
			c.column(qualifier, cl.Column), cl.Op, c.bind(cl.Value)), nil

	case store.NullClause:
		if cl.Not {
			return c.column(qualifier, cl.Column) + " IS NOT NULL", nil
		}
		return c.column(qualifier, cl.Column) + " IS NULL", nil

	case store.InClause:
		if len(cl.Values) == 0 {
			if cl.Not {
				return "1 = 1", nil
			}
			return "1 = 0", nil
		}
		binds := make([]string, len(cl.Values))
		for i, v := range cl.Values {
			binds[i] = c.bind(v)
		}
		op := "IN"
		if cl.Not {
			op = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)",
			c.column(qualifier, cl.Column), op, strings.Join(binds, ", ")), nil

	case store.LikeClause:
		op := "LIKE"
		if cl.CaseInsensitive && c.driver.IsPostgres() {
			op = "ILIKE"
		}
		return fmt.Sprintf("%s %s %s",
			c.column(qualifier, cl.Column), op, c.bind(cl.Pattern)), nil

	case store.BetweenClause:
		return fmt.Sprintf("%s BETWEEN %s AND %s",
			c.column(qualifier, cl.Column), c.bind(cl.From), c.bind(cl.To)), nil

	case store.JSONContainsClause:
		return c.jsonContains(qualifier, cl)

	case store.OrClause:
		parts := make([]string, 0, len(cl.Clauses))
		for _, sub := range cl.Clauses {
			s, err := c.clause(res, qualifier, sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		if len(parts) == 0 {
			return "1 = 0", nil
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil

	case store.ExistsClause:
		return c.exists(qualifier, cl)
	}
	return "", errors.Errorf("unsupported clause type %T", cl)
}

var jsonPathEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (c *compiler) jsonContains(qualifier string, cl store.JSONContainsClause) (string, error) {
	col := c.column(qualifier, cl.Column)
	if c.driver.IsPostgres() {
		value, err := json.Marshal(cl.Value)
		if err != nil {
			return "", errors.Wrap(err, "failed to encode json value")
		}
		return fmt.Sprintf("(%s -> %s::text) @> %s::jsonb",
			col, c.bind(cl.Path), c.bind(string(value))), nil
	}
	path := `$."` + jsonPathEscaper.Replace(cl.Path) + `"`
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s, %s) WHERE json_each.value = %s)",
		col, c.bind(path), c.bind(cl.Value)), nil
}

func (c *compiler) exists(qualifier string, cl store.ExistsClause) (string, error) {
	c.aliases++
	alias := quoteIdent("r" + strconv.Itoa(c.aliases))

	join := fmt.Sprintf("%s = %s",
		c.column(alias, cl.Relation.ForeignKey),
		c.column(qualifier, cl.Relation.LocalKey))
	inner, err := c.where(cl.Resource, alias, cl.Clauses, store.ExcludeTrashed)
	if err != nil {
		return "", err
	}
	if inner != "" {
		join += " AND " + inner
	}
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s AS %s WHERE %s)",
		quoteIdent(cl.Resource.Table), alias, join), nil
}
