/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package session compiles filters on dimensions derived from every row of
// a session (entry page, exit page, events fired) into correlated
// session_id subqueries.
package session

import (
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/rybbit-io/filtersql/literal"
	"github.com/rybbit-io/filtersql/predicate"
	"github.com/rybbit-io/filtersql/types"
)

const (
	// SessionColumn correlates the subquery with the outer query.
	SessionColumn = "session_id"
	// EntryPageExpr is the first page of a session.
	EntryPageExpr = "argMin(pathname, timestamp)"
	// ExitPageExpr is the last page of a session.
	ExitPageExpr = "argMax(pathname, timestamp)"
	// EventNameColumn names custom events.
	EventNameColumn = "event_name"
	// SiteColumn scopes rows to one site.
	SiteColumn = "site_id"
)

var errTimePlaceholder = errors.New("time statement contains '?' while values are bound as arguments")

// Builder compiles a session scoped filter into a complete predicate.
type Builder interface {
	Build(f types.Filter, scope types.Scope) (sq.Sqlizer, error)
}

// Factory creates the Builder one compilation uses. predicates carries the
// binder of that compilation.
type Factory func(predicates *predicate.Builder, config types.Config) Builder

// NewFactory is the default Factory: a SubqueryBuilder over
// config.EventsTable.
func NewFactory(predicates *predicate.Builder, config types.Config) Builder {
	return NewSubqueryBuilder(predicates, config.EventsTable)
}

// SubqueryBuilder is the ClickHouse Builder. The subquery repeats the site
// and time restrictions of scope because it scans a different row set than
// the outer query.
type SubqueryBuilder struct {
	predicates *predicate.Builder
	table      string
}

// NewSubqueryBuilder creates a SubqueryBuilder reading from table. Values
// are rendered through the binder of predicates.
func NewSubqueryBuilder(predicates *predicate.Builder, table string) *SubqueryBuilder {
	if table == "" {
		table = types.DefaultEventsTable
	}
	return &SubqueryBuilder{predicates: predicates, table: table}
}

// Build implements Builder.
func (b *SubqueryBuilder) Build(f types.Filter, scope types.Scope) (sq.Sqlizer, error) {
	if err := literal.Validate(f); err != nil {
		return nil, err
	}

	switch f.Parameter.Kind {
	case types.ParamEntryPage:
		return b.boundary(EntryPageExpr, f, scope)
	case types.ParamExitPage:
		return b.boundary(ExitPageExpr, f, scope)
	case types.ParamEventName:
		return b.event(f, scope)
	default:
		return nil, types.NewCompileError(types.ErrorTypeUnsupported, types.ErrUnsupported, f.Parameter.String(), "")
	}
}

// boundary matches sessions whose first or last page satisfies f.
func (b *SubqueryBuilder) boundary(aggregate string, f types.Filter, scope types.Scope) (sq.Sqlizer, error) {
	having, err := b.predicates.Compare(aggregate, f)
	if err != nil {
		return nil, err
	}
	sub, err := b.scoped(sq.Select(SessionColumn).From(b.table), f, scope)
	if err != nil {
		return nil, err
	}
	return membership(SessionColumn+" IN", sub.GroupBy(SessionColumn).Having(having))
}

// event matches sessions with at least one matching event. Negative
// operators match sessions with none of them: not_equals [a, b] becomes
// session_id NOT IN (... event_name = 'a' OR event_name = 'b'), not
// session_id IN (... event_name != 'a' ...). The IN form would keep every
// session that fired any other event, which excludes nothing in practice.
func (b *SubqueryBuilder) event(f types.Filter, scope types.Scope) (sq.Sqlizer, error) {
	keyword := SessionColumn + " IN"
	if f.Operator.Polarity() == types.Negative {
		keyword = SessionColumn + " NOT IN"
		f.Operator = f.Operator.Negated()
	}

	where, err := b.predicates.Compare(EventNameColumn, f)
	if err != nil {
		return nil, err
	}
	sub, err := b.scoped(sq.Select(SessionColumn).Distinct().From(b.table), f, scope)
	if err != nil {
		return nil, err
	}
	return membership(keyword, sub.Where(where))
}

// scoped adds the site and time restrictions. The time statement is spliced
// verbatim, so a "?" in it is rejected when values are bound as arguments.
func (b *SubqueryBuilder) scoped(sb sq.SelectBuilder, f types.Filter, scope types.Scope) (sq.SelectBuilder, error) {
	binder := b.predicates.Binder()
	if scope.SiteID != 0 {
		text, args := binder.Bind(scope.SiteID)
		sb = sb.Where(sq.Expr(SiteColumn+" = "+text, args...))
	}
	if t := scope.TimePredicate(); t != "" {
		if literal.Binds(binder) && strings.Contains(t, "?") {
			return sb, types.NewCompileError(types.ErrorTypeUnsupported, types.ErrUnsupported, f.Parameter.String(), t).
				WithCause(errTimePlaceholder)
		}
		sb = sb.Where(t)
	}
	return sb, nil
}

func membership(keyword string, sub sq.SelectBuilder) (sq.Sqlizer, error) {
	sql, args, err := sub.ToSql()
	if err != nil {
		return nil, err
	}
	return sq.Expr(keyword+" ("+sql+")", args...), nil
}
