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

// Package predicate turns one filter into a boolean SQL fragment.
//
// Fragments are squirrel Sqlizers. With literal.Inline they carry no
// arguments and ToSql returns ready-to-splice SQL; with literal.Placeholder
// every value becomes a "?" argument.
package predicate

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/rybbit-io/filtersql/literal"
	"github.com/rybbit-io/filtersql/resolver"
	"github.com/rybbit-io/filtersql/types"
)

// Builder compiles row-level filters. It holds no mutable state and is safe
// for concurrent use.
type Builder struct {
	binder literal.Binder
	config types.Config
}

// NewBuilder creates a Builder. A nil binder means literal.Inline.
func NewBuilder(binder literal.Binder, config types.Config) *Builder {
	if binder == nil {
		binder = literal.Inline
	}
	return &Builder{binder: binder, config: config}
}

// Binder returns the binder values are rendered with.
func (b *Builder) Binder() literal.Binder {
	return b.binder
}

// Build compiles f. Session scoped parameters are rejected; see the session
// package.
func (b *Builder) Build(f types.Filter) (sq.Sqlizer, error) {
	if err := literal.Validate(f); err != nil {
		return nil, err
	}

	if f.Parameter.Kind == types.ParamUserID {
		return b.identity(f)
	}

	expr, exprArgs, err := resolver.Bind(f.Parameter, b.binder)
	if err != nil {
		return nil, err
	}
	if f.Parameter.IsNumeric() && f.Operator == types.OpEquals {
		return b.band(expr, f)
	}
	return b.compare(expr, exprArgs, f)
}

// Compare applies the operator and values of f to expr and joins the
// per-value predicates with the operator's combinator. f must already be
// validated.
func (b *Builder) Compare(expr string, f types.Filter) (sq.Sqlizer, error) {
	return b.compare(expr, nil, f)
}

// compare is Compare for an expression carrying its own arguments. They are
// repeated in every per-value predicate.
func (b *Builder) compare(expr string, exprArgs []interface{}, f types.Filter) (sq.Sqlizer, error) {
	parts := make([]sq.Sqlizer, 0, len(f.Values))
	for _, v := range f.Values {
		part, err := b.compareOne(expr, exprArgs, f.Operator, v, f.Parameter.IsNumeric())
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return Combine(b.config.Combinator(f.Operator), parts), nil
}

func (b *Builder) compareOne(expr string, exprArgs []interface{}, op types.Operator, value string, numeric bool) (sq.Sqlizer, error) {
	switch op {
	case types.OpEquals, types.OpNotEquals, types.OpGreaterThan, types.OpLessThan:
		var bound interface{} = value
		if numeric || op.IsNumeric() {
			n, err := literal.Number(value)
			if err != nil {
				return nil, err
			}
			bound = n
		}
		return b.exprWith(exprArgs, "%s %s %s", expr, comparison(op), bound), nil
	case types.OpContains, types.OpNotContains:
		keyword := "LIKE"
		if op == types.OpNotContains {
			keyword = "NOT LIKE"
		}
		return b.exprWith(exprArgs, "%s %s %s", textual(expr, numeric), keyword, "%"+value+"%"), nil
	case types.OpRegex:
		return b.exprWith(exprArgs, "match(%s, %s)", textual(expr, numeric), value), nil
	case types.OpNotRegex:
		return b.exprWith(exprArgs, "NOT match(%s, %s)", textual(expr, numeric), value), nil
	default:
		return nil, types.NewCompileError(types.ErrorTypeUnknownOperator, types.ErrUnknownOperator, "", string(op))
	}
}

// expr formats a predicate whose last verb is filled by the bound value.
func (b *Builder) expr(format string, args ...interface{}) sq.Sqlizer {
	return b.exprWith(nil, format, args...)
}

// exprWith is expr where the expression verb, which always comes before the
// value, adds exprArgs.
func (b *Builder) exprWith(exprArgs []interface{}, format string, args ...interface{}) sq.Sqlizer {
	last := len(args) - 1
	text, bound := b.binder.Bind(args[last])
	args[last] = text
	var all []interface{}
	all = append(all, exprArgs...)
	all = append(all, bound...)
	return sq.Expr(fmt.Sprintf(format, args...), all...)
}

func comparison(op types.Operator) string {
	switch op {
	case types.OpNotEquals:
		return "!="
	case types.OpGreaterThan:
		return ">"
	case types.OpLessThan:
		return "<"
	default:
		return "="
	}
}

// textual makes a numeric column usable by LIKE and match().
func textual(expr string, numeric bool) string {
	if numeric {
		return "toString(" + expr + ")"
	}
	return expr
}

// Combine joins parts with keyword ("AND" or "OR"). A single part is
// returned as is; several are wrapped in one parenthesized group.
func Combine(keyword string, parts []sq.Sqlizer) sq.Sqlizer {
	if len(parts) == 1 {
		return parts[0]
	}
	if keyword == "AND" {
		return sq.And(parts)
	}
	return sq.Or(parts)
}
