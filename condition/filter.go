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

package condition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cast"

	"github.com/rybbit-io/filtersql/literal"
	"github.com/rybbit-io/filtersql/predicate"
	"github.com/rybbit-io/filtersql/types"
)

// dimsVar is the only variable filter programs read.
const dimsVar = "dims"

// FilterCondition evaluates dashboard filters against single event records.
// It is safe for concurrent use.
type FilterCondition struct {
	program *vm.Program
	source  string
	params  []types.Parameter
	config  types.Config
}

// NewFilterCondition compiles filters into one program. A record passes when
// it satisfies every filter, with the same operator semantics as the SQL
// compiler. Session scoped filters are rejected with types.ErrUnsupported.
//
// Example:
//
//	filters, _ := types.ParseFilters(`[{"parameter":"country","type":"equals","value":["US","CA"]}]`)
//	cond, err := condition.NewFilterCondition(filters)
//	cond.Evaluate(map[string]interface{}{"country": "CA"}) // true
func NewFilterCondition(filters []types.Filter) (*FilterCondition, error) {
	return NewFilterConditionConfig(filters, types.DefaultConfig())
}

// NewFilterConditionConfig is NewFilterCondition with the value combinators
// taken from config, so records pass exactly when the compiled SQL would
// select them.
func NewFilterConditionConfig(filters []types.Filter, config types.Config) (*FilterCondition, error) {
	c := &FilterCondition{config: config}
	seen := make(map[types.Parameter]bool)
	clauses := make([]string, 0, len(filters))

	for _, f := range filters {
		if f.Parameter.IsSessionScoped() {
			return nil, types.NewCompileError(types.ErrorTypeUnsupported, types.ErrUnsupported, f.Parameter.String(), "")
		}
		if err := literal.Validate(f); err != nil {
			return nil, err
		}
		clause, err := c.filterClause(f)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
		if !seen[f.Parameter] {
			seen[f.Parameter] = true
			c.params = append(c.params, f.Parameter)
		}
	}

	c.source = "true"
	if len(clauses) > 0 {
		c.source = strings.Join(clauses, " && ")
	}
	program, err := compile(c.source)
	if err != nil {
		return nil, fmt.Errorf("compile filter program %q: %w", c.source, err)
	}
	c.program = program
	return c, nil
}

// Expression returns the expr-lang source of the program.
func (c *FilterCondition) Expression() string {
	return c.source
}

// Evaluate reports whether env, an event record keyed by events table
// column, passes every filter. Anything that is not a string keyed map
// fails.
func (c *FilterCondition) Evaluate(env interface{}) bool {
	record, err := cast.ToStringMapE(env)
	if err != nil {
		return false
	}
	dims := make(map[string]interface{}, len(c.params)+1)
	for _, p := range c.params {
		deriveInto(dims, p, record)
	}
	return run(c.program, map[string]interface{}{dimsVar: dims})
}

func (c *FilterCondition) filterClause(f types.Filter) (string, error) {
	keyword := c.config.Combinator(f.Operator)
	parts := make([]string, 0, len(f.Values))
	for _, v := range f.Values {
		var (
			part string
			err  error
		)
		if f.Parameter.Kind == types.ParamUserID {
			part, err = identityClause(f.Operator, v)
		} else {
			part, err = valueClause(dimRef(f.Parameter.String()), f.Parameter, f.Operator, v)
		}
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return join(keyword, parts), nil
}

// identityClause ORs the identity columns for positive operators and ANDs
// them for negative ones. Multiple identity values join the same way.
func identityClause(op types.Operator, value string) (string, error) {
	parts := make([]string, 0, len(predicate.IdentityColumns))
	for _, column := range predicate.IdentityColumns {
		part, err := valueClause(dimRef(column), types.Parameter{Kind: types.ParamUserID}, op, value)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return join(op.Polarity().Combinator(), parts), nil
}

func valueClause(ref string, p types.Parameter, op types.Operator, value string) (string, error) {
	numeric := p.IsNumeric()
	text := ref
	if numeric {
		text = "string(" + ref + ")"
	}

	switch op {
	case types.OpEquals:
		if numeric {
			lo, hi, err := predicate.Band(value)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("(%s >= %s && %s <= %s)", ref, lo.String(), ref, hi.String()), nil
		}
		return ref + " == " + strconv.Quote(value), nil
	case types.OpNotEquals:
		if numeric {
			n, err := literal.Number(value)
			if err != nil {
				return "", err
			}
			return ref + " != " + literal.FormatNumber(n), nil
		}
		return ref + " != " + strconv.Quote(value), nil
	case types.OpGreaterThan, types.OpLessThan:
		n, err := literal.Number(value)
		if err != nil {
			return "", err
		}
		if !numeric {
			ref = "float(" + ref + ")"
		}
		symbol := ">"
		if op == types.OpLessThan {
			symbol = "<"
		}
		return ref + " " + symbol + " " + literal.FormatNumber(n), nil
	case types.OpContains:
		return "like_match(" + text + ", " + strconv.Quote("%"+value+"%") + ")", nil
	case types.OpNotContains:
		return "not like_match(" + text + ", " + strconv.Quote("%"+value+"%") + ")", nil
	case types.OpRegex:
		return "(" + text + " matches " + strconv.Quote(value) + ")", nil
	case types.OpNotRegex:
		return "not (" + text + " matches " + strconv.Quote(value) + ")", nil
	default:
		return "", types.NewCompileError(types.ErrorTypeUnknownOperator, types.ErrUnknownOperator, p.String(), string(op))
	}
}

func dimRef(name string) string {
	return dimsVar + "[" + strconv.Quote(name) + "]"
}

func join(keyword string, parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	sep := " || "
	if keyword == "AND" {
		sep = " && "
	}
	return "(" + strings.Join(parts, sep) + ")"
}
