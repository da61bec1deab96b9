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

package filtersql

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/rybbit-io/filtersql/literal"
	"github.com/rybbit-io/filtersql/logger"
	"github.com/rybbit-io/filtersql/predicate"
	"github.com/rybbit-io/filtersql/session"
	"github.com/rybbit-io/filtersql/types"
)

// Compiler turns filter descriptors into a predicate fragment to append
// after the WHERE clause of an events query.
//
// A Compiler is immutable after New and may be shared between goroutines.
//
// Example:
//
//	c := filtersql.New()
//	stmt, err := c.Compile(`[{"parameter":"browser","type":"equals","value":["Chrome"]}]`, types.Scope{SiteID: 1})
//	// stmt == "AND browser = 'Chrome'"
type Compiler struct {
	config   types.Config
	log      logger.Logger
	sessions session.Factory
}

// New creates a Compiler. Without options it reads session subqueries from
// the "events" table and logs warnings to stderr.
func New(options ...Option) *Compiler {
	c := &Compiler{
		config:   types.DefaultConfig(),
		log:      logger.GetDefault(),
		sessions: session.NewFactory,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Config returns the settings the compiler was built with.
func (c *Compiler) Config() types.Config {
	return c.config
}

// Compile parses filters, a JSON array of filter descriptors, and returns
// "" when there is nothing to filter or "AND <p1> AND <p2> ..." otherwise.
// Values are spliced in as escaped literals.
func (c *Compiler) Compile(filters string, scope types.Scope) (string, error) {
	stmt, _, err := c.compileJSON(filters, scope, literal.Inline)
	return stmt, err
}

// CompileArgs is like Compile but renders values as "?" placeholders and
// returns them in order. The scope time statement is kept verbatim.
func (c *Compiler) CompileArgs(filters string, scope types.Scope) (string, []interface{}, error) {
	return c.compileJSON(filters, scope, literal.Placeholder)
}

// CompileFilters compiles already decoded filters with inline literals.
func (c *Compiler) CompileFilters(filters []types.Filter, scope types.Scope) (string, error) {
	stmt, _, err := c.assemble(filters, scope, literal.Inline)
	if err != nil {
		c.log.Warn("filter rejected: %v", err)
	}
	return stmt, err
}

func (c *Compiler) compileJSON(input string, scope types.Scope, binder literal.Binder) (string, []interface{}, error) {
	filters, err := types.ParseFilters(input)
	if err == nil {
		var stmt string
		var args []interface{}
		stmt, args, err = c.assemble(filters, scope, binder)
		if err == nil {
			return stmt, args, nil
		}
	}
	c.log.Warn("filter rejected: %v", err)
	return "", nil, err
}

// assemble compiles each filter and joins the fragments with AND. Any
// failing filter fails the whole statement; dropping it would widen the
// result set.
func (c *Compiler) assemble(filters []types.Filter, scope types.Scope, binder literal.Binder) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	predicates := predicate.NewBuilder(binder, c.config)
	sessions := c.sessions(predicates, c.config)

	parts := make([]string, 0, len(filters))
	var args []interface{}
	for _, f := range filters {
		var (
			fragment sq.Sqlizer
			err      error
		)
		if f.Parameter.IsSessionScoped() {
			fragment, err = sessions.Build(f, scope)
		} else {
			fragment, err = predicates.Build(f)
		}
		if err != nil {
			return "", nil, err
		}

		sql, fragmentArgs, err := fragment.ToSql()
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, fragmentArgs...)
	}

	stmt := "AND " + strings.Join(parts, " AND ")
	c.log.Debug("compiled %d filters: %s", len(filters), stmt)
	return stmt, args, nil
}

var defaultCompiler = New()

// GetFilterStatement compiles filters with the default compiler. siteID 0
// and an empty timeStatement leave session subqueries unscoped.
func GetFilterStatement(filters string, siteID int64, timeStatement string) (string, error) {
	return defaultCompiler.Compile(filters, types.Scope{SiteID: siteID, TimeStatement: timeStatement})
}
