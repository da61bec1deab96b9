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

/*
Package filtersql compiles analytics dashboard filters into ClickHouse
predicate fragments.

A dashboard sends its filters as JSON. The compiler validates them and
returns a fragment that can be appended to the WHERE clause of any query
over the events table:

	c := filtersql.New()
	stmt, err := c.Compile(`[
		{"parameter": "browser", "type": "equals", "value": ["Chrome", "Firefox"]},
		{"parameter": "pathname", "type": "contains", "value": ["/blog"]}
	]`, types.Scope{SiteID: 1})
	if err != nil {
		return err
	}
	query := "SELECT count() FROM events WHERE site_id = 1 " + stmt
	// stmt == "AND (browser = 'Chrome' OR browser = 'Firefox') AND pathname LIKE '%/blog%'"

An empty input or "[]" compiles to "". Any invalid filter fails the whole
call; nothing is skipped.

# Operators

	equals        expr = v          values joined with OR
	not_equals    expr != v         values joined with OR (AND with WithNotEqualsAll)
	contains      expr LIKE '%v%'   values joined with OR
	not_contains  expr NOT LIKE     values joined with AND
	regex         match(expr, v)    values joined with OR
	not_regex     NOT match(...)    values joined with AND
	greater_than  expr > n
	less_than     expr < n

Regex patterns must be non-empty, at most 500 characters and valid RE2.
greater_than and less_than values must be numbers.

# Special dimensions

  - lat and lon equality matches a band of ±0.001 degrees.
  - user_id matches user_id or identified_user_id; exclusions apply to both.
  - entry_page, exit_page and event_name compile to session_id subqueries,
    restricted to the site and time range of the Scope.
  - url_param:<name> reads url_parameters['<name>'].

# Bound parameters

CompileArgs returns the same fragment with "?" placeholders and the values
in order, for drivers that bind arguments:

	stmt, args, err := c.CompileArgs(filters, types.Scope{SiteID: 1})
	rows, err := conn.Query(ctx, "SELECT count() FROM events WHERE site_id = ? "+stmt, append([]interface{}{1}, args...)...)

# In-memory evaluation

The condition package evaluates the same filters against single event
records, for example on a live event feed.
*/
package filtersql
