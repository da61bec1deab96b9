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
Package condition evaluates filters against single event records in memory.

Filters are translated into an expr-lang program with the same semantics as
the SQL the compiler produces, so a live event feed can be matched without a
round trip to ClickHouse:

	filters, err := types.ParseFilters(`[
		{"parameter": "pathname", "type": "contains", "value": ["/blog"]},
		{"parameter": "referrer", "type": "equals", "value": ["google.com"]}
	]`)
	cond, err := condition.NewFilterCondition(filters)
	ok := cond.Evaluate(map[string]interface{}{
		"pathname": "/blog/launch",
		"referrer": "https://www.google.com/search?q=x",
	}) // true

Records are keyed by events table column. Computed dimensions are derived
from the columns: browser_version, operating_system_version (labelled),
dimensions, city, referrer (domain without www), utm_* and url_param:<name>
(read from the url_parameters map).

entry_page, exit_page and event_name describe a whole session and cannot be
evaluated here; NewFilterCondition rejects them.

NewExprCondition compiles raw expressions and adds like_match(text, pattern)
for SQL LIKE patterns with % and _ wildcards.
*/
package condition
