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
Package types defines the data model shared by the filter compiler packages.

# Filters

A filter descriptor arrives as JSON:

	[{"parameter": "browser", "type": "equals", "value": ["Chrome", "Firefox"]}]

ParseFilters decodes it into []Filter. Each Filter carries a Parameter, an
Operator and one or more values. Values may be JSON strings, numbers or
booleans; they are normalized to strings.

# Parameters

Parameter is a closed enumeration (ParameterKind) plus the dynamic
url_param:<name> family, whose name is kept in Parameter.Key:

	p, err := types.ParseParameter("url_param:ref")
	// p.Kind == types.ParamURLParam, p.Key == "ref"

Unknown names fail with ErrUnknownParameter.

# Operators

Every Operator has a Polarity. Positive operators (equals, contains, regex,
greater_than, less_than) join their values with OR, negative operators
(not_equals, not_contains, not_regex) join them with AND.

# Errors

All compile failures are *CompileError values wrapping one of the sentinel
errors, so callers can test them with errors.Is:

	if errors.Is(err, types.ErrInvalidRegex) { ... }
*/
package types
