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

package types

// Operator is the comparison applied by a filter. It travels as the "type"
// key of a filter descriptor.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpRegex       Operator = "regex"
	OpNotRegex    Operator = "not_regex"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
)

// Polarity tells how the values of one filter combine.
type Polarity int

const (
	// Positive operators match when any listed value matches.
	Positive Polarity = iota
	// Negative operators match only when every listed value is excluded.
	Negative
)

// Combinator returns the SQL keyword joining per-value predicates.
func (p Polarity) Combinator() string {
	if p == Negative {
		return "AND"
	}
	return "OR"
}

// Valid reports whether op is one of the known operators.
func (op Operator) Valid() bool {
	switch op {
	case OpEquals, OpNotEquals, OpContains, OpNotContains,
		OpRegex, OpNotRegex, OpGreaterThan, OpLessThan:
		return true
	}
	return false
}

// Polarity returns whether op is a positive or a negative operator.
func (op Operator) Polarity() Polarity {
	switch op {
	case OpNotEquals, OpNotContains, OpNotRegex:
		return Negative
	default:
		return Positive
	}
}

// Negated maps a negative operator to its positive counterpart and back.
// Comparison operators have no counterpart and are returned unchanged.
func (op Operator) Negated() Operator {
	switch op {
	case OpEquals:
		return OpNotEquals
	case OpNotEquals:
		return OpEquals
	case OpContains:
		return OpNotContains
	case OpNotContains:
		return OpContains
	case OpRegex:
		return OpNotRegex
	case OpNotRegex:
		return OpRegex
	default:
		return op
	}
}

// IsRegex reports whether values of op are regex patterns.
func (op Operator) IsRegex() bool {
	return op == OpRegex || op == OpNotRegex
}

// IsNumeric reports whether values of op must parse as numbers.
func (op Operator) IsNumeric() bool {
	return op == OpGreaterThan || op == OpLessThan
}

func (op Operator) String() string {
	return string(op)
}
