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

import "strings"

// DefaultEventsTable is the table session subqueries scan.
const DefaultEventsTable = "events"

// Config holds compiler settings. It is read-only once a compiler is built.
type Config struct {
	// EventsTable is the source of session subqueries.
	EventsTable string `json:"eventsTable"`
	// NotEqualsAll joins multi-value not_equals with AND instead of OR, so a
	// row must differ from every listed value.
	NotEqualsAll bool `json:"notEqualsAll"`
}

// DefaultConfig returns the default compiler settings.
func DefaultConfig() Config {
	return Config{EventsTable: DefaultEventsTable}
}

// Combinator returns the keyword joining the per-value predicates of op.
// not_equals joins with OR: a row differing from any one listed value
// passes. not_contains and not_regex join with AND.
func (c Config) Combinator(op Operator) string {
	if op == OpNotEquals {
		if c.NotEqualsAll {
			return "AND"
		}
		return "OR"
	}
	return op.Polarity().Combinator()
}

// Scope narrows session subqueries to one site and time range. The zero
// value applies no narrowing.
type Scope struct {
	// SiteID restricts subqueries to one site; 0 means unrestricted.
	SiteID int64 `json:"siteId"`
	// TimeStatement is a caller-built time predicate, with or without a
	// leading "AND".
	TimeStatement string `json:"timeStatement"`
}

// TimePredicate returns TimeStatement without its leading conjunction.
func (s Scope) TimePredicate() string {
	t := strings.TrimSpace(s.TimeStatement)
	if len(t) >= 4 && strings.EqualFold(t[:4], "AND ") {
		t = strings.TrimSpace(t[4:])
	}
	return t
}
