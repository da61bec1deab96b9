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

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "events", config.EventsTable)
	assert.False(t, config.NotEqualsAll)
}

func TestConfigJSONTags(t *testing.T) {
	data, err := json.Marshal(Config{EventsTable: "e", NotEqualsAll: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"eventsTable":"e","notEqualsAll":true}`, string(data))
}

func TestConfigCombinator(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		op       Operator
		expected string
	}{
		{"equals", DefaultConfig(), OpEquals, "OR"},
		{"contains", DefaultConfig(), OpContains, "OR"},
		{"regex", DefaultConfig(), OpRegex, "OR"},
		{"greater than", DefaultConfig(), OpGreaterThan, "OR"},
		{"less than", DefaultConfig(), OpLessThan, "OR"},
		{"not equals", DefaultConfig(), OpNotEquals, "OR"},
		{"not contains", DefaultConfig(), OpNotContains, "AND"},
		{"not regex", DefaultConfig(), OpNotRegex, "AND"},
		{"not equals all", Config{NotEqualsAll: true}, OpNotEquals, "AND"},
		{"not contains unaffected", Config{NotEqualsAll: true}, OpNotContains, "AND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.Combinator(tt.op))
		})
	}
}

func TestScopeTimePredicate(t *testing.T) {
	tests := []struct {
		statement string
		expected  string
	}{
		{"", ""},
		{"   ", ""},
		{"timestamp >= now() - INTERVAL 1 DAY", "timestamp >= now() - INTERVAL 1 DAY"},
		{"AND timestamp >= now() - INTERVAL 1 DAY", "timestamp >= now() - INTERVAL 1 DAY"},
		{"  and timestamp > 0 ", "timestamp > 0"},
		{"ANDROID = 1", "ANDROID = 1"},
		{"AND", "AND"},
	}

	for _, tt := range tests {
		t.Run(tt.statement, func(t *testing.T) {
			assert.Equal(t, tt.expected, Scope{TimeStatement: tt.statement}.TimePredicate())
		})
	}
}
