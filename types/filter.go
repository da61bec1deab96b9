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
	"strings"

	"github.com/spf13/cast"
)

// Filter is one constraint supplied by a caller.
type Filter struct {
	Parameter Parameter
	Operator  Operator
	Values    []string
}

// descriptor is the wire form of a Filter.
type descriptor struct {
	Parameter string        `json:"parameter"`
	Type      string        `json:"type"`
	Value     []interface{} `json:"value"`
}

// ParseFilters decodes a JSON array of filter descriptors. An empty string,
// "null" and "[]" all yield no filters.
func ParseFilters(input string) ([]Filter, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	var descriptors []descriptor
	if err := json.Unmarshal([]byte(input), &descriptors); err != nil {
		return nil, NewCompileError(ErrorTypeInvalidJSON, ErrInvalidJSON, "", "").WithCause(err)
	}

	filters := make([]Filter, 0, len(descriptors))
	for _, d := range descriptors {
		f, err := d.toFilter()
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func (d descriptor) toFilter() (Filter, error) {
	param, err := ParseParameter(d.Parameter)
	if err != nil {
		return Filter{}, err
	}

	op := Operator(d.Type)
	if !op.Valid() {
		return Filter{}, NewCompileError(ErrorTypeUnknownOperator, ErrUnknownOperator, d.Parameter, d.Type)
	}

	if len(d.Value) == 0 {
		return Filter{}, NewCompileError(ErrorTypeEmptyValues, ErrEmptyValues, d.Parameter, "")
	}
	values := make([]string, 0, len(d.Value))
	for _, raw := range d.Value {
		// null is rejected rather than read as "".
		if raw == nil {
			return Filter{}, NewCompileError(ErrorTypeInvalidJSON, ErrInvalidJSON, d.Parameter, "")
		}
		s, err := cast.ToStringE(raw)
		if err != nil {
			return Filter{}, NewCompileError(ErrorTypeInvalidJSON, ErrInvalidJSON, d.Parameter, "").WithCause(err)
		}
		values = append(values, s)
	}

	return Filter{Parameter: param, Operator: op, Values: values}, nil
}

// MarshalJSON encodes f in its wire form.
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Parameter string   `json:"parameter"`
		Type      string   `json:"type"`
		Value     []string `json:"value"`
	}{f.Parameter.String(), string(f.Operator), f.Values})
}
