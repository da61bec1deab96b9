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

package literal

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Binder decides how a value enters a predicate: spliced in as an escaped
// literal, or replaced by a placeholder and returned as an argument.
type Binder interface {
	// Bind returns the SQL text standing for v and the arguments it adds.
	// v is a string, float64, int64 or decimal.Decimal.
	Bind(v interface{}) (string, []interface{})
}

// Inline renders values as literals. Strings are quoted and escaped.
var Inline Binder = inlineBinder{}

// Placeholder renders every value as "?" and returns it as an argument.
var Placeholder Binder = placeholderBinder{}

// Binds reports whether b turns values into arguments. Text spliced next
// to the output of such a binder must not contain a bare "?".
func Binds(b Binder) bool {
	_, args := b.Bind("")
	return len(args) > 0
}

type inlineBinder struct{}

func (inlineBinder) Bind(v interface{}) (string, []interface{}) {
	switch x := v.(type) {
	case string:
		return Quote(x), nil
	case float64:
		return FormatNumber(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case decimal.Decimal:
		return x.String(), nil
	default:
		return Quote(fmt.Sprint(x)), nil
	}
}

type placeholderBinder struct{}

func (placeholderBinder) Bind(v interface{}) (string, []interface{}) {
	if d, ok := v.(decimal.Decimal); ok {
		v = d.InexactFloat64()
	}
	return "?", []interface{}{v}
}
