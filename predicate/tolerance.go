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

package predicate

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/rybbit-io/filtersql/literal"
	"github.com/rybbit-io/filtersql/types"
)

// CoordinateTolerance is the half width, in degrees, of the band that
// replaces equality on lat and lon.
// TODO: the 0.001 comes from existing dashboard fixtures; derive it from the
// precision geolocation actually stores before changing it.
const CoordinateTolerance = "0.001"

var tolerance = decimal.RequireFromString(CoordinateTolerance)

// Band returns the inclusive range [v-CoordinateTolerance, v+CoordinateTolerance].
func Band(raw string) (lo, hi decimal.Decimal, err error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		f, numErr := literal.Number(raw)
		if numErr != nil {
			return lo, hi, numErr
		}
		v = decimal.NewFromFloat(f)
	}
	return v.Sub(tolerance), v.Add(tolerance), nil
}

// band compiles equals on a coordinate into one band per value.
func (b *Builder) band(expr string, f types.Filter) (sq.Sqlizer, error) {
	parts := make([]sq.Sqlizer, 0, len(f.Values))
	for _, v := range f.Values {
		lo, hi, err := Band(v)
		if err != nil {
			return nil, err
		}
		parts = append(parts, sq.And{
			b.expr("%s >= %s", expr, lo),
			b.expr("%s <= %s", expr, hi),
		})
	}
	return Combine(f.Operator.Polarity().Combinator(), parts), nil
}
