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
	sq "github.com/Masterminds/squirrel"

	"github.com/rybbit-io/filtersql/types"
)

// IdentityColumns hold one person: the device fingerprint id and the id set
// by an identify call.
var IdentityColumns = [2]string{"user_id", "identified_user_id"}

// identity compiles a user_id filter against both identity columns. Positive
// operators match either column, negative operators must exclude both; values
// combine the same way.
func (b *Builder) identity(f types.Filter) (sq.Sqlizer, error) {
	keyword := f.Operator.Polarity().Combinator()
	pairs := make([]sq.Sqlizer, 0, len(f.Values))
	for _, v := range f.Values {
		pair := make([]sq.Sqlizer, 0, len(IdentityColumns))
		for _, column := range IdentityColumns {
			part, err := b.compareOne(column, nil, f.Operator, v, false)
			if err != nil {
				return nil, err
			}
			pair = append(pair, part)
		}
		pairs = append(pairs, Combine(keyword, pair))
	}
	return Combine(keyword, pairs), nil
}
