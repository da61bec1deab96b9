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

// Package literal validates raw filter values and renders them as SQL
// literals or bound arguments.
package literal

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"

	"github.com/rybbit-io/filtersql/types"
)

// MaxRegexLength is the longest accepted regex pattern, in characters.
const MaxRegexLength = 500

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Escape escapes backslashes and single quotes so s can sit inside a
// single-quoted literal.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Quote returns s as a single-quoted SQL string literal.
func Quote(s string) string {
	return "'" + Escape(s) + "'"
}

// Number parses raw as a finite floating-point number.
func Number(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, types.NewCompileError(types.ErrorTypeInvalidNumber, types.ErrInvalidNumber, "", raw)
	}
	f, err := cast.ToFloat64E(trimmed)
	if err != nil {
		return 0, types.NewCompileError(types.ErrorTypeInvalidNumber, types.ErrInvalidNumber, "", raw).WithCause(err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, types.NewCompileError(types.ErrorTypeInvalidNumber, types.ErrInvalidNumber, "", raw)
	}
	return f, nil
}

// FormatNumber renders f without exponent or trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Regex checks that pattern is non-empty, at most MaxRegexLength characters
// and compiles. The checks run in that order. Go's regexp implements RE2
// syntax, the engine behind ClickHouse match().
func Regex(pattern string) error {
	if pattern == "" {
		return types.NewCompileError(types.ErrorTypeEmptyRegex, types.ErrEmptyRegex, "", "")
	}
	if utf8.RuneCountInString(pattern) > MaxRegexLength {
		return types.NewCompileError(types.ErrorTypeRegexTooLong, types.ErrRegexTooLong, "", pattern)
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return types.NewCompileError(types.ErrorTypeInvalidRegex, types.ErrInvalidRegex, "", pattern).WithCause(err)
	}
	return nil
}

// Validate checks every value of f against the rules of its operator and
// parameter, and stamps the parameter name on any error.
func Validate(f types.Filter) error {
	for _, v := range f.Values {
		var err error
		switch {
		case f.Operator.IsRegex():
			err = Regex(v)
		case f.Operator.IsNumeric(), f.Parameter.IsNumeric() && !isPattern(f.Operator):
			_, err = Number(v)
		}
		if err != nil {
			if ce, ok := err.(*types.CompileError); ok {
				ce.Parameter = f.Parameter.String()
			}
			return err
		}
	}
	return nil
}

func isPattern(op types.Operator) bool {
	switch op {
	case types.OpContains, types.OpNotContains, types.OpRegex, types.OpNotRegex:
		return true
	}
	return false
}
