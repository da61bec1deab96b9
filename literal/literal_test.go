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
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rybbit-io/filtersql/types"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Chrome", "'Chrome'"},
		{"empty", "", "''"},
		{"single quote", "O'Reilly", `'O\'Reilly'`},
		{"backslash", `C:\path`, `'C:\\path'`},
		{"backslash before quote", `\'`, `'\\\''`},
		{"injection", "'; DROP TABLE users;--", `'\'; DROP TABLE users;--'`},
		{"invalid utf8", "\xff\xfe'", "'\xff\xfe\\''"},
		{"unicode", "Zürich", "'Zürich'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.input))
		})
	}
}

// An escaped literal must never contain a quote that is not preceded by an
// odd run of backslashes.
func TestQuoteNeverTerminatesEarly(t *testing.T) {
	inputs := []string{
		"'", "''", `\`, `\\'`, `'\'`, "a'b'c", "'; DELETE FROM events; --", `\\\'`,
	}
	for _, in := range inputs {
		quoted := Quote(in)
		body := quoted[1 : len(quoted)-1]
		backslashes := 0
		for _, r := range body {
			switch r {
			case '\\':
				backslashes++
				continue
			case '\'':
				assert.Equal(t, 1, backslashes%2, "unescaped quote in %q", quoted)
			}
			backslashes = 0
		}
		assert.Equal(t, 0, backslashes%2, "dangling backslash in %q", quoted)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"integer", "100", 100, false},
		{"decimal", "40.7128", 40.7128, false},
		{"negative", "-74.006", -74.006, false},
		{"padded", " 12.5 ", 12.5, false},
		{"word", "abc", 0, true},
		{"empty", "", 0, true},
		{"nan", "NaN", 0, true},
		{"inf", "Inf", 0, true},
		{"injection", "1; DROP TABLE events", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Number(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, types.ErrInvalidNumber)
				assert.Contains(t, err.Error(), "invalid numeric value")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "100", FormatNumber(100))
	assert.Equal(t, "40.7128", FormatNumber(40.7128))
	assert.Equal(t, "-0.5", FormatNumber(-0.5))
	assert.Equal(t, "1000000", FormatNumber(1e6))
}

func TestRegex(t *testing.T) {
	t.Run("empty pattern", func(t *testing.T) {
		err := Regex("")
		assert.ErrorIs(t, err, types.ErrEmptyRegex)
		assert.Contains(t, err.Error(), "regex pattern cannot be empty")
	})

	t.Run("pattern too long", func(t *testing.T) {
		err := Regex(strings.Repeat("a", MaxRegexLength+1))
		assert.ErrorIs(t, err, types.ErrRegexTooLong)
		assert.Contains(t, err.Error(), "regex pattern too long")
	})

	t.Run("pattern at limit", func(t *testing.T) {
		assert.NoError(t, Regex(strings.Repeat("a", MaxRegexLength)))
	})

	t.Run("length counts characters", func(t *testing.T) {
		assert.NoError(t, Regex(strings.Repeat("é", MaxRegexLength)))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		err := Regex("[unclosed")
		assert.ErrorIs(t, err, types.ErrInvalidRegex)
		assert.Contains(t, err.Error(), "invalid regex pattern")
	})

	t.Run("overlong invalid pattern reports length", func(t *testing.T) {
		err := Regex("(" + strings.Repeat("a", MaxRegexLength))
		assert.ErrorIs(t, err, types.ErrRegexTooLong)
	})

	t.Run("valid pattern", func(t *testing.T) {
		assert.NoError(t, Regex(`^/blog/\d+$`))
	})
}

func TestValidate(t *testing.T) {
	lat := types.Parameter{Kind: types.ParamLat}
	path := types.Parameter{Kind: types.ParamPathname}

	tests := []struct {
		name    string
		filter  types.Filter
		wantErr error
	}{
		{"string equals", types.Filter{Parameter: path, Operator: types.OpEquals, Values: []string{"/"}}, nil},
		{"regex empty", types.Filter{Parameter: path, Operator: types.OpRegex, Values: []string{"^/a", ""}}, types.ErrEmptyRegex},
		{"not_regex invalid", types.Filter{Parameter: path, Operator: types.OpNotRegex, Values: []string{"("}}, types.ErrInvalidRegex},
		{"greater_than word", types.Filter{Parameter: path, Operator: types.OpGreaterThan, Values: []string{"ten"}}, types.ErrInvalidNumber},
		{"lat equals word", types.Filter{Parameter: lat, Operator: types.OpEquals, Values: []string{"north"}}, types.ErrInvalidNumber},
		{"lat contains text", types.Filter{Parameter: lat, Operator: types.OpContains, Values: []string{"40."}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.filter)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.filter.Parameter.String())
		})
	}
}

func TestBinders(t *testing.T) {
	text, args := Inline.Bind("it's")
	assert.Equal(t, `'it\'s'`, text)
	assert.Empty(t, args)

	text, args = Inline.Bind(int64(123))
	assert.Equal(t, "123", text)
	assert.Empty(t, args)

	text, _ = Inline.Bind(decimal.RequireFromString("40.7118"))
	assert.Equal(t, "40.7118", text)

	text, args = Placeholder.Bind("it's")
	assert.Equal(t, "?", text)
	assert.Equal(t, []interface{}{"it's"}, args)

	text, args = Placeholder.Bind(decimal.RequireFromString("1.5"))
	assert.Equal(t, "?", text)
	assert.Equal(t, []interface{}{1.5}, args)

	assert.False(t, Binds(Inline))
	assert.True(t, Binds(Placeholder))
}
