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

package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rybbit-io/filtersql/literal"
	"github.com/rybbit-io/filtersql/types"
)

func param(t *testing.T, name string) types.Parameter {
	t.Helper()
	p, err := types.ParseParameter(name)
	require.NoError(t, err)
	return p
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"browser", "browser"},
		{"country", "country"},
		{"pathname", "pathname"},
		{"user_id", "user_id"},
		{"lat", "lat"},
		{"referrer", "domainWithoutWWW(referrer)"},
		{"dimensions", "concat(toString(screen_width), 'x', toString(screen_height))"},
		{"city", "concat(region, '-', city)"},
		{"browser_version", "concat(browser, ' ', browser_version)"},
		{"utm_source", "url_parameters['utm_source']"},
		{"utm_campaign", "url_parameters['utm_campaign']"},
		{"utm_content", "url_parameters['utm_content']"},
		{"url_param:ref", "url_parameters['ref']"},
		{"url_param:it's", `url_parameters['it\'s']`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(param(t, tt.name))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBind(t *testing.T) {
	expr, args, err := Bind(param(t, "url_param:a?b"), literal.Placeholder)
	require.NoError(t, err)
	assert.Equal(t, "url_parameters[?]", expr)
	assert.Equal(t, []interface{}{"a?b"}, args)

	expr, args, err = Bind(param(t, "utm_term"), literal.Placeholder)
	require.NoError(t, err)
	assert.Equal(t, "url_parameters[?]", expr)
	assert.Equal(t, []interface{}{"utm_term"}, args)

	expr, args, err = Bind(param(t, "url_param:a?b"), literal.Inline)
	require.NoError(t, err)
	assert.Equal(t, "url_parameters['a?b']", expr)
	assert.Empty(t, args)

	expr, args, err = Bind(param(t, "browser"), literal.Placeholder)
	require.NoError(t, err)
	assert.Equal(t, "browser", expr)
	assert.Empty(t, args)

	_, _, err = Bind(param(t, "exit_page"), literal.Placeholder)
	assert.ErrorIs(t, err, types.ErrUnsupported)
}

func TestResolveSessionScoped(t *testing.T) {
	for _, name := range []string{"entry_page", "exit_page", "event_name"} {
		t.Run(name, func(t *testing.T) {
			_, err := Resolve(param(t, name))
			assert.ErrorIs(t, err, types.ErrUnsupported)
		})
	}
}

func TestResolveUnknownKind(t *testing.T) {
	_, err := Resolve(types.Parameter{Kind: types.ParameterKind(999)})
	assert.ErrorIs(t, err, types.ErrUnknownParameter)
}

// Every kind in the enumeration must resolve or be session scoped.
func TestResolveCoversEnumeration(t *testing.T) {
	for kind := types.ParamBrowser; kind <= types.ParamURLParam; kind++ {
		p := types.Parameter{Kind: kind, Key: "k"}
		_, err := Resolve(p)
		if p.IsSessionScoped() {
			assert.ErrorIs(t, err, types.ErrUnsupported, kind.String())
			continue
		}
		assert.NoError(t, err, kind.String())
	}
}

func TestOperatingSystemVersionExpression(t *testing.T) {
	expr, err := Resolve(param(t, "operating_system_version"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(expr, "CASE "))
	assert.True(t, strings.HasSuffix(expr, " END"))
	for _, l := range OSVersionLabels() {
		assert.Contains(t, expr,
			"WHEN operating_system = '"+l.OS+"' AND operating_system_version = '"+l.Version+"' THEN '"+l.Label+"'")
	}
	assert.Contains(t, expr, "ELSE concat(operating_system, ' ', operating_system_version)")
}

func TestLabelOSVersion(t *testing.T) {
	assert.Equal(t, "Windows 10/11", LabelOSVersion("Windows", "10"))
	assert.Equal(t, "Windows 7", LabelOSVersion("Windows", "6.1"))
	assert.Equal(t, "macOS 10.15+", LabelOSVersion("macOS", "10.15.7"))
	assert.Equal(t, "Android 14", LabelOSVersion("Android", "14"))
}

func TestOSVersionLabelsIsACopy(t *testing.T) {
	labels := OSVersionLabels()
	labels[0].Label = "changed"
	assert.Equal(t, "Windows 10/11", LabelOSVersion("Windows", "10"))
}

func TestResolveIsDeterministic(t *testing.T) {
	p := param(t, "operating_system_version")
	first, _ := Resolve(p)
	second, _ := Resolve(p)
	assert.Equal(t, first, second)
}
