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

// Package resolver maps logical analytics dimensions to their physical
// ClickHouse expressions over the events table.
package resolver

import (
	"errors"

	"github.com/rybbit-io/filtersql/literal"
	"github.com/rybbit-io/filtersql/types"
)

// URLParametersColumn is the Map(String, String) column holding query
// string parameters of the page view.
const URLParametersColumn = "url_parameters"

const (
	referrerExpr       = "domainWithoutWWW(referrer)"
	dimensionsExpr     = "concat(toString(screen_width), 'x', toString(screen_height))"
	cityExpr           = "concat(region, '-', city)"
	browserVersionExpr = "concat(browser, ' ', browser_version)"
)

var errNoRowExpression = errors.New("session scoped dimension has no row expression")

// Resolve returns the expression a filter on p compares against. Session
// scoped dimensions have no row expression and fail with ErrUnsupported;
// they are compiled by the session package.
//
// Every ParameterKind has its own case; a kind added to types without a
// case here falls into the default branch and fails loudly.
func Resolve(p types.Parameter) (string, error) {
	switch p.Kind {
	case types.ParamBrowser,
		types.ParamOperatingSystem,
		types.ParamLanguage,
		types.ParamCountry,
		types.ParamRegion,
		types.ParamLat,
		types.ParamLon,
		types.ParamDeviceType,
		types.ParamChannel,
		types.ParamHostname,
		types.ParamPathname,
		types.ParamPageTitle,
		types.ParamQuerystring,
		types.ParamUserID:
		return p.Kind.String(), nil
	case types.ParamReferrer:
		return referrerExpr, nil
	case types.ParamDimensions:
		return dimensionsExpr, nil
	case types.ParamCity:
		return cityExpr, nil
	case types.ParamBrowserVersion:
		return browserVersionExpr, nil
	case types.ParamOperatingSystemVersion:
		return osVersionExpr, nil
	case types.ParamUTMSource,
		types.ParamUTMMedium,
		types.ParamUTMCampaign,
		types.ParamUTMTerm,
		types.ParamUTMContent:
		key, _ := p.UTMKey()
		return mapLookup(key), nil
	case types.ParamURLParam:
		if p.Key == "" {
			return "", types.NewCompileError(types.ErrorTypeUnknownParameter, types.ErrUnknownParameter, p.String(), "")
		}
		return mapLookup(p.Key), nil
	case types.ParamEntryPage,
		types.ParamExitPage,
		types.ParamEventName:
		return "", types.NewCompileError(types.ErrorTypeUnsupported, types.ErrUnsupported, p.String(), "").
			WithCause(errNoRowExpression)
	default:
		return "", types.NewCompileError(types.ErrorTypeUnknownParameter, types.ErrUnknownParameter, p.String(), "")
	}
}

// Bind is Resolve with url_parameters keys rendered through binder, so
// keys such as "a?b" become arguments instead of text under
// literal.Placeholder. The returned arguments precede any value argument.
func Bind(p types.Parameter, binder literal.Binder) (string, []interface{}, error) {
	expr, err := Resolve(p)
	if err != nil {
		return "", nil, err
	}
	key, ok := mapKey(p)
	if !ok || binder == nil {
		return expr, nil, nil
	}
	text, args := binder.Bind(key)
	return URLParametersColumn + "[" + text + "]", args, nil
}

func mapKey(p types.Parameter) (string, bool) {
	if p.Kind == types.ParamURLParam {
		return p.Key, p.Key != ""
	}
	return p.UTMKey()
}

func mapLookup(key string) string {
	return URLParametersColumn + "[" + literal.Quote(key) + "]"
}
