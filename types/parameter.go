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

// ParameterKind enumerates the analytics dimensions a filter may target.
type ParameterKind int

const (
	ParamBrowser ParameterKind = iota
	ParamBrowserVersion
	ParamOperatingSystem
	ParamOperatingSystemVersion
	ParamLanguage
	ParamCountry
	ParamRegion
	ParamCity
	ParamLat
	ParamLon
	ParamDeviceType
	ParamDimensions
	ParamReferrer
	ParamChannel
	ParamHostname
	ParamPathname
	ParamPageTitle
	ParamQuerystring
	ParamEntryPage
	ParamExitPage
	ParamEventName
	ParamUserID
	ParamUTMSource
	ParamUTMMedium
	ParamUTMCampaign
	ParamUTMTerm
	ParamUTMContent
	ParamURLParam

	numParameterKinds
)

// URLParamPrefix introduces the dynamic url_param:<name> family.
const URLParamPrefix = "url_param:"

var parameterNames = [numParameterKinds]string{
	ParamBrowser:                "browser",
	ParamBrowserVersion:         "browser_version",
	ParamOperatingSystem:        "operating_system",
	ParamOperatingSystemVersion: "operating_system_version",
	ParamLanguage:               "language",
	ParamCountry:                "country",
	ParamRegion:                 "region",
	ParamCity:                   "city",
	ParamLat:                    "lat",
	ParamLon:                    "lon",
	ParamDeviceType:             "device_type",
	ParamDimensions:             "dimensions",
	ParamReferrer:               "referrer",
	ParamChannel:                "channel",
	ParamHostname:               "hostname",
	ParamPathname:               "pathname",
	ParamPageTitle:              "page_title",
	ParamQuerystring:            "querystring",
	ParamEntryPage:              "entry_page",
	ParamExitPage:               "exit_page",
	ParamEventName:              "event_name",
	ParamUserID:                 "user_id",
	ParamUTMSource:              "utm_source",
	ParamUTMMedium:              "utm_medium",
	ParamUTMCampaign:            "utm_campaign",
	ParamUTMTerm:                "utm_term",
	ParamUTMContent:             "utm_content",
	ParamURLParam:               "url_param",
}

var parameterKinds = func() map[string]ParameterKind {
	m := make(map[string]ParameterKind, numParameterKinds)
	for kind, name := range parameterNames {
		if ParameterKind(kind) == ParamURLParam {
			continue
		}
		m[name] = ParameterKind(kind)
	}
	return m
}()

func (k ParameterKind) String() string {
	if k < 0 || k >= numParameterKinds {
		return "unknown"
	}
	return parameterNames[k]
}

// Parameter is a logical dimension. Key is only set for url_param:<name>.
type Parameter struct {
	Kind ParameterKind
	Key  string
}

// ParseParameter maps a wire name such as "browser" or "url_param:ref" to a
// Parameter.
func ParseParameter(name string) (Parameter, error) {
	if key, ok := strings.CutPrefix(name, URLParamPrefix); ok {
		if key == "" {
			return Parameter{}, NewCompileError(ErrorTypeUnknownParameter, ErrUnknownParameter, name, "")
		}
		return Parameter{Kind: ParamURLParam, Key: key}, nil
	}
	kind, ok := parameterKinds[name]
	if !ok {
		return Parameter{}, NewCompileError(ErrorTypeUnknownParameter, ErrUnknownParameter, name, "")
	}
	return Parameter{Kind: kind}, nil
}

// String returns the wire name of p.
func (p Parameter) String() string {
	if p.Kind == ParamURLParam {
		return URLParamPrefix + p.Key
	}
	return p.Kind.String()
}

// IsNumeric reports whether the dimension holds continuous numbers.
func (p Parameter) IsNumeric() bool {
	return p.Kind == ParamLat || p.Kind == ParamLon
}

// IsSessionScoped reports whether the dimension is derived from all rows of
// a session rather than read from the filtered row.
func (p Parameter) IsSessionScoped() bool {
	switch p.Kind {
	case ParamEntryPage, ParamExitPage, ParamEventName:
		return true
	}
	return false
}

// UTMKey returns the url_parameters key holding a UTM dimension.
func (p Parameter) UTMKey() (string, bool) {
	switch p.Kind {
	case ParamUTMSource, ParamUTMMedium, ParamUTMCampaign, ParamUTMTerm, ParamUTMContent:
		return p.Kind.String(), true
	}
	return "", false
}
