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

package condition

import (
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"github.com/rybbit-io/filtersql/predicate"
	"github.com/rybbit-io/filtersql/resolver"
	"github.com/rybbit-io/filtersql/types"
)

// deriveInto stores the value of p for record under dims, computing the
// same dimension the SQL resolver computes from the columns.
func deriveInto(dims map[string]interface{}, p types.Parameter, record map[string]interface{}) {
	column := func(name string) string {
		return cast.ToString(record[name])
	}

	switch p.Kind {
	case types.ParamUserID:
		for _, c := range predicate.IdentityColumns {
			dims[c] = column(c)
		}
	case types.ParamLat, types.ParamLon:
		dims[p.String()] = cast.ToFloat64(record[p.String()])
	case types.ParamBrowserVersion:
		dims[p.String()] = column("browser") + " " + column("browser_version")
	case types.ParamOperatingSystemVersion:
		dims[p.String()] = resolver.LabelOSVersion(column("operating_system"), column("operating_system_version"))
	case types.ParamDimensions:
		dims[p.String()] = column("screen_width") + "x" + column("screen_height")
	case types.ParamCity:
		dims[p.String()] = column("region") + "-" + column("city")
	case types.ParamReferrer:
		dims[p.String()] = domainWithoutWWW(column("referrer"))
	case types.ParamUTMSource, types.ParamUTMMedium, types.ParamUTMCampaign, types.ParamUTMTerm, types.ParamUTMContent:
		key, _ := p.UTMKey()
		dims[p.String()] = urlParameter(record, key)
	case types.ParamURLParam:
		dims[p.String()] = urlParameter(record, p.Key)
	default:
		dims[p.String()] = column(p.String())
	}
}

func urlParameter(record map[string]interface{}, key string) string {
	params := cast.ToStringMapString(record[resolver.URLParametersColumn])
	return params[key]
}

// domainWithoutWWW returns the host of a URL given with or without a
// scheme, minus a leading "www.". Unparsable input yields "".
func domainWithoutWWW(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "//" + strings.TrimPrefix(s, "//")
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
