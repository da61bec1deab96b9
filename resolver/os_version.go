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

	"github.com/rybbit-io/filtersql/literal"
)

// OSVersionLabel maps a raw operating system and version pair, as reported
// by the user agent parser, to the label shown in dashboards.
type OSVersionLabel struct {
	OS      string
	Version string
	Label   string
}

// Windows reports NT kernel versions; "10" covers both Windows 10 and 11
// since user agents stopped telling them apart. Browsers freeze macOS at
// 10.15.7 for every release after Catalina.
var osVersionLabels = []OSVersionLabel{
	{OS: "Windows", Version: "10", Label: "Windows 10/11"},
	{OS: "Windows", Version: "NT 10.0", Label: "Windows 10/11"},
	{OS: "Windows", Version: "6.3", Label: "Windows 8.1"},
	{OS: "Windows", Version: "6.2", Label: "Windows 8"},
	{OS: "Windows", Version: "6.1", Label: "Windows 7"},
	{OS: "Windows", Version: "6.0", Label: "Windows Vista"},
	{OS: "Windows", Version: "5.2", Label: "Windows XP"},
	{OS: "Windows", Version: "5.1", Label: "Windows XP"},
	{OS: "macOS", Version: "10.15.7", Label: "macOS 10.15+"},
	{OS: "Mac OS", Version: "10.15.7", Label: "macOS 10.15+"},
}

var osVersionExpr = buildOSVersionExpr(osVersionLabels)

// OSVersionLabels returns a copy of the label table.
func OSVersionLabels() []OSVersionLabel {
	out := make([]OSVersionLabel, len(osVersionLabels))
	copy(out, osVersionLabels)
	return out
}

// LabelOSVersion applies the label table to one pair. Unmapped pairs become
// "<os> <version>", matching the ELSE branch of the SQL expression.
func LabelOSVersion(os, version string) string {
	for _, l := range osVersionLabels {
		if l.OS == os && l.Version == version {
			return l.Label
		}
	}
	return os + " " + version
}

func buildOSVersionExpr(labels []OSVersionLabel) string {
	var b strings.Builder
	b.WriteString("CASE")
	for _, l := range labels {
		b.WriteString(" WHEN operating_system = ")
		b.WriteString(literal.Quote(l.OS))
		b.WriteString(" AND operating_system_version = ")
		b.WriteString(literal.Quote(l.Version))
		b.WriteString(" THEN ")
		b.WriteString(literal.Quote(l.Label))
	}
	b.WriteString(" ELSE concat(operating_system, ' ', operating_system_version) END")
	return b.String()
}
