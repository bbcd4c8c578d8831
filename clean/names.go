/*
Copyright © 2018 the plantdata authors.
This file is part of plantdata.

plantdata is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plantdata is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plantdata.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package clean contains stateless cleaning operations for tables of
// energy data: column name normalization, outlier removal, derived
// columns, and column summaries.
package clean

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spatialmodel/plantdata/table"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	underscores = regexp.MustCompile(`_{2,}`)
)

// Name converts a raw column header into a lowercase, underscore-delimited
// identifier. For example, "Nameplate Capacity (MW)" becomes
// "nameplate_capacity_mw". Hyphens are removed along with all other
// characters that are not letters, digits, or underscores.
// Name is idempotent.
func Name(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespace.ReplaceAllString(s, "_")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, s)
	return underscores.ReplaceAllString(s, "_")
}

// Names applies Name to each of the given headers. Distinct headers may
// result in the same name.
func Names(headers []string) []string {
	o := make([]string, len(headers))
	for i, h := range headers {
		o[i] = Name(h)
	}
	return o
}

// Columns returns a copy of t with normalized column names.
func Columns(t *table.Table) (*table.Table, error) {
	return t.WithNames(Names(t.Names()))
}
