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

package table

import "fmt"

// MissingColumnError is returned when a required column is not present
// in a table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table: missing column %q", e.Column)
}

// KeyError is returned when a lookup by key finds no rows, or
// more than one row where exactly one is required.
type KeyError struct {
	// Column is the name of the key column.
	Column string

	// Key is the key value that could not be resolved.
	Key string

	// Duplicate is true if the key matched more than one row.
	Duplicate bool
}

func (e *KeyError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("table: more than one row for %s %q", e.Column, e.Key)
	}
	return fmt.Sprintf("table: no rows for %s %q", e.Column, e.Key)
}

// KindError is returned when a column holds a different kind of data
// than an operation requires.
type KindError struct {
	Column string
	Want   Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("table: column %q is not of kind %s", e.Column, e.Want)
}
