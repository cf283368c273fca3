/*
 * variables.go, part of dued.
 *
 * Copyright 2026 The dued authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dued

// Variable describes one physical quantity in the frames.
// A vector variable spans the columns Column and Column+1 and lives
// on the grid nodes, a scalar one lives on the cells.
type Variable struct {
	Key    string //group name in the container
	Name   string //name shown by visualization tools
	Column int
	Vector bool
}

// Components returns the number of columns the variable spans.
func (V Variable) Components() int {
	if V.Vector {
		return 2
	}
	return 1
}

// DefaultVariables returns the variable table of the DUED gnuplot output,
// in the order they are described to visualization tools.
func DefaultVariables() []Variable {
	return []Variable{
		{"dens", "dens", 16, false},
		{"vel", "Velocity", 4, true},
		{"tele", "tele", 6, false},
		{"tion", "tion", 7, false},
		{"trad", "trad", 8, false},
		{"zbar", "zbar", 9, false},
		{"pres", "pres", 10, false},
		{"pion", "pion", 11, false},
		{"pele", "pele", 12, false},
		{"eint", "eint", 13, false},
		{"eion", "eion", 14, false},
		{"eele", "eele", 15, false},
		{"Ne", "ne", 17, false},
		{"Ni", "ni", 18, false},
		{"densN", "dens normalised", 19, false},
		{"Mass", "cell mass", 20, false},
	}
}

// LookupVariable returns the variable with the given key, and whether it was found.
func LookupVariable(vars []Variable, key string) (Variable, bool) {
	for _, v := range vars {
		if v.Key == key {
			return v, true
		}
	}
	return Variable{}, false
}
