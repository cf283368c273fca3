/*
 * repair.go, part of dued.
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

import "strings"

// RepairExponents fixes the floats that DUED writes without the exponent
// marker when the exponent has three digits (1.23233-126 instead of 1.23233E-126).
// An 'E' is inserted between every digit that is immediately followed by a '-'
// which is itself immediately followed by a digit. Nothing else is changed, so
// the function is idempotent, and s is returned as is if there is nothing to fix.
func RepairExponents(s string) string {
	n := countBroken(s)
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + n)
	last := 0
	for i := 1; i < len(s)-1; i++ {
		if s[i] == '-' && isDigit(s[i-1]) && isDigit(s[i+1]) {
			b.WriteString(s[last:i])
			b.WriteByte('E')
			last = i
		}
	}
	b.WriteString(s[last:])
	return b.String()
}

//countBroken returns the number of digit-minus-digit sequences in s.
//Overlapping ones, like in 1-2-3, are all counted.
func countBroken(s string) int {
	n := 0
	for i := 1; i < len(s)-1; i++ {
		if s[i] == '-' && isDigit(s[i-1]) && isDigit(s[i+1]) {
			n++
		}
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
