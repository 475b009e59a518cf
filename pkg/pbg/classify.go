// Copyright the pbg authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package pbg

import "strconv"

// Classification of a field's text is attempted in a fixed priority order:
// operator first and, failing that, key / date / number / string / true /
// false.  The first match wins.  These functions are pure predicates over a
// rune span and perform no allocation beyond the matched payload.

// classifyOperator recognises the one- and two-character operator symbols, or
// returns UNRESOLVED if the span is not an operator.
func classifyOperator(span []rune) Kind {
	if len(span) == 1 {
		switch span[0] {
		case '!':
			return NOT
		case '&':
			return AND
		case '|':
			return OR
		case '=':
			return EQ
		case '<':
			return LT
		case '>':
			return GT
		case '?':
			return EXISTS
		}
	} else if len(span) == 2 {
		switch {
		case span[0] == '!' && span[1] == '=':
			return NEQ
		case span[0] == '<' && span[1] == '=':
			return LTE
		case span[0] == '>' && span[1] == '=':
			return GTE
		}
	}
	//
	return UNRESOLVED
}

// isKey checks whether a span is a bracket-delimited key, e.g. "[status]".
func isKey(span []rune) bool {
	return len(span) >= 2 && span[0] == '[' && span[len(span)-1] == ']'
}

// isString checks whether a span is a single-quote delimited string.  Escaped
// quotes within the span are the scanner's responsibility and are not
// re-validated here.
func isString(span []rune) bool {
	return len(span) >= 2 && span[0] == '\'' && span[len(span)-1] == '\''
}

// isTrue checks for the exact literal "TRUE".
func isTrue(span []rune) bool {
	return string(span) == "TRUE"
}

// isFalse checks for the exact literal "FALSE".
func isFalse(span []rune) bool {
	return string(span) == "FALSE"
}

// isDate checks whether a span is exactly ten characters matching
// digit{4}-digit{2}-digit{2}.  No calendar-range validation is performed.
func isDate(span []rune) bool {
	if len(span) != 10 || span[4] != '-' || span[7] != '-' {
		return false
	}
	//
	for _, i := range []int{0, 1, 2, 3, 5, 6, 8, 9} {
		if !isDigit(span[i]) {
			return false
		}
	}
	//
	return true
}

// isNumber checks whether a span matches the signed decimal grammar
// [+-]?(0|[1-9][0-9]*)?(\.[0-9]+)?([eE][+-]?[0-9]+)? containing at least one
// digit.  Note that a leading zero is only permitted when the integer part is
// exactly "0".
func isNumber(span []rune) bool {
	var (
		i      = 0
		n      = len(span)
		digits = false
	)
	// Optional sign.
	if i < n && (span[i] == '-' || span[i] == '+') {
		i++
	}
	// Optional integer part.
	if i < n && span[i] == '0' {
		i++
		digits = true
	} else if i < n && isDigit(span[i]) {
		for i < n && isDigit(span[i]) {
			i++
		}
		//
		digits = true
	}
	// Optional fractional part, requiring at least one trailing digit.
	if i < n && span[i] == '.' {
		i++
		//
		if i == n || !isDigit(span[i]) {
			return false
		}
		//
		for i < n && isDigit(span[i]) {
			i++
		}
		//
		digits = true
	}
	// Optional exponent, requiring at least one digit.
	if digits && i < n && (span[i] == 'e' || span[i] == 'E') {
		i++
		//
		if i < n && (span[i] == '-' || span[i] == '+') {
			i++
		}
		//
		if i == n || !isDigit(span[i]) {
			return false
		}
		//
		for i < n && isDigit(span[i]) {
			i++
		}
	}
	//
	return digits && i == n
}

// classifyLiteral determines the literal represented by a span, constructing
// its payload.  The boolean result signals whether any literal form matched.
func classifyLiteral(span []rune) (Node, bool) {
	switch {
	case isKey(span):
		return Key(string(span[1 : len(span)-1])), true
	case isDate(span):
		return NewDate(atoi(span[0:4]), atoi(span[5:7]), atoi(span[8:10])), true
	case isNumber(span):
		// Cannot fail since the span matched the number grammar, which is a
		// strict subset of what ParseFloat accepts.
		value, _ := strconv.ParseFloat(string(span), 64)
		return Number(value), true
	case isString(span):
		return String(string(span[1 : len(span)-1])), true
	case isTrue(span):
		return True(), true
	case isFalse(span):
		return False(), true
	}
	//
	return Node{}, false
}

// ParseDate attempts to interpret a string as a date literal, as used by
// resolvers wishing to map host values onto DATE nodes.
func ParseDate(s string) (Date, bool) {
	span := []rune(s)
	if !isDate(span) {
		return Date{}, false
	}
	//
	return Date{atoi(span[0:4]), atoi(span[5:7]), atoi(span[8:10])}, true
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// Convert a known-digit span into an integer.
func atoi(span []rune) int {
	value := 0
	for _, c := range span {
		value = (value * 10) + int(c-'0')
	}
	//
	return value
}
