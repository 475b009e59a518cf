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

import (
	"github.com/pbglang/pbg/pkg/util/source"
)

// scan is the result of scanning an expression string.  It identifies every
// field (one comma/parenthesis-delimited span corresponding to exactly one
// literal or operator), the position of every closing parenthesis, and the
// exact capacities required for the two node segments.  Segment capacities
// are fixed here, before parsing begins, so the parser never reallocates node
// storage.
type scan struct {
	// Start offset of each field, terminated by a -1 sentinel so the parser
	// can detect end-of-input without a separate length check.
	fields []int
	// Length of each field.
	lengths []int
	// Offset of each closing parenthesis, in order of appearance.
	closings []int
	// Number of key literals (capacity of the dynamic segment).
	numKeys int
}

// numFields returns the number of fields identified (excluding the sentinel).
func (s *scan) numFields() int {
	return len(s.fields) - 1
}

// scanExpr performs both scanner passes over an expression string.  Both
// passes apply the same string-awareness rule: an unescaped single quote
// toggles string state, and nothing is counted, opened or closed inside a
// string.
func scanExpr(srcfile *source.File) (scan, *source.SyntaxError) {
	var (
		str = srcfile.Contents()
		n   = len(str)
	)
	//
	if n == 0 {
		return scan{}, srcfile.SyntaxError(source.NewSpan(0, 0), "empty expression")
	}
	// Pass 1: count commas, keys and closings to size everything.
	numCommas, numKeys, numClosings, err := countFields(srcfile)
	if err != nil {
		return scan{}, err
	}
	//
	var (
		numFields = numCommas + 1
		sc        = scan{
			fields:   make([]int, numFields+1),
			lengths:  make([]int, numFields),
			closings: make([]int, 0, numClosings),
			numKeys:  numKeys,
		}
		// Field index.
		f int
		// Whether a field is currently open.
		open = true
		// Whether the cursor is inside a quoted string.
		instring = false
	)
	// Pass 2: record the start and length of every field, and the offset of
	// every closing parenthesis.  One leading parenthesis, if present, is
	// stripped by starting the first field beyond it.
	if str[0] == '(' {
		sc.fields[0] = 1
	}
	//
	for i := sc.fields[0]; i < n; i++ {
		if quoteToggles(str, i, instring) {
			instring = !instring
			continue
		} else if instring {
			continue
		}
		//
		if str[i] == ')' {
			sc.closings = append(sc.closings, i)
		}
		//
		if open && (str[i] == ')' || (str[i] == ',' && (i == 0 || str[i-1] != ')'))) {
			sc.lengths[f] = i - sc.fields[f]
			f++
			open = false
		}
		//
		if !open && (str[i] == '(' || (str[i] == ',' && i+1 < n && str[i+1] != '(')) {
			if f == numFields {
				// More separators than pass 1 counted fields; cannot happen
				// given both passes share the string-awareness rule.
				return scan{}, srcfile.SyntaxError(source.NewSpan(i, i+1), "malformed expression")
			}
			//
			sc.fields[f] = i + 1
			open = true
		}
	}
	// A bare literal (no trailing separator) leaves the final field open.
	if open && f < numFields {
		sc.lengths[f] = n - sc.fields[f]
		f++
	}
	//
	if f != numFields {
		return scan{}, srcfile.SyntaxError(source.NewSpan(n-1, n), "malformed expression")
	}
	// Sentinel terminator.
	sc.fields[numFields] = -1
	//
	return sc, nil
}

// countFields runs the sizing pass: counting commas, key openings and
// closing parentheses outside of strings.  Unlike the counting alone, nesting
// and string termination are validated here so that malformed input is
// rejected before any node storage is sized.
func countFields(srcfile *source.File) (int, int, int, *source.SyntaxError) {
	var (
		str                             = srcfile.Contents()
		numCommas, numKeys, numClosings int
		depth                           int
		instring                        = false
	)
	//
	for i := 0; i < len(str); i++ {
		if quoteToggles(str, i, instring) {
			instring = !instring
			continue
		} else if instring {
			continue
		}
		//
		switch str[i] {
		case ',':
			numCommas++
		case '[':
			numKeys++
		case '(':
			depth++
		case ')':
			numClosings++
			depth--
			//
			if depth < 0 {
				return 0, 0, 0, srcfile.SyntaxError(source.NewSpan(i, i+1), "unmatched ')'")
			}
		}
	}
	//
	if instring {
		n := len(str)
		return 0, 0, 0, srcfile.SyntaxError(source.NewSpan(n-1, n), "unterminated string")
	} else if depth != 0 {
		n := len(str)
		return 0, 0, 0, srcfile.SyntaxError(source.NewSpan(n-1, n), "unmatched '('")
	}
	//
	return numCommas, numKeys, numClosings, nil
}

// quoteToggles determines whether the character at a given position toggles
// string state.  An opening quote is any quote outside a string; a closing
// quote is one not immediately preceded by a backslash.
func quoteToggles(str []rune, i int, instring bool) bool {
	if str[i] != '\'' {
		return false
	}
	//
	return !instring || str[i-1] != '\\'
}
