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

// Parse a given input string into an expression tree, or report a syntax
// error.  No partial expression is ever returned.
func Parse(input string) (*Expr, *source.SyntaxError) {
	return ParseSourceFile(source.NewSourceFile("expr", []byte(input)))
}

// ParseSourceFile parses the contents of a given source file into an
// expression tree, retaining the file so that any syntax error can be
// reported against its enclosing line.
func ParseSourceFile(srcfile *source.File) (*Expr, *source.SyntaxError) {
	// Scan to determine field boundaries, closing positions and segment
	// capacities.
	sc, err := scanExpr(srcfile)
	if err != nil {
		return nil, err
	}
	// Both segments are sized exactly once, before any node is written.
	// References handed out during parsing therefore never move.
	p := &parser{
		srcfile: srcfile,
		sc:      sc,
		expr: &Expr{
			static:  make([]Node, 0, sc.numFields()-sc.numKeys),
			dynamic: make([]Node, 0, sc.numKeys),
		},
	}
	// Parse exactly one expression.
	_, cur, err := p.parse(cursor{0, 0}, 0)
	if err != nil {
		return nil, err
	}
	// Check every field was consumed.
	if p.sc.fields[cur.field] != -1 {
		start := p.sc.fields[cur.field]
		return nil, srcfile.SyntaxError(source.NewSpan(start, start+p.sc.lengths[cur.field]), "unexpected remainder")
	}
	// Check every closing parenthesis was consumed.  A single trailing
	// closing is permitted when it matches a stripped leading parenthesis
	// around a bare literal, e.g. "(TRUE)".
	if cur.closing != len(p.sc.closings) && !p.strippedOuter(cur) {
		offset := p.sc.closings[cur.closing]
		return nil, srcfile.SyntaxError(source.NewSpan(offset, offset+1), "unexpected ')'")
	}
	//
	return p.expr, nil
}

// Parser holds the state required whilst populating an expression's node
// segments from scanned fields.
type parser struct {
	srcfile *source.File
	sc      scan
	expr    *Expr
}

// Cursor identifies the current field and the next unconsumed closing
// parenthesis.  Nested operators at the same bracket depth are distinguished
// purely by matching each operator against the closing at the current cursor;
// no depth counting is required since every operator owns exactly one
// parenthesis level and siblings share no closing.
type cursor struct {
	field   int
	closing int
}

// Parse the expression rooted at the field under the cursor, returning the
// reference of the constructed node together with the advanced cursor.
func (p *parser) parse(cur cursor, depth int) (Ref, cursor, *source.SyntaxError) {
	var (
		span = p.fieldSpan(cur.field)
		text = p.fieldText(cur.field)
	)
	//
	if depth >= MaxDepth {
		return 0, cur, p.srcfile.SyntaxError(span, "expression too deeply nested")
	}
	// Attempt operator classification first.
	if kind := classifyOperator(text); kind != UNRESOLVED {
		return p.parseOperator(kind, cur, depth)
	}
	// Otherwise, this field must be a literal.
	node, ok := classifyLiteral(text)
	if !ok {
		return 0, cur, p.srcfile.SyntaxError(span, "unrecognised literal")
	}
	//
	cur.field++
	//
	if node.kind == KEY {
		p.expr.dynamic = append(p.expr.dynamic, node)
		return DynamicRef(len(p.expr.dynamic) - 1), cur, nil
	}
	//
	p.expr.static = append(p.expr.static, node)
	//
	return StaticRef(len(p.expr.static) - 1), cur, nil
}

// Parse the operator group beginning at the field under the cursor.  Children
// are parsed for as long as the next field starts before the closing
// parenthesis at the current closing cursor; afterwards the closing cursor
// advances by one, since this operator consumed everything up to (and
// including) one closing.
func (p *parser) parseOperator(kind Kind, cur cursor, depth int) (Ref, cursor, *source.SyntaxError) {
	span := p.fieldSpan(cur.field)
	// Allocate the operator node before its children, so the root of any
	// expression is always static node 0.
	p.expr.static = append(p.expr.static, Operator(kind))
	//
	var (
		index    = len(p.expr.static) - 1
		children []Ref
		err      *source.SyntaxError
		child    Ref
	)
	//
	cur.field++
	//
	for p.sc.fields[cur.field] != -1 {
		if cur.closing >= len(p.sc.closings) {
			return 0, cur, p.srcfile.SyntaxError(span, "missing ')'")
		} else if p.sc.fields[cur.field] >= p.sc.closings[cur.closing] {
			break
		}
		//
		if child, cur, err = p.parse(cur, depth+1); err != nil {
			return 0, cur, err
		}
		//
		children = append(children, child)
	}
	//
	if cur.closing >= len(p.sc.closings) {
		return 0, cur, p.srcfile.SyntaxError(span, "missing ')'")
	}
	// Store the collected children and consume one closing.
	p.expr.static[index].children = children
	cur.closing++
	//
	return StaticRef(index), cur, nil
}

// Check whether a single unconsumed trailing closing parenthesis matches a
// stripped leading parenthesis around the whole expression.
func (p *parser) strippedOuter(cur cursor) bool {
	var (
		str = p.srcfile.Contents()
		n   = len(str)
	)
	//
	return str[0] == '(' && cur.closing == len(p.sc.closings)-1 && p.sc.closings[cur.closing] == n-1
}

// fieldSpan returns the span of a given field within the source file.
func (p *parser) fieldSpan(field int) source.Span {
	start := p.sc.fields[field]
	return source.NewSpan(start, start+p.sc.lengths[field])
}

// fieldText returns the text of a given field.
func (p *parser) fieldText(field int) []rune {
	start := p.sc.fields[field]
	return p.srcfile.Contents()[start : start+p.sc.lengths[field]]
}
