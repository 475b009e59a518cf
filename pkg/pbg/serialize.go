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
	"fmt"
	"strings"
)

// String reconstructs canonical rule text from this expression.  The result
// is a structural round trip rather than a byte-identical one: numbers are
// normalised to two decimal places and any stripped outer parenthesis is not
// reinstated.
func (e *Expr) String() string {
	var builder strings.Builder
	//
	e.write(&builder, e.Root())
	//
	return builder.String()
}

// Write the canonical form of the subtree at a given reference.
func (e *Expr) write(builder *strings.Builder, ref Ref) {
	node := e.Node(ref)
	//
	if node.kind.IsLiteral() {
		builder.WriteString(node.literal())
		return
	}
	// Operator node, e.g. (&,lhs,rhs).
	builder.WriteString("(")
	builder.WriteString(node.kind.Symbol())
	//
	for _, child := range node.children {
		builder.WriteString(",")
		e.write(builder, child)
	}
	//
	builder.WriteString(")")
}

// Render the canonical surface form of a literal node.
func (n *Node) literal() string {
	switch n.kind {
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case NUMBER:
		return fmt.Sprintf("%.2f", n.number)
	case STRING:
		return fmt.Sprintf("'%s'", n.text)
	case DATE:
		return n.date.String()
	case KEY:
		return fmt.Sprintf("[%s]", n.text)
	}
	// UNRESOLVED only ever occurs in the scratch segment of an evaluation.
	return "UNRESOLVED"
}

// Debug renders this expression as an indented one-node-per-line tree, as a
// debugging aid.
func (e *Expr) Debug() string {
	var builder strings.Builder
	//
	e.debug(&builder, e.Root(), 0)
	//
	return builder.String()
}

func (e *Expr) debug(builder *strings.Builder, ref Ref, depth int) {
	var (
		node   = e.Node(ref)
		indent = strings.Repeat("  ", depth)
	)
	//
	switch {
	case node.kind == TRUE || node.kind == FALSE || node.kind == UNRESOLVED:
		fmt.Fprintf(builder, "%s%s\n", indent, node.kind.Symbol())
		return
	case node.kind.IsLiteral():
		fmt.Fprintf(builder, "%s%s : %s\n", indent, node.kind.Symbol(), node.literal())
		return
	}
	//
	fmt.Fprintf(builder, "%s%s\n", indent, node.kind.Symbol())
	//
	for _, child := range node.children {
		e.debug(builder, child, depth+1)
	}
}
