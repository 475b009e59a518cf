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

import "fmt"

// Kind identifies the variant of a node within an expression tree.  Literal
// kinds always precede operator kinds, allowing cheap classification of a
// node as one or the other.
type Kind uint8

const (
	// UNRESOLVED signals a key which the resolver could not map to a value.
	UNRESOLVED Kind = iota
	// TRUE is the boolean literal "TRUE".
	TRUE
	// FALSE is the boolean literal "FALSE".
	FALSE
	// NUMBER is a numeric literal held as a 64-bit float.
	NUMBER
	// STRING is a single-quoted string literal.
	STRING
	// DATE is a date literal of the form YYYY-MM-DD.
	DATE
	// KEY is a bracketed key literal resolved by the host at evaluation time.
	KEY
	// lastLiteral marks the end of the literal kinds.
	lastLiteral
	// NOT is logical negation over exactly one argument.
	NOT
	// AND is logical conjunction over one or more arguments.
	AND
	// OR is logical disjunction over one or more arguments.
	OR
	// EQ holds when all arguments are identical literals.
	EQ
	// NEQ holds when its two arguments differ.
	NEQ
	// LT is a strict less-than ordering over two arguments.
	LT
	// LTE is a non-strict less-than ordering over two arguments.
	LTE
	// GT is a strict greater-than ordering over two arguments.
	GT
	// GTE is a non-strict greater-than ordering over two arguments.
	GTE
	// EXISTS holds when its single argument resolved to a known value.
	EXISTS
	// lastOperator marks the end of the operator kinds.
	lastOperator
)

// IsLiteral checks whether this kind identifies a literal node.
func (k Kind) IsLiteral() bool {
	return k < lastLiteral
}

// IsOperator checks whether this kind identifies an operator node.
func (k Kind) IsOperator() bool {
	return k > lastLiteral && k < lastOperator
}

// Symbol returns the surface syntax for an operator kind (e.g. "&" for AND),
// or the name of a literal kind.
func (k Kind) Symbol() string {
	switch k {
	case UNRESOLVED:
		return "UNRESOLVED"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case DATE:
		return "DATE"
	case KEY:
		return "KEY"
	case NOT:
		return "!"
	case AND:
		return "&"
	case OR:
		return "|"
	case EQ:
		return "="
	case NEQ:
		return "!="
	case LT:
		return "<"
	case LTE:
		return "<="
	case GT:
		return ">"
	case GTE:
		return ">="
	case EXISTS:
		return "?"
	}
	//
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Date is the payload of a DATE literal.  No calendar-range validation is
// performed on the three components.
type Date struct {
	// Year component (0000 - 9999).
	Year int
	// Month component.
	Month int
	// Day component.
	Day int
}

// Before determines whether this date falls strictly before another date in
// chronological order.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	} else if d.Month != o.Month {
		return d.Month < o.Month
	}
	//
	return d.Day < o.Day
}

// String returns the canonical zero-padded rendering of this date.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Ref references a node within an expression without using a pointer.
// Non-negative values index the static segment directly, whilst negative
// values index the dynamic segment via the transform -(ref+1).  Using indices
// rather than pointers allows the dynamic segment to be substituted during
// evaluation without invalidating any reference.
type Ref int

// StaticRef constructs a reference to the ith node of the static segment.
func StaticRef(index int) Ref {
	return Ref(index)
}

// DynamicRef constructs a reference to the ith node of the dynamic segment.
func DynamicRef(index int) Ref {
	return Ref(-index - 1)
}

// IsDynamic checks whether this reference addresses the dynamic segment.
func (r Ref) IsDynamic() bool {
	return r < 0
}

// Index returns the offset of the referenced node within its owning segment.
func (r Ref) Index() int {
	if r < 0 {
		return int(-(r + 1))
	}
	//
	return int(r)
}

// Node is the atomic unit of an expression tree.  A node is a tagged variant:
// exactly one payload field is meaningful for any given kind.  Literal nodes
// own their payload, whilst operator nodes own an ordered sequence of child
// references into the enclosing expression.
type Node struct {
	kind Kind
	// Payload for NUMBER literals.
	number float64
	// Payload for STRING and KEY literals.
	text string
	// Payload for DATE literals.
	date Date
	// Children for operator nodes.
	children []Ref
}

// True constructs the boolean literal TRUE.
func True() Node {
	return Node{kind: TRUE}
}

// False constructs the boolean literal FALSE.
func False() Node {
	return Node{kind: FALSE}
}

// Unresolved constructs the sentinel node used by resolvers to signal that a
// key has no value.
func Unresolved() Node {
	return Node{kind: UNRESOLVED}
}

// Number constructs a numeric literal.
func Number(value float64) Node {
	return Node{kind: NUMBER, number: value}
}

// String constructs a string literal.  The payload is held verbatim,
// including any escaped quotes.
func String(value string) Node {
	return Node{kind: STRING, text: value}
}

// NewDate constructs a date literal from its three components.
func NewDate(year int, month int, day int) Node {
	return Node{kind: DATE, date: Date{year, month, day}}
}

// Key constructs a key literal with the given name.
func Key(name string) Node {
	return Node{kind: KEY, text: name}
}

// Operator constructs an operator node over the given child references.
func Operator(kind Kind, children ...Ref) Node {
	if !kind.IsOperator() {
		panic(fmt.Sprintf("not an operator kind: %s", kind.Symbol()))
	}
	//
	return Node{kind: kind, children: children}
}

// Kind returns the variant tag of this node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Number returns the payload of a NUMBER literal.
func (n *Node) Number() float64 {
	return n.number
}

// Text returns the payload of a STRING or KEY literal.
func (n *Node) Text() string {
	return n.text
}

// Date returns the payload of a DATE literal.
func (n *Node) Date() Date {
	return n.date
}

// Children returns the ordered child references of an operator node.
func (n *Node) Children() []Ref {
	return n.children
}

// Matches determines whether two nodes are identical in kind and payload.
// For literal nodes this is the equality relation applied by the EQ and NEQ
// operators; operator nodes additionally require identical child references.
func (n *Node) Matches(o *Node) bool {
	if n.kind != o.kind {
		return false
	}
	//
	switch n.kind {
	case NUMBER:
		return n.number == o.number
	case STRING, KEY:
		return n.text == o.text
	case DATE:
		return n.date == o.date
	case TRUE, FALSE, UNRESOLVED:
		return true
	}
	// Operator node.
	if len(n.children) != len(o.children) {
		return false
	}
	//
	for i := range n.children {
		if n.children[i] != o.children[i] {
			return false
		}
	}
	//
	return true
}
