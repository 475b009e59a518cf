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
	"errors"
	"fmt"
)

// MaxDepth bounds the nesting depth of an expression.  Nesting depth is input
// controlled, hence both the parser and the evaluator refuse to recurse past
// this bound.
const MaxDepth = 1024

// Expr is a parsed expression tree held in two flat segments of nodes: the
// static segment holds every operator node and every literal except keys,
// whilst the dynamic segment holds every key literal in first-occurrence
// order.  Both segments are sized exactly once (before any node is written),
// hence a Ref into either segment remains valid for the lifetime of the
// expression.  The root of the tree is always static node 0.
//
// An Expr is immutable after parsing and, therefore, safe for concurrent
// evaluation: resolved key values live in a per-evaluation scratch segment
// rather than being substituted in place.
type Expr struct {
	static  []Node
	dynamic []Node
}

// NewExpr reconstructs an expression from raw static and dynamic segments,
// such as those decoded from a compiled rule file.  The segments are
// validated to ensure every invariant of a parsed expression holds: a root
// exists, key literals (and only key literals) populate the dynamic segment,
// every child reference resolves within bounds, and the tree is acyclic and
// within the permitted nesting depth.
func NewExpr(static []Node, dynamic []Node) (*Expr, error) {
	if len(static) == 0 {
		return nil, errors.New("expression has no root node")
	}
	//
	for i := range static {
		if static[i].kind == KEY {
			return nil, fmt.Errorf("static node %d is a key literal", i)
		}
	}
	//
	for i := range dynamic {
		if dynamic[i].kind != KEY {
			return nil, fmt.Errorf("dynamic node %d is not a key literal", i)
		}
	}
	//
	expr := &Expr{static, dynamic}
	// Sanity check tree structure from the root down.
	if err := expr.checkRef(StaticRef(0), 0); err != nil {
		return nil, err
	}
	//
	return expr, nil
}

// Root returns the reference of the root node of this expression.
func (e *Expr) Root() Ref {
	return StaticRef(0)
}

// Segments returns the static and dynamic node segments of this expression.
// The returned slices are owned by the expression and must not be mutated.
func (e *Expr) Segments() ([]Node, []Node) {
	return e.static, e.dynamic
}

// Node resolves a reference against this expression.
func (e *Expr) Node(ref Ref) *Node {
	if ref.IsDynamic() {
		return &e.dynamic[ref.Index()]
	}
	//
	return &e.static[ref.Index()]
}

// Equal determines whether two expressions are structurally identical: same
// segment shapes, same literal payloads, same child references.
func (e *Expr) Equal(o *Expr) bool {
	if len(e.static) != len(o.static) || len(e.dynamic) != len(o.dynamic) {
		return false
	}
	//
	for i := range e.static {
		if !e.static[i].Matches(&o.static[i]) {
			return false
		}
	}
	//
	for i := range e.dynamic {
		if !e.dynamic[i].Matches(&o.dynamic[i]) {
			return false
		}
	}
	//
	return true
}

// Check a reference resolves to a well-formed subtree at a given depth.
func (e *Expr) checkRef(ref Ref, depth int) error {
	if depth >= MaxDepth {
		return errors.New("expression too deeply nested")
	}
	//
	index := ref.Index()
	//
	if ref.IsDynamic() {
		if index >= len(e.dynamic) {
			return fmt.Errorf("dangling dynamic reference %d", index)
		}
		// Dynamic nodes are always leaves.
		return nil
	} else if index >= len(e.static) {
		return fmt.Errorf("dangling static reference %d", index)
	}
	//
	node := &e.static[index]
	//
	if node.kind.IsLiteral() && len(node.children) != 0 {
		return fmt.Errorf("literal node %d has children", index)
	} else if !node.kind.IsLiteral() && !node.kind.IsOperator() {
		return fmt.Errorf("node %d has unknown kind", index)
	}
	//
	for _, child := range node.children {
		if err := e.checkRef(child, depth+1); err != nil {
			return err
		}
	}
	//
	return nil
}
