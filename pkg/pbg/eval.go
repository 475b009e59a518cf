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
)

// Resolver maps a key name to its current value, expressed as a literal node
// (commonly NUMBER, STRING, DATE or TRUE/FALSE).  A key with no value maps to
// the UNRESOLVED sentinel.  A resolver may be called any number of times per
// evaluation, once per distinct key, in unspecified order.
type Resolver interface {
	Resolve(key string) Node
}

// ResolverFunc adapts an ordinary function into a Resolver.
type ResolverFunc func(key string) Node

// Resolve implementation for Resolver interface.
func (f ResolverFunc) Resolve(key string) Node {
	return f(key)
}

// MapResolver resolves keys against a fixed map of values.
type MapResolver map[string]Node

// Resolve implementation for Resolver interface.
func (m MapResolver) Resolve(key string) Node {
	if node, ok := m[key]; ok {
		return node
	}
	//
	return Unresolved()
}

// EvalError signals a failure arising during the evaluation of an expression,
// such as an operator applied to the wrong number (or kind) of arguments.
// The expression itself remains valid and reusable afterwards.
type EvalError struct {
	msg string
}

func (p *EvalError) Error() string {
	return p.msg
}

func evalErrorf(format string, args ...any) *EvalError {
	return &EvalError{fmt.Sprintf(format, args...)}
}

// Evaluate reduces this expression to a boolean using a given resolver for
// the key literals it contains.  Key values are collected into a scratch
// segment before reduction begins; the expression itself is never mutated,
// hence concurrent evaluations of one expression are safe and each call may
// use a different resolver.  Each distinct key name is resolved once per
// call.
func (e *Expr) Evaluate(resolver Resolver) (bool, error) {
	var resolved map[string]Node
	// Resolve every key in the dynamic segment into the scratch segment.
	scratch := make([]Node, len(e.dynamic))
	//
	for i := range e.dynamic {
		name := e.dynamic[i].text
		//
		node, ok := resolved[name]
		if !ok {
			node = resolver.Resolve(name)
			//
			if resolved == nil {
				resolved = make(map[string]Node)
			}
			//
			resolved[name] = node
		}
		//
		scratch[i] = node
	}
	//
	return e.truth(e.Root(), scratch, 0)
}

// Resolve a reference during evaluation.  Dynamic references address the
// scratch segment of resolved key values rather than the key literals
// themselves.
func (e *Expr) resolved(ref Ref, scratch []Node) *Node {
	if ref.IsDynamic() {
		return &scratch[ref.Index()]
	}
	//
	return &e.static[ref.Index()]
}

// Reduce the subtree at a given reference to a truth value.
func (e *Expr) truth(ref Ref, scratch []Node, depth int) (bool, error) {
	if depth >= MaxDepth {
		return false, evalErrorf("expression too deeply nested")
	}
	//
	node := e.resolved(ref, scratch)
	//
	switch node.kind {
	case TRUE:
		return true, nil
	case FALSE:
		return false, nil
	case NOT:
		return e.evalNot(node, scratch, depth)
	case AND:
		return e.evalAnd(node, scratch, depth)
	case OR:
		return e.evalOr(node, scratch, depth)
	case EQ:
		return e.evalEq(node, scratch)
	case NEQ:
		return e.evalNeq(node, scratch)
	case LT, LTE, GT, GTE:
		return e.evalOrdering(node, scratch)
	case EXISTS:
		return e.evalExists(node, scratch)
	}
	// Any other literal has no boolean interpretation outside an operator.
	return false, evalErrorf("%s literal has no truth value", node.kind.Symbol())
}

// NOT: logical negation of the single argument.
func (e *Expr) evalNot(node *Node, scratch []Node, depth int) (bool, error) {
	if len(node.children) != 1 {
		return false, evalErrorf("! expects 1 argument, found %d", len(node.children))
	}
	//
	value, err := e.truth(node.children[0], scratch, depth+1)
	//
	return !value, err
}

// AND: false as soon as any argument is false.
func (e *Expr) evalAnd(node *Node, scratch []Node, depth int) (bool, error) {
	if len(node.children) == 0 {
		return false, evalErrorf("& expects at least 1 argument")
	}
	//
	for _, child := range node.children {
		value, err := e.truth(child, scratch, depth+1)
		if err != nil {
			return false, err
		} else if !value {
			return false, nil
		}
	}
	//
	return true, nil
}

// OR: true as soon as any argument is true.
func (e *Expr) evalOr(node *Node, scratch []Node, depth int) (bool, error) {
	if len(node.children) == 0 {
		return false, evalErrorf("| expects at least 1 argument")
	}
	//
	for _, child := range node.children {
		value, err := e.truth(child, scratch, depth+1)
		if err != nil {
			return false, err
		} else if value {
			return true, nil
		}
	}
	//
	return false, nil
}

// EQ: true only if every argument is a literal identical to the first in
// kind and payload.
func (e *Expr) evalEq(node *Node, scratch []Node) (bool, error) {
	if len(node.children) < 2 {
		return false, evalErrorf("= expects at least 2 arguments, found %d", len(node.children))
	}
	//
	first, err := e.operand(node.children[0], scratch)
	if err != nil {
		return false, err
	}
	//
	for _, child := range node.children[1:] {
		operand, err := e.operand(child, scratch)
		if err != nil {
			return false, err
		} else if !first.Matches(operand) {
			return false, nil
		}
	}
	//
	return true, nil
}

// NEQ: true only if the two arguments differ in kind or payload.
func (e *Expr) evalNeq(node *Node, scratch []Node) (bool, error) {
	if len(node.children) != 2 {
		return false, evalErrorf("!= expects 2 arguments, found %d", len(node.children))
	}
	//
	lhs, err := e.operand(node.children[0], scratch)
	if err != nil {
		return false, err
	}
	//
	rhs, err := e.operand(node.children[1], scratch)
	if err != nil {
		return false, err
	}
	//
	return !lhs.Matches(rhs), nil
}

// LT/LTE/GT/GTE: ordered comparison of two arguments.  Numbers compare as
// 64-bit floats and dates compare chronologically; any other combination of
// operand kinds is an error.
func (e *Expr) evalOrdering(node *Node, scratch []Node) (bool, error) {
	symbol := node.kind.Symbol()
	//
	if len(node.children) != 2 {
		return false, evalErrorf("%s expects 2 arguments, found %d", symbol, len(node.children))
	}
	//
	lhs, err := e.operand(node.children[0], scratch)
	if err != nil {
		return false, err
	}
	//
	rhs, err := e.operand(node.children[1], scratch)
	if err != nil {
		return false, err
	}
	//
	switch {
	case lhs.kind == NUMBER && rhs.kind == NUMBER:
		return compareOrdered(node.kind, lhs.number, rhs.number), nil
	case lhs.kind == DATE && rhs.kind == DATE:
		return compareDates(node.kind, lhs.date, rhs.date), nil
	}
	//
	return false, evalErrorf("%s cannot compare %s with %s", symbol, lhs.kind.Symbol(), rhs.kind.Symbol())
}

// EXISTS: true only if the resolved argument is a known value.
func (e *Expr) evalExists(node *Node, scratch []Node) (bool, error) {
	if len(node.children) != 1 {
		return false, evalErrorf("? expects 1 argument, found %d", len(node.children))
	}
	//
	operand := e.resolved(node.children[0], scratch)
	//
	return operand.kind != UNRESOLVED, nil
}

// Resolve an operand for a comparison operator, rejecting operator nodes
// since only literals carry comparable payloads.
func (e *Expr) operand(ref Ref, scratch []Node) (*Node, error) {
	node := e.resolved(ref, scratch)
	//
	if node.kind.IsOperator() {
		return nil, evalErrorf("cannot compare %s subexpression as a value", node.kind.Symbol())
	}
	//
	return node, nil
}

func compareOrdered(kind Kind, lhs float64, rhs float64) bool {
	switch kind {
	case LT:
		return lhs < rhs
	case LTE:
		return lhs <= rhs
	case GT:
		return lhs > rhs
	default:
		return lhs >= rhs
	}
}

func compareDates(kind Kind, lhs Date, rhs Date) bool {
	switch kind {
	case LT:
		return lhs.Before(rhs)
	case LTE:
		return !rhs.Before(lhs)
	case GT:
		return rhs.Before(lhs)
	default:
		return !lhs.Before(rhs)
	}
}
