// Copyright 2024 The mdfind Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package query implements the mdfind search language: a regex-driven
// tokenizer, a structural validator and a recursive-descent parser producing
// a boolean AST over qualified match literals.
package query

import (
	"fmt"
)

// Q is a representation for a possibly hierarchical search query.
type Q interface {
	String() string
}

// Leaf is a match literal: a keyword, a quoted phrase or a regular
// expression, together with the qualifier it is evaluated under. Cast holds
// the scope-coerced operand; it is opaque to this package and populated by
// the qualifier layer after parsing.
type Leaf struct {
	Kind     TokenType // TokenKeyword, TokenPhrase or TokenRegexp
	Scope    string
	Operator string
	Operand  string
	Cast     any
}

func (l *Leaf) String() string {
	switch l.Kind {
	case TokenRegexp:
		return fmt.Sprintf("%s%s/%s/", l.Scope, l.Operator, l.Operand)
	case TokenPhrase:
		return fmt.Sprintf("%s%s%q", l.Scope, l.Operator, l.Operand)
	default:
		return fmt.Sprintf("%s%s%s", l.Scope, l.Operator, l.Operand)
	}
}

// And requires both children to match.
type And struct {
	Left, Right Q
}

func (q *And) String() string {
	return fmt.Sprintf("(and %s %s)", q.Left, q.Right)
}

// Or requires either child to match.
type Or struct {
	Left, Right Q
}

func (q *Or) String() string {
	return fmt.Sprintf("(or %s %s)", q.Left, q.Right)
}

// Not inverts Right. Left is nil for a unary negation (`-x`); when present
// the node reads as "Left and not Right" (`a -b`).
type Not struct {
	Left, Right Q
}

func (q *Not) String() string {
	if q.Left == nil {
		return fmt.Sprintf("(not %s)", q.Right)
	}
	return fmt.Sprintf("(andnot %s %s)", q.Left, q.Right)
}

// LeafFunc decides whether a single match literal holds for the file under
// evaluation.
type LeafFunc func(*Leaf) (bool, error)

// Evaluate runs q bottom-up with short-circuiting: Or stops on the first
// true, And on the first false. A Not with no Left behaves as a plain
// negation.
func Evaluate(q Q, fn LeafFunc) (bool, error) {
	switch s := q.(type) {
	case *Leaf:
		return fn(s)
	case *And:
		ok, err := Evaluate(s.Left, fn)
		if err != nil || !ok {
			return false, err
		}
		return Evaluate(s.Right, fn)
	case *Or:
		ok, err := Evaluate(s.Left, fn)
		if err != nil || ok {
			return ok, err
		}
		return Evaluate(s.Right, fn)
	case *Not:
		if s.Left != nil {
			ok, err := Evaluate(s.Left, fn)
			if err != nil || !ok {
				return false, err
			}
		}
		ok, err := Evaluate(s.Right, fn)
		return !ok && err == nil, err
	}
	panic(fmt.Sprintf("query: unknown node type %T", q))
}

// Traverse visits every leaf of q exactly once, left to right. For Not
// nodes the absent unary Left is skipped.
func Traverse(q Q, fn func(*Leaf) error) error {
	switch s := q.(type) {
	case *Leaf:
		return fn(s)
	case *And:
		if err := Traverse(s.Left, fn); err != nil {
			return err
		}
		return Traverse(s.Right, fn)
	case *Or:
		if err := Traverse(s.Left, fn); err != nil {
			return err
		}
		return Traverse(s.Right, fn)
	case *Not:
		if s.Left != nil {
			if err := Traverse(s.Left, fn); err != nil {
				return err
			}
		}
		return Traverse(s.Right, fn)
	}
	panic(fmt.Sprintf("query: unknown node type %T", q))
}
