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

package mdfind

import (
	"fmt"

	"github.com/mdfind/mdfind/query"
)

// Operators recognised by qualifiers, longest literals first so the
// tokenizer alternation prefers `>=` over `>`.
var operators = []string{">=", "<=", "!=", ":", "=", ">", "<"}

// ValidateFunc checks a (scope, operator, operand) triple before casting.
// kind is the literal's token type (keyword, phrase or regexp).
type ValidateFunc func(scope, operator, operand string, kind query.TokenType) error

// CastFunc coerces the operand into the scope's comparison domain.
type CastFunc func(operand string, kind query.TokenType) (Value, error)

// QueryFunc extracts the scope's value from a candidate file.
type QueryFunc func(rec *FileRecord) (Value, error)

// MatchFunc compares a cast operand against a query value.
type MatchFunc func(scope, operator string, cast, got Value) (bool, error)

// Qualifier describes one scope: how its operand is validated and coerced,
// what it reads from a file, and how the three literal kinds compare.
// Omitted functions are filled with string/regex defaults on registration.
type Qualifier struct {
	Scope string
	Name  string
	// Meta marks scopes that reflect file metadata rather than content.
	Meta bool

	Validate     ValidateFunc
	Cast         CastFunc
	Query        QueryFunc
	MatchKeyword MatchFunc
	MatchPhrase  MatchFunc
	MatchRegexp  MatchFunc
}

// Registry maps scopes to their qualifiers. Scopes keep registration order
// so the grammar listing and the tokenizer alternation are stable.
type Registry struct {
	entries map[string]*Qualifier
	order   []string
}

func newRegistry() *Registry {
	r := &Registry{entries: map[string]*Qualifier{}}
	r.mustRegister(baseQualifiers()...)
	r.mustRegister(markdownQualifiers()...)
	r.mustRegister(langQualifier())
	return r
}

// Register installs entries, filling omitted functions with the defaults:
// string-or-regex validation and cast, primitive compare for keywords,
// keyword behaviour for phrases and string regex matching.
func (r *Registry) Register(entries ...*Qualifier) error {
	for _, e := range entries {
		if e.Scope == "" {
			return fmt.Errorf("qualifier has no scope")
		}
		if e.Query == nil {
			return fmt.Errorf("qualifier %q has no query function", e.Scope)
		}
		if e.Validate == nil {
			e.Validate = validateStringOrRegexp
		}
		if e.Cast == nil {
			e.Cast = castStringOrRegexp
		}
		if e.MatchKeyword == nil {
			e.MatchKeyword = matchCompare
		}
		if e.MatchPhrase == nil {
			e.MatchPhrase = e.MatchKeyword
		}
		if e.MatchRegexp == nil {
			e.MatchRegexp = matchRegexp
		}
		if _, seen := r.entries[e.Scope]; !seen {
			r.order = append(r.order, e.Scope)
		}
		r.entries[e.Scope] = e
	}
	return nil
}

func (r *Registry) mustRegister(entries ...*Qualifier) {
	if err := r.Register(entries...); err != nil {
		panic(err)
	}
}

// Scopes returns all registered scopes in registration order.
func (r *Registry) Scopes() []string {
	return append([]string(nil), r.order...)
}

// Operators returns the operator literals.
func (r *Registry) Operators() []string {
	return append([]string(nil), operators...)
}

// Get looks up the qualifier for a scope.
func (r *Registry) Get(scope string) (*Qualifier, bool) {
	q, ok := r.entries[scope]
	return q, ok
}

// All returns the qualifiers in registration order.
func (r *Registry) All() []*Qualifier {
	out := make([]*Qualifier, 0, len(r.order))
	for _, s := range r.order {
		out = append(out, r.entries[s])
	}
	return out
}
