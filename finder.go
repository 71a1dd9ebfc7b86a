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
	"context"
	"fmt"
	"strings"

	"github.com/mdfind/mdfind/query"
)

// Finder owns a qualifier registry and the tokenizer compiled from it.
// Both are immutable between Register calls, so one Finder may serve many
// concurrent Find calls.
type Finder struct {
	registry  *Registry
	tokenizer *query.Tokenizer
}

// New builds a Finder with the default qualifiers plus any extra entries.
func New(extra ...*Qualifier) (*Finder, error) {
	f := &Finder{registry: newRegistry()}
	if err := f.Register(extra...); err != nil {
		return nil, err
	}
	return f, nil
}

// Register installs additional qualifiers and rebuilds the tokenizer so the
// new scopes become recognisable literals.
func (f *Finder) Register(entries ...*Qualifier) error {
	if err := f.registry.Register(entries...); err != nil {
		return err
	}
	f.tokenizer = query.NewTokenizer(f.registry.Scopes(), f.registry.Operators())
	return nil
}

// Qualifiers returns the registered qualifiers in registration order.
func (f *Finder) Qualifiers() []*Qualifier {
	return f.registry.All()
}

// Parse compiles a query string: tokenize, validate, parse, then validate
// and cast every leaf operand through its scope. With caseSensitive false
// the whole input is lowercased first, quoted phrases and regexps included.
func (f *Finder) Parse(q string, caseSensitive bool) (query.Q, error) {
	if !caseSensitive {
		q = strings.ToLower(q)
	}
	ast, err := query.Parse(f.tokenizer.Tokenize(q))
	if err != nil {
		return nil, err
	}
	if err := f.prepare(ast); err != nil {
		return nil, err
	}
	return ast, nil
}

// prepare walks the AST once, validating each leaf against its scope and
// populating the leaf's cast value.
func (f *Finder) prepare(ast query.Q) error {
	return query.Traverse(ast, func(l *query.Leaf) error {
		ent, ok := f.registry.Get(l.Scope)
		if !ok {
			return fmt.Errorf("Unknown scope:「%s」", l.Scope)
		}
		if err := ent.Validate(l.Scope, l.Operator, l.Operand, l.Kind); err != nil {
			return fmt.Errorf("In %s: %w", strings.ToUpper(l.Scope), err)
		}
		cast, err := ent.Cast(l.Operand, l.Kind)
		if err != nil {
			return fmt.Errorf("In %s: %w", strings.ToUpper(l.Scope), err)
		}
		l.Cast = cast
		return nil
	})
}

// FindOptions configures one search.
type FindOptions struct {
	// CaseSensitive disables the lowercasing of the query and of string
	// query values.
	CaseSensitive bool
	// Walk configures the directory walker; the zero value applies the
	// defaults (skip dotfiles, 10 MiB cap, markdown extensions).
	Walk WalkOptions
}

func (o *FindOptions) options() *FindOptions {
	if o == nil {
		return &FindOptions{}
	}
	return o
}

// StreamFind compiles q and streams every matching file under dir to
// sender, in walk order, stopping early when ctx is cancelled.
func (f *Finder) StreamFind(ctx context.Context, q, dir string, opts *FindOptions, sender Sender) error {
	if q == "" {
		return fmt.Errorf("query is must")
	}
	opts = opts.options()
	ast, err := f.Parse(q, opts.CaseSensitive)
	if err != nil {
		return err
	}
	return f.StreamFindQuery(ctx, ast, dir, opts, sender)
}

// StreamFindQuery is StreamFind for an already compiled AST.
func (f *Finder) StreamFindQuery(ctx context.Context, ast query.Q, dir string, opts *FindOptions, sender Sender) error {
	if dir == "" {
		return fmt.Errorf("dir is must")
	}
	if ast == nil {
		return fmt.Errorf("query is must")
	}
	opts = opts.options()
	return walkFiles(ctx, dir, &opts.Walk, func(rec *FileRecord) error {
		metricFilesScanned.Inc()
		ok, err := query.Evaluate(ast, f.leafMatcher(rec, opts.CaseSensitive))
		if err != nil {
			return err
		}
		if ok {
			metricFilesMatched.Inc()
			sender.Send(rec)
		}
		return nil
	})
}

// Find is StreamFind collecting the matches.
func (f *Finder) Find(ctx context.Context, q, dir string, opts *FindOptions) ([]*FileRecord, error) {
	var out []*FileRecord
	err := f.StreamFind(ctx, q, dir, opts, SenderFunc(func(r *FileRecord) {
		out = append(out, r)
	}))
	return out, err
}

// FindQuery is StreamFindQuery collecting the matches.
func (f *Finder) FindQuery(ctx context.Context, ast query.Q, dir string, opts *FindOptions) ([]*FileRecord, error) {
	var out []*FileRecord
	err := f.StreamFindQuery(ctx, ast, dir, opts, SenderFunc(func(r *FileRecord) {
		out = append(out, r)
	}))
	return out, err
}
