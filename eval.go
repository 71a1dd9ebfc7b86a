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

// leafMatcher builds the per-file leaf function the AST is evaluated with:
// extract the scope's value, fold case if requested, then dispatch to the
// literal kind's comparator with the pre-cast operand.
func (f *Finder) leafMatcher(rec *FileRecord, caseSensitive bool) query.LeafFunc {
	return func(l *query.Leaf) (bool, error) {
		ent, ok := f.registry.Get(l.Scope)
		if !ok {
			return false, fmt.Errorf("Unknown scope:「%s」", l.Scope)
		}
		got, err := ent.Query(rec)
		if err != nil {
			return false, err
		}
		if !caseSensitive {
			got = got.fold()
		}
		cast, ok := l.Cast.(Value)
		if !ok {
			return false, fmt.Errorf("In %s: leaf was not prepared", l.Scope)
		}
		return ent.matcherFor(l.Kind)(l.Scope, l.Operator, cast, got)
	}
}
