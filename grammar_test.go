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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Every registered scope appears exactly once in the grammar listing.
func TestGrammarListsEveryScopeOnce(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	grammar := f.Grammar()

	for _, scope := range f.registry.Scopes() {
		require.Equal(t, 1, strings.Count(grammar, "'"+scope+"'"),
			"scope %q should appear exactly once", scope)
	}
	for _, op := range []string{`">="`, `"<="`, `"!="`, `":"`, `"="`, `">"`, `"<"`} {
		require.Contains(t, grammar, op)
	}
	require.Contains(t, grammar, "<expression> ::=")
}

func TestGrammarIncludesRegisteredScopes(t *testing.T) {
	f, err := New(&Qualifier{
		Scope: "frontmatter",
		Name:  "frontmatter block",
		Query: func(rec *FileRecord) (Value, error) {
			return StringValue(string(rec.Data)), nil
		},
	})
	require.NoError(t, err)
	require.Contains(t, f.Grammar(), "'frontmatter'")
}
