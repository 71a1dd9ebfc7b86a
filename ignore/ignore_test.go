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

package ignore

import (
	"strings"
	"testing"
)

func TestIgnoreMatcher(t *testing.T) {
	ignoreFile := `
# archived notes
archive
drafts/*.md
/vendor
`
	m, err := ParseIgnoreFile(strings.NewReader(ignoreFile))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path      string
		wantMatch bool
	}{
		{path: "archive/old.md", wantMatch: true},
		{path: "archive/2023/old.md", wantMatch: true},
		{path: "drafts/wip.md", wantMatch: true},
		{path: "drafts/sub/wip.md", wantMatch: false},
		{path: "vendor/readme.md", wantMatch: true},
		{path: "notes/today.md", wantMatch: false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.path); got != tt.wantMatch {
			t.Errorf("Match(%q): got %t, expected %t", tt.path, got, tt.wantMatch)
		}
	}
}

func TestMatchDir(t *testing.T) {
	m, err := ParseIgnoreFile(strings.NewReader("archive\n"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		path      string
		wantMatch bool
	}{
		// built-in rules hold with and without patterns
		{name: ".git", path: ".git", wantMatch: true},
		{name: "node_modules", path: "sub/node_modules", wantMatch: true},
		{name: ".cache", path: ".cache", wantMatch: true},
		{name: "archive", path: "archive", wantMatch: true},
		{name: "notes", path: "notes", wantMatch: false},
	}

	for _, tt := range tests {
		if got := m.MatchDir(tt.name, tt.path); got != tt.wantMatch {
			t.Errorf("MatchDir(%q, %q): got %t, expected %t", tt.name, tt.path, got, tt.wantMatch)
		}
		// Default applies the built-in rules only.
		wantDefault := tt.wantMatch && tt.name != "archive"
		if got := Default.MatchDir(tt.name, tt.path); got != wantDefault {
			t.Errorf("Default.MatchDir(%q, %q): got %t, expected %t", tt.name, tt.path, got, wantDefault)
		}
	}
}

func TestIgnoreMatcherEmpty(t *testing.T) {
	m, err := ParseIgnoreFile(strings.NewReader("# only a comment\n\n"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Match("anything/at.md") {
		t.Errorf("empty matcher should match nothing")
	}
}
