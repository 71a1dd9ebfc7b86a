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

// Package ignore decides what a search walk skips: a built-in directory
// skip list plus optional glob patterns from an ignore file at the search
// root.
package ignore

import (
	"bufio"
	"io"
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreFile is the file name looked up at the search root.
const IgnoreFile = ".mdfindignore"

const lineComment = "#"

// skipDirs are pruned from every walk, on top of the dot-dir rule.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// Matcher filters walk entries. The zero value applies only the built-in
// directory rules; ParseIgnoreFile adds per-root glob patterns.
type Matcher struct {
	ignoreList []glob.Glob
}

// Default is used when a search root carries no ignore file.
var Default = &Matcher{}

// ParseIgnoreFile reads an ignore-file:
//
// - each line is a glob pattern relative to the search root
// - patterns without glob characters or a dot ignore the whole subtree
// - empty lines and lines starting with # are skipped
func ParseIgnoreFile(r io.Reader) (*Matcher, error) {
	m := &Matcher{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, lineComment) {
			continue
		}
		pattern, err := compilePattern(line)
		if err != nil {
			return nil, err
		}
		m.ignoreList = append(m.ignoreList, pattern)
	}
	return m, scanner.Err()
}

func compilePattern(line string) (glob.Glob, error) {
	line = strings.TrimPrefix(line, "/")
	// a bare name (no glob characters, no dot) ignores everything under it
	if !strings.ContainsAny(line, ".][*?") {
		line += "**"
	}
	// with separator '/', a single * stays within one path segment
	return glob.Compile(line, '/')
}

// Match reports whether a file path relative to the search root matches an
// ignore pattern.
func (m *Matcher) Match(path string) bool {
	for _, pattern := range m.ignoreList {
		if pattern.Match(path) {
			return true
		}
	}
	return false
}

// MatchDir reports whether the walk should prune a directory: dot-dirs and
// the skip list always, ignore patterns by relative path.
func (m *Matcher) MatchDir(name, path string) bool {
	if strings.HasPrefix(name, ".") || skipDirs[name] {
		return true
	}
	return m.Match(path + "/")
}
