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

package markdown

import (
	"strings"

	"github.com/grafana/regexp"
)

// Filter decides whether a token contributes values to a query. Filters
// built by WrappedBy and friends carry state across one walk, so a fresh
// filter must be constructed per Collect call.
type Filter func(*Token) bool

// Transform extracts the strings a match literal is tested against.
type Transform func(*Token) []string

// Is keeps tokens of exactly the given type.
func Is(typ string) Filter {
	return func(t *Token) bool { return t.Type == typ }
}

// WrappedBy keeps tokens enclosed by a `typ_open`/`typ_close` pair.
func WrappedBy(typ string) Filter {
	open, closed := typ+"_open", typ+"_close"
	depth := 0
	return func(t *Token) bool {
		switch t.Type {
		case open:
			depth++
		case closed:
			depth--
		}
		return depth > 0
	}
}

// WrappedByTag is WrappedBy restricted to containers with the given tag,
// e.g. WrappedByTag("heading", "h2") keeps `## ...` content only.
func WrappedByTag(typ, tag string) Filter {
	open, closed := typ+"_open", typ+"_close"
	depth := 0
	return func(t *Token) bool {
		switch {
		case t.Type == open && t.Tag == tag:
			depth++
		case t.Type == closed && t.Tag == tag:
			depth--
		}
		return depth > 0
	}
}

// WrappedByMulti keeps tokens properly nested in the exact given container
// order. Opening an outer container resets the counters of everything
// deeper, so `ordered_list > list_item` does not satisfy
// `bullet_list > list_item`.
func WrappedByMulti(types ...string) Filter {
	counters := make([]int, len(types))
	return func(t *Token) bool {
		for i, typ := range types {
			switch t.Type {
			case typ + "_open":
				counters[i]++
				for j := i + 1; j < len(counters); j++ {
					counters[j] = 0
				}
			case typ + "_close":
				counters[i]--
			}
		}
		for _, c := range counters {
			if c <= 0 {
				return false
			}
		}
		return true
	}
}

// Content yields the token text.
func Content(t *Token) []string {
	return []string{t.Content}
}

// Info yields the fence info string (the language of a code fence).
func Info(t *Token) []string {
	return []string{t.Info}
}

// InfoAndContent yields info and body as one searchable string.
func InfoAndContent(t *Token) []string {
	return []string{t.Info + " " + t.Content}
}

// AttrAndContent yields the attribute values followed by the token text, so
// a link matches on either its target or its label.
func AttrAndContent(t *Token) []string {
	parts := make([]string, 0, len(t.Attrs)+1)
	for _, a := range t.Attrs {
		if a[1] != "" {
			parts = append(parts, a[1])
		}
	}
	if t.Content != "" {
		parts = append(parts, t.Content)
	}
	return []string{strings.Join(parts, " ")}
}

// ContentLine yields the token text split into lines.
func ContentLine(t *Token) []string {
	return strings.Split(t.Content, "\n")
}

var taskRe = regexp.MustCompile(`^\[(x|X| )\]\s+(.+)`)

// TaskContent parses a `[x] text` checkbox item and yields the text when
// the completion state matches: 0 any, 1 completed only, -1 incomplete only.
func TaskContent(mode int) Transform {
	return func(t *Token) []string {
		m := taskRe.FindStringSubmatch(t.Content)
		if m == nil {
			return nil
		}
		done := m[1] == "x" || m[1] == "X"
		if (mode == 1 && !done) || (mode == -1 && done) {
			return nil
		}
		return []string{m[2]}
	}
}

// RegexpContent yields the space-joined first capture group of every match
// of pattern in the token text.
func RegexpContent(pattern string) Transform {
	re := regexp.MustCompile(pattern)
	return func(t *Token) []string {
		var caps []string
		for _, m := range re.FindAllStringSubmatch(t.Content, -1) {
			if len(m) > 1 {
				caps = append(caps, m[1])
			}
		}
		if len(caps) == 0 {
			return nil
		}
		return []string{strings.Join(caps, " ")}
	}
}

// Collect walks the stream in preorder (descending into inline children),
// applies keep to every token and flattens the transformed values, dropping
// blank strings.
func Collect(tokens []*Token, keep Filter, tr Transform) []string {
	var out []string
	var walk func(ts []*Token)
	walk = func(ts []*Token) {
		for _, t := range ts {
			if keep(t) {
				for _, s := range tr(t) {
					if strings.TrimSpace(s) != "" {
						out = append(out, s)
					}
				}
			}
			walk(t.Children)
		}
	}
	walk(tokens)
	return out
}
