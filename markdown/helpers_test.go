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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectFence(t *testing.T) {
	src := []byte("```python\nprint(1)\n```\n\n```go\nfmt.Println(1)\n```\n")
	toks := parseBlock(src)

	require.Equal(t, []string{"python", "go"}, Collect(toks, Is("fence"), Info))
	require.Equal(t,
		[]string{"python print(1)\n", "go fmt.Println(1)\n"},
		Collect(toks, Is("fence"), InfoAndContent))
	require.Equal(t,
		[]string{"print(1)", "fmt.Println(1)"},
		Collect(toks, Is("fence"), ContentLine))
}

func TestCollectWrappedBy(t *testing.T) {
	src := []byte("> quoted\n\nplain\n\n> also quoted\n")
	toks := parseBlock(src)
	got := Collect(toks, WrappedBy("blockquote"), Content)
	require.Contains(t, got, "quoted")
	require.Contains(t, got, "also quoted")
	require.NotContains(t, got, "plain")
}

func TestCollectWrappedByTag(t *testing.T) {
	src := []byte("# Intro\n\n## Setup\n\ntext\n")
	toks := parseBlock(src)

	require.Equal(t, []string{"Intro"}, Collect(toks, WrappedByTag("heading", "h1"), Content))
	require.Equal(t, []string{"Setup"}, Collect(toks, WrappedByTag("heading", "h2"), Content))
	require.Empty(t, Collect(toks, WrappedByTag("heading", "h3"), Content))

	heads := Collect(toks, WrappedBy("heading"), Content)
	require.Equal(t, []string{"Intro", "Setup"}, heads)
}

func TestWrappedByMultiIsolatesBulletTasks(t *testing.T) {
	src := []byte("- [x] done\n- [ ] todo\n\n1. [x] numbered\n")
	toks := parseBlock(src)
	nested := func() Filter { return WrappedByMulti("bullet_list", "list_item", "paragraph") }

	any := Collect(toks, nested(), TaskContent(0))
	require.Contains(t, any, "done")
	require.Contains(t, any, "todo")
	require.NotContains(t, any, "numbered")

	require.Contains(t, Collect(toks, nested(), TaskContent(1)), "done")
	require.NotContains(t, Collect(toks, nested(), TaskContent(1)), "todo")

	require.Contains(t, Collect(toks, nested(), TaskContent(-1)), "todo")
	require.NotContains(t, Collect(toks, nested(), TaskContent(-1)), "done")
}

func TestTaskContent(t *testing.T) {
	for _, c := range []struct {
		content string
		mode    int
		want    []string
	}{
		{"[x] shipped", 0, []string{"shipped"}},
		{"[X] shipped", 1, []string{"shipped"}},
		{"[ ] pending", -1, []string{"pending"}},
		{"[ ] pending", 1, nil},
		{"[x] shipped", -1, nil},
		{"no checkbox", 0, nil},
		{"[y] not a task", 0, nil},
	} {
		got := TaskContent(c.mode)(&Token{Content: c.content})
		require.Equal(t, c.want, got, "content %q mode %d", c.content, c.mode)
	}
}

func TestRegexpContent(t *testing.T) {
	tr := RegexpContent(`==([^=\n]+)==`)
	require.Equal(t, []string{"first second"}, tr(&Token{Content: "a ==first== b ==second== c"}))
	require.Nil(t, tr(&Token{Content: "nothing marked"}))
}

func TestAttrAndContent(t *testing.T) {
	tok := &Token{
		Type:    "link",
		Attrs:   [][2]string{{"href", "https://example.com"}},
		Content: "docs",
	}
	require.Equal(t, []string{"https://example.com docs"}, AttrAndContent(tok))
}

func TestCollectDropsEmpty(t *testing.T) {
	src := []byte("```\nbody\n```\n")
	toks := parseBlock(src)
	// The fence has no info string; Info yields nothing searchable.
	require.Empty(t, Collect(toks, Is("fence"), Info))
}
