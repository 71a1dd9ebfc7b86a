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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func findPaths(t *testing.T, dir, q string) []string {
	t.Helper()
	f, err := New()
	require.NoError(t, err)
	recs, err := f.Find(context.Background(), q, dir, nil)
	require.NoError(t, err)
	paths := make([]string, len(recs))
	for i, r := range recs {
		paths[i] = r.Path
	}
	return paths
}

func TestFindKeyword(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "hello world\n")

	require.Equal(t, []string{"a.md"}, findPaths(t, dir, "world"))
	require.Empty(t, findPaths(t, dir, "world -hello"))
	require.Empty(t, findPaths(t, dir, "absent"))
}

func TestFindCaseFolding(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "Hello World\n")

	require.Equal(t, []string{"a.md"}, findPaths(t, dir, "WORLD"))

	f, err := New()
	require.NoError(t, err)
	recs, err := f.Find(context.Background(), "WORLD", dir, &FindOptions{CaseSensitive: true})
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestFindSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", string(bytes.Repeat([]byte("x"), 12000)))

	require.Equal(t, []string{"b.md"}, findPaths(t, dir, "size>10kb"))
	require.Empty(t, findPaths(t, dir, "size<10kb"))
}

func TestFindCodeFence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.md", "intro\n\n```python\nprint(1)\n```\n")

	require.Equal(t, []string{"c.md"}, findPaths(t, dir, "blockcodelang:python"))
	require.Equal(t, []string{"c.md"}, findPaths(t, dir, "blockcodelang=python"))
	require.Equal(t, []string{"c.md"}, findPaths(t, dir, "blockcodebody:print"))
	require.Empty(t, findPaths(t, dir, "blockcodelang:ruby"))
}

func TestFindCodelangAlias(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.md", "```py\nprint(1)\n```\n")

	require.Equal(t, []string{"c.md"}, findPaths(t, dir, "codelang:python"))
	require.Empty(t, findPaths(t, dir, "blockcodelang:python"))
}

func TestFindHeadings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "d.md", "# Intro\n\n## Setup\n\ntext\n")

	require.Equal(t, []string{"d.md"}, findPaths(t, dir, "h1:intro"))
	require.Empty(t, findPaths(t, dir, "h2:intro"))
	require.Equal(t, []string{"d.md"}, findPaths(t, dir, "head:setup"))
}

func TestFindTasks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "e.md", "- [x] done\n- [ ] todo\n")

	require.Equal(t, []string{"e.md"}, findPaths(t, dir, "taskdone:done"))
	require.Empty(t, findPaths(t, dir, "tasktodo:done"))
	require.Equal(t, []string{"e.md"}, findPaths(t, dir, "task:todo"))
}

func TestFindTime(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "f.md", "dated\n")
	mtime := time.Date(2024, 3, 12, 15, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	require.Equal(t, []string{"f.md"}, findPaths(t, dir, "time=2024-03-12"))
	require.Empty(t, findPaths(t, dir, "time=2024-03-13"))
	require.Equal(t, []string{"f.md"}, findPaths(t, dir, "time<2024-03-13"))
}

func TestFindQualifiedGroup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "info.md", "nothing\n")
	writeFile(t, dir, "warn.md", "nothing\n")
	writeFile(t, dir, "other.md", "nothing\n")

	require.ElementsMatch(t, []string{"info.md", "warn.md"},
		findPaths(t, dir, "path:(info | warn)"))
	require.Equal(t, []string{"other.md"},
		findPaths(t, dir, "-path:info -path:warn"))
}

func TestFindRegexp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "abc.md", "x\n")
	writeFile(t, dir, "ab.md", "x\n")

	require.Equal(t, []string{"abc.md"}, findPaths(t, dir, `file:/^[a-z]{3}\.md$/`))
}

func TestFindLineScopes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "g.md", "one\ntwo\nthree\n")

	require.Equal(t, []string{"g.md"}, findPaths(t, dir, "line=two"))
	require.Empty(t, findPaths(t, dir, "line=tw"))
	require.Equal(t, []string{"g.md"}, findPaths(t, dir, "linenum>3"))
	require.Empty(t, findPaths(t, dir, "linenum>10"))
}

func TestFindBoolScopes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crlf.md", "a\r\nb\r\n")
	writeFile(t, dir, "lf.md", "a\nb\n")
	writeFile(t, dir, "img.md", "![alt](img.png)\n")

	require.Equal(t, []string{"crlf.md"}, findPaths(t, dir, "crlf=true"))
	require.ElementsMatch(t, []string{"img.md", "lf.md"}, findPaths(t, dir, "crlf=false"))
	require.Equal(t, []string{"img.md"}, findPaths(t, dir, "hasimage=true"))
}

func TestFindInputErrors(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	_, err = f.Find(context.Background(), "", t.TempDir(), nil)
	require.EqualError(t, err, "query is must")

	_, err = f.Find(context.Background(), "abc", "", nil)
	require.EqualError(t, err, "dir is must")

	_, err = f.FindQuery(context.Background(), nil, t.TempDir(), nil)
	require.EqualError(t, err, "query is must")
}

func TestFindByQuery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "hello\n")

	f, err := New()
	require.NoError(t, err)
	ast, err := f.Parse("content:hello", false)
	require.NoError(t, err)

	recs, err := f.FindQuery(context.Background(), ast, dir, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "a.md", recs[0].Path)
	require.Equal(t, []byte("hello\n"), recs[0].Data)
	require.Equal(t, int64(6), recs[0].Stats.Size)
}

func TestStreamFindCancellation(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		writeFile(t, dir, name, "stop here\n")
	}

	f, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	err = f.StreamFind(ctx, "stop", dir, nil, SenderFunc(func(*FileRecord) {
		n++
		cancel()
	}))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, n)
}
