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

// Package markdown adapts goldmark's AST into the flat, markdown-it shaped
// token stream the qualifier layer queries: container blocks become
// `*_open`/`*_close` pairs, text-bearing blocks carry an `inline` token with
// the rendered text and its inline children.
package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Token is one element of the stream. Attrs holds key/value pairs such as a
// link href or an image src; Children is set on inline-bearing tokens.
type Token struct {
	Type     string
	Tag      string
	Content  string
	Info     string
	Attrs    [][2]string
	Children []*Token
}

// Mode selects which token stream a scope queries.
type Mode int

const (
	// ModeBlock is the full block-level stream with inline children.
	ModeBlock Mode = iota
	// ModeInline is the flattened stream of inline tokens only.
	ModeInline
)

// The task list extension is deliberately not enabled: task items must keep
// their literal `[x] ` prefix so TaskContent can classify them.
var md = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

// Tokenize parses src in the given mode. Results are memoized per mode with
// a single slot keyed by the input, so successive qualifier queries against
// the same file share one parse.
func Tokenize(mode Mode, src []byte) []*Token {
	if mode == ModeInline {
		return inlineCache.get(src, parseInline)
	}
	return blockCache.get(src, parseBlock)
}

func parseBlock(src []byte) []*Token {
	doc := md.Parser().Parse(text.NewReader(src))
	return blockTokens(doc, src)
}

// parseInline reduces the block stream to its inline tokens.
func parseInline(src []byte) []*Token {
	var out []*Token
	for _, t := range parseBlock(src) {
		if t.Type == "inline" {
			out = append(out, t.Children...)
		}
	}
	return out
}

func blockTokens(n ast.Node, src []byte) []*Token {
	var out []*Token
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, blockToken(c, src)...)
	}
	return out
}

func blockToken(n ast.Node, src []byte) []*Token {
	switch v := n.(type) {
	case *ast.Heading:
		tag := "h" + strconv.Itoa(v.Level)
		return wrap("heading", tag, inlineToken(v, src))
	case *ast.Paragraph:
		return wrap("paragraph", "p", inlineToken(v, src))
	case *ast.TextBlock:
		// Tight list items produce text blocks; treat them as paragraphs
		// so list and task scopes see one shape.
		return wrap("paragraph", "p", inlineToken(v, src))
	case *ast.Blockquote:
		return wrap("blockquote", "blockquote", blockTokens(v, src)...)
	case *ast.List:
		typ := "bullet_list"
		if v.IsOrdered() {
			typ = "ordered_list"
		}
		return wrap(typ, "", blockTokens(v, src)...)
	case *ast.ListItem:
		return wrap("list_item", "li", blockTokens(v, src)...)
	case *ast.FencedCodeBlock:
		return []*Token{{
			Type:    "fence",
			Tag:     "code",
			Info:    string(v.Language(src)),
			Content: rawLines(v, src),
		}}
	case *ast.CodeBlock:
		return []*Token{{Type: "code_block", Tag: "code", Content: rawLines(v, src)}}
	case *ast.HTMLBlock:
		content := rawLines(v, src)
		if v.HasClosure() {
			content += string(v.ClosureLine.Value(src))
		}
		return []*Token{{Type: "html_block", Content: content}}
	case *ast.ThematicBreak:
		return []*Token{{Type: "hr", Tag: "hr"}}
	case *east.Table:
		return tableTokens(v, src)
	}
	return blockTokens(n, src)
}

func wrap(typ, tag string, inner ...*Token) []*Token {
	out := make([]*Token, 0, len(inner)+2)
	out = append(out, &Token{Type: typ + "_open", Tag: tag})
	out = append(out, inner...)
	out = append(out, &Token{Type: typ + "_close", Tag: tag})
	return out
}

func tableTokens(t *east.Table, src []byte) []*Token {
	out := []*Token{{Type: "table_open", Tag: "table"}}
	var rows []*Token
	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		switch row := c.(type) {
		case *east.TableHeader:
			out = append(out, &Token{Type: "thead_open", Tag: "thead"})
			out = append(out, rowTokens(row, src, "th")...)
			out = append(out, &Token{Type: "thead_close", Tag: "thead"})
		case *east.TableRow:
			rows = append(rows, rowTokens(row, src, "td")...)
		}
	}
	if len(rows) > 0 {
		out = append(out, &Token{Type: "tbody_open", Tag: "tbody"})
		out = append(out, rows...)
		out = append(out, &Token{Type: "tbody_close", Tag: "tbody"})
	}
	out = append(out, &Token{Type: "table_close", Tag: "table"})
	return out
}

func rowTokens(row ast.Node, src []byte, cellTag string) []*Token {
	out := []*Token{{Type: "tr_open", Tag: "tr"}}
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, wrap(cellTag, cellTag, inlineToken(c, src))...)
	}
	out = append(out, &Token{Type: "tr_close", Tag: "tr"})
	return out
}

// inlineToken renders a text-bearing block into one `inline` token whose
// Content is the plain text and whose Children are the inline tokens.
func inlineToken(n ast.Node, src []byte) *Token {
	return &Token{
		Type:     "inline",
		Content:  plainText(n, src),
		Children: inlineTokens(n, src),
	}
}

// inlineTokens emits the structured inline tokens only; plain text is
// already carried by the enclosing token's Content, so emitting it again
// would double every string a counting filter collects.
func inlineTokens(n ast.Node, src []byte) []*Token {
	var out []*Token
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text, *ast.String:
			// covered by the parent's Content
		case *ast.CodeSpan:
			out = append(out, &Token{Type: "code_inline", Tag: "code", Content: plainText(v, src)})
		case *ast.Emphasis:
			typ, tag := "em", "em"
			if v.Level == 2 {
				typ, tag = "strong", "strong"
			}
			out = append(out, &Token{Type: typ, Tag: tag, Content: plainText(v, src), Children: inlineTokens(v, src)})
		case *east.Strikethrough:
			out = append(out, &Token{Type: "del", Tag: "s", Content: plainText(v, src), Children: inlineTokens(v, src)})
		case *ast.Link:
			out = append(out, &Token{
				Type:     "link",
				Tag:      "a",
				Attrs:    [][2]string{{"href", string(v.Destination)}},
				Content:  plainText(v, src),
				Children: inlineTokens(v, src),
			})
		case *ast.AutoLink:
			out = append(out, &Token{
				Type:    "link",
				Tag:     "a",
				Attrs:   [][2]string{{"href", string(v.URL(src))}},
				Content: string(v.Label(src)),
			})
		case *ast.Image:
			out = append(out, &Token{
				Type:    "image",
				Tag:     "img",
				Attrs:   [][2]string{{"src", string(v.Destination)}, {"alt", plainText(v, src)}},
				Content: plainText(v, src),
			})
		case *ast.RawHTML:
			out = append(out, &Token{Type: "html_inline", Content: segmentsText(v.Segments, src)})
		default:
			out = append(out, inlineTokens(c, src)...)
		}
	}
	return out
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch v := c.(type) {
			case *ast.Text:
				b.Write(v.Segment.Value(src))
				if v.SoftLineBreak() || v.HardLineBreak() {
					b.WriteByte('\n')
				}
			case *ast.String:
				b.Write(v.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func rawLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		b.Write(lines.At(i).Value(src))
	}
	return b.String()
}

func segmentsText(segments *text.Segments, src []byte) string {
	var b strings.Builder
	for i := 0; i < segments.Len(); i++ {
		b.Write(segments.At(i).Value(src))
	}
	return b.String()
}
