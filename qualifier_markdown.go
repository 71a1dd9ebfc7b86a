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
	"github.com/mdfind/mdfind/markdown"
)

// mdScope builds a qualifier over the Markdown token stream. newFilter runs
// per file because counting filters carry walk state; all Markdown scopes
// extract string arrays and use the default array comparators.
func mdScope(scope, name string, mode markdown.Mode, newFilter func() markdown.Filter, tr markdown.Transform) *Qualifier {
	return &Qualifier{
		Scope: scope,
		Name:  name,
		Query: func(rec *FileRecord) (Value, error) {
			toks := markdown.Tokenize(mode, rec.Data)
			return StringsValue(markdown.Collect(toks, newFilter(), tr)), nil
		},
	}
}

func is(typ string) func() markdown.Filter {
	return func() markdown.Filter { return markdown.Is(typ) }
}

func wrappedBy(typ string) func() markdown.Filter {
	return func() markdown.Filter { return markdown.WrappedBy(typ) }
}

func wrappedByTag(typ, tag string) func() markdown.Filter {
	return func() markdown.Filter { return markdown.WrappedByTag(typ, tag) }
}

func wrappedByMulti(types ...string) func() markdown.Filter {
	return func() markdown.Filter { return markdown.WrappedByMulti(types...) }
}

// taskNesting isolates checkbox items: a task is a paragraph directly nested
// in a bullet list item, which keeps ordered-list items out.
var taskNesting = []string{"bullet_list", "list_item", "paragraph"}

func markdownQualifiers() []*Qualifier {
	block := markdown.ModeBlock
	inline := markdown.ModeInline

	qs := []*Qualifier{
		mdScope("blockcode", "code fence", block, is("fence"), markdown.InfoAndContent),
		mdScope("blockcodelang", "code fence language", block, is("fence"), markdown.Info),
		mdScope("blockcodebody", "code fence body", block, is("fence"), markdown.Content),
		mdScope("blockcodeline", "code fence line", block, is("fence"), markdown.ContentLine),
		mdScope("blockhtml", "html block", block, is("html_block"), markdown.Content),
		mdScope("blockquote", "quote block", block, wrappedBy("blockquote"), markdown.Content),
		mdScope("table", "table", block, wrappedBy("table"), markdown.Content),
		mdScope("thead", "table header", block, wrappedBy("thead"), markdown.Content),
		mdScope("tbody", "table body", block, wrappedBy("tbody"), markdown.Content),
		mdScope("ol", "ordered list", block, wrappedBy("ordered_list"), markdown.Content),
		mdScope("ul", "bullet list", block, wrappedBy("bullet_list"), markdown.Content),
		mdScope("task", "task item", block, wrappedByMulti(taskNesting...), markdown.TaskContent(0)),
		mdScope("taskdone", "completed task item", block, wrappedByMulti(taskNesting...), markdown.TaskContent(1)),
		mdScope("tasktodo", "incomplete task item", block, wrappedByMulti(taskNesting...), markdown.TaskContent(-1)),
		mdScope("head", "heading", block, wrappedBy("heading"), markdown.Content),
	}
	for _, h := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		qs = append(qs, mdScope(h, "heading "+h, block, wrappedByTag("heading", h), markdown.Content))
	}
	qs = append(qs,
		mdScope("highlight", "highlighted text", block, is("inline"), markdown.RegexpContent(`==([^=\n]+)==`)),
		mdScope("image", "image", inline, is("image"), markdown.AttrAndContent),
		mdScope("code", "inline code", inline, is("code_inline"), markdown.Content),
		mdScope("link", "link", inline, is("link"), markdown.AttrAndContent),
		mdScope("strong", "bold text", inline, is("strong"), markdown.Content),
		mdScope("em", "italic text", inline, is("em"), markdown.Content),
		mdScope("del", "strikethrough text", inline, is("del"), markdown.Content),
	)
	return qs
}
