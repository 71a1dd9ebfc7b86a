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

// Package mdfind locates Markdown files in a directory tree that satisfy a
// compact search query such as `size>10kb | content:abc`. The query language
// lives in the query subpackage; this package owns the qualifier registry,
// the directory walker and the streaming evaluator.
package mdfind

import "time"

// FileStats is the subset of file metadata the qualifiers consult.
type FileStats struct {
	Size    int64
	ModTime time.Time
}

// FileRecord is one candidate file as produced by the directory walker:
// its path relative to the search root (slash separated), its base name,
// stat data and full contents.
type FileRecord struct {
	Path  string
	File  string
	Stats FileStats
	Data  []byte
}

// Sender accepts matches as the evaluator confirms them.
type Sender interface {
	Send(*FileRecord)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(*FileRecord)

func (f SenderFunc) Send(r *FileRecord) { f(r) }
