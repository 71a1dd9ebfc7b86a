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
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	sglog "github.com/sourcegraph/log"

	"github.com/mdfind/mdfind/ignore"
)

// DefaultMaxFileSize caps the files the walker will read.
const DefaultMaxFileSize = 10 << 20

// defaultExtensions lists the file extensions (without dot) treated as
// Markdown-adjacent; the empty string keeps extensionless files.
var defaultExtensions = []string{
	"", "md", "markdown", "mdown", "mmd", "text", "txt", "rmarkdown",
	"mkd", "mdwn", "mdtxt", "rmd", "mdtext", "apib",
}

// WalkOptions configures the directory walker. The zero value applies the
// defaults; the filter chains extend them.
type WalkOptions struct {
	// MaxFileSize skips files of this size and larger; 0 means
	// DefaultMaxFileSize.
	MaxFileSize int64
	// Extensions replaces the default extension whitelist when non-nil.
	Extensions []string
	// ExcludePatterns are doublestar patterns matched against the
	// slash-separated path relative to the walk root.
	ExcludePatterns []string
	// Ignore prunes directories and skips files; nil applies
	// ignore.Default (dot-dirs, .git, node_modules).
	Ignore *ignore.Matcher
	// FileFilters and DirFilters veto entries the defaults kept.
	FileFilters []func(name string, stats FileStats) bool
	DirFilters  []func(name string) bool
	// Logger reports skipped files; nil is silent.
	Logger sglog.Logger
}

func (o *WalkOptions) maxFileSize() int64 {
	if o.MaxFileSize > 0 {
		return o.MaxFileSize
	}
	return DefaultMaxFileSize
}

func (o *WalkOptions) extensions() map[string]bool {
	exts := o.Extensions
	if exts == nil {
		exts = defaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}
	return set
}

// walkFiles feeds every candidate file under dir to fn, depth first in
// lexicographic order. The walk stops on the first error, including fn's,
// and checks ctx at every directory entry.
func walkFiles(ctx context.Context, dir string, opts *WalkOptions, fn func(*FileRecord) error) error {
	exts := opts.extensions()
	maxSize := opts.maxFileSize()
	matcher := opts.Ignore
	if matcher == nil {
		matcher = ignore.Default
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			metricWalkErrors.Inc()
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()

		if d.IsDir() {
			if path == dir {
				return nil
			}
			if matcher.MatchDir(name, rel) || vetoedDir(name, opts) {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if !exts[strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))] {
			return nil
		}
		if matcher.Match(rel) || excluded(rel, opts) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			metricWalkErrors.Inc()
			return err
		}
		if info.Size() >= maxSize {
			if opts.Logger != nil {
				opts.Logger.Debug("skipping large file",
					sglog.String("path", rel),
					sglog.Int64("size", info.Size()))
			}
			return nil
		}
		stats := FileStats{Size: info.Size(), ModTime: info.ModTime()}
		for _, keep := range opts.FileFilters {
			if !keep(name, stats) {
				return nil
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			metricWalkErrors.Inc()
			return err
		}
		return fn(&FileRecord{Path: rel, File: name, Stats: stats, Data: data})
	})
}

func vetoedDir(name string, opts *WalkOptions) bool {
	for _, keep := range opts.DirFilters {
		if !keep(name) {
			return true
		}
	}
	return false
}

func excluded(rel string, opts *WalkOptions) bool {
	for _, pattern := range opts.ExcludePatterns {
		if m, _ := doublestar.Match(pattern, rel); m {
			return true
		}
	}
	return false
}
