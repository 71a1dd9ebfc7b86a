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

// Command mdfind searches a directory tree of Markdown files with a compact
// query language, e.g.
//
//	mdfind search -dir ~/notes 'size>10kb | content:todo'
//	mdfind search 'blockcodelang:python -task:deprecated'
//	mdfind grammar
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/peterbourgon/ff/v3/ffcli"
	sglog "github.com/sourcegraph/log"

	"github.com/mdfind/mdfind"
	"github.com/mdfind/mdfind/ignore"
)

func searchCmd(logger sglog.Logger) *ffcli.Command {
	fs := flag.NewFlagSet("mdfind search", flag.ExitOnError)
	dir := fs.String("dir", ".", "directory tree to search")
	caseSensitive := fs.Bool("case", false, "match case sensitively")
	verbose := fs.Bool("v", false, "print size and modification time per match")
	maxFileSize := fs.String("max-file-size", "", "skip files of this size or larger, e.g. 10MiB")
	exclude := fs.String("exclude", "", "comma separated doublestar patterns to skip")
	noIgnore := fs.Bool("no-ignore", false, "do not consult "+ignore.IgnoreFile)

	return &ffcli.Command{
		Name:       "search",
		ShortUsage: "mdfind search [flags] QUERY",
		ShortHelp:  "Stream files matching QUERY",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return flag.ErrHelp
			}
			q := strings.Join(args, " ")

			opts := &mdfind.FindOptions{CaseSensitive: *caseSensitive}
			opts.Walk.Logger = logger
			if *maxFileSize != "" {
				n, err := humanize.ParseBytes(*maxFileSize)
				if err != nil {
					return fmt.Errorf("invalid -max-file-size: %w", err)
				}
				opts.Walk.MaxFileSize = int64(n)
			}
			if *exclude != "" {
				opts.Walk.ExcludePatterns = strings.Split(*exclude, ",")
			}
			if !*noIgnore {
				if f, err := os.Open(filepath.Join(*dir, ignore.IgnoreFile)); err == nil {
					m, err := ignore.ParseIgnoreFile(f)
					f.Close()
					if err != nil {
						return fmt.Errorf("parsing %s: %w", ignore.IgnoreFile, err)
					}
					opts.Walk.Ignore = m
				}
			}

			finder, err := mdfind.New()
			if err != nil {
				return err
			}

			n := 0
			err = finder.StreamFind(ctx, q, *dir, opts, mdfind.SenderFunc(func(rec *mdfind.FileRecord) {
				n++
				if *verbose {
					fmt.Printf("%s\t%s\t%s\n", rec.Path,
						humanize.Bytes(uint64(rec.Stats.Size)),
						rec.Stats.ModTime.Format("2006-01-02 15:04"))
					return
				}
				fmt.Println(rec.Path)
			}))
			if err != nil {
				return err
			}
			logger.Debug("search done", sglog.String("query", q), sglog.Int("matches", n))
			return nil
		},
	}
}

func grammarCmd() *ffcli.Command {
	return &ffcli.Command{
		Name:       "grammar",
		ShortUsage: "mdfind grammar",
		ShortHelp:  "Print the query grammar in BNF",
		Exec: func(ctx context.Context, args []string) error {
			finder, err := mdfind.New()
			if err != nil {
				return err
			}
			fmt.Print(finder.Grammar())
			return nil
		},
	}
}

func scopesCmd() *ffcli.Command {
	return &ffcli.Command{
		Name:       "scopes",
		ShortUsage: "mdfind scopes",
		ShortHelp:  "List the registered qualifier scopes",
		Exec: func(ctx context.Context, args []string) error {
			finder, err := mdfind.New()
			if err != nil {
				return err
			}
			for _, q := range finder.Qualifiers() {
				kind := "content"
				if q.Meta {
					kind = "meta"
				}
				fmt.Printf("%-16s%-8s%s\n", q.Scope, kind, q.Name)
			}
			return nil
		},
	}
}

func main() {
	liblog := sglog.Init(sglog.Resource{Name: "mdfind"})
	defer liblog.Sync()
	logger := sglog.Scoped("mdfind", "markdown search")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := &ffcli.Command{
		ShortUsage: "mdfind <subcommand> [flags]",
		Subcommands: []*ffcli.Command{
			searchCmd(logger),
			grammarCmd(),
			scopesCmd(),
		},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}

	if err := root.ParseAndRun(ctx, os.Args[1:]); err != nil && err != flag.ErrHelp {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
