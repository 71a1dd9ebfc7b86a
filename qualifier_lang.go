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
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/mdfind/mdfind/markdown"
)

// langQualifier is `blockcodelang` with fence info strings canonicalized
// through enry's language aliases, so `codelang:python` also hits ```py
// fences. Unknown aliases fall back to the raw info string.
func langQualifier() *Qualifier {
	return &Qualifier{
		Scope: "codelang",
		Name:  "canonical code fence language",
		Query: func(rec *FileRecord) (Value, error) {
			toks := markdown.Tokenize(markdown.ModeBlock, rec.Data)
			infos := markdown.Collect(toks, markdown.Is("fence"), markdown.Info)
			langs := make([]string, 0, len(infos))
			for _, info := range infos {
				if lang, ok := enry.GetLanguageByAlias(info); ok {
					langs = append(langs, strings.ToLower(lang))
				} else {
					langs = append(langs, info)
				}
			}
			return StringsValue(langs), nil
		},
	}
}
