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

import "sync"

// parseCache memoizes one parse per mode. A single slot bounds memory to the
// last file seen; alternating inputs simply re-parse.
type parseCache struct {
	mu    sync.Mutex
	valid bool
	key   string
	toks  []*Token
}

func (c *parseCache) get(src []byte, parse func([]byte) []*Token) []*Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.key == string(src) {
		return c.toks
	}
	c.toks = parse(src)
	c.key = string(src)
	c.valid = true
	return c.toks
}

var (
	blockCache  parseCache
	inlineCache parseCache
)
