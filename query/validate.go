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

package query

import "fmt"

// follow lists, per token type, the token types that must not come
// immediately after it.
var follow = map[TokenType][]TokenType{
	TokenOr:        {TokenOr, TokenAnd, TokenParenClose},
	TokenAnd:       {TokenOr, TokenAnd, TokenParenClose},
	TokenNot:       {TokenOr, TokenAnd, TokenNot, TokenParenClose},
	TokenParenOpen: {TokenOr, TokenAnd, TokenParenClose},
	TokenQualifier: {TokenOr, TokenAnd, TokenNot, TokenParenClose, TokenQualifier},
}

var (
	badFirst = map[TokenType]bool{
		TokenOr: true, TokenAnd: true, TokenParenClose: true,
	}
	badLast = map[TokenType]bool{
		TokenOr: true, TokenAnd: true, TokenNot: true,
		TokenParenOpen: true, TokenQualifier: true,
	}
)

// Validate rejects token streams the parser cannot build a query from:
// operators in head or tail position, forbidden adjacent pairs and
// unbalanced parentheses.
func Validate(tokens []Token) error {
	if len(tokens) == 0 {
		return fmt.Errorf("Parse error. Empty tokens")
	}
	if badFirst[tokens[0].Type] {
		return fmt.Errorf("Invalid first token:「%s」", tokens[0].Type)
	}
	if last := tokens[len(tokens)-1]; badLast[last.Type] {
		return fmt.Errorf("Invalid last token:「%s」", last.Type)
	}

	depth := 0
	for i, tok := range tokens {
		switch tok.Type {
		case TokenParenOpen:
			depth++
		case TokenParenClose:
			depth--
			if depth < 0 {
				return fmt.Errorf("Unmatched「%s」", TokenParenClose)
			}
		}
		if i+1 < len(tokens) {
			for _, bad := range follow[tok.Type] {
				if tokens[i+1].Type == bad {
					return fmt.Errorf("Invalid token:「%s」after「%s」", tokens[i+1].Type, tok.Type)
				}
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("Unmatched「%s」", TokenParenOpen)
	}
	return nil
}
