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

import (
	"sort"
	"strings"

	"github.com/grafana/regexp"
)

// TokenType names follow the wire names used in error messages, so a bad
// token reads as e.g. 「PAREN_OPEN」.
type TokenType string

const (
	TokenAnd        TokenType = "AND"
	TokenOr         TokenType = "OR"
	TokenNot        TokenType = "NOT"
	TokenParenOpen  TokenType = "PAREN_OPEN"
	TokenParenClose TokenType = "PAREN_CLOSE"
	TokenPhrase     TokenType = "PHRASE"
	TokenRegexp     TokenType = "REGEXP"
	TokenKeyword    TokenType = "KEYWORD"
	TokenQualifier  TokenType = "QUALIFIER"
)

// Token is one element of the flat token stream fed to the validator and
// parser. Scope and Operator are set for TokenQualifier only; every other
// type carries the matched text in Operand.
type Token struct {
	Type     TokenType
	Operand  string
	Scope    string
	Operator string
}

func (t *Token) String() string {
	if t.Type == TokenQualifier {
		return string(t.Type) + ":" + t.Scope + t.Operator
	}
	return string(t.Type) + ":" + t.Operand
}

// Tokenizer splits a query string into tokens using one alternation regex
// derived from the registered scopes and operators. It must be rebuilt
// whenever either set changes.
type Tokenizer struct {
	re *regexp.Regexp
}

// Alternation branches, in priority order. Go's regexp engine picks the
// first branch that matches at a position, so longer qualifier literals must
// sort before their prefixes (`blockcodeline` before `blockcode`, `>=`
// before `>`). The REGEXP branch consumes escaped characters pairwise
// instead of relying on lookbehind, which RE2 does not have.
const (
	reAnd        = `(?P<and>(?:\s|\bAND\b)+)`
	reNot        = `(?P<not>-)`
	rePhrase     = `(?P<phrase>"[^"]*")`
	reParenOpen  = `(?P<popen>\()`
	reParenClose = `(?P<pclose>\))`
	reOr         = `(?P<or>\||\bOR\b)`
	reRegexp     = `(?P<regexp>/(?:\\.|[^\\/])*/)`
	reKeyword    = `(?P<keyword>[^\s"()|]+)`
)

// NewTokenizer compiles the token regex for the given scope and operator
// literals.
func NewTokenizer(scopes, operators []string) *Tokenizer {
	pattern := `(?i)` + reAnd +
		`|` + reNot +
		`|` + rePhrase +
		`|` + reParenOpen +
		`|` + reParenClose +
		`|` + reOr +
		`|(?P<scope>` + alternation(scopes) + `)(?P<operator>` + alternation(operators) + `)` +
		`|` + reRegexp +
		`|` + reKeyword
	return &Tokenizer{re: regexp.MustCompile(pattern)}
}

// alternation quotes the literals and joins them longest-first.
func alternation(literals []string) string {
	quoted := make([]string, 0, len(literals))
	for _, l := range literals {
		quoted = append(quoted, regexp.QuoteMeta(l))
	}
	sort.Slice(quoted, func(i, j int) bool {
		if len(quoted[i]) != len(quoted[j]) {
			return len(quoted[i]) > len(quoted[j])
		}
		return quoted[i] < quoted[j]
	})
	return strings.Join(quoted, "|")
}

// Tokenize scans q and returns the token stream with grammatically redundant
// AND tokens removed, so `a AND OR b` and whitespace around operators parse
// the same as `a | b`.
func (t *Tokenizer) Tokenize(q string) []Token {
	names := t.re.SubexpNames()
	var raw []Token
	for _, m := range t.re.FindAllStringSubmatchIndex(q, -1) {
		tok, ok := t.tokenAt(q, names, m)
		if ok {
			raw = append(raw, tok)
		}
	}
	return dropRedundantAnd(raw)
}

func (t *Tokenizer) tokenAt(q string, names []string, m []int) (Token, bool) {
	group := func(name string) (string, bool) {
		for i, n := range names {
			if n == name && m[2*i] >= 0 {
				return q[m[2*i]:m[2*i+1]], true
			}
		}
		return "", false
	}

	if s, ok := group("and"); ok {
		return Token{Type: TokenAnd, Operand: s}, true
	}
	if s, ok := group("not"); ok {
		return Token{Type: TokenNot, Operand: s}, true
	}
	if s, ok := group("phrase"); ok {
		return Token{Type: TokenPhrase, Operand: s[1 : len(s)-1]}, true
	}
	if s, ok := group("popen"); ok {
		return Token{Type: TokenParenOpen, Operand: s}, true
	}
	if s, ok := group("pclose"); ok {
		return Token{Type: TokenParenClose, Operand: s}, true
	}
	if s, ok := group("or"); ok {
		return Token{Type: TokenOr, Operand: s}, true
	}
	if scope, ok := group("scope"); ok {
		// Scopes are recognised case-insensitively but stored folded, so
		// registry lookups work in case-sensitive mode too.
		op, _ := group("operator")
		return Token{Type: TokenQualifier, Scope: strings.ToLower(scope), Operator: op}, true
	}
	if s, ok := group("regexp"); ok {
		return Token{Type: TokenRegexp, Operand: s[1 : len(s)-1]}, true
	}
	if s, ok := group("keyword"); ok {
		return Token{Type: TokenKeyword, Operand: s}, true
	}
	return Token{}, false
}

// dropRedundantAnd removes AND tokens that carry no meaning: ones at either
// end of the stream, and ones adjacent to an operator or group boundary that
// already separates its neighbours.
func dropRedundantAnd(tokens []Token) []Token {
	redundantAfter := map[TokenType]bool{
		TokenOr: true, TokenAnd: true, TokenNot: true,
		TokenParenOpen: true, TokenQualifier: true,
	}
	redundantBefore := map[TokenType]bool{
		TokenOr: true, TokenAnd: true, TokenNot: true,
		TokenParenClose: true,
	}

	out := tokens[:0]
	for i, tok := range tokens {
		if tok.Type == TokenAnd {
			if i == 0 || i == len(tokens)-1 {
				continue
			}
			if redundantAfter[tokens[i-1].Type] || redundantBefore[tokens[i+1].Type] {
				continue
			}
		}
		out = append(out, tok)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
