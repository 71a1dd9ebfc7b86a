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
	"fmt"
	"strings"
)

// Grammar returns a BNF description of the query language with the scope
// and operator catalogues interpolated from the registry.
func (f *Finder) Grammar() string {
	scopes := f.registry.Scopes()
	quoted := make([]string, len(scopes))
	for i, s := range scopes {
		quoted[i] = "'" + s + "'"
	}
	ops := f.registry.Operators()
	opAlts := make([]string, len(ops))
	for i, o := range ops {
		opAlts[i] = fmt.Sprintf("%q", o)
	}

	return fmt.Sprintf(`<query> ::= <expression>
<expression> ::= <term> ( <or> <term> )*
<term> ::= <factor> ( ( <and> | <not> ) <factor> )*
<factor> ::= <qualifier>? <match>
<match> ::= <keyword> | <phrase> | <regexp> | "(" <expression> ")"
<qualifier> ::= <scope> <operator>
<keyword> ::= [^\s"()|]+
<phrase> ::= '"' [^"]* '"'
<regexp> ::= "/" <pattern> "/"
<or> ::= "|" | "OR"
<and> ::= <whitespace> | "AND"
<not> ::= "-"
<operator> ::= %s
<scope> ::= %s
`, strings.Join(opAlts, " | "), strings.Join(quoted, " | "))
}
