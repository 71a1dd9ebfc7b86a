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

	"github.com/mdfind/mdfind/query"
)

// matchCompare is the primitive keyword/phrase comparator. It dispatches on
// the query value's kind; the scope validators guarantee the operator is
// legal for that kind before any file work starts.
func matchCompare(scope, operator string, cast, got Value) (bool, error) {
	switch got.Kind {
	case KindString:
		return compareString(operator, cast.Str, got.Str)
	case KindStrings:
		return compareStrings(operator, cast.Str, got.Strs)
	case KindNumber:
		return compareOrdered(operator, cast.Num, got.Num)
	case KindTime:
		return compareOrdered(operator, float64(cast.TimeMs), float64(got.TimeMs))
	case KindBool:
		switch operator {
		case "=":
			return cast.Bool == got.Bool, nil
		case "!=":
			return cast.Bool != got.Bool, nil
		}
		return false, fmt.Errorf("In %s: unsupported operator「%s」", strings.ToUpper(scope), operator)
	}
	return false, fmt.Errorf("In %s: cannot compare %s value", strings.ToUpper(scope), got.Kind)
}

func compareString(operator, want, got string) (bool, error) {
	switch operator {
	case ":":
		return strings.Contains(got, want), nil
	case "=":
		return got == want, nil
	case "!=":
		return got != want, nil
	}
	return false, fmt.Errorf("unsupported string operator「%s」", operator)
}

// compareStrings applies string comparison across an extracted array:
// `:` and `=` match if any element does, `!=` requires a non-empty array
// with no equal element. An empty extraction never matches.
func compareStrings(operator, want string, got []string) (bool, error) {
	if len(got) == 0 {
		return false, nil
	}
	if operator == "!=" {
		for _, s := range got {
			if s == want {
				return false, nil
			}
		}
		return true, nil
	}
	for _, s := range got {
		ok, err := compareString(operator, want, s)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func compareOrdered(operator string, want, got float64) (bool, error) {
	switch operator {
	case "=":
		return got == want, nil
	case "!=":
		return got != want, nil
	case ">":
		return got > want, nil
	case ">=":
		return got >= want, nil
	case "<":
		return got < want, nil
	case "<=":
		return got <= want, nil
	}
	return false, fmt.Errorf("unsupported comparison operator「%s」", operator)
}

// matchRegexp tests a compiled operand against a string or string-array
// query value.
func matchRegexp(scope, operator string, cast, got Value) (bool, error) {
	if cast.Re == nil {
		return false, fmt.Errorf("In %s: regexp operand was not cast", strings.ToUpper(scope))
	}
	switch got.Kind {
	case KindString:
		return cast.Re.MatchString(got.Str), nil
	case KindStrings:
		for _, s := range got.Strs {
			if cast.Re.MatchString(s) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("In %s: regexp cannot match %s value", strings.ToUpper(scope), got.Kind)
}

// matcherFor selects the comparator for a literal kind.
func (q *Qualifier) matcherFor(kind query.TokenType) MatchFunc {
	switch kind {
	case query.TokenPhrase:
		return q.MatchPhrase
	case query.TokenRegexp:
		return q.MatchRegexp
	default:
		return q.MatchKeyword
	}
}
