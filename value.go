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
	"strconv"
	"strings"

	"github.com/grafana/regexp"
)

// ValueKind tags the variants of Value.
type ValueKind uint8

const (
	KindString ValueKind = iota
	KindRegexp
	KindNumber
	KindBool
	KindTime
	KindStrings
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindRegexp:
		return "regexp"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindStrings:
		return "strings"
	}
	return "unknown"
}

// Value is the tagged union flowing through cast and query: a cast value is
// what a scope coerced the operand into, a query value is what it extracted
// from a file. Only the field matching Kind is meaningful.
type Value struct {
	Kind   ValueKind
	Str    string
	Re     *regexp.Regexp
	Num    float64
	Bool   bool
	TimeMs int64
	Strs   []string
}

func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

func RegexpValue(re *regexp.Regexp) Value { return Value{Kind: KindRegexp, Re: re} }

func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func TimeValue(ms int64) Value { return Value{Kind: KindTime, TimeMs: ms} }

func StringsValue(ss []string) Value { return Value{Kind: KindStrings, Strs: ss} }

func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindRegexp:
		return "/" + v.Re.String() + "/"
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindTime:
		return strconv.FormatInt(v.TimeMs, 10)
	case KindStrings:
		return "[" + strings.Join(v.Strs, ", ") + "]"
	}
	return fmt.Sprintf("value(kind=%d)", v.Kind)
}

// fold lowercases string content for case-insensitive evaluation.
func (v Value) fold() Value {
	switch v.Kind {
	case KindString:
		v.Str = strings.ToLower(v.Str)
	case KindStrings:
		if len(v.Strs) > 0 {
			folded := make([]string, len(v.Strs))
			for i, s := range v.Strs {
				folded[i] = strings.ToLower(s)
			}
			v.Strs = folded
		}
	}
	return v
}
