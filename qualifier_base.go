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
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/grafana/regexp"

	"github.com/mdfind/mdfind/query"
)

var (
	hanRe   = regexp.MustCompile(`\p{Han}`)
	imageRe = regexp.MustCompile(`!\[.*?\]\(.*\)|<img.*?src=".*?"`)
)

// validateStringOrRegexp is the default validator: substring, equality and
// inequality operators, with regex operands restricted to `:`.
func validateStringOrRegexp(scope, operator, operand string, kind query.TokenType) error {
	if kind == query.TokenRegexp {
		if operator != ":" {
			return fmt.Errorf("Operator「%s」does not accept a regexp operand", operator)
		}
		if _, err := regexp.Compile(operand); err != nil {
			return fmt.Errorf("Invalid regexp「%s」: %v", operand, err)
		}
		return nil
	}
	switch operator {
	case ":", "=", "!=":
		return nil
	}
	return fmt.Errorf("Unsupported operator「%s」", operator)
}

func castStringOrRegexp(operand string, kind query.TokenType) (Value, error) {
	if kind == query.TokenRegexp {
		re, err := regexp.Compile(operand)
		if err != nil {
			return Value{}, fmt.Errorf("Invalid regexp「%s」: %v", operand, err)
		}
		return RegexpValue(re), nil
	}
	return StringValue(operand), nil
}

// validateComparable rejects the substring operator and regex operands for
// ordered scopes, then hands the operand to the scope's own check.
func validateComparable(check func(operand string) error) ValidateFunc {
	return func(scope, operator, operand string, kind query.TokenType) error {
		if kind == query.TokenRegexp {
			return fmt.Errorf("Operand must not be a regexp")
		}
		if operator == ":" {
			return fmt.Errorf("Operator「:」is not comparable")
		}
		return check(operand)
	}
}

func validateBool(scope, operator, operand string, kind query.TokenType) error {
	if kind == query.TokenRegexp {
		return fmt.Errorf("Operand must not be a regexp")
	}
	if operator != "=" && operator != "!=" {
		return fmt.Errorf("Unsupported operator「%s」", operator)
	}
	if operand != "true" && operand != "false" {
		return fmt.Errorf("Operand must be true or false")
	}
	return nil
}

func castBool(operand string, kind query.TokenType) (Value, error) {
	return BoolValue(operand == "true"), nil
}

const sizeUnits = "mb|gb|kb|k|m|g"

var sizeRe = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)(kb|mb|gb|k|m|g)$`)

func checkSize(operand string) error {
	if !sizeRe.MatchString(operand) {
		return fmt.Errorf("Operand must be a number followed by a unit: %s", sizeUnits)
	}
	return nil
}

// castSize converts `10kb` style operands to bytes; units are binary powers
// of 1024.
func castSize(operand string, kind query.TokenType) (Value, error) {
	m := sizeRe.FindStringSubmatch(operand)
	if m == nil {
		return Value{}, fmt.Errorf("Operand must be a number followed by a unit: %s", sizeUnits)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Value{}, err
	}
	switch strings.ToLower(m[2]) {
	case "k", "kb":
		n *= 1 << 10
	case "m", "mb":
		n *= 1 << 20
	case "g", "gb":
		n *= 1 << 30
	}
	return NumberValue(n), nil
}

func checkNumber(operand string) error {
	if _, err := strconv.ParseFloat(operand, 64); err != nil {
		return fmt.Errorf("Operand must be a number")
	}
	return nil
}

func castNumber(operand string, kind query.TokenType) (Value, error) {
	n, err := strconv.ParseFloat(operand, 64)
	if err != nil {
		return Value{}, fmt.Errorf("Operand must be a number")
	}
	return NumberValue(n), nil
}

var dateLayouts = []string{
	"2006-01-02", "2006-1-2",
	"2006/01/02", "2006/1/2",
	"2006.01.02", "2006.1.2",
	"20060102",
}

func parseDate(operand string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, operand, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("Operand must be a calendar date, e.g. 2024-03-12")
}

func checkDate(operand string) error {
	_, err := parseDate(operand)
	return err
}

// castDate compares dates as epoch milliseconds of local midnight.
func castDate(operand string, kind query.TokenType) (Value, error) {
	t, err := parseDate(operand)
	if err != nil {
		return Value{}, err
	}
	return TimeValue(midnightMs(t)), nil
}

func midnightMs(t time.Time) int64 {
	local := t.In(time.Local)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return midnight.UnixMilli()
}

func baseQualifiers() []*Qualifier {
	return []*Qualifier{
		{
			Scope: "default",
			Name:  "content and path",
			Query: func(rec *FileRecord) (Value, error) {
				return StringValue(string(rec.Data) + "\n" + rec.Path), nil
			},
		},
		{
			Scope: "path",
			Name:  "file path",
			Meta:  true,
			Query: func(rec *FileRecord) (Value, error) {
				return StringValue(rec.Path), nil
			},
		},
		{
			Scope: "file",
			Name:  "file name",
			Meta:  true,
			Query: func(rec *FileRecord) (Value, error) {
				return StringValue(rec.File), nil
			},
		},
		{
			Scope: "ext",
			Name:  "file extension",
			Meta:  true,
			Query: func(rec *FileRecord) (Value, error) {
				return StringValue(filepath.Ext(rec.File)), nil
			},
		},
		{
			Scope: "content",
			Name:  "file content",
			Query: func(rec *FileRecord) (Value, error) {
				return StringValue(string(rec.Data)), nil
			},
		},
		{
			Scope:    "time",
			Name:     "modification date",
			Meta:     true,
			Validate: validateComparable(checkDate),
			Cast:     castDate,
			Query: func(rec *FileRecord) (Value, error) {
				return TimeValue(midnightMs(rec.Stats.ModTime)), nil
			},
		},
		{
			Scope:    "size",
			Name:     "file size",
			Meta:     true,
			Validate: validateComparable(checkSize),
			Cast:     castSize,
			Query: func(rec *FileRecord) (Value, error) {
				return NumberValue(float64(rec.Stats.Size)), nil
			},
		},
		{
			Scope:    "linenum",
			Name:     "line count",
			Validate: validateComparable(checkNumber),
			Cast:     castNumber,
			Query: func(rec *FileRecord) (Value, error) {
				return NumberValue(float64(len(strings.Split(string(rec.Data), "\n")))), nil
			},
		},
		{
			Scope:    "charnum",
			Name:     "character count",
			Validate: validateComparable(checkNumber),
			Cast:     castNumber,
			Query: func(rec *FileRecord) (Value, error) {
				return NumberValue(float64(utf8.RuneCount(rec.Data))), nil
			},
		},
		{
			Scope:    "chinesenum",
			Name:     "chinese character count",
			Validate: validateComparable(checkNumber),
			Cast:     castNumber,
			Query: func(rec *FileRecord) (Value, error) {
				return NumberValue(float64(len(hanRe.FindAll(rec.Data, -1)))), nil
			},
		},
		{
			Scope:    "crlf",
			Name:     "uses CRLF line endings",
			Validate: validateBool,
			Cast:     castBool,
			Query: func(rec *FileRecord) (Value, error) {
				return BoolValue(bytes.Contains(rec.Data, []byte("\r\n"))), nil
			},
		},
		{
			Scope:    "hasimage",
			Name:     "contains an image",
			Validate: validateBool,
			Cast:     castBool,
			Query: func(rec *FileRecord) (Value, error) {
				return BoolValue(imageRe.Match(rec.Data)), nil
			},
		},
		{
			Scope:    "haschinese",
			Name:     "contains chinese text",
			Validate: validateBool,
			Cast:     castBool,
			Query: func(rec *FileRecord) (Value, error) {
				return BoolValue(hanRe.Match(rec.Data)), nil
			},
		},
		{
			Scope: "line",
			Name:  "single line",
			Query: func(rec *FileRecord) (Value, error) {
				lines := strings.Split(string(rec.Data), "\n")
				for i, l := range lines {
					lines[i] = strings.TrimSpace(l)
				}
				return StringsValue(lines), nil
			},
		},
	}
}
