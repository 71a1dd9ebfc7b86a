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
	"fmt"
	"testing"
)

func constLeaf(v bool) LeafFunc {
	return func(*Leaf) (bool, error) { return v, nil }
}

func TestEvaluate(t *testing.T) {
	type testcase struct {
		in   string
		leaf map[string]bool
		want bool
	}

	for _, c := range []testcase{
		{"a", map[string]bool{"a": true}, true},
		{"a", map[string]bool{"a": false}, false},
		{"-a", map[string]bool{"a": true}, false},
		{"-a", map[string]bool{"a": false}, true},
		{"a b", map[string]bool{"a": true, "b": true}, true},
		{"a b", map[string]bool{"a": true, "b": false}, false},
		{"a | b", map[string]bool{"a": false, "b": true}, true},
		{"a | b", map[string]bool{"a": false, "b": false}, false},
		{"a -b", map[string]bool{"a": true, "b": false}, true},
		{"a -b", map[string]bool{"a": true, "b": true}, false},
		{"a -b", map[string]bool{"a": false, "b": false}, false},
		{"-(a | b)", map[string]bool{"a": false, "b": false}, true},
		{"-(a | b)", map[string]bool{"a": true, "b": false}, false},
	} {
		got, err := Evaluate(mustParse(t, c.in), func(l *Leaf) (bool, error) {
			return c.leaf[l.Operand], nil
		})
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("Evaluate(%q) with %v: got %t, want %t", c.in, c.leaf, got, c.want)
		}
	}
}

// De Morgan: -(A | B) and -A -B agree for every assignment.
func TestEvaluateDeMorgan(t *testing.T) {
	lhs := mustParse(t, "-(a | b)")
	rhs := mustParse(t, "-a -b")
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			fn := func(l *Leaf) (bool, error) {
				if l.Operand == "a" {
					return a, nil
				}
				return b, nil
			}
			l, err := Evaluate(lhs, fn)
			if err != nil {
				t.Fatal(err)
			}
			r, err := Evaluate(rhs, fn)
			if err != nil {
				t.Fatal(err)
			}
			if l != r {
				t.Errorf("a=%t b=%t: -(a|b)=%t but -a -b=%t", a, b, l, r)
			}
		}
	}
}

func TestEvaluateShortCircuit(t *testing.T) {
	var visited []string
	record := func(v map[string]bool) LeafFunc {
		return func(l *Leaf) (bool, error) {
			visited = append(visited, l.Operand)
			return v[l.Operand], nil
		}
	}

	visited = nil
	if ok, _ := Evaluate(mustParse(t, "a | b"), record(map[string]bool{"a": true})); !ok {
		t.Fatal("want true")
	}
	if len(visited) != 1 {
		t.Errorf("or did not short-circuit: visited %v", visited)
	}

	visited = nil
	if ok, _ := Evaluate(mustParse(t, "a b"), record(map[string]bool{"a": false})); ok {
		t.Fatal("want false")
	}
	if len(visited) != 1 {
		t.Errorf("and did not short-circuit: visited %v", visited)
	}
}

func TestEvaluateError(t *testing.T) {
	wantErr := fmt.Errorf("query failed")
	_, err := Evaluate(mustParse(t, "a b"), func(*Leaf) (bool, error) {
		return false, wantErr
	})
	if err == nil {
		t.Fatal("want error")
	}
}

func TestEvaluateUnknownNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic on unknown node type")
		}
	}()
	_, _ = Evaluate(nil, constLeaf(true))
}
