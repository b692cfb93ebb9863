// Copyright 2018 Yannick Couzinié
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dict

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

// defaultContractions is the built-in contraction dictionary (the usual
// English contraction list). An external resource file overrides it.
//
//go:embed data/contractions.json
var defaultContractions []byte

// Contractions maps a contraction's lowercase surface form (apostrophes
// included, e.g. "she's", "won't") to its candidate expansion phrases.
// Ambiguous contractions carry more than one phrase; their order is
// preserved from the resource file. The table is read-only after load.
type Contractions struct {
	data map[string][]string
}

// NewContractions validates raw dictionary data and wraps it into a
// lookup table. Keys with no candidate phrase or with empty phrases are
// rejected.
func NewContractions(data map[string][]string) (*Contractions, error) {
	for key, cands := range data {
		if key == "" {
			return nil, fmt.Errorf("contraction dictionary contains an empty key")
		}
		if len(cands) == 0 {
			return nil, fmt.Errorf("contraction %s has no expansion candidates", key)
		}
		for _, cand := range cands {
			if strings.TrimSpace(cand) == "" {
				return nil, fmt.Errorf("contraction %s has an empty expansion candidate", key)
			}
		}
	}
	return &Contractions{data: data}, nil
}

// LoadContractions reads a contraction dictionary from a JSON resource
// file. With an empty path the embedded default dictionary is used.
func LoadContractions(path string) (*Contractions, error) {
	rawData := defaultContractions
	if path != "" {
		var err error
		rawData, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load contractions: %w", err)
		}
	}
	var data map[string][]string
	if err := sonic.Unmarshal(rawData, &data); err != nil {
		return nil, fmt.Errorf("failed to parse contractions: %w", err)
	}
	return NewContractions(data)
}

// Size returns the number of known contractions.
func (c *Contractions) Size() int {
	return len(c.data)
}

// Lookup finds the candidate expansion phrases for a contraction
// surface string. An exact match is preferred. Otherwise the lowercased
// surface is tried and, if the original surface started with an
// upper-case letter, the first letter of each candidate phrase is
// capitalized to match it.
func (c *Contractions) Lookup(surface string) ([]string, bool) {
	if cands, ok := c.data[surface]; ok {
		return cands, true
	}
	cands, ok := c.data[strings.ToLower(surface)]
	if !ok {
		return nil, false
	}
	if !startsUpper(surface) {
		return cands, true
	}
	ans := make([]string, len(cands))
	for i, cand := range cands {
		ans[i] = capitalize(cand)
	}
	return ans, true
}

// ForEachAmbiguous calls fn for every contraction with more than one
// candidate phrase, in stable (sorted) key order. Iteration stops once
// fn returns false.
func (c *Contractions) ForEachAmbiguous(fn func(surface string, candidates []string) bool) {
	keys := make([]string, 0, len(c.data))
	for key, cands := range c.data {
		if len(cands) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !fn(key, c.data[key]) {
			return
		}
	}
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
