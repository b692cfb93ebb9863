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

package builder

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yannick-c/expander/dict"
)

// pattern is one contractible word window: an ambiguous expansion
// phrase together with the token sequence the contraction splits into
// ("she had" -> ["she", "'d"]).
type pattern struct {
	surface string
	phrase  []string
	parts   []string
}

// splitContraction cuts a contraction surface into the tokens a
// tokenizer would produce: each apostrophe opens a new clitic, except
// that a negation keeps its 'n' ("wo" + "n't", "could" + "n't" + "'ve").
func splitContraction(surface string) []string {
	var parts []string
	rest := surface
	for {
		idx := strings.LastIndex(rest, "'")
		if idx <= 0 {
			break
		}
		if strings.HasSuffix(rest, "n't") {
			idx = len(rest) - 3
		}
		parts = append([]string{rest[idx:]}, parts...)
		rest = rest[:idx]
	}
	return append([]string{rest}, parts...)
}

// compilePatterns derives the contractible windows from the ambiguous
// part of a contraction dictionary. Longer phrases come first so that
// at any sentence position the widest window wins.
func compilePatterns(contractions *dict.Contractions) []pattern {
	var ans []pattern
	contractions.ForEachAmbiguous(func(surface string, candidates []string) bool {
		parts := splitContraction(surface)
		for _, cand := range candidates {
			phrase := strings.Fields(cand)
			if len(phrase) != len(parts) {
				log.Warn().
					Str("surface", surface).
					Str("expansion", cand).
					Msg("contraction does not line up with its expansion, skipping")
				continue
			}
			ans = append(ans, pattern{surface: surface, phrase: phrase, parts: parts})
		}
		return true
	})
	sort.SliceStable(ans, func(i, j int) bool {
		return len(ans[i].phrase) > len(ans[j].phrase)
	})
	return ans
}

// matchesAt reports whether the sentence window starting at idx spells
// this pattern's expansion phrase. Comparison ignores case, the corpus
// side decides the final capitalization.
func (p pattern) matchesAt(words []string, idx int) bool {
	if idx+len(p.phrase) > len(words) {
		return false
	}
	for i, w := range p.phrase {
		if strings.ToLower(words[idx+i]) != w {
			return false
		}
	}
	return true
}
