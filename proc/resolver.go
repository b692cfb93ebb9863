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

package proc

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yannick-c/expander/tagging"
)

// replacement pairs a contraction span with its original surface words
// and the tokenized candidate expansions found in the dictionary.
type replacement struct {
	span       []int
	surface    []string
	candidates [][]string
}

// extractReplacements resolves each span against the contraction
// dictionary. The span's surface words joined without separator form
// the lookup key ("She" + "'s" -> "She's"). Unknown contractions are
// reported and left alone.
func (e *Expander) extractReplacements(sent tagging.Sentence, spans [][]int) []replacement {
	ans := make([]replacement, 0, len(spans))
	for _, span := range spans {
		surface := make([]string, len(span))
		for i, idx := range span {
			surface[i] = sent[idx].Word
		}
		key := strings.Join(surface, "")
		cands, ok := e.contractions.Lookup(key)
		if !ok {
			log.Warn().
				Str("surface", key).
				Msg("unknown contraction, leaving unchanged")
			continue
		}
		tokenized := make([][]string, len(cands))
		for i, cand := range cands {
			tokenized[i] = splitPhrase(cand)
		}
		ans = append(ans, replacement{span: span, surface: surface, candidates: tokenized})
	}
	return ans
}
