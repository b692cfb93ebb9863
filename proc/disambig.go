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
	"github.com/yannick-c/expander/tagging"
)

// disambiguate selects a single expansion for a span with multiple
// dictionary candidates, or nil when the contraction should stay in its
// original surface form. A wrong expansion (wrong tense or modal) is
// worse than none, so every undecidable fork resolves to "no change":
// unknown context, missing trailing tags, a tie at the maximum count,
// or argmax being disabled.
func (e *Expander) disambiguate(sent tagging.Sentence, rpl replacement) []string {
	if e.disamb == nil {
		return nil
	}
	last := rpl.span[len(rpl.span)-1]
	numTags := e.disamb.TrailingTags()
	if last+numTags >= len(sent) {
		// not enough trailing context to form a table key
		return nil
	}
	span := make([]tagging.Token, len(rpl.span))
	for i, idx := range rpl.span {
		span[i] = sent[idx]
		span[i].Tag = e.tagMods.Mod(span[i].Tag)
	}
	// the table is built from lowercase corpus data, so sentence-initial
	// capitalization is stripped for the lookup and restored afterwards
	capitalized := false
	if rpl.span[0] == 0 && span[0].Word != e.entityTag && startsUpper(span[0].Word) {
		capitalized = true
		span[0].Word = lowerFirst(span[0].Word)
	}
	trailing := make([]string, numTags)
	for i := 0; i < numTags; i++ {
		trailing[i] = e.tagMods.Mod(sent[last+1+i].Tag)
	}
	counts, ok := e.disamb.Find(span, trailing)
	if !ok {
		return nil
	}
	phrase := pickExpansion(counts, e.useArgmax)
	if phrase == "" {
		return nil
	}
	words := splitPhrase(phrase)
	if capitalized && len(words) > 0 {
		words[0] = capitalize(words[0])
	}
	return words
}

// pickExpansion applies the tie-break policy: a single candidate wins
// outright; otherwise the strictly highest corpus count wins; a tie for
// the maximum (or argmax being disabled) yields no winner.
func pickExpansion(counts map[string]int, useArgmax bool) string {
	if len(counts) == 1 {
		for phrase := range counts {
			return phrase
		}
	}
	if !useArgmax {
		return ""
	}
	var best string
	maxCnt := -1
	numAtMax := 0
	for phrase, cnt := range counts {
		if cnt > maxCnt {
			maxCnt = cnt
			best = phrase
			numAtMax = 1

		} else if cnt == maxCnt {
			numAtMax++
		}
	}
	if numAtMax != 1 {
		return ""
	}
	return best
}
