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

package main

import (
	"context"
	"regexp"
	"strings"

	"github.com/yannick-c/expander/tagging"
)

var (
	reVBG = regexp.MustCompile(`ing$`)
	reVBD = regexp.MustCompile(`ed$`)
	reRB  = regexp.MustCompile(`ly$`)

	clitics = []string{"n't", "'ve", "'ll", "'re", "'d", "'s", "'m", "'t"}

	cliticTags = map[string]string{
		"n't": "RB",
		"'ve": "VB",
		"'ll": "MD",
		"'re": "VBP",
		"'d":  "MD",
		"'m":  "VBP",
	}

	pronouns = map[string]bool{
		"i": true, "you": true, "he": true, "she": true, "it": true,
		"we": true, "they": true, "who": true, "what": true,
		"that": true, "there": true, "here": true, "this": true,
	}

	lexicon = map[string]string{
		"a": "DT", "an": "DT", "the": "DT",
		"is": "VBZ", "are": "VBP", "am": "VBP", "was": "VBD", "were": "VBD",
		"be": "VB", "been": "VBN", "being": "VBG",
		"have": "VB", "has": "VBZ", "had": "VBD",
		"do": "VB", "does": "VBZ", "did": "VBD",
		"will": "MD", "would": "MD", "shall": "MD", "should": "MD",
		"can": "MD", "could": "MD", "may": "MD", "might": "MD", "must": "MD",
		"not": "RB", "no": "DT",
		"and": "CC", "or": "CC", "but": "CC",
		"of": "IN", "in": "IN", "on": "IN", "at": "IN", "to": "TO",
		"for": "IN", "with": "IN", "about": "IN",
	}
)

// heuristicTagger is a small rule-based fallback for the command line
// tool. Serious deployments should plug a real model through the
// library API instead.
type heuristicTagger struct{}

// splitToken peels contraction clitics off a raw token
// ("Who'd've" -> "Who", "'d", "'ve").
func splitToken(word string) []string {
	lower := strings.ToLower(word)
	for _, suf := range clitics {
		if strings.HasSuffix(lower, suf) && len(word) > len(suf) {
			head := word[:len(word)-len(suf)]
			return append(splitToken(head), word[len(word)-len(suf):])
		}
	}
	return []string{word}
}

func (ht heuristicTagger) tagOne(word, prev string) string {
	lower := strings.ToLower(word)
	if lower == "'s" || lower == "'t" {
		// a clitic on a pronoun is a verb, on anything else most
		// likely a possessive ending
		if pronouns[strings.ToLower(prev)] {
			return "VBZ"
		}
		return tagging.PossessiveTag
	}
	if tag, ok := cliticTags[lower]; ok {
		return tag
	}
	if pronouns[lower] {
		return "PRP"
	}
	if tag, ok := lexicon[lower]; ok {
		return tag
	}
	switch {
	case reVBG.MatchString(lower):
		return "VBG"
	case reVBD.MatchString(lower):
		return "VBD"
	case reRB.MatchString(lower):
		return "RB"
	default:
		return "NN"
	}
}

func (ht heuristicTagger) TagWords(ctx context.Context, words []string) (tagging.Sentence, error) {
	ans := make(tagging.Sentence, len(words))
	prev := ""
	for i, word := range words {
		ans[i] = tagging.Token{Word: word, Tag: ht.tagOne(word, prev)}
		prev = word
	}
	return ans, nil
}

func (ht heuristicTagger) TagText(ctx context.Context, sentence string) (tagging.Sentence, error) {
	var words []string
	for _, field := range strings.Fields(sentence) {
		words = append(words, splitToken(field)...)
	}
	return ht.TagWords(ctx, words)
}
