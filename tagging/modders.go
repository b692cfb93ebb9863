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

package tagging

import (
	"fmt"
	"strings"
)

var (
	pennCoarse = map[string]string{
		"CC":   "J", // Coordinating conjunction
		"CD":   "C", // Cardinal number
		"DT":   "X", // Determiner
		"EX":   "X", // Existential there
		"FW":   "X", // Foreign word
		"IN":   "R", // Preposition or subordinating conjunction
		"JJ":   "A", // Adjective
		"JJR":  "A", // Adjective, comparative
		"JJS":  "A", // Adjective, superlative
		"LS":   "X", // List item marker
		"MD":   "X", // Modal
		"NN":   "N", // Noun, singular or mass
		"NNS":  "N", // Noun, plural
		"NNP":  "X", // Proper noun, singular
		"NNPS": "X", // Proper noun, plural
		"PDT":  "X", // Predeterminer
		"POS":  "X", // Possessive ending
		"PRP":  "P", // Personal pronoun
		"PRP$": "P", // Possessive pronoun
		"RB":   "D", // Adverb
		"RBR":  "D", // Adverb, comparative
		"RBS":  "D", // Adverb, superlative
		"RP":   "T", // Particle
		"SYM":  "X", // Symbol
		"TO":   "X", // to
		"UH":   "I", // Interjection
		"VB":   "V", // Verb, base form
		"VBD":  "V", // Verb, past tense
		"VBG":  "V", // Verb, gerund or present participle
		"VBN":  "V", // Verb, past participle
		"VBP":  "V", // Verb, non-3rd person singular present
		"VBZ":  "V", // Verb, 3rd person singular present
		"WDT":  "V", // Wh-determiner
		"WP":   "P", // Wh-pronoun
		"WP$":  "P", // Possessive wh-pronoun
		"WRB":  "D", // Wh-adverb
	}
)

// TagModder represents a type able to modify a part-of-speech tag
// before it enters a disambiguation key (e.g. to coarsen the tagset
// and make the frequency table less sparse). The same chain must be
// applied when building a table and when looking it up.
type TagModder interface {
	Mod(tag string) string
}

type ToLower struct{}

func (m ToLower) Mod(tag string) string {
	return strings.ToLower(tag)
}

type FirstChar struct{}

func (m FirstChar) Mod(tag string) string {
	if tag == "" {
		return tag
	}
	return tag[:1]
}

type Identity struct{}

func (m Identity) Mod(tag string) string {
	return tag
}

// PennCoarse maps Penn treebank tags to single-letter word classes.
// Unknown tags map to "X".
type PennCoarse struct{}

func (m PennCoarse) Mod(tag string) string {
	v, ok := pennCoarse[tag]
	if !ok {
		return "X"
	}
	return v
}

// TagModderChain applies a sequence of tag modders in order. A nil
// chain acts as identity.
type TagModderChain struct {
	fn []TagModder
}

func (m *TagModderChain) Mod(tag string) string {
	if m == nil {
		return tag
	}
	ans := tag
	for _, mod := range m.fn {
		ans = mod.Mod(ans)
	}
	return ans
}

// NewTagModderChain parses a colon-separated modder specification
// (e.g. "pennCoarse:toLower"). An empty specification produces a nil
// chain.
func NewTagModderChain(specif string) (*TagModderChain, error) {
	if specif == "" {
		return nil, nil
	}
	names := strings.Split(specif, ":")
	fn := make([]TagModder, len(names))
	for i, name := range names {
		switch name {
		case "toLower":
			fn[i] = ToLower{}
		case "firstChar":
			fn[i] = FirstChar{}
		case "pennCoarse":
			fn[i] = PennCoarse{}
		case "identity":
			fn[i] = Identity{}
		default:
			return nil, fmt.Errorf("unknown tag modder function %s", name)
		}
	}
	return &TagModderChain{fn: fn}, nil
}
