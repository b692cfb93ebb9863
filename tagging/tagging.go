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

import "context"

// PossessiveTag is the Penn treebank label of the possessive ending
// ("Peter 's house"). A token carrying this tag never starts a contraction.
const PossessiveTag = "POS"

// DefaultEntityTag is the sentinel inserted for masked named entities.
const DefaultEntityTag = "<NE>"

// Token is a single word together with the part-of-speech tag assigned
// to it by an external tagger. Tokens are treated as immutable once
// produced.
type Token struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

// Sentence is an ordered sequence of tagged tokens. The order carries
// the word order of the original sentence.
type Sentence []Token

// Words strips the tags and returns a fresh word-only copy of the
// sentence.
func (s Sentence) Words() []string {
	ans := make([]string, len(s))
	for i, tok := range s {
		ans[i] = tok.Word
	}
	return ans
}

// Tagger is the external part-of-speech tagging collaborator. Both
// methods must return tokens in input order and must use a possessive
// tag value distinct from all other tags.
type Tagger interface {

	// TagText tags a raw sentence, tokenizing it first.
	TagText(ctx context.Context, sentence string) (Sentence, error)

	// TagWords tags an already tokenized sentence, one tag per word.
	TagWords(ctx context.Context, words []string) (Sentence, error)
}

// EntityMasker is an optional collaborator which tags a sentence with
// named entities collapsed into a sentinel token. The second return
// value lists the masked original substrings in sentence order; they
// are restored into the output once expansion is done.
type EntityMasker interface {
	MaskText(ctx context.Context, sentence string) (Sentence, []string, error)
	MaskWords(ctx context.Context, words []string) (Sentence, []string, error)
}
