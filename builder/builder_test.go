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
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yannick-c/expander/dict"
	"github.com/yannick-c/expander/tagging"
)

// stubTagger replays canned tagging results keyed by the words joined
// with spaces.
type stubTagger struct {
	sents map[string]tagging.Sentence
}

func newStubTagger(sents ...tagging.Sentence) *stubTagger {
	ans := &stubTagger{sents: make(map[string]tagging.Sentence)}
	for _, sent := range sents {
		ans.sents[strings.Join(sent.Words(), " ")] = sent
	}
	return ans
}

func (st *stubTagger) TagText(ctx context.Context, sentence string) (tagging.Sentence, error) {
	sent, ok := st.sents[sentence]
	if !ok {
		return nil, fmt.Errorf("stub tagger has no entry for '%s'", sentence)
	}
	return sent, nil
}

func (st *stubTagger) TagWords(ctx context.Context, words []string) (tagging.Sentence, error) {
	return st.TagText(ctx, strings.Join(words, " "))
}

func taggedSent(items ...string) tagging.Sentence {
	ans := make(tagging.Sentence, len(items))
	for i, item := range items {
		pos := strings.LastIndex(item, "/")
		ans[i] = tagging.Token{Word: item[:pos], Tag: item[pos+1:]}
	}
	return ans
}

func defaultDict(t *testing.T) *dict.Contractions {
	contractions, err := dict.LoadContractions("")
	assert.NoError(t, err)
	return contractions
}

func TestSplitContraction(t *testing.T) {
	assert.Equal(t, []string{"she", "'s"}, splitContraction("she's"))
	assert.Equal(t, []string{"i", "'ll"}, splitContraction("i'll"))
	assert.Equal(t, []string{"wo", "n't"}, splitContraction("won't"))
	assert.Equal(t, []string{"ai", "n't"}, splitContraction("ain't"))
	assert.Equal(t, []string{"could", "n't", "'ve"}, splitContraction("couldn't've"))
	assert.Equal(t, []string{"who", "'d", "'ve"}, splitContraction("who'd've"))
}

func TestCompilePatternsPrefersWiderWindows(t *testing.T) {
	patterns := compilePatterns(defaultDict(t))
	assert.NotEmpty(t, patterns)
	for i := 1; i < len(patterns); i++ {
		assert.GreaterOrEqual(t, len(patterns[i-1].phrase), len(patterns[i].phrase))
	}
}

func TestNewBuilderValidation(t *testing.T) {
	_, err := NewBuilder(nil, newStubTagger(), 1, nil)
	assert.Error(t, err)
	_, err = NewBuilder(defaultDict(t), nil, 1, nil)
	assert.Error(t, err)
	_, err = NewBuilder(defaultDict(t), newStubTagger(), 0, nil)
	assert.Error(t, err)
}

func TestProcessSentenceCountsContext(t *testing.T) {
	tagger := newStubTagger(
		taggedSent("She/PRP", "'d/MD", "been/VBN", "there/RB", "before/RB"),
	)
	b, err := NewBuilder(defaultDict(t), tagger, 1, nil)
	assert.NoError(t, err)

	words := []string{"She", "had", "been", "there", "before"}
	assert.NoError(t, b.ProcessSentence(context.Background(), words))
	assert.NoError(t, b.ProcessSentence(context.Background(), words))

	entries := b.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(
		t,
		[]dict.SpanToken{{"she", "PRP"}, {"'d", "MD"}},
		entries[0].Span,
	)
	assert.Equal(t, []string{"VBN"}, entries[0].Tags)
	assert.Equal(t, map[string]int{"she had": 2}, entries[0].Counts)
	assert.Equal(t, []string{"she'd"}, b.Surfaces())
	assert.Equal(t, 2, b.NumSentences())
	assert.Equal(t, 2, b.NumMatches())
}

func TestProcessSentenceMidSentenceKeepsCase(t *testing.T) {
	tagger := newStubTagger(
		taggedSent("Maybe/RB", "it/PRP", "'s/VBZ", "fine/JJ", "now/RB"),
	)
	b, err := NewBuilder(defaultDict(t), tagger, 1, nil)
	assert.NoError(t, err)

	words := []string{"Maybe", "it", "is", "fine", "now"}
	assert.NoError(t, b.ProcessSentence(context.Background(), words))

	entries := b.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(
		t,
		[]dict.SpanToken{{"it", "PRP"}, {"'s", "VBZ"}},
		entries[0].Span,
	)
	assert.Equal(t, map[string]int{"it is": 1}, entries[0].Counts)
}

func TestProcessSentenceInsufficientTrailingContext(t *testing.T) {
	tagger := newStubTagger(
		taggedSent("She/PRP", "'d/MD"),
	)
	b, err := NewBuilder(defaultDict(t), tagger, 1, nil)
	assert.NoError(t, err)
	assert.NoError(t, b.ProcessSentence(context.Background(), []string{"She", "had"}))
	assert.Empty(t, b.Entries())
}

func TestProcessSentenceNoMatch(t *testing.T) {
	b, err := NewBuilder(defaultDict(t), newStubTagger(), 1, nil)
	assert.NoError(t, err)
	assert.NoError(t, b.ProcessSentence(context.Background(), []string{"nothing", "here"}))
	assert.Empty(t, b.Entries())
}

func TestProcessSentenceTaggerFailure(t *testing.T) {
	b, err := NewBuilder(defaultDict(t), newStubTagger(), 1, nil)
	assert.NoError(t, err)
	err = b.ProcessSentence(context.Background(), []string{"She", "had", "been", "there"})
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	tagger := newStubTagger(
		taggedSent("She/PRP", "'d/MD", "been/VBN", "there/RB", "before/RB"),
	)
	b, err := NewBuilder(defaultDict(t), tagger, 1, nil)
	assert.NoError(t, err)
	words := []string{"She", "had", "been", "there", "before"}
	assert.NoError(t, b.ProcessSentence(context.Background(), words))

	tbl, err := b.Table()
	assert.NoError(t, err)
	counts, ok := tbl.Find(
		[]tagging.Token{{Word: "she", Tag: "PRP"}, {Word: "'d", Tag: "MD"}},
		[]string{"VBN"},
	)
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"she had": 1}, counts)
}
