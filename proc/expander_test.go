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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yannick-c/expander/dict"
)

func TestNewExpanderRequiresDictionary(t *testing.T) {
	_, err := NewExpander(nil, nil, newStubTagger(), ExpanderOpts{})
	assert.Error(t, err)
}

func TestNewExpanderRequiresTagger(t *testing.T) {
	_, err := NewExpander(defaultDict(t), nil, nil, ExpanderOpts{})
	assert.ErrorIs(t, err, ErrMissingTagger)
}

func TestNewExpanderRequiresMaskerWhenMasking(t *testing.T) {
	_, err := NewExpander(defaultDict(t), nil, newStubTagger(), ExpanderOpts{UseEntityMask: true})
	assert.ErrorIs(t, err, ErrMissingEntityMasker)
}

func TestExpandTaggedUnambiguous(t *testing.T) {
	e := mustExpander(t, defaultDict(t), nil, newStubTagger(), ExpanderOpts{})
	sent := taggedSent("I/PRP", "'m/VBP", "a/DT", "bad/JJ", "person/NN")
	assert.Equal(t, []string{"I", "am", "a", "bad", "person"}, e.ExpandTagged(sent))
}

func TestExpandTaggedKeepsPossessive(t *testing.T) {
	e := mustExpander(t, defaultDict(t), nil, newStubTagger(), ExpanderOpts{})
	sent := taggedSent("It/PRP", "'s/POS", "his/PRP$", "cat/NN")
	assert.Equal(t, []string{"It", "'s", "his", "cat"}, e.ExpandTagged(sent))
}

func TestExpandTaggedInputNotModified(t *testing.T) {
	e := mustExpander(t, defaultDict(t), nil, newStubTagger(), ExpanderOpts{})
	sent := taggedSent("I/PRP", "'m/VBP", "here/RB")
	e.ExpandTagged(sent)
	assert.Equal(t, []string{"I", "'m", "here"}, sent.Words())
}

func TestExpandTaggedDisambiguated(t *testing.T) {
	e := mustExpander(t, defaultDict(t), testDisamb(t), newStubTagger(), ExpanderOpts{})
	sent := taggedSent("It/PRP", "'s/VBZ", "not/RB", "what/WP", "you/PRP", "think/VBP")
	assert.Equal(
		t,
		[]string{"It", "is", "not", "what", "you", "think"},
		e.ExpandTagged(sent),
	)
}

func TestExpandTaggedAmbiguousTieLeftUnchanged(t *testing.T) {
	e := mustExpander(t, defaultDict(t), testDisamb(t), newStubTagger(), ExpanderOpts{})
	sent := taggedSent("She/PRP", "'d/MD", "like/VB", "that/DT")
	assert.Equal(t, []string{"She", "'d", "like", "that"}, e.ExpandTagged(sent))
}

func TestExpandTaggedAmbiguousResolved(t *testing.T) {
	e := mustExpander(t, defaultDict(t), testDisamb(t), newStubTagger(), ExpanderOpts{})
	sent := taggedSent("She/PRP", "'d/MD", "been/VBN", "there/RB")
	assert.Equal(t, []string{"She", "had", "been", "there"}, e.ExpandTagged(sent))
}

func TestExpandTaggedArgmaxDisabled(t *testing.T) {
	e := mustExpander(t, defaultDict(t), testDisamb(t), newStubTagger(), ExpanderOpts{DisableArgmax: true})
	sent := taggedSent("She/PRP", "'d/MD", "been/VBN", "there/RB")
	assert.Equal(t, []string{"She", "'d", "been", "there"}, e.ExpandTagged(sent))
}

func TestExpandTaggedAmbiguousWithoutTableLeftUnchanged(t *testing.T) {
	e := mustExpander(t, defaultDict(t), nil, newStubTagger(), ExpanderOpts{})
	sent := taggedSent("She/PRP", "'d/MD", "been/VBN", "there/RB")
	assert.Equal(t, []string{"She", "'d", "been", "there"}, e.ExpandTagged(sent))
}

func TestExpandTaggedInsufficientTrailingContext(t *testing.T) {
	e := mustExpander(t, defaultDict(t), testDisamb(t), newStubTagger(), ExpanderOpts{})
	sent := taggedSent("It/PRP", "'s/VBZ")
	assert.Equal(t, []string{"It", "'s"}, e.ExpandTagged(sent))
}

func TestExpandTaggedMultiMarkerSpan(t *testing.T) {
	e := mustExpander(t, defaultDict(t), nil, newStubTagger(), ExpanderOpts{})
	sent := taggedSent("Who/WP", "'d/MD", "'ve/VB", "thought/VBN")
	assert.Equal(t, []string{"Who", "would", "have", "thought"}, e.ExpandTagged(sent))
}

func TestExpandTaggedNegationClitic(t *testing.T) {
	e := mustExpander(t, defaultDict(t), nil, newStubTagger(), ExpanderOpts{})
	sent := taggedSent("I/PRP", "ca/MD", "n't/RB", "say/VB")
	assert.Equal(t, []string{"I", "can", "not", "say"}, e.ExpandTagged(sent))
}

func TestExpandTaggedUnknownContraction(t *testing.T) {
	e := mustExpander(t, defaultDict(t), nil, newStubTagger(), ExpanderOpts{})
	sent := taggedSent("He/PRP", "'z/VBZ", "here/RB")
	assert.Equal(t, []string{"He", "'z", "here"}, e.ExpandTagged(sent))
}

func TestExpandTaggedLengthMismatchLeftUnchanged(t *testing.T) {
	contractions, err := dict.NewContractions(map[string][]string{
		"it's": {"it really is"},
	})
	assert.NoError(t, err)
	e := mustExpander(t, contractions, nil, newStubTagger(), ExpanderOpts{})
	sent := taggedSent("it/PRP", "'s/VBZ", "late/JJ")
	assert.Equal(t, []string{"it", "'s", "late"}, e.ExpandTagged(sent))
}

func TestExpandWords(t *testing.T) {
	tagger := newStubTagger(
		taggedSent("I/PRP", "'m/VBP", "a/DT", "bad/JJ", "person/NN"),
	)
	e := mustExpander(t, defaultDict(t), nil, tagger, ExpanderOpts{})
	ans, err := e.ExpandWords(
		context.Background(),
		[][]string{{"I", "'m", "a", "bad", "person"}},
	)
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"I", "am", "a", "bad", "person"}}, ans)
}

func TestExpandWordsIdempotent(t *testing.T) {
	tagger := newStubTagger(
		taggedSent("I/PRP", "'m/VBP", "here/RB"),
		taggedSent("I/PRP", "am/VBP", "here/RB"),
	)
	e := mustExpander(t, defaultDict(t), nil, tagger, ExpanderOpts{})
	once, err := e.ExpandWords(context.Background(), [][]string{{"I", "'m", "here"}})
	assert.NoError(t, err)
	twice, err := e.ExpandWords(context.Background(), once)
	assert.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestExpandWordsTaggerFailure(t *testing.T) {
	e := mustExpander(t, defaultDict(t), nil, newStubTagger(), ExpanderOpts{})
	_, err := e.ExpandWords(context.Background(), [][]string{{"whatever"}})
	assert.Error(t, err)
}

func TestExpandText(t *testing.T) {
	tagger := newStubTagger()
	tagger.addText(
		"It's a man's world",
		taggedSent("It/PRP", "'s/VBZ", "a/DT", "man/NN", "'s/POS", "world/NN"),
	)
	e := mustExpander(t, defaultDict(t), testDisamb(t), tagger, ExpanderOpts{})
	ans, err := e.ExpandText(context.Background(), []string{"It's a man's world"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"It is a man's world"}, ans)
}

func TestExpandTextWithEntityMask(t *testing.T) {
	entries := append(testDisamb(t).Entries(), dict.DisambiguationEntry{
		Span:   []dict.SpanToken{{"<NE>", "NNP"}, {"'s", "VBZ"}},
		Tags:   []string{"VBN"},
		Counts: map[string]int{"<NE> has": 8, "<NE> is": 1},
	})
	disamb, err := dict.NewDisambiguationTable(entries)
	assert.NoError(t, err)
	contractions, err := dict.NewContractions(map[string][]string{
		"<ne>'s": {"<ne> is", "<ne> has"},
	})
	assert.NoError(t, err)

	masker := newStubMasker()
	masker.add(
		"Catherine's been promoted",
		taggedSent("<NE>/NNP", "'s/VBZ", "been/VBN", "promoted/VBN"),
		[]string{"Catherine"},
	)
	e := mustExpander(t, contractions, disamb, newStubTagger(), ExpanderOpts{
		Masker:        masker,
		UseEntityMask: true,
	})
	ans, err := e.ExpandText(context.Background(), []string{"Catherine's been promoted"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Catherine has been promoted"}, ans)
}
