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
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yannick-c/expander/dict"
	"github.com/yannick-c/expander/tagging"
)

var (
	ErrMissingTagger       = errors.New("no tagger provided")
	ErrMissingEntityMasker = errors.New("entity masking enabled but no masker provided")
)

// ExpanderOpts carries the optional knobs of an Expander.
type ExpanderOpts struct {

	// Masker replaces named entities with a sentinel token before
	// tagging, so that entity-internal apostrophes cannot be mistaken
	// for contractions. Required when UseEntityMask is set.
	Masker        tagging.EntityMasker
	UseEntityMask bool

	// EntityTag overrides the sentinel token (default tagging.DefaultEntityTag).
	EntityTag string

	// PossessiveTag overrides the tag marking possessive endings
	// (default tagging.PossessiveTag).
	PossessiveTag string

	// DisableArgmax leaves every span with more than one table
	// candidate unchanged instead of picking the most frequent one.
	// Useful for auditing ambiguous cases.
	DisableArgmax bool

	// TagMods is applied to every tag entering a disambiguation key;
	// it must match the chain the table was built with.
	TagMods *tagging.TagModderChain
}

// Expander locates contractions in part-of-speech tagged sentences and
// expands them ("I'm" -> "I am"), using a corpus-frequency table to
// settle genuinely ambiguous cases ("she'd" -> "she would" / "she had").
// The dictionaries are read-only, so a single Expander is safe for
// concurrent use.
type Expander struct {
	contractions  *dict.Contractions
	disamb        *dict.DisambiguationTable
	tagger        tagging.Tagger
	masker        tagging.EntityMasker
	useEntityMask bool
	entityTag     string
	possessiveTag string
	useArgmax     bool
	tagMods       *tagging.TagModderChain
}

// NewExpander wires an expander from its dictionaries and collaborators.
// A disambiguation table is optional; without one, every ambiguous
// contraction stays unchanged. Requesting entity masking without a
// masker is a configuration error caught here, before any sentence is
// processed.
func NewExpander(
	contractions *dict.Contractions,
	disamb *dict.DisambiguationTable,
	tagger tagging.Tagger,
	opts ExpanderOpts,
) (*Expander, error) {
	if contractions == nil {
		return nil, fmt.Errorf("failed to create expander: no contraction dictionary")
	}
	if tagger == nil {
		return nil, fmt.Errorf("failed to create expander: %w", ErrMissingTagger)
	}
	if opts.UseEntityMask && opts.Masker == nil {
		return nil, fmt.Errorf("failed to create expander: %w", ErrMissingEntityMasker)
	}
	ans := &Expander{
		contractions:  contractions,
		disamb:        disamb,
		tagger:        tagger,
		masker:        opts.Masker,
		useEntityMask: opts.UseEntityMask,
		entityTag:     opts.EntityTag,
		possessiveTag: opts.PossessiveTag,
		useArgmax:     !opts.DisableArgmax,
		tagMods:       opts.TagMods,
	}
	if ans.entityTag == "" {
		ans.entityTag = tagging.DefaultEntityTag
	}
	if ans.possessiveTag == "" {
		ans.possessiveTag = tagging.PossessiveTag
	}
	return ans, nil
}

// ExpandWords expands contractions in already tokenized sentences and
// returns the resulting word sequences, one per input sentence.
func (e *Expander) ExpandWords(ctx context.Context, sentences [][]string) ([][]string, error) {
	ans := make([][]string, 0, len(sentences))
	for _, words := range sentences {
		var (
			sent   tagging.Sentence
			masked []string
			err    error
		)
		if e.useEntityMask {
			sent, masked, err = e.masker.MaskWords(ctx, words)

		} else {
			sent, err = e.tagger.TagWords(ctx, words)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to tag sentence: %w", err)
		}
		out := e.ExpandTagged(sent)
		if e.useEntityMask {
			out = restoreEntities(out, masked, e.entityTag)
		}
		ans = append(ans, out)
	}
	return ans, nil
}

// ExpandText expands contractions in raw sentence strings, leaving
// tokenization to the tagging collaborator, and joins each result back
// into a plain string.
func (e *Expander) ExpandText(ctx context.Context, sentences []string) ([]string, error) {
	ans := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		var (
			sent   tagging.Sentence
			masked []string
			err    error
		)
		if e.useEntityMask {
			sent, masked, err = e.masker.MaskText(ctx, sentence)

		} else {
			sent, err = e.tagger.TagText(ctx, sentence)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to tag sentence: %w", err)
		}
		out := e.ExpandTagged(sent)
		if e.useEntityMask {
			out = restoreEntities(out, masked, e.entityTag)
		}
		ans = append(ans, JoinWords(out))
	}
	return ans, nil
}

// ExpandTagged runs the core algorithm on a single tagged sentence:
// locate markers, group them into spans, resolve candidates and apply
// the unambiguous or corpus-disambiguated expansions. The input is not
// modified; the expanded words are returned as a new slice.
func (e *Expander) ExpandTagged(sent tagging.Sentence) []string {
	out := sent.Words()
	markers := locateMarkers(sent, e.possessiveTag)
	if len(markers) == 0 {
		return out
	}
	for _, rpl := range e.extractReplacements(sent, groupSpans(markers)) {
		if len(rpl.candidates) == 1 {
			applyReplacement(out, rpl.span, rpl.candidates[0])

		} else if words := e.disambiguate(sent, rpl); words != nil {
			applyReplacement(out, rpl.span, words)
		}
	}
	return out
}

// applyReplacement writes the expansion words into the span positions.
// A length mismatch means the dictionary phrase cannot line up with the
// span tokens; the span is left unchanged instead of being mis-indexed.
func applyReplacement(out []string, span []int, words []string) {
	if len(words) != len(span) {
		log.Warn().
			Strs("replacement", words).
			Ints("span", span).
			Msg("replacement does not match span length, leaving unchanged")
		return
	}
	for i, idx := range span {
		out[idx] = words[i]
	}
}

// restoreEntities puts the masked original substrings back into the
// positions still holding the sentinel token, in sentence order.
func restoreEntities(words []string, masked []string, entityTag string) []string {
	next := 0
	for i, w := range words {
		if w == entityTag && next < len(masked) {
			words[i] = masked[next]
			next++
		}
	}
	return words
}
