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

// Package builder derives a disambiguation table from a tokenized
// corpus. Sentences containing an ambiguous expansion phrase ("she
// had ...") are rewritten with the contracted form ("she 'd ..."),
// re-tagged, and the resulting (span words/tags + trailing tags)
// context is counted towards the phrase it came from.
package builder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"

	"github.com/yannick-c/expander/dict"
	"github.com/yannick-c/expander/tagging"
)

// surfaceItem makes a contraction surface storable in a BinTree.
type surfaceItem string

func (si surfaceItem) Compare(other collections.Comparable) int {
	sOther, ok := other.(surfaceItem)
	if !ok {
		return -1
	}
	return strings.Compare(string(si), string(sOther))
}

// record accumulates the observed expansion counts of one context key.
type record struct {
	key    string
	span   []dict.SpanToken
	tags   []string
	counts map[string]int
}

// Builder is fed tokenized corpus sentences one by one and accumulates
// disambiguation counts. It is not safe for concurrent use.
type Builder struct {
	patterns     []pattern
	tagger       tagging.Tagger
	trailingTags int
	tagMods      *tagging.TagModderChain
	records      map[string]*record
	surfaces     *collections.BinTree[surfaceItem]
	numSents     int
	numMatches   int
}

// NewBuilder prepares a builder counting contexts of the ambiguous
// contractions in the dictionary, with trailingTags tags of context
// after each span. The tag modder chain must be the same one later
// used for lookups.
func NewBuilder(
	contractions *dict.Contractions,
	tagger tagging.Tagger,
	trailingTags int,
	tagMods *tagging.TagModderChain,
) (*Builder, error) {
	if contractions == nil {
		return nil, fmt.Errorf("failed to create builder: no contraction dictionary")
	}
	if tagger == nil {
		return nil, fmt.Errorf("failed to create builder: no tagger")
	}
	if trailingTags < 1 {
		return nil, fmt.Errorf("failed to create builder: trailingTags must be positive")
	}
	patterns := compilePatterns(contractions)
	if len(patterns) == 0 {
		return nil, fmt.Errorf("failed to create builder: no ambiguous contractions")
	}
	ans := &Builder{
		patterns:     patterns,
		tagger:       tagger,
		trailingTags: trailingTags,
		tagMods:      tagMods,
		records:      make(map[string]*record),
		surfaces:     new(collections.BinTree[surfaceItem]),
	}
	ans.surfaces.UniqValues = true
	return ans, nil
}

// ProcessSentence scans one tokenized sentence for contractible
// windows and counts their contexts. Tagging failures abort the whole
// build, a corpus with a broken tagger would only produce garbage
// counts.
func (b *Builder) ProcessSentence(ctx context.Context, words []string) error {
	b.numSents++
	for j := range words {
		pat, ok := b.matchAt(words, j)
		if !ok {
			continue
		}
		if err := b.countMatch(ctx, words, j, pat); err != nil {
			return err
		}
	}
	return nil
}

// matchAt finds the widest contractible window starting at position j.
func (b *Builder) matchAt(words []string, j int) (pattern, bool) {
	for _, pat := range b.patterns {
		if pat.matchesAt(words, j) {
			return pat, true
		}
	}
	return pattern{}, false
}

func (b *Builder) countMatch(ctx context.Context, words []string, j int, pat pattern) error {
	contracted := make([]string, 0, len(words)-len(pat.phrase)+len(pat.parts))
	contracted = append(contracted, words[:j]...)
	parts := append([]string{}, pat.parts...)
	if startsUpper(words[j]) {
		parts[0] = capitalize(parts[0])
	}
	contracted = append(contracted, parts...)
	contracted = append(contracted, words[j+len(pat.phrase):]...)

	tagged, err := b.tagger.TagWords(ctx, contracted)
	if err != nil {
		return fmt.Errorf("failed to tag contracted sentence: %w", err)
	}
	if len(tagged) != len(contracted) {
		log.Warn().
			Strs("sentence", contracted).
			Msg("tagger changed the tokenization, skipping")
		return nil
	}
	if j+len(parts)+b.trailingTags > len(tagged) {
		// not enough context after the span to form a key
		return nil
	}

	span := make([]dict.SpanToken, len(parts))
	for i := range parts {
		tok := tagged[j+i]
		word := tok.Word
		if j == 0 && i == 0 {
			// lookups strip sentence-initial capitalization
			word = lowerFirst(word)
		}
		span[i] = dict.SpanToken{word, b.tagMods.Mod(tok.Tag)}
	}
	tags := make([]string, b.trailingTags)
	for i := range tags {
		tags[i] = b.tagMods.Mod(tagged[j+len(parts)+i].Tag)
	}

	key := contextKey(span, tags)
	rec, ok := b.records[key]
	if !ok {
		rec = &record{key: key, span: span, tags: tags, counts: make(map[string]int)}
		b.records[key] = rec
	}
	phrase := strings.ToLower(strings.Join(pat.phrase, " "))
	rec.counts[phrase]++
	b.surfaces.Add(surfaceItem(pat.surface))
	b.numMatches++
	return nil
}

// Entries returns the accumulated table records in stable key order.
func (b *Builder) Entries() []dict.DisambiguationEntry {
	keys := make([]string, 0, len(b.records))
	for key := range b.records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	ans := make([]dict.DisambiguationEntry, len(keys))
	for i, key := range keys {
		rec := b.records[key]
		ans[i] = dict.DisambiguationEntry{
			Span:   rec.span,
			Tags:   rec.tags,
			Counts: rec.counts,
		}
	}
	return ans
}

// Table wraps the accumulated entries into a ready-to-use table.
func (b *Builder) Table() (*dict.DisambiguationTable, error) {
	return dict.NewDisambiguationTable(b.Entries())
}

// Surfaces lists the distinct contraction surfaces observed so far,
// in lexical order.
func (b *Builder) Surfaces() []string {
	items := b.surfaces.ToSlice()
	ans := make([]string, len(items))
	for i, item := range items {
		ans[i] = string(item)
	}
	return ans
}

// NumSentences returns how many sentences were processed.
func (b *Builder) NumSentences() int {
	return b.numSents
}

// NumMatches returns how many contractible windows were counted.
func (b *Builder) NumMatches() int {
	return b.numMatches
}

func contextKey(span []dict.SpanToken, tags []string) string {
	var b strings.Builder
	for i, st := range span {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(st.Word())
		b.WriteByte('|')
		b.WriteString(st.Tag())
	}
	for _, tag := range tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	return b.String()
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

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
