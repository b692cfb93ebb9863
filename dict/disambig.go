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

package dict

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/yannick-c/expander/tagging"
)

// SpanToken is a (word, tag) pair inside a disambiguation key.
type SpanToken [2]string

func (st SpanToken) Word() string {
	return st[0]
}

func (st SpanToken) Tag() string {
	return st[1]
}

// DisambiguationEntry is one record of the disambiguation table: the
// contracted tokens with their tags, the tags of the tokens following
// the contraction, and how often each expansion phrase was observed in
// that context in the reference corpus.
type DisambiguationEntry struct {
	Span   []SpanToken    `json:"span"`
	Tags   []string       `json:"tags"`
	Counts map[string]int `json:"counts"`
}

// DisambiguationTable selects among multiple grammatically valid
// expansions using corpus frequencies. The number of trailing tag slots
// is a property of the table itself, derived from the shape of its
// entries at load time, never hardcoded.
type DisambiguationTable struct {
	entries      []DisambiguationEntry
	index        map[string]map[string]int
	trailingTags int
}

// NewDisambiguationTable validates entries and builds the lookup index.
// All entries must carry the same number of trailing tags; counts must
// be non-negative and each entry must offer at least one phrase.
func NewDisambiguationTable(entries []DisambiguationEntry) (*DisambiguationTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("disambiguation table is empty")
	}
	ans := &DisambiguationTable{
		entries:      make([]DisambiguationEntry, 0, len(entries)),
		index:        make(map[string]map[string]int, len(entries)),
		trailingTags: len(entries[0].Tags),
	}
	for _, entry := range entries {
		if err := ans.addEntry(entry); err != nil {
			return nil, err
		}
	}
	return ans, nil
}

// LoadDisambiguationTable reads a disambiguation table from a JSON
// resource file.
func LoadDisambiguationTable(path string) (*DisambiguationTable, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load disambiguations: %w", err)
	}
	var entries []DisambiguationEntry
	if err := sonic.Unmarshal(rawData, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse disambiguations: %w", err)
	}
	return NewDisambiguationTable(entries)
}

func (dt *DisambiguationTable) addEntry(entry DisambiguationEntry) error {
	if len(entry.Span) == 0 {
		return fmt.Errorf("disambiguation entry with an empty span")
	}
	if len(entry.Tags) != dt.trailingTags {
		return fmt.Errorf(
			"disambiguation entry for %s has %d trailing tags, table uses %d",
			entry.Span[0].Word(), len(entry.Tags), dt.trailingTags)
	}
	if len(entry.Counts) == 0 {
		return fmt.Errorf(
			"disambiguation entry for %s has no expansion counts", entry.Span[0].Word())
	}
	for phrase, cnt := range entry.Counts {
		if cnt < 0 {
			return fmt.Errorf("negative count for expansion %s", phrase)
		}
	}
	key := entryKey(entry)
	if _, ok := dt.index[key]; ok {
		return fmt.Errorf("duplicate disambiguation entry %s", key)
	}
	dt.entries = append(dt.entries, entry)
	dt.index[key] = entry.Counts
	return nil
}

// TrailingTags returns the number of trailing tag slots each key of
// this table carries.
func (dt *DisambiguationTable) TrailingTags() int {
	return dt.trailingTags
}

// Size returns the number of distinct keys in the table.
func (dt *DisambiguationTable) Size() int {
	return len(dt.entries)
}

// Entries exposes the raw records, e.g. for serialization.
func (dt *DisambiguationTable) Entries() []DisambiguationEntry {
	return dt.entries
}

// Find looks up the expansion counts for a contraction span followed by
// the given trailing tags. The second return value reports whether the
// context is known to the table at all.
func (dt *DisambiguationTable) Find(span []tagging.Token, trailing []string) (map[string]int, bool) {
	if len(trailing) != dt.trailingTags {
		return nil, false
	}
	counts, ok := dt.index[spanKey(span, trailing)]
	return counts, ok
}

// AddEntityVariants derives additional entries for sentences with
// masked named entities: every entry whose span starts with the given
// pronoun is duplicated with the pronoun replaced by entityTag, both in
// the key and in the counted expansion phrases. It returns the number
// of entries added.
func (dt *DisambiguationTable) AddEntityVariants(pronoun string, entityTag string) int {
	added := 0
	for _, entry := range append([]DisambiguationEntry{}, dt.entries...) {
		if entry.Span[0].Word() != pronoun {
			continue
		}
		variant := DisambiguationEntry{
			Span:   append([]SpanToken{}, entry.Span...),
			Tags:   entry.Tags,
			Counts: make(map[string]int, len(entry.Counts)),
		}
		variant.Span[0] = SpanToken{entityTag, entry.Span[0].Tag()}
		for phrase, cnt := range entry.Counts {
			variant.Counts[replaceWord(phrase, pronoun, entityTag)] = cnt
		}
		if err := dt.addEntry(variant); err == nil {
			added++
		}
	}
	return added
}

// replaceWord swaps whole words only; a plain substring replacement
// would corrupt words merely containing the pronoun.
func replaceWord(phrase, word, repl string) string {
	fields := strings.Fields(phrase)
	for i, f := range fields {
		if f == word {
			fields[i] = repl
		}
	}
	return strings.Join(fields, " ")
}

func entryKey(entry DisambiguationEntry) string {
	var b strings.Builder
	for i, st := range entry.Span {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(st.Word())
		b.WriteByte('|')
		b.WriteString(st.Tag())
	}
	for _, tag := range entry.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	return b.String()
}

func spanKey(span []tagging.Token, trailing []string) string {
	var b strings.Builder
	for i, tok := range span {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Word)
		b.WriteByte('|')
		b.WriteString(tok.Tag)
	}
	for _, tag := range trailing {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	return b.String()
}
