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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yannick-c/expander/tagging"
)

func testEntries() []DisambiguationEntry {
	return []DisambiguationEntry{
		{
			Span:   []SpanToken{{"she", "PRP"}, {"'d", "MD"}},
			Tags:   []string{"VBN"},
			Counts: map[string]int{"she had": 10, "she would": 2},
		},
		{
			Span:   []SpanToken{{"it", "PRP"}, {"'s", "VBZ"}},
			Tags:   []string{"RB"},
			Counts: map[string]int{"it is": 50, "it has": 3},
		},
	}
}

func TestNewDisambiguationTable(t *testing.T) {
	tbl, err := NewDisambiguationTable(testEntries())
	assert.NoError(t, err)
	assert.Equal(t, 2, tbl.Size())
	assert.Equal(t, 1, tbl.TrailingTags())
}

func TestNewDisambiguationTableEmpty(t *testing.T) {
	_, err := NewDisambiguationTable(nil)
	assert.Error(t, err)
}

func TestNewDisambiguationTableRejectsEmptySpan(t *testing.T) {
	entries := testEntries()
	entries[0].Span = nil
	_, err := NewDisambiguationTable(entries)
	assert.Error(t, err)
}

func TestNewDisambiguationTableRejectsMixedTrailingTags(t *testing.T) {
	entries := testEntries()
	entries[1].Tags = []string{"RB", "DT"}
	_, err := NewDisambiguationTable(entries)
	assert.Error(t, err)
}

func TestNewDisambiguationTableRejectsEmptyCounts(t *testing.T) {
	entries := testEntries()
	entries[0].Counts = nil
	_, err := NewDisambiguationTable(entries)
	assert.Error(t, err)
}

func TestNewDisambiguationTableRejectsNegativeCount(t *testing.T) {
	entries := testEntries()
	entries[0].Counts["she had"] = -1
	_, err := NewDisambiguationTable(entries)
	assert.Error(t, err)
}

func TestNewDisambiguationTableRejectsDuplicateKey(t *testing.T) {
	entries := append(testEntries(), testEntries()[0])
	_, err := NewDisambiguationTable(entries)
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	tbl, err := NewDisambiguationTable(testEntries())
	assert.NoError(t, err)
	span := []tagging.Token{
		{Word: "she", Tag: "PRP"},
		{Word: "'d", Tag: "MD"},
	}
	counts, ok := tbl.Find(span, []string{"VBN"})
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"she had": 10, "she would": 2}, counts)
}

func TestFindUnknownContext(t *testing.T) {
	tbl, err := NewDisambiguationTable(testEntries())
	assert.NoError(t, err)
	span := []tagging.Token{
		{Word: "she", Tag: "PRP"},
		{Word: "'d", Tag: "MD"},
	}
	_, ok := tbl.Find(span, []string{"XX"})
	assert.False(t, ok)
}

func TestFindWrongTrailingTagCount(t *testing.T) {
	tbl, err := NewDisambiguationTable(testEntries())
	assert.NoError(t, err)
	span := []tagging.Token{
		{Word: "she", Tag: "PRP"},
		{Word: "'d", Tag: "MD"},
	}
	_, ok := tbl.Find(span, []string{"VBN", "RB"})
	assert.False(t, ok)
}

func TestAddEntityVariants(t *testing.T) {
	tbl, err := NewDisambiguationTable(testEntries())
	assert.NoError(t, err)
	added := tbl.AddEntityVariants("she", "<NE>")
	assert.Equal(t, 1, added)
	assert.Equal(t, 3, tbl.Size())

	span := []tagging.Token{
		{Word: "<NE>", Tag: "PRP"},
		{Word: "'d", Tag: "MD"},
	}
	counts, ok := tbl.Find(span, []string{"VBN"})
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"<NE> had": 10, "<NE> would": 2}, counts)
}

func TestAddEntityVariantsKeepsOriginal(t *testing.T) {
	tbl, err := NewDisambiguationTable(testEntries())
	assert.NoError(t, err)
	tbl.AddEntityVariants("she", "<NE>")
	span := []tagging.Token{
		{Word: "she", Tag: "PRP"},
		{Word: "'d", Tag: "MD"},
	}
	_, ok := tbl.Find(span, []string{"VBN"})
	assert.True(t, ok)
}
