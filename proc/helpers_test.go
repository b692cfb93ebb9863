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
	"fmt"
	"strings"

	"github.com/yannick-c/expander/tagging"
)

// taggedSent builds a sentence from "word/TAG" items.
func taggedSent(items ...string) tagging.Sentence {
	ans := make(tagging.Sentence, len(items))
	for i, item := range items {
		pos := strings.LastIndex(item, "/")
		ans[i] = tagging.Token{Word: item[:pos], Tag: item[pos+1:]}
	}
	return ans
}

// stubTagger replays canned tagging results, keyed by the raw sentence
// (TagText) or by the words joined with spaces (TagWords).
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

func (st *stubTagger) addText(text string, sent tagging.Sentence) {
	st.sents[text] = sent
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

// stubMasker replays canned masking results.
type stubMasker struct {
	sents  map[string]tagging.Sentence
	masked map[string][]string
}

func newStubMasker() *stubMasker {
	return &stubMasker{
		sents:  make(map[string]tagging.Sentence),
		masked: make(map[string][]string),
	}
}

func (sm *stubMasker) add(key string, sent tagging.Sentence, masked []string) {
	sm.sents[key] = sent
	sm.masked[key] = masked
}

func (sm *stubMasker) MaskText(ctx context.Context, sentence string) (tagging.Sentence, []string, error) {
	sent, ok := sm.sents[sentence]
	if !ok {
		return nil, nil, fmt.Errorf("stub masker has no entry for '%s'", sentence)
	}
	return sent, sm.masked[sentence], nil
}

func (sm *stubMasker) MaskWords(ctx context.Context, words []string) (tagging.Sentence, []string, error) {
	return sm.MaskText(ctx, strings.Join(words, " "))
}
