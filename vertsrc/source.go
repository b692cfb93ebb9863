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

// Package vertsrc reads tagged sentences out of corpus vertical files.
package vertsrc

import (
	"context"
	"fmt"

	"github.com/tomachalek/vertigo/v5"
)

// SentenceHandler consumes one tokenized sentence along with the
// part-of-speech tag of each token.
type SentenceHandler func(words []string, tags []string) error

// Source collects the tokens of each sentence structure from a
// vertical file and hands completed sentences to its handler. Parsed
// lines are received passively by implementing vertigo.LineProcessor.
type Source struct {
	ctx          context.Context
	sentStruct   string
	tagCol       int
	handler      SentenceHandler
	words        []string
	tags         []string
	inSentence   bool
	numSentences int
	numTokens    int
}

// NewSource creates a sentence source. sentStruct names the vertical
// structure wrapping one sentence (usually "s") and tagCol is the
// zero-based positional attribute column holding the tag.
func NewSource(
	ctx context.Context,
	sentStruct string,
	tagCol int,
	handler SentenceHandler,
) (*Source, error) {
	if sentStruct == "" {
		return nil, fmt.Errorf("no sentence structure specified")
	}
	if tagCol < 1 {
		return nil, fmt.Errorf("tag column must be a positional attribute index >= 1")
	}
	if handler == nil {
		return nil, fmt.Errorf("no sentence handler specified")
	}
	return &Source{
		ctx:        ctx,
		sentStruct: sentStruct,
		tagCol:     tagCol,
		handler:    handler,
	}, nil
}

// ProcToken is a part of vertigo.LineProcessor implementation.
// It is called by Vertigo parser when a token line is encountered.
func (s *Source) ProcToken(tk *vertigo.Token, line int, err error) error {
	if err != nil {
		return err
	}
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}
	if !s.inSentence {
		return nil
	}
	s.words = append(s.words, tk.Word)
	s.tags = append(s.tags, tk.PosAttrByIndex(s.tagCol))
	s.numTokens++
	return nil
}

// ProcStruct is a part of vertigo.LineProcessor implementation.
// It is called by Vertigo parser when an opening structure tag
// is encountered.
func (s *Source) ProcStruct(st *vertigo.Structure, line int, err error) error {
	if err != nil {
		return err
	}
	if st.Name != s.sentStruct {
		return nil
	}
	if s.inSentence {
		// unterminated previous sentence
		if err := s.flush(); err != nil {
			return err
		}
	}
	s.inSentence = true
	return nil
}

// ProcStructClose is a part of vertigo.LineProcessor implementation.
// It is called by Vertigo parser when a closing structure tag is
// encountered.
func (s *Source) ProcStructClose(st *vertigo.StructureClose, line int, err error) error {
	if err != nil {
		return err
	}
	if st.Name != s.sentStruct || !s.inSentence {
		return nil
	}
	return s.flush()
}

func (s *Source) flush() error {
	s.inSentence = false
	if len(s.words) == 0 {
		return nil
	}
	words, tags := s.words, s.tags
	s.words, s.tags = nil, nil
	s.numSentences++
	return s.handler(words, tags)
}

// NumSentences returns how many sentences were handed out so far.
func (s *Source) NumSentences() int {
	return s.numSentences
}

// NumTokens returns how many in-sentence tokens were read so far.
func (s *Source) NumTokens() int {
	return s.numTokens
}

// Run parses the configured vertical file, feeding the handler.
func (s *Source) Run(conf *vertigo.ParserConf) error {
	if err := vertigo.ParseVerticalFile(conf, s); err != nil {
		return fmt.Errorf("failed to parse vertical file: %s", err)
	}
	if s.inSentence {
		return s.flush()
	}
	return nil
}
