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

// Package library is the embeddable entry point: it wires expanders
// from configuration and runs disambiguation table builds.
package library

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/tomachalek/vertigo/v5"

	"github.com/yannick-c/expander/builder"
	"github.com/yannick-c/expander/cnf"
	"github.com/yannick-c/expander/db"
	"github.com/yannick-c/expander/db/factory"
	"github.com/yannick-c/expander/dict"
	"github.com/yannick-c/expander/proc"
	"github.com/yannick-c/expander/tagging"
	"github.com/yannick-c/expander/vertsrc"
)

const defaultTrailingTags = 1

// Status stores some basic information about a table build in
// progress.
type Status struct {
	Datetime       time.Time
	File           string
	ProcessedSents int
	NumMatches     int
	Error          error
}

func sendErrStatus(statusChan chan Status, file string, err error) {
	statusChan <- Status{
		Datetime: time.Now(),
		File:     file,
		Error:    err,
	}
}

// loadTable fetches the disambiguation table from whichever source the
// configuration names; both sources absent yields a nil table (every
// ambiguous contraction then stays unchanged).
func loadTable(conf *cnf.ExpanderConf) (*dict.DisambiguationTable, error) {
	if conf.DisambiguationsFile != "" {
		return dict.LoadDisambiguationTable(conf.DisambiguationsFile)
	}
	if conf.UsesDB() {
		reader, err := factory.NewReader(conf.DB)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		entries, err := reader.LoadDisambiguations()
		if err != nil {
			return nil, err
		}
		return dict.NewDisambiguationTable(entries)
	}
	return nil, nil
}

func entityTag(conf *cnf.ExpanderConf) string {
	if conf.NER.EntityTag != "" {
		return conf.NER.EntityTag
	}
	return tagging.DefaultEntityTag
}

// NewExpanderFromConf wires a ready-to-use expander: dictionaries from
// JSON resources or the configured database, entity variants derived
// when masking is on. The masker may be nil unless conf.NER.Enabled.
func NewExpanderFromConf(
	conf *cnf.ExpanderConf,
	tagger tagging.Tagger,
	masker tagging.EntityMasker,
) (*proc.Expander, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("NewExpanderFromConf failed: %w", err)
	}
	contractions, err := dict.LoadContractions(conf.ContractionsFile)
	if err != nil {
		return nil, fmt.Errorf("NewExpanderFromConf failed: %w", err)
	}
	table, err := loadTable(conf)
	if err != nil {
		return nil, fmt.Errorf("NewExpanderFromConf failed: %w", err)
	}
	if table != nil && conf.NER.Enabled {
		for _, pronoun := range conf.NER.PronounVariants {
			added := table.AddEntityVariants(pronoun, entityTag(conf))
			log.Info().
				Str("pronoun", pronoun).
				Int("added", added).
				Msg("derived entity table entries")
		}
	}
	tagMods, err := tagging.NewTagModderChain(conf.TagMods)
	if err != nil {
		return nil, fmt.Errorf("NewExpanderFromConf failed: %w", err)
	}
	return proc.NewExpander(contractions, table, tagger, proc.ExpanderOpts{
		Masker:        masker,
		UseEntityMask: conf.NER.Enabled,
		EntityTag:     conf.NER.EntityTag,
		PossessiveTag: conf.PossessiveTag,
		DisableArgmax: conf.DisableArgmax,
		TagMods:       tagMods,
	})
}

// BuildTable runs the disambiguation table builder over the configured
// vertical files and stores the result in the configured JSON file or
// database. The returned status channel reports per-file progress
// including possible errors; it is closed when the build finishes.
func BuildTable(
	ctx context.Context,
	conf *cnf.ExpanderConf,
	tagger tagging.Tagger,
) (chan Status, error) {

	if err := conf.ValidateForBuild(); err != nil {
		return nil, fmt.Errorf("BuildTable failed: %w", err)
	}
	contractions, err := dict.LoadContractions(conf.ContractionsFile)
	if err != nil {
		return nil, fmt.Errorf("BuildTable failed: %w", err)
	}
	tagMods, err := tagging.NewTagModderChain(conf.TagMods)
	if err != nil {
		return nil, fmt.Errorf("BuildTable failed: %w", err)
	}
	trailingTags := conf.Builder.TrailingTags
	if trailingTags == 0 {
		trailingTags = defaultTrailingTags
	}
	bld, err := builder.NewBuilder(contractions, tagger, trailingTags, tagMods)
	if err != nil {
		return nil, fmt.Errorf("BuildTable failed: %w", err)
	}
	filesToProc, err := conf.VerticalFiles()
	if err != nil {
		return nil, fmt.Errorf("BuildTable failed: %w", err)
	}

	statusChan := make(chan Status)
	go func() {
		defer close(statusChan)
		for _, verticalFile := range filesToProc {
			log.Info().Str("vertical", verticalFile).Msg("Processing vertical")
			src, err := vertsrc.NewSource(
				ctx,
				conf.Builder.Vertical.SentenceStruct,
				conf.Builder.Vertical.TagColumn,
				func(words []string, tags []string) error {
					return bld.ProcessSentence(ctx, words)
				},
			)
			if err != nil {
				sendErrStatus(statusChan, verticalFile, err)
				return
			}
			parserConf := &vertigo.ParserConf{
				InputFilePath:         verticalFile,
				StructAttrAccumulator: "nil",
				Encoding:              conf.Builder.Vertical.Encoding,
				LogProgressEachNth:    1000000,
			}
			if err := src.Run(parserConf); err != nil {
				sendErrStatus(statusChan, verticalFile, err)
				return
			}
			statusChan <- Status{
				Datetime:       time.Now(),
				File:           verticalFile,
				ProcessedSents: src.NumSentences(),
				NumMatches:     bld.NumMatches(),
			}
		}
		if err := storeTable(conf, bld); err != nil {
			sendErrStatus(statusChan, "", err)
		}
	}()
	return statusChan, nil
}

// storeTable writes the accumulated entries to the configured output,
// deriving entity variants first when masking is on.
func storeTable(conf *cnf.ExpanderConf, bld *builder.Builder) error {
	table, err := bld.Table()
	if err != nil {
		return err
	}
	if conf.NER.Enabled {
		for _, pronoun := range conf.NER.PronounVariants {
			added := table.AddEntityVariants(pronoun, entityTag(conf))
			log.Info().
				Str("pronoun", pronoun).
				Int("added", added).
				Msg("derived entity table entries")
		}
	}
	entries := table.Entries()
	log.Info().
		Int("numEntries", len(entries)).
		Strs("surfaces", bld.Surfaces()).
		Msg("storing disambiguation table")

	if conf.DisambiguationsFile != "" {
		rawData, err := sonic.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to serialize disambiguations: %w", err)
		}
		return os.WriteFile(conf.DisambiguationsFile, rawData, 0644)
	}

	writer, err := factory.NewWriter(conf.DB)
	if err != nil {
		return err
	}
	defer writer.Close()
	if err := writer.Initialize(false); err != nil {
		return err
	}
	ins, err := writer.PrepareInsert(db.DisambTable, db.DisambColumns())
	if err != nil {
		writer.Rollback()
		return err
	}
	for _, entry := range entries {
		rows, err := db.EntryRows(entry)
		if err != nil {
			writer.Rollback()
			return err
		}
		for _, row := range rows {
			if err := ins.Exec(row.Span, row.Tags, row.Expansion, row.Count); err != nil {
				writer.Rollback()
				return err
			}
		}
	}
	return writer.Commit()
}
