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

package cnf

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yannick-c/expander/db"
	"github.com/yannick-c/expander/fs"
	"github.com/yannick-c/expander/tagging"
)

// VerticalConf locates the corpus vertical file(s) a disambiguation
// table is built from.
type VerticalConf struct {

	// File can be either a path to a single vertical file
	// or a path to a directory containing multiple vertical
	// files of the same structure.
	File string `json:"file,omitempty"`

	// Files is an alternative to File allowing explicit
	// selection of one or more files to be processed as one.
	Files []string `json:"files,omitempty"`

	// TagColumn is the zero-based positional attribute column
	// holding the part-of-speech tag (the word is column 0).
	TagColumn int `json:"tagColumn"`

	// SentenceStruct names the structure wrapping one sentence
	// (typically "s").
	SentenceStruct string `json:"sentenceStructure"`

	Encoding string `json:"encoding,omitempty"`
}

// BuilderConf configures disambiguation table construction.
type BuilderConf struct {

	// TrailingTags is the number of tags following a contraction
	// included in each table key. Zero means the default (1).
	TrailingTags int `json:"trailingTags,omitempty"`

	Vertical VerticalConf `json:"vertical"`
}

// NERConf configures named entity masking.
type NERConf struct {
	Enabled bool `json:"enabled"`

	// EntityTag overrides the sentinel token standing in for a
	// masked entity.
	EntityTag string `json:"entityTag,omitempty"`

	// PronounVariants lists span-initial words whose table entries
	// are duplicated with the sentinel token, so masked entities can
	// be disambiguated too.
	PronounVariants []string `json:"pronounVariants,omitempty"`
}

// ExpanderConf holds configuration for a concrete expansion or table
// building task. Dictionaries can come from JSON resource files or
// from a database; configuring both sources is an error.
type ExpanderConf struct {

	// ContractionsFile overrides the embedded contraction
	// dictionary.
	ContractionsFile string `json:"contractionsFile,omitempty"`

	// DisambiguationsFile is a JSON disambiguation table resource.
	DisambiguationsFile string `json:"disambiguationsFile,omitempty"`

	// DB is the disambiguation table storage. If the type is empty
	// the database is not used at all.
	DB db.Conf `json:"db"`

	// PossessiveTag overrides the tag marking possessive endings.
	PossessiveTag string `json:"possessiveTag,omitempty"`

	// TagMods is a colon-separated chain of tag modder functions
	// (e.g. "pennCoarse:toLower") applied to tags entering
	// disambiguation keys.
	TagMods string `json:"tagMods,omitempty"`

	DisableArgmax bool `json:"disableArgmax,omitempty"`

	NER NERConf `json:"ner"`

	Builder BuilderConf `json:"builder"`
}

// UsesDB tells whether the disambiguation table lives in a database.
func (c *ExpanderConf) UsesDB() bool {
	return c.DB.IsConfigured()
}

// Validate checks the parts needed by every task. Vertical file
// settings are checked separately by ValidateForBuild.
func (c *ExpanderConf) Validate() error {
	if c.DisambiguationsFile != "" && c.UsesDB() {
		return fmt.Errorf("disambiguationsFile and db are mutually exclusive")
	}
	if c.UsesDB() {
		if err := c.DB.Validate(); err != nil {
			return fmt.Errorf("invalid db settings: %w", err)
		}
	}
	if _, err := tagging.NewTagModderChain(c.TagMods); err != nil {
		return fmt.Errorf("invalid tagMods: %w", err)
	}
	if c.Builder.TrailingTags < 0 {
		return fmt.Errorf("trailingTags must not be negative")
	}
	return nil
}

// ValidateForBuild checks the settings a table building run needs on
// top of Validate.
func (c *ExpanderConf) ValidateForBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Builder.Vertical.File == "" && len(c.Builder.Vertical.Files) == 0 {
		return fmt.Errorf("no vertical file specified")
	}
	if c.Builder.Vertical.TagColumn < 1 {
		return fmt.Errorf("tagColumn must be a positional attribute index >= 1")
	}
	if c.Builder.Vertical.SentenceStruct == "" {
		return fmt.Errorf("no sentence structure specified")
	}
	if c.DisambiguationsFile == "" && !c.UsesDB() {
		return fmt.Errorf("no disambiguation table output specified")
	}
	return nil
}

// VerticalFiles resolves the configured vertical input into concrete
// file paths (a directory expands to the files it contains).
func (c *ExpanderConf) VerticalFiles() ([]string, error) {
	if len(c.Builder.Vertical.Files) > 0 {
		return c.Builder.Vertical.Files, nil
	}
	if fs.IsDir(c.Builder.Vertical.File) {
		return fs.ListFilesInDir(c.Builder.Vertical.File)
	}
	if fs.IsFile(c.Builder.Vertical.File) {
		return []string{c.Builder.Vertical.File}, nil
	}
	return nil, fmt.Errorf("vertical %s does not exist", c.Builder.Vertical.File)
}

func LoadConf(confPath string) (*ExpanderConf, error) {
	rawData, err := os.ReadFile(confPath)
	if err != nil {
		return nil, err
	}
	var conf ExpanderConf
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}
