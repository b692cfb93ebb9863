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

package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yannick-c/expander/db"
	"github.com/yannick-c/expander/dict"
	"github.com/yannick-c/expander/fs"
)

// -------------------------------

type Writer struct {
	database       *sql.DB
	tx             *sql.Tx
	Path           string
	PreconfQueries []string
}

func (w *Writer) DatabaseExists() bool {
	return fs.IsFile(w.Path)
}

func (w *Writer) Initialize(appendMode bool) error {
	var err error
	dbExisted := fs.IsFile(w.Path)
	w.database, err = openDatabase(w.Path)
	if err != nil {
		return err
	}
	log.Info().Msgf("Opened sqlite3 database %s", w.Path)

	if !appendMode {
		if dbExisted {
			log.
				Warn().
				Str("database", w.Path).
				Msg("The database already exists. Existing data will be deleted.")
			err := dropExisting(w.database)
			if err != nil {
				return err
			}
		}
		err := createSchema(w.database)
		if err != nil {
			return err
		}
	}

	var dbConf []string
	if len(w.PreconfQueries) > 0 {
		dbConf = w.PreconfQueries

	} else {
		log.Warn().Msg("No pre-configuration queries found, using default")
		dbConf = []string{
			"PRAGMA synchronous = OFF",
			"PRAGMA journal_mode = MEMORY",
		}
	}
	for _, cnf := range dbConf {
		log.Info().Str("value", cnf).Msg("Applying preconfiguration")
		w.database.Exec(cnf)
	}
	w.tx, err = w.database.Begin()
	return err
}

func (w *Writer) PrepareInsert(table string, attrs []string) (db.InsertOperation, error) {
	if w.tx == nil {
		return nil, fmt.Errorf("cannot prepare insert - no transaction active")
	}
	stmt, err := prepareInsert(w.tx, table, attrs)
	if err != nil {
		return nil, err
	}
	return &db.Insert{Stmt: stmt}, nil
}

func (w *Writer) Commit() error {
	return w.tx.Commit()
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback()
}

func (w *Writer) Close() {
	err := w.database.Close()
	if err != nil {
		log.Warn().Err(err).Msg("Error closing database")
	}
}

func NewWriter(conf db.Conf) *Writer {
	return &Writer{
		Path:           conf.Name,
		PreconfQueries: conf.PreconfQueries,
	}
}

// -------------------------------

type Reader struct {
	database *sql.DB
}

func (r *Reader) LoadDisambiguations() ([]dict.DisambiguationEntry, error) {
	rows, err := r.database.Query(fmt.Sprintf(
		"SELECT span, tags, expansion, count FROM %s", db.DisambTable))
	if err != nil {
		return nil, fmt.Errorf("failed to query disambiguations: %w", err)
	}
	defer rows.Close()
	return db.CollectEntries(rows)
}

func (r *Reader) Close() {
	err := r.database.Close()
	if err != nil {
		log.Warn().Err(err).Msg("Error closing database")
	}
}

func NewReader(conf db.Conf) (*Reader, error) {
	if !fs.IsFile(conf.Name) {
		return nil, fmt.Errorf("sqlite database %s does not exist", conf.Name)
	}
	database, err := openDatabase(conf.Name)
	if err != nil {
		return nil, err
	}
	return &Reader{database: database}, nil
}
