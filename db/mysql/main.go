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

package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/go-sql-driver/mysql"

	"github.com/yannick-c/expander/db"
	"github.com/yannick-c/expander/dict"
)

type Writer struct {
	database *sql.DB
	tx       *sql.Tx
	dbName   string
}

func (w *Writer) DatabaseExists() bool {
	row := w.database.QueryRow(
		`SELECT COUNT(*) > 0 FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?`,
		w.dbName, db.DisambTable,
	)
	var ans bool
	err := row.Scan(&ans)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to test data storage existence")
		return false
	}
	return ans
}

func (w *Writer) Initialize(appendMode bool) error {
	var err error
	dbExisted := w.DatabaseExists()
	if !appendMode {
		if dbExisted {
			log.
				Warn().
				Str("storageName", w.dbName+"/"+db.DisambTable).
				Msg("The data storage already exists. Existing data will be deleted.")
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

	w.tx, err = w.database.Begin()
	return err
}

func (w *Writer) PrepareInsert(table string, attrs []string) (db.InsertOperation, error) {
	if w.tx == nil {
		return nil, fmt.Errorf("cannot prepare insert into %s - no transaction active", table)
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
		log.Warn().Err(err).Msg("error closing database")
	}
}

func openDatabase(conf db.Conf) (*sql.DB, error) {
	mconf := mysql.NewConfig()
	mconf.Net = "tcp"
	mconf.Addr = conf.Host
	mconf.User = conf.User
	mconf.Passwd = conf.Password
	mconf.DBName = conf.Name
	mconf.ParseTime = true
	mconf.Loc = time.Local
	return sql.Open("mysql", mconf.FormatDSN())
}

func NewWriter(conf db.Conf) (*Writer, error) {
	database, err := openDatabase(conf)
	if err != nil {
		return nil, err
	}
	return &Writer{
		database: database,
		dbName:   conf.Name,
	}, nil
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
		log.Warn().Err(err).Msg("error closing database")
	}
}

func NewReader(conf db.Conf) (*Reader, error) {
	database, err := openDatabase(conf)
	if err != nil {
		return nil, err
	}
	return &Reader{database: database}, nil
}
