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

/*
This file contains all the database operations required to store a
disambiguation table (its table and indices).
*/

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yannick-c/expander/db"

	_ "github.com/mattn/go-sqlite3" // load the driver
)

// openDatabase opens a sqlite3 database specified by
// its filesystem path.
func openDatabase(dbPath string) (*sql.DB, error) {
	var err error
	if database, err := sql.Open("sqlite3", dbPath); err == nil {
		return database, nil
	}
	return nil, fmt.Errorf("failed to open disambiguation db: %s", err)
}

// prepareInsert creates a prepared statement for an INSERT
// operation.
func prepareInsert(database *sql.Tx, table string, cols []string) (*sql.Stmt, error) {
	valReplac := make([]string, len(cols))
	for i := range cols {
		valReplac[i] = "?"
	}
	ans, err := database.Prepare(
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, joinArgs(cols), joinArgs(valReplac)))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare INSERT: %s", err)
	}
	return ans, nil
}

func joinArgs(args []string) string {
	return strings.Join(args, ", ")
}

// dropExisting drops existing tables.
// It is safe to call this even if one or more
// of these does not exist.
func dropExisting(database *sql.DB) error {
	log.Info().Msg("Attempting to drop possible existing tables")
	_, err := database.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", db.DisambTable))
	if err != nil {
		return fmt.Errorf("failed to drop table '%s': %s", db.DisambTable, err)
	}
	return nil
}

// createSchema creates all the required tables and indices
func createSchema(database *sql.DB) error {
	log.Info().Msg("Attempting to create tables")
	_, err := database.Exec(fmt.Sprintf(
		"CREATE TABLE %s (span TEXT, tags TEXT, expansion TEXT, count INTEGER, "+
			"PRIMARY KEY(span, tags, expansion))", db.DisambTable))
	if err != nil {
		return fmt.Errorf("failed to create table '%s': %s", db.DisambTable, err)
	}
	_, err = database.Exec(fmt.Sprintf(
		"CREATE INDEX %s_span_idx ON %s(span)", db.DisambTable, db.DisambTable))
	if err != nil {
		return fmt.Errorf("failed to create index %s_span_idx: %s", db.DisambTable, err)
	}
	return nil
}
