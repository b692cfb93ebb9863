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
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yannick-c/expander/db"
)

func joinArgs(args []string) string {
	return strings.Join(args, ", ")
}

func prepareInsert(database *sql.Tx, table string, cols []string) (*sql.Stmt, error) {
	valReplac := make([]string, len(cols))
	for i := range cols {
		valReplac[i] = "?"
	}
	ans, err := database.Prepare(
		fmt.Sprintf(
			"INSERT INTO `%s` (%s) VALUES (%s)",
			table, joinArgs(cols), joinArgs(valReplac)))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare INSERT into %s: %s", table, err)
	}
	return ans, nil
}

// dropExisting drops existing tables.
// It is safe to call this even if one or more
// of these does not exist.
func dropExisting(database *sql.DB) error {
	log.Info().Msg("Attempting to drop possible existing tables")
	_, err := database.Exec(fmt.Sprintf("DROP TABLE IF EXISTS `%s`", db.DisambTable))
	if err != nil {
		return fmt.Errorf("failed to drop table '%s': %s", db.DisambTable, err)
	}
	return nil
}

// createSchema creates all the required tables and indices
func createSchema(database *sql.DB) error {
	log.Info().Msg("Attempting to create tables")
	_, err := database.Exec(fmt.Sprintf(
		"CREATE TABLE `%s` ("+
			"span VARCHAR(255) NOT NULL, "+
			"tags VARCHAR(127) NOT NULL, "+
			"expansion VARCHAR(255) NOT NULL, "+
			"count INT NOT NULL, "+
			"PRIMARY KEY (span, tags, expansion))", db.DisambTable))
	if err != nil {
		return fmt.Errorf("failed to create table '%s': %s", db.DisambTable, err)
	}
	return nil
}
