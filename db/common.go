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

package db

import (
	"database/sql"
	"fmt"

	"github.com/yannick-c/expander/dict"
)

// DisambTable is the table holding the corpus-frequency records. Each
// row stores one observed expansion phrase for one contraction context;
// the span and trailing tags are kept as JSON so differently shaped
// keys can share the schema.
const DisambTable = "disambiguation"

// DisambColumns returns the column list of DisambTable in insert order.
func DisambColumns() []string {
	return []string{"span", "tags", "expansion", "count"}
}

// Conf groups the database connection settings. Name is a file path for
// sqlite and a database name for mysql.
type Conf struct {
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	Host           string   `json:"host"`
	User           string   `json:"user"`
	Password       string   `json:"password"`
	PreconfQueries []string `json:"preconfSettings"`
}

func (c *Conf) IsConfigured() bool {
	return c.Type != ""
}

func (c *Conf) Validate() error {
	switch c.Type {
	case "sqlite":
		if c.Name == "" {
			return fmt.Errorf("no database file specified")
		}
	case "mysql":
		if c.Name == "" || c.Host == "" || c.User == "" {
			return fmt.Errorf("mysql requires name, host and user")
		}
	default:
		return fmt.Errorf("unsupported database type %s", c.Type)
	}
	return nil
}

// Writer stores freshly built disambiguation records. Initialize must
// be called first; it opens a transaction which Commit or Rollback
// closes again.
type Writer interface {
	DatabaseExists() bool
	Initialize(appendMode bool) error
	PrepareInsert(table string, attrs []string) (InsertOperation, error)
	Commit() error
	Rollback() error
	Close()
}

// Reader loads a previously stored disambiguation table.
type Reader interface {
	LoadDisambiguations() ([]dict.DisambiguationEntry, error)
	Close()
}

type InsertOperation interface {
	Exec(values ...any) error
}

// Insert is a prepared-statement backed InsertOperation shared by the
// concrete writers.
type Insert struct {
	Stmt *sql.Stmt
}

func (ins *Insert) Exec(values ...any) error {
	_, err := ins.Stmt.Exec(values...)
	return err
}
