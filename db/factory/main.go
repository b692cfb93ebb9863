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

package factory

import (
	"fmt"

	"github.com/yannick-c/expander/db"
	"github.com/yannick-c/expander/db/mysql"
	"github.com/yannick-c/expander/db/sqlite"
)

// NewWriter creates a database writer matching conf.Type.
func NewWriter(conf db.Conf) (db.Writer, error) {
	switch conf.Type {
	case "sqlite":
		return sqlite.NewWriter(conf), nil
	case "mysql":
		return mysql.NewWriter(conf)
	default:
		return nil, fmt.Errorf("no database writer for type %s", conf.Type)
	}
}

// NewReader creates a database reader matching conf.Type.
func NewReader(conf db.Conf) (db.Reader, error) {
	switch conf.Type {
	case "sqlite":
		return sqlite.NewReader(conf)
	case "mysql":
		return mysql.NewReader(conf)
	default:
		return nil, fmt.Errorf("no database reader for type %s", conf.Type)
	}
}
