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

	"github.com/bytedance/sonic"

	"github.com/yannick-c/expander/dict"
)

// Row is a single stored observation, the flattened form of one
// (context, expansion) pair of a dict.DisambiguationEntry.
type Row struct {
	Span      string
	Tags      string
	Expansion string
	Count     int
}

// EntryRows flattens a disambiguation entry into its storage rows, one
// per counted expansion phrase.
func EntryRows(entry dict.DisambiguationEntry) ([]Row, error) {
	span, err := sonic.Marshal(entry.Span)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize span: %w", err)
	}
	tags, err := sonic.Marshal(entry.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tags: %w", err)
	}
	ans := make([]Row, 0, len(entry.Counts))
	for phrase, cnt := range entry.Counts {
		ans = append(ans, Row{
			Span:      string(span),
			Tags:      string(tags),
			Expansion: phrase,
			Count:     cnt,
		})
	}
	return ans, nil
}

// CollectEntries is the inverse of EntryRows: it groups the queried
// rows back into disambiguation entries. Row order does not matter.
func CollectEntries(rows *sql.Rows) ([]dict.DisambiguationEntry, error) {
	byKey := make(map[string]*dict.DisambiguationEntry)
	order := make([]string, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Span, &row.Tags, &row.Expansion, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to read disambiguation row: %w", err)
		}
		key := row.Span + "\n" + row.Tags
		entry, ok := byKey[key]
		if !ok {
			entry = &dict.DisambiguationEntry{Counts: make(map[string]int)}
			if err := sonic.Unmarshal([]byte(row.Span), &entry.Span); err != nil {
				return nil, fmt.Errorf("failed to parse stored span: %w", err)
			}
			if err := sonic.Unmarshal([]byte(row.Tags), &entry.Tags); err != nil {
				return nil, fmt.Errorf("failed to parse stored tags: %w", err)
			}
			byKey[key] = entry
			order = append(order, key)
		}
		entry.Counts[row.Expansion] = row.Count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	ans := make([]dict.DisambiguationEntry, len(order))
	for i, key := range order {
		ans[i] = *byKey[key]
	}
	return ans, nil
}
