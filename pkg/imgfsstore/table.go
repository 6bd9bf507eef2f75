/*
Copyright 2026 The imgfs Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package imgfsstore

import "github.com/yshdb5/imgfs/pkg/container"

// Table is the in-memory mirror of a container's metadata records. It
// carries no persistence logic of its own: callers pair any mutation
// made through Table with an explicit container.WriteMetadataAt call.
type Table struct {
	records []container.Metadata
}

// NewTable wraps records (typically the result of
// container.ReadAllMetadata) as a Table.
func NewTable(records []container.Metadata) *Table {
	return &Table{records: records}
}

// Len returns the table's capacity (max_files).
func (t *Table) Len() int { return len(t.records) }

// At returns the record at slot i.
func (t *Table) At(i int) container.Metadata { return t.records[i] }

// Set replaces the record at slot i.
func (t *Table) Set(i int, m container.Metadata) { t.records[i] = m }

// FindByID performs a linear scan over occupied slots for img_id id,
// returning its slot index, or -1 if not present.
func (t *Table) FindByID(id string) int {
	for i, m := range t.records {
		if m.Valid() && m.ImgID == id {
			return i
		}
	}
	return -1
}

// FirstFreeSlot returns the first index with IsValid == Empty, or -1 if
// the table is full.
func (t *Table) FirstFreeSlot() int {
	for i, m := range t.records {
		if !m.Valid() {
			return i
		}
	}
	return -1
}

// IterValid calls fn for each occupied record, in slot order, stopping
// early if fn returns false.
func (t *Table) IterValid(fn func(index int, m container.Metadata) bool) {
	for i, m := range t.records {
		if m.Valid() {
			if !fn(i, m) {
				return
			}
		}
	}
}
