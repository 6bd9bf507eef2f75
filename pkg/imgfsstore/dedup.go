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

import (
	"github.com/yshdb5/imgfs/pkg/imgfserr"
)

// dedup enforces name uniqueness and content sharing (invariants 4 and
// 5) for the newly-populated slot i: its ImgID, SHA and Size[OrigRes]
// are already set, and its Offset triple is still zero.
//
// It reports whether i's content matched an existing record by slot
// order (the first match wins), in which case i's Size and Offset
// triples are overwritten to alias that record's blob storage and the
// caller must not append new blob bytes.
func dedup(t *Table, i int) (deduplicated bool, err error) {
	mine := t.At(i)
	for j := 0; j < t.Len(); j++ {
		if j == i {
			continue
		}
		other := t.At(j)
		if !other.Valid() {
			continue
		}
		if other.ImgID == mine.ImgID {
			return false, imgfserr.New(imgfserr.DuplicateID)
		}
		if !deduplicated && other.SHA == mine.SHA {
			mine.Size = other.Size
			mine.Offset = other.Offset
			deduplicated = true
		}
	}
	if deduplicated {
		t.Set(i, mine)
	}
	return deduplicated, nil
}
