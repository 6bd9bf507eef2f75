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

package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeHeaderRoundTrip(t *testing.T) {
	h := Header{
		Name:       DefaultName,
		Version:    3,
		NbFiles:    2,
		MaxFiles:   128,
		ResizedRes: [4]uint16{64, 64, 256, 256},
	}
	buf, err := EncodeHeader(h)
	if err != nil {
		t.Fatalf("EncodeHeader: %v", err)
	}
	if len(buf) != HeaderSize {
		t.Fatalf("EncodeHeader: got %d bytes, want %d", len(buf), HeaderSize)
	}
	got, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("header round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeHeaderNameTooLong(t *testing.T) {
	h := Header{Name: "this name is far too long to fit in the header"}
	if _, err := EncodeHeader(h); err == nil {
		t.Fatal("EncodeHeader: want error for oversized name, got nil")
	}
}

func TestEncodeDecodeMetadataRoundTrip(t *testing.T) {
	m := Metadata{
		SHA:     [32]byte{1, 2, 3, 4},
		ImgID:   "pic1",
		OrigRes: [2]uint32{800, 600},
		Size:    [numResolutions]uint32{111, 222, 333},
		Offset:  [numResolutions]uint64{1000, 2000, 3000},
		IsValid: NonEmpty,
	}
	buf, err := EncodeMetadata(m)
	if err != nil {
		t.Fatalf("EncodeMetadata: %v", err)
	}
	if len(buf) != RecordSize {
		t.Fatalf("EncodeMetadata: got %d bytes, want %d", len(buf), RecordSize)
	}
	got, err := DecodeMetadata(buf)
	if err != nil {
		t.Fatalf("DecodeMetadata: %v", err)
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("metadata round-trip mismatch (-want +got):\n%s", diff)
	}
	if !got.Valid() {
		t.Error("Valid() = false, want true")
	}
}

func TestDecodeMetadataEmptySlotIsInvalid(t *testing.T) {
	buf := make([]byte, RecordSize)
	m, err := DecodeMetadata(buf)
	if err != nil {
		t.Fatalf("DecodeMetadata: %v", err)
	}
	if m.Valid() {
		t.Error("zero-value record reported Valid() = true")
	}
}

func TestParseResolution(t *testing.T) {
	cases := []struct {
		in   string
		want Resolution
		ok   bool
	}{
		{"thumb", ThumbRes, true},
		{"thumbnail", ThumbRes, true},
		{"small", SmallRes, true},
		{"orig", OrigRes, true},
		{"original", OrigRes, true},
		{"bogus", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseResolution(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseResolution(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRecordOffsetAndBlobRegionStart(t *testing.T) {
	if got, want := RecordOffset(0), int64(HeaderSize); got != want {
		t.Errorf("RecordOffset(0) = %d, want %d", got, want)
	}
	if got, want := RecordOffset(1), int64(HeaderSize+RecordSize); got != want {
		t.Errorf("RecordOffset(1) = %d, want %d", got, want)
	}
	const maxFiles = 10
	if got, want := BlobRegionStart(maxFiles), int64(HeaderSize+maxFiles*RecordSize); got != want {
		t.Errorf("BlobRegionStart(%d) = %d, want %d", maxFiles, got, want)
	}
}

func TestReadWriteHeaderAndMetadataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.imgfs")

	const maxFiles = 4
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create: %v", err)
	}
	defer f.Close()

	h := Header{Name: DefaultName, MaxFiles: maxFiles, ResizedRes: [4]uint16{64, 64, 256, 256}}
	if err := WriteHeader(f, h); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	for i := 0; i < maxFiles; i++ {
		if err := WriteMetadataAt(f, i, Metadata{}); err != nil {
			t.Fatalf("WriteMetadataAt(%d): %v", i, err)
		}
	}

	gotHeader, err := ReadHeader(f)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if diff := cmp.Diff(h, gotHeader); diff != "" {
		t.Errorf("header mismatch after round-trip (-want +got):\n%s", diff)
	}

	records, err := ReadAllMetadata(f, maxFiles)
	if err != nil {
		t.Fatalf("ReadAllMetadata: %v", err)
	}
	if len(records) != maxFiles {
		t.Fatalf("ReadAllMetadata: got %d records, want %d", len(records), maxFiles)
	}
	for i, m := range records {
		if m.Valid() {
			t.Errorf("record %d: want empty, got valid", i)
		}
	}

	m := Metadata{ImgID: "pic1", IsValid: NonEmpty}
	if err := WriteMetadataAt(f, 1, m); err != nil {
		t.Fatalf("WriteMetadataAt: %v", err)
	}
	records, err = ReadAllMetadata(f, maxFiles)
	if err != nil {
		t.Fatalf("ReadAllMetadata: %v", err)
	}
	if !records[1].Valid() || records[1].ImgID != "pic1" {
		t.Errorf("record 1 = %+v, want valid pic1", records[1])
	}

	if got, want := MinFileSize(maxFiles), int64(HeaderSize+maxFiles*RecordSize); got != want {
		t.Errorf("MinFileSize(%d) = %d, want %d", maxFiles, got, want)
	}
}
