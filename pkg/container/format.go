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

// Package container implements the on-disk binary layout of an imgFS
// file: a fixed-size header followed by a fixed number of fixed-size
// metadata records, followed by an append-only region of JPEG blobs.
//
// The layout is encoded with the host's native byte order, exactly like
// the reference C implementation's packed structs: this format is not
// portable across machines of differing endianness, and this package
// makes no attempt to hide that.
package container

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Resolution identifies one of the three blob variants held per image.
type Resolution int

const (
	ThumbRes Resolution = iota
	SmallRes
	OrigRes
	numResolutions = 3
)

func (r Resolution) String() string {
	switch r {
	case ThumbRes:
		return "thumbnail"
	case SmallRes:
		return "small"
	case OrigRes:
		return "original"
	default:
		return "invalid"
	}
}

// Suffix returns the filename suffix the CLI's read command appends
// before ".jpg" when writing a resolution to disk.
func (r Resolution) Suffix() string {
	switch r {
	case ThumbRes:
		return "_thumbnail"
	case SmallRes:
		return "_small"
	default:
		return "_orig"
	}
}

// ParseResolution maps the resolution names accepted on both the CLI
// and the HTTP query string onto a Resolution.
func ParseResolution(s string) (Resolution, bool) {
	switch s {
	case "thumb", "thumbnail":
		return ThumbRes, true
	case "small":
		return SmallRes, true
	case "orig", "original":
		return OrigRes, true
	default:
		return 0, false
	}
}

// Validity flags for Metadata.IsValid.
const (
	Empty    uint16 = 0
	NonEmpty uint16 = 1
)

const (
	maxNameLen  = 31  // header.Name, NUL-padded
	maxImgIDLen = 127 // metadata.ImgID, NUL-terminated

	// HeaderSize is the fixed, on-disk size of a Header, in bytes.
	HeaderSize = maxNameLen + 1 /* Name */ + 4 /* Version */ + 4 /* NbFiles */ + 4 /* MaxFiles */ + 4*2 /* ResizedRes */

	// RecordSize is the fixed, on-disk size of a Metadata record, in
	// bytes. It MUST match across every implementation reading the
	// same container file; it is baked into offset arithmetic as
	// HeaderSize + index*RecordSize.
	RecordSize = 32 /* SHA */ + maxImgIDLen + 1 /* ImgID */ + 4*2 /* OrigRes */ + 4*numResolutions /* Size */ + 8*numResolutions /* Offset */ + 2 /* IsValid */ + 6 /* reserved padding */
)

// byteOrder is the codec's fixed byte order. NativeEndian mirrors the
// reference implementation's raw struct writes: whatever the host's
// order is, that's what ends up on disk.
var byteOrder = binary.NativeEndian

// DefaultName is the fixed container tag written by Create, matching
// the reference implementation's CAT_TXT constant.
const DefaultName = "SOME TEXT"

// Header is the fixed-size record at offset 0 of a container file.
type Header struct {
	Name       string // at most maxNameLen bytes; NUL-padded on disk
	Version    uint32 // monotonic mutation counter
	NbFiles    uint32 // current valid entries
	MaxFiles   uint32 // capacity, immutable after creation
	ResizedRes [4]uint16
}

// Resolution accessors into the packed ResizedRes quadruplet, so
// callers don't need to remember the index order.
func (h Header) ThumbWidth() uint16  { return h.ResizedRes[0] }
func (h Header) ThumbHeight() uint16 { return h.ResizedRes[1] }
func (h Header) SmallWidth() uint16  { return h.ResizedRes[2] }
func (h Header) SmallHeight() uint16 { return h.ResizedRes[3] }

// Metadata is one fixed-size image record, exactly MaxFiles of which
// follow the header.
type Metadata struct {
	SHA      [32]byte
	ImgID    string // at most maxImgIDLen bytes; NUL-terminated on disk
	OrigRes  [2]uint32 // width, height
	Size     [numResolutions]uint32
	Offset   [numResolutions]uint64
	IsValid  uint16
}

// Valid reports whether m occupies a live slot.
func (m Metadata) Valid() bool { return m.IsValid == NonEmpty }

// EncodeHeader writes h as HeaderSize bytes in the container's codec.
func EncodeHeader(h Header) ([]byte, error) {
	if len(h.Name) > maxNameLen {
		return nil, fmt.Errorf("container: header name %q longer than %d bytes", h.Name, maxNameLen)
	}
	buf := make([]byte, HeaderSize)
	copy(buf[0:maxNameLen+1], h.Name)
	off := maxNameLen + 1
	byteOrder.PutUint32(buf[off:], h.Version)
	off += 4
	byteOrder.PutUint32(buf[off:], h.NbFiles)
	off += 4
	byteOrder.PutUint32(buf[off:], h.MaxFiles)
	off += 4
	for _, v := range h.ResizedRes {
		byteOrder.PutUint16(buf[off:], v)
		off += 2
	}
	return buf, nil
}

// DecodeHeader parses HeaderSize bytes produced by EncodeHeader.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("container: short header buffer (%d < %d)", len(buf), HeaderSize)
	}
	var h Header
	h.Name = cString(buf[0 : maxNameLen+1])
	off := maxNameLen + 1
	h.Version = byteOrder.Uint32(buf[off:])
	off += 4
	h.NbFiles = byteOrder.Uint32(buf[off:])
	off += 4
	h.MaxFiles = byteOrder.Uint32(buf[off:])
	off += 4
	for i := range h.ResizedRes {
		h.ResizedRes[i] = byteOrder.Uint16(buf[off:])
		off += 2
	}
	return h, nil
}

// EncodeMetadata writes m as RecordSize bytes.
func EncodeMetadata(m Metadata) ([]byte, error) {
	if len(m.ImgID) > maxImgIDLen {
		return nil, fmt.Errorf("container: img_id %q longer than %d bytes", m.ImgID, maxImgIDLen)
	}
	buf := make([]byte, RecordSize)
	off := 0
	copy(buf[off:off+32], m.SHA[:])
	off += 32
	copy(buf[off:off+maxImgIDLen+1], m.ImgID)
	off += maxImgIDLen + 1
	for _, v := range m.OrigRes {
		byteOrder.PutUint32(buf[off:], v)
		off += 4
	}
	for _, v := range m.Size {
		byteOrder.PutUint32(buf[off:], v)
		off += 4
	}
	for _, v := range m.Offset {
		byteOrder.PutUint64(buf[off:], v)
		off += 8
	}
	byteOrder.PutUint16(buf[off:], m.IsValid)
	// remaining bytes are reserved padding, left zero.
	return buf, nil
}

// DecodeMetadata parses RecordSize bytes produced by EncodeMetadata.
func DecodeMetadata(buf []byte) (Metadata, error) {
	if len(buf) < RecordSize {
		return Metadata{}, fmt.Errorf("container: short metadata buffer (%d < %d)", len(buf), RecordSize)
	}
	var m Metadata
	off := 0
	copy(m.SHA[:], buf[off:off+32])
	off += 32
	m.ImgID = cString(buf[off : off+maxImgIDLen+1])
	off += maxImgIDLen + 1
	for i := range m.OrigRes {
		m.OrigRes[i] = byteOrder.Uint32(buf[off:])
		off += 4
	}
	for i := range m.Size {
		m.Size[i] = byteOrder.Uint32(buf[off:])
		off += 4
	}
	for i := range m.Offset {
		m.Offset[i] = byteOrder.Uint64(buf[off:])
		off += 8
	}
	m.IsValid = byteOrder.Uint16(buf[off:])
	return m, nil
}

// cString returns the NUL-terminated string held in buf, or all of buf
// if no NUL byte is present.
func cString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// ReadHeader reads and decodes the header at the start of r.
func ReadHeader(r io.ReaderAt) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(io.NewSectionReader(r, 0, HeaderSize), buf); err != nil {
		return Header{}, fmt.Errorf("container: reading header: %w", err)
	}
	return DecodeHeader(buf)
}

// WriteHeader encodes and writes h at the start of w.
func WriteHeader(w io.WriterAt, h Header) error {
	buf, err := EncodeHeader(h)
	if err != nil {
		return err
	}
	if _, err := w.WriteAt(buf, 0); err != nil {
		return fmt.Errorf("container: writing header: %w", err)
	}
	return nil
}

// RecordOffset returns the file offset of metadata record i.
func RecordOffset(i int) int64 {
	return int64(HeaderSize) + int64(i)*int64(RecordSize)
}

// ReadAllMetadata reads the maxFiles metadata records following the
// header.
func ReadAllMetadata(r io.ReaderAt, maxFiles uint32) ([]Metadata, error) {
	out := make([]Metadata, maxFiles)
	buf := make([]byte, RecordSize)
	for i := range out {
		sr := io.NewSectionReader(r, RecordOffset(i), RecordSize)
		if _, err := io.ReadFull(sr, buf); err != nil {
			return nil, fmt.Errorf("container: reading metadata[%d]: %w", i, err)
		}
		m, err := DecodeMetadata(buf)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// WriteMetadataAt encodes and writes a single metadata record in place.
func WriteMetadataAt(w io.WriterAt, index int, m Metadata) error {
	buf, err := EncodeMetadata(m)
	if err != nil {
		return err
	}
	if _, err := w.WriteAt(buf, RecordOffset(index)); err != nil {
		return fmt.Errorf("container: writing metadata[%d]: %w", index, err)
	}
	return nil
}

// BlobRegionStart returns the file offset of the first byte after the
// metadata table, i.e. where the blob log begins.
func BlobRegionStart(maxFiles uint32) int64 {
	return int64(HeaderSize) + int64(maxFiles)*int64(RecordSize)
}

// MinFileSize is the smallest legal size of a container file holding
// maxFiles records. A reader MUST reject any shorter file.
func MinFileSize(maxFiles uint32) int64 {
	return BlobRegionStart(maxFiles)
}
