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

// Package imgfsstore implements the transactional surface of an imgFS
// container: create, insert, read, delete and list, plus the
// deduplication and lazy-resize machinery those operations depend on.
//
// A *File owns exactly the shared state described in spec.md §5: the
// open os.File, the in-memory metadata mirror, and the header. Its
// mutex is the "single process-wide mutex" of §5 — a process that opens
// at most one container (as both the CLI and the server do) gets
// exactly the coarse, total-order serialization the spec calls for.
package imgfsstore

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"

	"github.com/yshdb5/imgfs/pkg/container"
	"github.com/yshdb5/imgfs/pkg/imaging"
	"github.com/yshdb5/imgfs/pkg/imgfserr"
)

// File is an open imgFS container: the file handle, its header and the
// in-memory metadata table, guarded by a single mutex.
type File struct {
	mu     sync.Mutex
	f      *os.File
	header container.Header
	table  *Table
}

// Header returns a copy of the container's current header.
func (f *File) Header() container.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.header
}

// CreateOptions configures a freshly created container.
type CreateOptions struct {
	MaxFiles uint32
	ThumbW   uint16
	ThumbH   uint16
	SmallW   uint16
	SmallH   uint16
}

const (
	maxThumbRes = 128
	maxSmallRes = 512
)

// Create writes a new container file at path: a header with
// nb_files=0, version=0 and the fixed name tag, followed by
// opts.MaxFiles zeroed metadata records. It then opens the file it just
// created for reading and writing.
func Create(path string, opts CreateOptions) (*File, error) {
	if opts.MaxFiles == 0 {
		return nil, imgfserr.New(imgfserr.MaxFiles)
	}
	if opts.ThumbW == 0 || opts.ThumbH == 0 || opts.ThumbW > maxThumbRes || opts.ThumbH > maxThumbRes {
		return nil, imgfserr.New(imgfserr.Resolutions)
	}
	if opts.SmallW == 0 || opts.SmallH == 0 || opts.SmallW > maxSmallRes || opts.SmallH > maxSmallRes {
		return nil, imgfserr.New(imgfserr.Resolutions)
	}

	hdr := container.Header{
		Name:     container.DefaultName,
		Version:  0,
		NbFiles:  0,
		MaxFiles: opts.MaxFiles,
		ResizedRes: [4]uint16{
			opts.ThumbW, opts.ThumbH, opts.SmallW, opts.SmallH,
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, imgfserr.Wrap(imgfserr.IO, err)
	}
	if err := container.WriteHeader(f, hdr); err != nil {
		f.Close()
		return nil, imgfserr.Wrap(imgfserr.IO, err)
	}
	for i := uint32(0); i < opts.MaxFiles; i++ {
		if err := container.WriteMetadataAt(f, int(i), container.Metadata{}); err != nil {
			f.Close()
			return nil, imgfserr.Wrap(imgfserr.IO, err)
		}
	}
	f.Close()

	return Open(path)
}

// Open loads an existing container's header and metadata table into
// memory and holds the file open for reading and writing.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o666)
	if err != nil {
		return nil, imgfserr.Wrap(imgfserr.IO, err)
	}
	hdr, err := container.ReadHeader(f)
	if err != nil {
		f.Close()
		return nil, imgfserr.Wrap(imgfserr.IO, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, imgfserr.Wrap(imgfserr.IO, err)
	}
	if fi.Size() < container.MinFileSize(hdr.MaxFiles) {
		f.Close()
		return nil, imgfserr.Wrap(imgfserr.IO, fmt.Errorf("container file too short for max_files=%d", hdr.MaxFiles))
	}
	records, err := container.ReadAllMetadata(f, hdr.MaxFiles)
	if err != nil {
		f.Close()
		return nil, imgfserr.Wrap(imgfserr.IO, err)
	}
	return &File{
		f:      f,
		header: hdr,
		table:  NewTable(records),
	}, nil
}

// Close releases the container's file handle and in-memory table.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	f.table = nil
	if err != nil {
		return imgfserr.Wrap(imgfserr.IO, err)
	}
	return nil
}

// appendBlob appends data to the end of the blob region and returns its
// offset. Callers must hold f.mu.
func (f *File) appendBlob(data []byte) (int64, error) {
	offset, err := f.f.Seek(0, os.SEEK_END)
	if err != nil {
		return 0, imgfserr.Wrap(imgfserr.IO, err)
	}
	if _, err := f.f.Write(data); err != nil {
		return 0, imgfserr.Wrap(imgfserr.IO, err)
	}
	return offset, nil
}

// Insert adds a new image under id, computed from the raw JPEG bytes in
// data. See spec.md §4.E for the five-step algorithm this implements.
func (f *File) Insert(id string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.header.NbFiles >= f.header.MaxFiles {
		return imgfserr.New(imgfserr.ImgfsFull)
	}
	i := f.table.FirstFreeSlot()
	if i < 0 {
		return imgfserr.New(imgfserr.ImgfsFull)
	}

	width, height, err := imaging.Dimensions(data)
	if err != nil {
		return imgfserr.Wrap(imgfserr.ImgLib, err)
	}

	m := container.Metadata{
		SHA:   sha256.Sum256(data),
		ImgID: id,
	}
	m.Size[container.OrigRes] = uint32(len(data))
	m.OrigRes[0] = uint32(width)
	m.OrigRes[1] = uint32(height)
	m.IsValid = container.NonEmpty
	f.table.Set(i, m)

	deduplicated, err := dedup(f.table, i)
	if err != nil {
		// Roll the slot back to empty: the failed insert must leave
		// the table exactly as it found it.
		f.table.Set(i, container.Metadata{})
		return err
	}

	m = f.table.At(i)
	if !deduplicated {
		offset, err := f.appendBlob(data)
		if err != nil {
			f.table.Set(i, container.Metadata{})
			return err
		}
		m.Offset[container.OrigRes] = uint64(offset)
		f.table.Set(i, m)
	}

	f.header.NbFiles++
	f.header.Version++

	if err := container.WriteHeader(f.f, f.header); err != nil {
		return imgfserr.Wrap(imgfserr.IO, err)
	}
	if err := container.WriteMetadataAt(f.f, i, m); err != nil {
		return imgfserr.Wrap(imgfserr.IO, err)
	}
	return nil
}

// Read returns the bytes of image id at resolution r, lazily
// materialising r if it's a sub-resolution that hasn't been computed
// yet.
func (f *File) Read(id string, r container.Resolution) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r != container.ThumbRes && r != container.SmallRes && r != container.OrigRes {
		return nil, imgfserr.New(imgfserr.Resolutions)
	}
	i := f.table.FindByID(id)
	if i < 0 {
		return nil, imgfserr.New(imgfserr.ImageNotFound)
	}
	if r != container.OrigRes {
		if err := f.lazilyResize(r, i); err != nil {
			return nil, err
		}
	}
	m := f.table.At(i)
	buf := make([]byte, m.Size[r])
	if _, err := f.f.ReadAt(buf, int64(m.Offset[r])); err != nil {
		return nil, imgfserr.Wrap(imgfserr.IO, err)
	}
	return buf, nil
}

// Delete removes image id. The blob bytes it referenced are left in
// place; only the metadata slot is freed, per spec.md's non-goal of
// compaction/garbage collection.
func (f *File) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.table.FindByID(id)
	if i < 0 {
		return imgfserr.New(imgfserr.ImageNotFound)
	}
	m := f.table.At(i)
	m.IsValid = container.Empty
	if err := container.WriteMetadataAt(f.f, i, m); err != nil {
		return imgfserr.Wrap(imgfserr.IO, err)
	}
	f.table.Set(i, m)

	f.header.NbFiles--
	f.header.Version++
	if err := container.WriteHeader(f.f, f.header); err != nil {
		return imgfserr.Wrap(imgfserr.IO, err)
	}
	return nil
}

// ListIDs returns the img_id of every valid record, ordered by slot
// index.
func (f *File) ListIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, f.header.NbFiles)
	f.table.IterValid(func(_ int, m container.Metadata) bool {
		ids = append(ids, m.ImgID)
		return true
	})
	return ids
}
